package engine

import "testing"

// TestNewDeckComposition verifies one deck copy holds 54 unique cards:
// 48 non-wild, 4 wild 2s and 2 jokers.
func TestNewDeckComposition(t *testing.T) {
	deck := NewDeck(1)
	if len(deck) != 54 {
		t.Fatalf("len(deck) = %d, want 54", len(deck))
	}

	seen := make(map[string]bool)
	wilds, jokers := 0, 0
	for _, c := range deck {
		if seen[c.ID] {
			t.Errorf("duplicate card id %q", c.ID)
		}
		seen[c.ID] = true
		if c.Wild {
			wilds++
		}
		if c.Rank == Joker {
			jokers++
		}
	}
	if wilds != 6 {
		t.Errorf("wild count = %d, want 6 (four 2s + two jokers)", wilds)
	}
	if jokers != 2 {
		t.Errorf("joker count = %d, want 2", jokers)
	}
}

// TestNewDeckTwoCopies verifies duplicate deck copies stay distinguishable
// by id.
func TestNewDeckTwoCopies(t *testing.T) {
	deck := NewDeck(2)
	if len(deck) != 108 {
		t.Fatalf("len(deck) = %d, want 108", len(deck))
	}
	seen := make(map[string]bool)
	for _, c := range deck {
		if seen[c.ID] {
			t.Fatalf("duplicate card id %q across deck copies", c.ID)
		}
		seen[c.ID] = true
	}
}

// TestShuffleDeterminism verifies equal seeds give identical orderings.
func TestShuffleDeterminism(t *testing.T) {
	a := NewDeck(1)
	b := NewDeck(1)
	Shuffle(a, 42)
	Shuffle(b, 42)
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("order diverged at %d: %q vs %q", i, a[i].ID, b[i].ID)
		}
	}

	c := NewDeck(1)
	Shuffle(c, 43)
	same := true
	for i := range a {
		if a[i].ID != c[i].ID {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical orderings")
	}
}

// TestCardPoints spot-checks the point table.
func TestCardPoints(t *testing.T) {
	tests := []struct {
		card Card
		want int
	}{
		{newCard(Spades, Ace, 0), 15},
		{newCard(Spades, Two, 0), 20},
		{newJoker(RedJoker, 0), 20},
		{newCard(Hearts, "10", 0), 10},
		{newCard(Hearts, "J", 0), 10},
		{newCard(Hearts, "Q", 0), 10},
		{newCard(Hearts, "K", 0), 10},
		{newCard(Clubs, "3", 0), 3},
		{newCard(Clubs, "9", 0), 9},
	}
	for _, tt := range tests {
		if got := tt.card.Points(); got != tt.want {
			t.Errorf("%s points = %d, want %d", tt.card, got, tt.want)
		}
	}
}

func TestDeckCountFor(t *testing.T) {
	for players, want := range map[int]int{2: 1, 3: 1, 4: 2} {
		if got := DeckCountFor(players); got != want {
			t.Errorf("DeckCountFor(%d) = %d, want %d", players, got, want)
		}
	}
}
