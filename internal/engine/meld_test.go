package engine

import "testing"

func c(suit Suit, rank Rank) Card { return newCard(suit, rank, 0) }

func TestIsValidMeld(t *testing.T) {
	tests := []struct {
		name  string
		cards []Card
		want  bool
	}{
		{"too short", []Card{c(Spades, "5"), c(Hearts, "5")}, false},
		{"set of three", []Card{c(Spades, "5"), c(Hearts, "5"), c(Diamonds, "5")}, true},
		{"set of four suits", []Card{c(Spades, "5"), c(Hearts, "5"), c(Diamonds, "5"), c(Clubs, "5")}, true},
		{"set suit collision", []Card{c(Spades, "5"), newCard(Spades, "5", 1), c(Hearts, "5")}, false},
		{"set with wild", []Card{c(Spades, "5"), c(Hearts, "5"), c(Clubs, Two)}, true},
		{"set capped at four", []Card{c(Spades, "5"), c(Hearts, "5"), c(Diamonds, "5"), c(Clubs, Two), newJoker(RedJoker, 0)}, false},
		{"run of three", []Card{c(Spades, "3"), c(Spades, "4"), c(Spades, "5")}, true},
		{"run with gap no wild", []Card{c(Spades, "3"), c(Spades, "4"), c(Spades, "6")}, false},
		{"run gap filled by wild", []Card{c(Spades, "3"), c(Spades, "4"), newJoker(RedJoker, 0), c(Spades, "6")}, true},
		{"run wild extends end", []Card{c(Spades, "3"), c(Spades, "4"), c(Spades, "5"), c(Hearts, Two)}, true},
		{"run duplicate rank", []Card{c(Spades, "3"), newCard(Spades, "3", 1), c(Spades, "4")}, false},
		{"run out of order still valid", []Card{c(Spades, "6"), c(Spades, "4"), c(Spades, "5")}, true},
		{"run ace low", []Card{c(Clubs, Ace), c(Clubs, Two), c(Clubs, "3")}, true},
		{"all wilds", []Card{c(Spades, Two), c(Hearts, Two), newJoker(RedJoker, 0)}, false},
		{"mixed suits mixed ranks", []Card{c(Spades, "3"), c(Hearts, "4"), c(Diamonds, "5")}, false},
		{"two wilds one gap", []Card{c(Spades, "3"), c(Hearts, Two), newJoker(BlackJoker, 0), c(Spades, "6")}, true},
		{"wilds insufficient for span", []Card{c(Spades, "3"), newJoker(RedJoker, 0), c(Spades, "8")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidMeld(tt.cards); got != tt.want {
				t.Errorf("IsValidMeld() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanExtendMeld(t *testing.T) {
	run := []Card{c(Spades, "3"), c(Spades, "4"), c(Spades, "5")}
	if !CanExtendMeld(run, c(Spades, "6")) {
		t.Error("extending run with next rank should be valid")
	}
	if CanExtendMeld(run, c(Spades, Ace)) {
		t.Error("A,3,4,5 without a wild leaves the 2 slot open and should be invalid")
	}
	if !CanExtendMeld(append(append([]Card(nil), run...), c(Hearts, Two)), c(Spades, Ace)) {
		t.Error("A,wild,3,4,5 should be valid: the wild covers the 2 slot")
	}
	if CanExtendMeld(run, c(Spades, "8")) {
		t.Error("extending run with a gap and no wild should be invalid")
	}
	if CanExtendMeld(run, c(Hearts, "6")) {
		t.Error("extending run with the wrong suit should be invalid")
	}

	set := []Card{c(Spades, "5"), c(Hearts, "5"), c(Diamonds, "5")}
	if !CanExtendMeld(set, c(Clubs, "5")) {
		t.Error("completing the fourth suit should be valid")
	}
	if CanExtendMeld(set, c(Spades, "5")) {
		t.Error("duplicate suit in a set should be invalid")
	}
	full := append(append([]Card(nil), set...), c(Clubs, "5"))
	if CanExtendMeld(full, c(Hearts, Two)) {
		t.Error("a set never grows past four cards, even with a wild")
	}
}

// TestCanExtendMeldWildReanchor covers the case requiring whole-meld
// revalidation: adding a card changes which gap a wild must cover.
func TestCanExtendMeldWildReanchor(t *testing.T) {
	// Wild currently reads as the 6 extending 4,5 — or as a 3.
	meld := []Card{c(Spades, "4"), c(Spades, "5"), c(Hearts, Two)}
	if !CanExtendMeld(meld, c(Spades, "7")) {
		t.Error("wild should re-cover the 6 gap when the 7 arrives")
	}
	if !CanExtendMeld(meld, c(Spades, "3")) {
		t.Error("wild should shift to the 6 or 2 slot when the 3 arrives")
	}
	if CanExtendMeld(meld, c(Spades, "8")) {
		t.Error("one wild cannot cover both the 6 and 7 gaps")
	}
}

func TestMeldPoints(t *testing.T) {
	m := Meld{Owner: 0, Cards: []Card{c(Spades, Ace), c(Hearts, Ace), c(Diamonds, Ace)}}
	if got := m.Points(); got != 45 {
		t.Errorf("Points() = %d, want 45", got)
	}
}

// TestCanExtendMeldWrongCase is a sanity check: the test suite never sees a
// wild card gap left unfilled as valid. Ace runs cannot wrap past the king.
func TestRunNoWraparound(t *testing.T) {
	if IsValidMeld([]Card{c(Spades, "Q"), c(Spades, "K"), c(Spades, Ace)}) {
		t.Error("Q,K,A should be invalid: the run table does not wrap")
	}
}
