package engine

import "testing"

func TestSortedByValue(t *testing.T) {
	hand := []Card{c(Spades, "K"), c(Hearts, "3"), newJoker(RedJoker, 0), c(Clubs, Ace)}
	got := SortedByValue(hand)

	wantRanks := []Rank{Ace, "3", "K", Joker}
	for i, r := range wantRanks {
		if got[i].Rank != r {
			t.Errorf("pos %d rank = %s, want %s", i, got[i].Rank, r)
		}
	}
	// Projection only: the hand itself keeps its order.
	if hand[0].Rank != "K" {
		t.Error("SortedByValue mutated the hand")
	}
}

func TestSortedBySuit(t *testing.T) {
	hand := []Card{c(Clubs, "4"), c(Spades, "9"), c(Spades, "3"), c(Hearts, "J")}
	got := SortedBySuit(hand)

	want := []string{"3♠", "9♠", "J♥", "4♣"}
	for i, s := range want {
		if got[i].String() != s {
			t.Errorf("pos %d = %s, want %s", i, got[i], s)
		}
	}
}
