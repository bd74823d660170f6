package engine

import "sort"

// sortOrder is the display ordering used by the hand-sorting projections:
// A,2,3..10,J,Q,K then jokers.
func sortOrder(r Rank) int {
	if r == Joker {
		return len(runRanks)
	}
	return runIndex(r)
}

var suitOrder = map[Suit]int{
	Spades: 0, Hearts: 1, Diamonds: 2, Clubs: 3, RedJoker: 4, BlackJoker: 5,
}

// SortedByValue returns a copy of hand ordered by rank. The hand itself is
// never mutated: sorting is a pure view concern.
func SortedByValue(hand []Card) []Card {
	out := append([]Card(nil), hand...)
	sort.SliceStable(out, func(i, j int) bool {
		return sortOrder(out[i].Rank) < sortOrder(out[j].Rank)
	})
	return out
}

// SortedBySuit returns a copy of hand ordered by suit, then rank.
func SortedBySuit(hand []Card) []Card {
	out := append([]Card(nil), hand...)
	sort.SliceStable(out, func(i, j int) bool {
		if suitOrder[out[i].Suit] != suitOrder[out[j].Suit] {
			return suitOrder[out[i].Suit] < suitOrder[out[j].Suit]
		}
		return sortOrder(out[i].Rank) < sortOrder(out[j].Rank)
	})
	return out
}
