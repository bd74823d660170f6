// Package engine implements the Le Chartrand (Rami 500) card game rules.
//
// The engine is self-contained and transport-agnostic: it owns deck
// construction, meld validation, scoring, the turn state machine and the
// computer-opponent policy. Hosts drive it through explicit operations and
// read state back for synchronization.
package engine

import "fmt"

// Suit identifies one of the four card suits, or one of the two joker
// markers. Joker markers exist so the two jokers of a deck copy stay
// distinguishable.
type Suit string

const (
	Spades     Suit = "♠"
	Hearts     Suit = "♥"
	Diamonds   Suit = "♦"
	Clubs      Suit = "♣"
	RedJoker   Suit = "R"
	BlackJoker Suit = "B"
)

// Rank is the face value of a card. Rank "2" and jokers are always wild;
// 2s never participate in runs as normal members (the dealt sequence is
// A,3..10,J,Q,K).
type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Joker Rank = "JOKER"
)

// runRanks is the positional table used for run validation. It includes "2"
// positionally even though actual 2-rank cards are wild and never appear as
// non-wild run members.
var runRanks = []Rank{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// dealRanks are the non-wild ranks emitted per suit when building a deck.
var dealRanks = []Rank{"A", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Card is a single physical card. ID is globally unique within one
// deck-multiset and stable for the card's lifetime: it encodes suit, rank
// and deck-copy index so duplicate copies in 2-deck games stay distinct.
type Card struct {
	ID   string `json:"id"`
	Suit Suit   `json:"suit"`
	Rank Rank   `json:"value"`
	Wild bool   `json:"isWild"`
}

// newCard builds a card for deck copy d.
func newCard(suit Suit, rank Rank, d int) Card {
	return Card{
		ID:   fmt.Sprintf("%s%s-%d", suit, rank, d),
		Suit: suit,
		Rank: rank,
		Wild: rank == Two || rank == Joker,
	}
}

// newJoker builds one of the two jokers for deck copy d.
func newJoker(marker Suit, d int) Card {
	return Card{
		ID:   fmt.Sprintf("JOKER-%s-%d", marker, d),
		Suit: marker,
		Rank: Joker,
		Wild: true,
	}
}

// Points returns the card's point value: wilds (2s, jokers) 20, aces 15,
// ten and faces 10, numeric ranks their face value.
func (c Card) Points() int {
	if c.Wild {
		return 20
	}
	switch c.Rank {
	case Ace:
		return 15
	case "10", "J", "Q", "K":
		return 10
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	case "7":
		return 7
	case "8":
		return 8
	case "9":
		return 9
	}
	return 0
}

// runIndex returns the card rank's position in the run sequence
// A,2,3..10,J,Q,K, or -1 for jokers and malformed ranks.
func runIndex(r Rank) int {
	for i, rr := range runRanks {
		if rr == r {
			return i
		}
	}
	return -1
}

func (c Card) String() string {
	if c.Rank == Joker {
		return "JOKER-" + string(c.Suit)
	}
	return string(c.Rank) + string(c.Suit)
}
