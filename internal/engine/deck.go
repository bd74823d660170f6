package engine

// NewDeck builds deckCount physical decks in deterministic order: per deck
// copy, 4 suits × 12 non-wild ranks (A,3–10,J,Q,K), one wild 2 per suit,
// and two jokers. The result is unshuffled.
func NewDeck(deckCount int) []Card {
	suits := []Suit{Spades, Hearts, Diamonds, Clubs}
	deck := make([]Card, 0, deckCount*54)
	for d := 0; d < deckCount; d++ {
		for _, s := range suits {
			for _, r := range dealRanks {
				deck = append(deck, newCard(s, r, d))
			}
			deck = append(deck, newCard(s, Two, d))
		}
		deck = append(deck, newJoker(RedJoker, d))
		deck = append(deck, newJoker(BlackJoker, d))
	}
	return deck
}

// xorshift64 is the same inline PRNG the deal path uses for shuffling.
// Seed 0 is corrected to 1 since xorshift cannot leave 0.
type xorshift64 uint64

func newRNG(seed uint64) xorshift64 {
	if seed == 0 {
		seed = 1
	}
	return xorshift64(seed)
}

func (x *xorshift64) next() uint64 {
	v := uint64(*x)
	v ^= v << 13
	v ^= v >> 7
	v ^= v << 17
	*x = xorshift64(v)
	return v
}

// randN returns a number in [0, n).
func (x *xorshift64) randN(n int) int {
	return int(x.next() % uint64(n))
}

// Shuffle performs an in-place Fisher-Yates shuffle driven by a
// deterministic generator seeded by seed. Equal seeds produce equal
// orderings, which the tests rely on.
func Shuffle(deck []Card, seed uint64) {
	rng := newRNG(seed)
	shuffleWith(deck, &rng)
}

func shuffleWith(deck []Card, rng *xorshift64) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.randN(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// DeckCountFor returns the number of physical decks for a player count:
// two decks for 4 players, one otherwise, so hand sizes and pacing stay
// balanced.
func DeckCountFor(players int) int {
	if players == 4 {
		return 2
	}
	return 1
}
