package engine

// Meld is a validated group of at least three cards placed face-up, scored
// for its owner. Melds only ever grow by single-card appends; they are
// never split or merged, and are cleared at round boundaries.
type Meld struct {
	Owner int    `json:"owner"`
	Cards []Card `json:"cards"`
}

// Points returns the sum of the meld's card values.
func (m Meld) Points() int {
	total := 0
	for _, c := range m.Cards {
		total += c.Points()
	}
	return total
}

// IsValidMeld reports whether cards form a legal set or run.
//
// A set is 3–4 cards of one rank, at most one per suit, wilds filling the
// remaining suits. A run is cards of one suit whose non-wild ranks are
// pairwise distinct and whose rank span fits inside the meld length, wilds
// covering every gap. A meld of wilds alone is never valid: at least one
// anchor card must fix the meld's type.
func IsValidMeld(cards []Card) bool {
	if len(cards) < 3 {
		return false
	}

	var anchors []Card
	for _, c := range cards {
		if !c.Wild {
			anchors = append(anchors, c)
		}
	}
	if len(anchors) == 0 {
		return false
	}

	// Set candidate: every anchor shares one rank.
	sameRank := true
	for _, c := range anchors[1:] {
		if c.Rank != anchors[0].Rank {
			sameRank = false
			break
		}
	}
	if sameRank {
		seen := make(map[Suit]bool, 4)
		for _, c := range anchors {
			if seen[c.Suit] {
				return false
			}
			seen[c.Suit] = true
		}
		return len(cards) <= 4
	}

	// Run candidate: every anchor shares one suit.
	for _, c := range anchors[1:] {
		if c.Suit != anchors[0].Suit {
			return false
		}
	}
	lo, hi := 13, -1
	seen := make(map[int]bool, len(anchors))
	for _, c := range anchors {
		idx := runIndex(c.Rank)
		if idx < 0 || seen[idx] {
			return false
		}
		seen[idx] = true
		if idx < lo {
			lo = idx
		}
		if idx > hi {
			hi = idx
		}
	}
	// The wilds must exactly cover gaps and/or extend the run.
	return hi-lo+1 <= len(cards)
}

// CanExtendMeld reports whether appending card keeps the meld legal. The
// whole resulting meld is re-checked rather than validated incrementally:
// one more card can change which gaps the existing wilds must cover.
func CanExtendMeld(meld []Card, card Card) bool {
	joined := make([]Card, 0, len(meld)+1)
	joined = append(joined, meld...)
	joined = append(joined, card)
	return IsValidMeld(joined)
}
