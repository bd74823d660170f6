package engine

// maxMeldScans bounds the repeated triple scan so a computer turn always
// terminates.
const maxMeldScans = 5

// ComputerTurn summarizes what the policy did, for action logging.
type ComputerTurn struct {
	Drew      bool
	Melds     []Meld
	Discarded *Card
	WentOut   bool
}

// PlayComputerTurn runs the computer-opponent policy for seat and returns
// a summary of the moves made. The policy is deliberately simple and
// suboptimal for balance and predictability:
//
//  1. Draw one card from the deck if available. The discard pile is never
//     evaluated.
//  2. Repeatedly scan all 3-card hand combinations in enumeration order
//     and meld the first valid triple found, up to maxMeldScans times.
//  3. Discard the single highest-value card left in hand, ties broken by
//     enumeration order.
//
// If melding or discarding empties the hand the round ends immediately;
// otherwise the turn passes to the next player.
func (g *Game) PlayComputerTurn(seat int) (ComputerTurn, error) {
	var turn ComputerTurn
	if g.Phase != PhasePlaying || seat != g.Current {
		return turn, ErrNotYourTurn
	}

	if g.Turn == PhaseDraw {
		if len(g.Deck) > 0 {
			if err := g.DrawFromDeck(seat); err != nil {
				return turn, err
			}
			turn.Drew = true
		} else {
			// Blocked draw: proceed straight to play.
			g.Turn = PhasePlay
		}
	}

	for scan := 0; scan < maxMeldScans; scan++ {
		ids, ok := g.findTriple(seat)
		if !ok {
			break
		}
		if err := g.CreateMeld(seat, ids); err != nil {
			return turn, err
		}
		turn.Melds = append(turn.Melds, g.Melds[len(g.Melds)-1])
		if g.Phase != PhasePlaying {
			turn.WentOut = true
			return turn, nil
		}
	}

	hand := g.Players[seat].Hand
	if len(hand) > 0 {
		worst := hand[0]
		for _, c := range hand[1:] {
			if c.Points() > worst.Points() {
				worst = c
			}
		}
		if err := g.DiscardCard(seat, worst.ID); err != nil {
			return turn, err
		}
		turn.Discarded = &worst
		turn.WentOut = g.Phase != PhasePlaying
	}
	return turn, nil
}

// findTriple returns the ids of the first valid 3-card meld in hand
// enumeration order, if any. Longer runs are intentionally not searched.
func (g *Game) findTriple(seat int) ([]string, bool) {
	hand := g.Players[seat].Hand
	for i := 0; i < len(hand); i++ {
		for j := i + 1; j < len(hand); j++ {
			for k := j + 1; k < len(hand); k++ {
				if IsValidMeld([]Card{hand[i], hand[j], hand[k]}) {
					return []string{hand[i].ID, hand[j].ID, hand[k].ID}, true
				}
			}
		}
	}
	return nil, false
}
