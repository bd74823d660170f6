package engine

import (
	"errors"
	"fmt"
)

// TurnPhase is the sub-state within one player's turn.
type TurnPhase string

const (
	PhaseDraw TurnPhase = "draw" // current player has not yet drawn
	PhasePlay TurnPhase = "play" // drawn; must meld and/or discard
)

// GamePhase is the round/game lifecycle state.
type GamePhase string

const (
	PhasePlaying  GamePhase = "playing"
	PhaseRoundEnd GamePhase = "roundEnd"
	PhaseGameEnd  GamePhase = "gameEnd"
)

const (
	// HandSize is the number of cards dealt to each player per round.
	HandSize = 9
	// WinThreshold ends the game once any cumulative score reaches it.
	WinThreshold = 500
)

// Rejection sentinels. All represent invalid player input: the operation is
// refused synchronously and state is left unchanged. None are fatal.
var (
	ErrNotYourTurn   = errors.New("not your turn")
	ErrWrongPhase    = errors.New("wrong turn phase")
	ErrRoundOver     = errors.New("round is over")
	ErrDeckEmpty     = errors.New("deck is empty")
	ErrInvalidMeld   = errors.New("invalid meld")
	ErrCardNotInHand = errors.New("card not in hand")
	ErrBadSelection  = errors.New("invalid selection")
)

// Player holds one seat's identity and hand. Hand cards are unique by ID.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Hand     []Card `json:"hand"`
	Computer bool   `json:"isAI,omitempty"`
}

// Game is the authoritative state of one Le Chartrand game: players, deck,
// discard pile, melds, scores and the turn machine. It is not safe for
// concurrent use; hosts serialize access.
type Game struct {
	Players []*Player
	Deck    []Card
	Discard []Card
	Melds   []Meld
	Current int
	Turn    TurnPhase
	Phase   GamePhase
	Scores  []int
	Round   int

	rng xorshift64
}

// NewGame creates a game for the given players with zeroed scores. The
// first round is not dealt until StartRound. Seed drives every shuffle of
// this game deterministically.
func NewGame(players []*Player, seed uint64) (*Game, error) {
	if len(players) < 2 || len(players) > 4 {
		return nil, fmt.Errorf("unsupported player count %d (want 2-4)", len(players))
	}
	return &Game{
		Players: players,
		Scores:  make([]int, len(players)),
		Phase:   PhaseGameEnd, // nothing playable until StartRound
		rng:     newRNG(seed),
	}, nil
}

// StartRound deals a fresh round: new shuffled deck (two decks for four
// players), nine cards per hand, one card flipped to start the discard
// pile, melds cleared. Scores persist across rounds.
func (g *Game) StartRound() {
	deck := NewDeck(DeckCountFor(len(g.Players)))
	shuffleWith(deck, &g.rng)

	for _, p := range g.Players {
		p.Hand = append(p.Hand[:0:0], deck[:HandSize]...)
		deck = deck[HandSize:]
	}
	g.Discard = deck[:1:1]
	g.Deck = deck[1:]
	g.Melds = nil
	g.Current = 0
	g.Turn = PhaseDraw
	g.Phase = PhasePlaying
	g.Round++
}

// checkTurn validates that seat may act right now.
func (g *Game) checkTurn(seat int, phase TurnPhase) error {
	if g.Phase != PhasePlaying {
		return ErrRoundOver
	}
	if seat != g.Current {
		return ErrNotYourTurn
	}
	if g.Turn != phase {
		return ErrWrongPhase
	}
	return nil
}

// DrawFromDeck pops the top deck card into seat's hand and enters the play
// phase. An empty deck blocks the action; the discard pile is never
// reshuffled back in (documented rule choice).
func (g *Game) DrawFromDeck(seat int) error {
	if err := g.checkTurn(seat, PhaseDraw); err != nil {
		return err
	}
	if len(g.Deck) == 0 {
		return ErrDeckEmpty
	}
	card := g.Deck[len(g.Deck)-1]
	g.Deck = g.Deck[:len(g.Deck)-1]
	g.Players[seat].Hand = append(g.Players[seat].Hand, card)
	g.Turn = PhasePlay
	return nil
}

// DrawFromDiscard takes the entire discard suffix starting at idx into
// seat's hand: the chosen card and everything discarded after it. Picking
// further back grabs more cards, which is the deliberate scarcity
// mechanic of the game.
func (g *Game) DrawFromDiscard(seat, idx int) error {
	if err := g.checkTurn(seat, PhaseDraw); err != nil {
		return err
	}
	if idx < 0 || idx >= len(g.Discard) {
		return ErrBadSelection
	}
	taken := g.Discard[idx:]
	g.Players[seat].Hand = append(g.Players[seat].Hand, taken...)
	g.Discard = g.Discard[:idx]
	g.Turn = PhasePlay
	return nil
}

// CreateMeld moves the identified hand cards into a new meld owned by
// seat. The selection must be at least three cards forming a valid meld;
// otherwise nothing changes.
func (g *Game) CreateMeld(seat int, cardIDs []string) error {
	if err := g.checkTurn(seat, PhasePlay); err != nil {
		return err
	}
	cards, err := g.cardsFromHand(seat, cardIDs)
	if err != nil {
		return err
	}
	if !IsValidMeld(cards) {
		return ErrInvalidMeld
	}
	g.removeFromHand(seat, cardIDs)
	g.Melds = append(g.Melds, Meld{Owner: seat, Cards: cards})
	g.checkRoundEnd(seat)
	return nil
}

// ExtendMeld appends one hand card to an existing meld, re-validating the
// whole meld.
func (g *Game) ExtendMeld(seat, meldIdx int, cardID string) error {
	if err := g.checkTurn(seat, PhasePlay); err != nil {
		return err
	}
	if meldIdx < 0 || meldIdx >= len(g.Melds) {
		return ErrBadSelection
	}
	cards, err := g.cardsFromHand(seat, []string{cardID})
	if err != nil {
		return err
	}
	if !CanExtendMeld(g.Melds[meldIdx].Cards, cards[0]) {
		return ErrInvalidMeld
	}
	g.removeFromHand(seat, []string{cardID})
	g.Melds[meldIdx].Cards = append(g.Melds[meldIdx].Cards, cards[0])
	g.checkRoundEnd(seat)
	return nil
}

// DiscardCard moves one hand card to the end of the discard pile. Unless
// this empties the hand and ends the round, the turn passes to the next
// player and the phase resets to draw.
func (g *Game) DiscardCard(seat int, cardID string) error {
	if err := g.checkTurn(seat, PhasePlay); err != nil {
		return err
	}
	cards, err := g.cardsFromHand(seat, []string{cardID})
	if err != nil {
		return err
	}
	g.removeFromHand(seat, []string{cardID})
	g.Discard = append(g.Discard, cards[0])
	if g.checkRoundEnd(seat) {
		return nil
	}
	g.advanceTurn()
	return nil
}

// advanceTurn rotates to the next seat and resets to the draw phase.
func (g *Game) advanceTurn() {
	g.Current = (g.Current + 1) % len(g.Players)
	g.Turn = PhaseDraw
}

// checkRoundEnd ends the round when the acting seat's hand just became
// empty: every player is scored immediately and the phase moves to
// roundEnd, or gameEnd once any cumulative score reaches the threshold.
// The normal turn-pass is bypassed.
func (g *Game) checkRoundEnd(seat int) bool {
	if len(g.Players[seat].Hand) != 0 {
		return false
	}
	for i := range g.Players {
		g.Scores[i] += g.RoundScore(i)
	}
	g.Phase = PhaseRoundEnd
	for _, s := range g.Scores {
		if s >= WinThreshold {
			g.Phase = PhaseGameEnd
			break
		}
	}
	return true
}

// RoundScore returns seat's net score for the round in progress: points in
// melds owned by seat minus points left in hand. Applied to every player
// at round end, including the one who went out.
func (g *Game) RoundScore(seat int) int {
	total := 0
	for _, m := range g.Melds {
		if m.Owner == seat {
			total += m.Points()
		}
	}
	for _, c := range g.Players[seat].Hand {
		total -= c.Points()
	}
	return total
}

// cardsFromHand resolves ids against seat's hand, preserving id order.
// A repeated id is rejected: one physical card cannot be selected twice.
func (g *Game) cardsFromHand(seat int, ids []string) ([]Card, error) {
	if len(ids) == 0 {
		return nil, ErrBadSelection
	}
	hand := g.Players[seat].Hand
	cards := make([]Card, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, ErrBadSelection
		}
		seen[id] = true
		found := false
		for _, c := range hand {
			if c.ID == id {
				cards = append(cards, c)
				found = true
				break
			}
		}
		if !found {
			return nil, ErrCardNotInHand
		}
	}
	return cards, nil
}

// removeFromHand deletes the identified cards from seat's hand. Callers
// must have resolved the ids via cardsFromHand first.
func (g *Game) removeFromHand(seat int, ids []string) {
	hand := g.Players[seat].Hand
	kept := hand[:0]
	for _, c := range hand {
		remove := false
		for _, id := range ids {
			if c.ID == id {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, c)
		}
	}
	g.Players[seat].Hand = kept
}

// MeldsOf returns the indices of melds owned by seat.
func (g *Game) MeldsOf(seat int) []int {
	var idxs []int
	for i, m := range g.Melds {
		if m.Owner == seat {
			idxs = append(idxs, i)
		}
	}
	return idxs
}
