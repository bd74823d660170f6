// internal/game/session.go
package game

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/massivemedias/Lechartrand/internal/database"
	"github.com/massivemedias/Lechartrand/internal/engine"
	"github.com/massivemedias/Lechartrand/internal/models"
)

// Mode selects how a session is driven.
type Mode string

const (
	ModeSolo   Mode = "solo"   // local play against computer opponents
	ModeOnline Mode = "online" // state synchronized through the store
)

// DefaultThinkDelay paces computer turns. Pure presentation: correctness
// never depends on it.
const DefaultThinkDelay = 800 * time.Millisecond

// Session hosts one game: it owns the authoritative engine state, maps
// player UUIDs to seats, runs computer opponents on a think-delay timer
// and publishes a full snapshot after every mutation. All access is
// serialized through Mu.
type Session struct {
	ID       uuid.UUID
	RoomCode string
	Mode     Mode

	Mu   sync.Mutex
	Game *engine.Game

	Players []*models.Player
	seats   map[uuid.UUID]int

	ActionLog []LogEntry
	Message   string

	ThinkDelay time.Duration

	// turnKey increments on every state change. A scheduled computer turn
	// captures the key at scheduling time and aborts if it moved, so a
	// stale turn never replays after a faster state change.
	turnKey int
	aiTimer *time.Timer
	closed  bool

	// PublishFn, when set, receives the full snapshot after every
	// successful mutation. Online hosts wire it to Store.PublishState.
	PublishFn func(Snapshot)
	// RecordFn, when set, receives an audit record per applied action.
	RecordFn func(actor uuid.UUID, actionType string, payload map[string]any)

	actionIndex int
}

// NewSession builds a session for the given players. Seat order follows
// the slice order; seed drives all shuffles deterministically.
func NewSession(players []*models.Player, seed uint64, mode Mode) (*Session, error) {
	eps := make([]*engine.Player, len(players))
	seats := make(map[uuid.UUID]int, len(players))
	for i, p := range players {
		eps[i] = &engine.Player{ID: p.ID.String(), Name: p.Name, Computer: p.Computer}
		seats[p.ID] = i
	}
	g, err := engine.NewGame(eps, seed)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:         uuid.New(),
		Mode:       mode,
		Game:       g,
		Players:    players,
		seats:      seats,
		ThinkDelay: DefaultThinkDelay,
	}, nil
}

// Start deals the first round and kicks off play.
func (s *Session) Start() {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.startRoundLocked()
}

// StartNextRound deals the next round after a round end. A no-op unless
// the previous round is over.
func (s *Session) StartNextRound() error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.Game.Phase != engine.PhaseRoundEnd {
		return engine.ErrWrongPhase
	}
	s.startRoundLocked()
	return nil
}

// startRoundLocked deals and announces a round. Assumes lock is held.
func (s *Session) startRoundLocked() {
	s.Game.StartRound()
	s.turnKey++
	s.Message = "Tour de " + s.Game.Players[s.Game.Current].Name
	s.logAction(uuid.Nil, "round_start", map[string]any{"round": s.Game.Round})

	if database.DB != nil {
		go database.UpsertInitialGameState(s.ID, s.snapshotLocked())
	}

	s.publishLocked()
	s.scheduleComputerTurnLocked()
}

// Close stops any pending computer turn. Cancellation mid-delay is always
// clean: no partial move has happened yet.
func (s *Session) Close() {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.closed = true
	if s.aiTimer != nil {
		s.aiTimer.Stop()
		s.aiTimer = nil
	}
}

// seatOf resolves a player UUID to its seat index.
func (s *Session) seatOf(playerID uuid.UUID) (int, error) {
	seat, ok := s.seats[playerID]
	if !ok {
		return 0, fmt.Errorf("player %s is not in this game", playerID)
	}
	return seat, nil
}

// messageFor maps a rejection to the user-facing message shown in place of
// a state change.
func messageFor(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidMeld):
		return "Combinaison invalide!"
	case errors.Is(err, engine.ErrNotYourTurn):
		return "Ce n'est pas ton tour"
	case errors.Is(err, engine.ErrWrongPhase):
		return "Action impossible dans cette phase"
	case errors.Is(err, engine.ErrDeckEmpty):
		return "Pioche vide"
	case errors.Is(err, engine.ErrRoundOver):
		return "La manche est terminée"
	case errors.Is(err, engine.ErrCardNotInHand), errors.Is(err, engine.ErrBadSelection):
		return "Sélection invalide"
	}
	return "Action refusée"
}

// HandleDraw draws the top deck card for playerID.
func (s *Session) HandleDraw(playerID uuid.UUID) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	seat, err := s.seatOf(playerID)
	if err != nil {
		return err
	}
	if err := s.Game.DrawFromDeck(seat); err != nil {
		s.Message = messageFor(err)
		return err
	}
	s.afterAction(playerID, LogEntry{Player: s.name(seat), Action: "pioche", Icon: "+"}, "Pose ou défausse")
	return nil
}

// HandleDrawDiscard takes the discard suffix starting at idx.
func (s *Session) HandleDrawDiscard(playerID uuid.UUID, idx int) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	seat, err := s.seatOf(playerID)
	if err != nil {
		return err
	}
	taken := len(s.Game.Discard) - idx
	if err := s.Game.DrawFromDiscard(seat, idx); err != nil {
		s.Message = messageFor(err)
		return err
	}
	action := fmt.Sprintf("+%d", taken)
	if taken == 1 {
		action = s.Game.Players[seat].Hand[len(s.Game.Players[seat].Hand)-1].String()
	}
	s.afterAction(playerID, LogEntry{Player: s.name(seat), Action: action, Icon: "+"}, "Pose ou défausse")
	return nil
}

// HandleCreateMeld lays down the selected hand cards as a new meld.
func (s *Session) HandleCreateMeld(playerID uuid.UUID, cardIDs []string) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	seat, err := s.seatOf(playerID)
	if err != nil {
		return err
	}
	if err := s.Game.CreateMeld(seat, cardIDs); err != nil {
		s.Message = messageFor(err)
		return err
	}
	s.afterAction(playerID, LogEntry{Player: s.name(seat), Action: "pose", Icon: "*"}, "")
	return nil
}

// HandleExtendMeld appends one card to an existing meld.
func (s *Session) HandleExtendMeld(playerID uuid.UUID, meldIdx int, cardID string) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	seat, err := s.seatOf(playerID)
	if err != nil {
		return err
	}
	var rank string
	for _, c := range s.Game.Players[seat].Hand {
		if c.ID == cardID {
			rank = string(c.Rank)
			break
		}
	}
	if err := s.Game.ExtendMeld(seat, meldIdx, cardID); err != nil {
		s.Message = messageFor(err)
		return err
	}
	s.afterAction(playerID, LogEntry{Player: s.name(seat), Action: "+" + rank, Icon: "+"}, "")
	return nil
}

// HandleDiscard discards one card and, unless the round just ended, passes
// the turn.
func (s *Session) HandleDiscard(playerID uuid.UUID, cardID string) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	seat, err := s.seatOf(playerID)
	if err != nil {
		return err
	}
	var discarded string
	for _, c := range s.Game.Players[seat].Hand {
		if c.ID == cardID {
			discarded = c.String()
			break
		}
	}
	if err := s.Game.DiscardCard(seat, cardID); err != nil {
		s.Message = messageFor(err)
		return err
	}
	s.afterAction(playerID, LogEntry{Player: s.name(seat), Action: discarded, Icon: "-"}, "")
	return nil
}

// afterAction finishes a successful mutation: log, message, round-end
// bookkeeping, publish and computer scheduling. Assumes lock is held.
func (s *Session) afterAction(actor uuid.UUID, entry LogEntry, message string) {
	s.turnKey++
	s.ActionLog = append(s.ActionLog, entry)
	s.logAction(actor, entry.Action, map[string]any{"icon": entry.Icon})

	switch s.Game.Phase {
	case engine.PhaseRoundEnd:
		s.Message = fmt.Sprintf("Fin de la manche %d", s.Game.Round)
		s.persistRoundLocked()
	case engine.PhaseGameEnd:
		s.Message = "Partie terminée!"
		s.persistRoundLocked()
	default:
		if message != "" {
			s.Message = message
		} else {
			s.Message = "Tour de " + s.Game.Players[s.Game.Current].Name
		}
	}

	s.publishLocked()
	s.scheduleComputerTurnLocked()
}

// persistRoundLocked stores the round outcome, fire and forget.
func (s *Session) persistRoundLocked() {
	if database.DB == nil {
		return
	}
	scores := append([]int{}, s.Game.Scores...)
	go database.StoreRoundResult(s.ID, s.Game.Round, scores, string(s.Game.Phase))
}

func (s *Session) name(seat int) string { return s.Game.Players[seat].Name }

// publishLocked hands the full snapshot to the publish hook, if any.
// Assumes lock is held.
func (s *Session) publishLocked() {
	if s.PublishFn == nil {
		return
	}
	s.PublishFn(s.snapshotLocked())
}

// logAction forwards an audit record to the optional recorder, mirroring
// every applied action with a sequential index.
func (s *Session) logAction(actor uuid.UUID, actionType string, payload map[string]any) {
	s.actionIndex++
	if s.RecordFn == nil {
		return
	}
	if payload == nil {
		payload = map[string]any{}
	}
	payload["actionIndex"] = s.actionIndex
	s.RecordFn(actor, actionType, payload)
}

// scheduleComputerTurnLocked arms the think-delay timer when the current
// player is computer-controlled. Only solo sessions run opponents locally;
// online sessions receive opponents' moves as snapshots. Assumes lock is
// held.
func (s *Session) scheduleComputerTurnLocked() {
	if s.Mode != ModeSolo || s.closed || s.Game.Phase != engine.PhasePlaying {
		return
	}
	if !s.Game.Players[s.Game.Current].Computer {
		return
	}
	if s.aiTimer != nil {
		s.aiTimer.Stop()
	}
	key := s.turnKey
	s.aiTimer = time.AfterFunc(s.ThinkDelay, func() {
		s.runComputerTurn(key)
	})
}

// runComputerTurn executes one scheduled computer turn. The captured key
// guards against state having moved during the delay.
func (s *Session) runComputerTurn(key int) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.closed || key != s.turnKey || s.Game.Phase != engine.PhasePlaying {
		return
	}
	seat := s.Game.Current
	p := s.Game.Players[seat]
	if !p.Computer {
		return
	}

	turn, err := s.Game.PlayComputerTurn(seat)
	if err != nil {
		log.Printf("session %s: computer turn for seat %d failed: %v", s.ID, seat, err)
		return
	}
	s.turnKey++

	if turn.Drew {
		s.ActionLog = append(s.ActionLog, LogEntry{Player: p.Name, Action: "pioche", Icon: "+"})
	}
	for range turn.Melds {
		s.ActionLog = append(s.ActionLog, LogEntry{Player: p.Name, Action: "pose", Icon: "*"})
	}
	if turn.Discarded != nil {
		s.ActionLog = append(s.ActionLog, LogEntry{Player: p.Name, Action: turn.Discarded.String(), Icon: "-"})
	}
	s.logAction(uuid.Nil, "computer_turn", map[string]any{"seat": seat, "melds": len(turn.Melds)})

	switch s.Game.Phase {
	case engine.PhaseRoundEnd:
		s.Message = fmt.Sprintf("Fin de la manche %d", s.Game.Round)
		s.persistRoundLocked()
	case engine.PhaseGameEnd:
		s.Message = "Partie terminée!"
		s.persistRoundLocked()
	default:
		s.Message = "Tour de " + s.Game.Players[s.Game.Current].Name
	}

	s.publishLocked()
	s.scheduleComputerTurnLocked()
}
