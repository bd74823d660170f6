// internal/game/snapshot.go
package game

import (
	"encoding/json"

	"github.com/massivemedias/Lechartrand/internal/engine"
)

// LogEntry is one line of the synchronized action log. Icons mark the
// action kind: "+" draw, "*" meld, "-" discard.
type LogEntry struct {
	Player string `json:"player"`
	Action string `json:"action"`
	Icon   string `json:"icon"`
}

// Snapshot is the full game state as published to the store after every
// mutating action. Synchronization is whole-state, last-writer-wins: the
// receiver replaces each field that is present and keeps local values for
// absent ones. There is no field-level merge and no conflict resolution;
// the later publish silently wins.
//
// Presence semantics: nil slices, nil CurrentPlayer, empty strings and a
// zero RoundNumber mean "absent". Publishers emit every field (empty
// slices included) so a full snapshot always replaces everything.
type Snapshot struct {
	Players       []engine.Player `json:"players,omitempty"`
	Deck          []engine.Card   `json:"deck"`
	Discard       []engine.Card   `json:"discard"`
	Melds         []engine.Meld   `json:"melds"`
	Scores        []int           `json:"scores"`
	CurrentPlayer *int            `json:"currentPlayer,omitempty"`
	TurnPhase     string          `json:"turnPhase,omitempty"`
	GamePhase     string          `json:"gamePhase,omitempty"`
	ActionLog     []LogEntry      `json:"actionLog"`
	Message       string          `json:"message,omitempty"`
	RoundNumber   int             `json:"roundNumber,omitempty"`
}

// snapshotLocked captures the complete current state. Assumes the session
// lock is held.
func (s *Session) snapshotLocked() Snapshot {
	g := s.Game
	snap := Snapshot{
		Deck:        append([]engine.Card{}, g.Deck...),
		Discard:     append([]engine.Card{}, g.Discard...),
		Melds:       make([]engine.Meld, 0, len(g.Melds)),
		Scores:      append([]int{}, g.Scores...),
		TurnPhase:   string(g.Turn),
		GamePhase:   string(g.Phase),
		ActionLog:   append([]LogEntry{}, s.ActionLog...),
		Message:     s.Message,
		RoundNumber: g.Round,
	}
	cur := g.Current
	snap.CurrentPlayer = &cur
	for _, m := range g.Melds {
		snap.Melds = append(snap.Melds, engine.Meld{
			Owner: m.Owner,
			Cards: append([]engine.Card{}, m.Cards...),
		})
	}
	snap.Players = make([]engine.Player, len(g.Players))
	for i, p := range g.Players {
		snap.Players[i] = engine.Player{
			ID:       p.ID,
			Name:     p.Name,
			Hand:     append([]engine.Card{}, p.Hand...),
			Computer: p.Computer,
		}
	}
	return snap
}

// Snapshot returns a copy of the current state for publication.
func (s *Session) Snapshot() Snapshot {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.snapshotLocked()
}

// ApplySnapshot overwrites local state with every field present in the
// incoming snapshot. This is the receiving half of the last-writer-wins
// contract: a snapshot arriving mid-action simply wins. Any pending
// computer-turn task is invalidated first, so a stale turn never replays.
func (s *Session) ApplySnapshot(snap Snapshot) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.turnKey++

	g := s.Game
	if snap.Players != nil {
		players := make([]*engine.Player, len(snap.Players))
		for i := range snap.Players {
			p := snap.Players[i]
			players[i] = &p
		}
		g.Players = players
	}
	if snap.Deck != nil {
		g.Deck = snap.Deck
	}
	if snap.Discard != nil {
		g.Discard = snap.Discard
	}
	if snap.Melds != nil {
		g.Melds = snap.Melds
	}
	if snap.Scores != nil {
		g.Scores = snap.Scores
	}
	if snap.CurrentPlayer != nil {
		g.Current = *snap.CurrentPlayer
	}
	if snap.TurnPhase != "" {
		g.Turn = engine.TurnPhase(snap.TurnPhase)
	}
	if snap.GamePhase != "" {
		g.Phase = engine.GamePhase(snap.GamePhase)
	}
	if snap.ActionLog != nil {
		s.ActionLog = snap.ActionLog
	}
	if snap.Message != "" {
		s.Message = snap.Message
	}
	if snap.RoundNumber != 0 {
		g.Round = snap.RoundNumber
	}

	s.scheduleComputerTurnLocked()
}

// ApplySnapshotJSON decodes raw snapshot bytes from the store and applies
// them. Malformed payloads are reported and ignored; local state is never
// corrupted by a bad remote publish.
func (s *Session) ApplySnapshotJSON(raw []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return err
	}
	s.ApplySnapshot(snap)
	return nil
}
