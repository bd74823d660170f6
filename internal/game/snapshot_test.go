// internal/game/snapshot_test.go
package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massivemedias/Lechartrand/internal/engine"
)

func TestSnapshotIsDeepCopy(t *testing.T) {
	sess, _, _ := newTestSession(t, 2, 0, 21)
	sess.Start()

	snap := sess.Snapshot()
	snap.Deck[0].Rank = "X"
	snap.Players[0].Hand[0].Rank = "X"
	snap.Discard[0].Rank = "X"

	assert.NotEqual(t, engine.Rank("X"), sess.Game.Deck[0].Rank)
	assert.NotEqual(t, engine.Rank("X"), sess.Game.Players[0].Hand[0].Rank)
	assert.NotEqual(t, engine.Rank("X"), sess.Game.Discard[0].Rank)
}

// Empty collections must serialize as present: the receiving side treats a
// nil slice as "keep yours" and an empty one as "replace with empty".
func TestSnapshotEmptySlicesStayPresent(t *testing.T) {
	sess, _, _ := newTestSession(t, 2, 0, 21)
	sess.Start()

	raw, err := json.Marshal(sess.Snapshot())
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "[]", string(m["melds"]))
	assert.Equal(t, "[]", string(m["actionLog"]))
	assert.Contains(t, m, "scores")
	assert.Contains(t, m, "currentPlayer")
}

func TestApplySnapshotReplacesPresentFields(t *testing.T) {
	sess, _, _ := newTestSession(t, 2, 0, 23)
	sess.Start()

	cur := 1
	incoming := Snapshot{
		CurrentPlayer: &cur,
		TurnPhase:     string(engine.PhasePlay),
		Scores:        []int{120, 80},
		Message:       "Tour de Joueur",
		RoundNumber:   3,
	}
	sess.ApplySnapshot(incoming)

	assert.Equal(t, 1, sess.Game.Current)
	assert.Equal(t, engine.PhasePlay, sess.Game.Turn)
	assert.Equal(t, []int{120, 80}, sess.Game.Scores)
	assert.Equal(t, 3, sess.Game.Round)
	assert.Equal(t, "Tour de Joueur", sess.Message)
}

// Absent fields leave local state untouched; empty slices clear it.
func TestApplySnapshotAbsentVersusEmpty(t *testing.T) {
	sess, _, _ := newTestSession(t, 2, 0, 23)
	sess.Start()
	deckBefore := len(sess.Game.Deck)

	sess.ApplySnapshot(Snapshot{Discard: []engine.Card{}})

	assert.Equal(t, deckBefore, len(sess.Game.Deck), "nil deck keeps local deck")
	assert.Empty(t, sess.Game.Discard, "empty discard replaces local discard")
	assert.Equal(t, 1, sess.Game.Round, "zero round number keeps local round")
	assert.Equal(t, engine.PhaseDraw, sess.Game.Turn, "empty phase keeps local phase")
}

func TestApplySnapshotInvalidatesPendingComputerTurn(t *testing.T) {
	sess, ps, _ := newTestSession(t, 1, 1, 27)
	sess.ThinkDelay = time.Hour
	sess.Start()

	require.NoError(t, sess.HandleDraw(ps[0].ID))
	require.NoError(t, sess.HandleDiscard(ps[0].ID, sess.Game.Players[0].Hand[0].ID))

	sess.Mu.Lock()
	armedKey := sess.turnKey
	sess.Mu.Unlock()

	// A remote snapshot arrives while the computer is "thinking".
	cur := 0
	sess.ApplySnapshot(Snapshot{CurrentPlayer: &cur, TurnPhase: string(engine.PhaseDraw)})

	sess.Mu.Lock()
	moved := sess.turnKey != armedKey
	sess.Mu.Unlock()
	assert.True(t, moved, "applying a snapshot must bump the turn key")

	logLen := len(sess.ActionLog)
	sess.runComputerTurn(armedKey)
	assert.Equal(t, logLen, len(sess.ActionLog), "the superseded turn must not replay")
}

func TestApplySnapshotJSON(t *testing.T) {
	sess, _, _ := newTestSession(t, 2, 0, 29)
	sess.Start()

	cur := 1
	raw, err := json.Marshal(Snapshot{CurrentPlayer: &cur, Message: "Pose ou défausse"})
	require.NoError(t, err)
	require.NoError(t, sess.ApplySnapshotJSON(raw))
	assert.Equal(t, 1, sess.Game.Current)
	assert.Equal(t, "Pose ou défausse", sess.Message)

	require.Error(t, sess.ApplySnapshotJSON([]byte("{not json")))
	assert.Equal(t, 1, sess.Game.Current, "a malformed publish changes nothing")
}
