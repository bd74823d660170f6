// Package database persists game snapshots and round results to Postgres.
// Persistence is best-effort bookkeeping: a nil DB disables it entirely
// and callers never depend on it for game correctness.
package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// DB is the shared connection pool. Nil when persistence is disabled.
var DB *pgxpool.Pool

// Connect opens the pool and verifies connectivity.
func Connect(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return err
	}
	DB = pool
	logrus.Info("connected to postgres")
	return nil
}

// Close releases the pool.
func Close() {
	if DB != nil {
		DB.Close()
		DB = nil
	}
}

// UpsertInitialGameState saves the deal-time snapshot of a game for replay
// and audit. Called asynchronously; errors are logged, not returned.
func UpsertInitialGameState(gameID uuid.UUID, state any) {
	if DB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	raw, err := json.Marshal(state)
	if err != nil {
		logrus.WithError(err).WithField("game", gameID).Error("marshal initial game state")
		return
	}
	_, err = DB.Exec(ctx, `
		INSERT INTO game_initial_states (game_id, state, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (game_id) DO UPDATE SET state = EXCLUDED.state`,
		gameID, raw)
	if err != nil {
		logrus.WithError(err).WithField("game", gameID).Error("store initial game state")
	}
}

// StoreRoundResult records the cumulative scores at a round boundary.
// Called asynchronously; errors are logged, not returned.
func StoreRoundResult(gameID uuid.UUID, round int, scores []int, phase string) {
	if DB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	raw, err := json.Marshal(scores)
	if err != nil {
		logrus.WithError(err).WithField("game", gameID).Error("marshal round scores")
		return
	}
	_, err = DB.Exec(ctx, `
		INSERT INTO game_rounds (game_id, round, scores, phase, finished_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (game_id, round) DO UPDATE SET scores = EXCLUDED.scores, phase = EXCLUDED.phase`,
		gameID, round, raw, phase)
	if err != nil {
		logrus.WithError(err).WithField("game", gameID).WithField("round", round).Error("store round result")
	}
}
