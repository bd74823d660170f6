package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// actionQueueKey is the list consumed by the historian worker.
const actionQueueKey = "game_actions"

// GameActionRecord is one audit entry for a game action, ordered by
// ActionIndex within a game.
type GameActionRecord struct {
	GameID        uuid.UUID      `json:"gameId"`
	ActionIndex   int            `json:"actionIndex"`
	ActorUserID   uuid.UUID      `json:"actorUserId"`
	ActionType    string         `json:"actionType"`
	ActionPayload map[string]any `json:"actionPayload,omitempty"`
	Timestamp     int64          `json:"timestamp"`
}

// PublishGameAction pushes an action record onto the historian queue.
func (c *Client) PublishGameAction(ctx context.Context, rec GameActionRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := c.rdb.LPush(ctx, actionQueueKey, raw).Err(); err != nil {
		return fmt.Errorf("publish action record: %w", err)
	}
	return nil
}
