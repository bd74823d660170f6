// Package cache implements the real-time key-value store collaborator on
// Redis: room records, player membership, full-state snapshot publishing
// and the action-record queue. Every operation is remote and may fail; the
// game host treats failures as messages, never as state corruption.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/massivemedias/Lechartrand/internal/models"
)

// Client wraps the Redis connection behind the store contract.
type Client struct {
	rdb *redis.Client
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, addr, password string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	logrus.WithField("addr", addr).Info("connected to redis")
	return &Client{rdb: rdb}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error { return c.rdb.Close() }

func roomKey(code string) string    { return "rooms:" + code }
func playersKey(code string) string { return "rooms:" + code + ":players" }
func stateKey(code string) string   { return "rooms:" + code + ":state" }
func stateChannel(code string) string { return "rooms:" + code + ":events" }

// CreateRoom registers a room in lobby status with its host as the first
// member.
func (c *Client) CreateRoom(ctx context.Context, code string, host models.Player) error {
	host.IsHost = true
	host.Online = true
	host.JoinedAt = time.Now().UnixMilli()

	if err := c.rdb.HSet(ctx, roomKey(code),
		"status", models.RoomStatusLobby,
		"host", host.ID.String(),
		"createdAt", host.JoinedAt,
	).Err(); err != nil {
		return fmt.Errorf("create room %s: %w", code, err)
	}
	return c.JoinRoom(ctx, code, host)
}

// JoinRoom adds a player to the room's member hash.
func (c *Client) JoinRoom(ctx context.Context, code string, p models.Player) error {
	if p.JoinedAt == 0 {
		p.JoinedAt = time.Now().UnixMilli()
	}
	p.Online = true
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := c.rdb.HSet(ctx, playersKey(code), p.ID.String(), raw).Err(); err != nil {
		return fmt.Errorf("join room %s: %w", code, err)
	}
	return nil
}

// RoomExists reports whether the room record is present.
func (c *Client) RoomExists(ctx context.Context, code string) (bool, error) {
	n, err := c.rdb.Exists(ctx, roomKey(code)).Result()
	if err != nil {
		return false, fmt.Errorf("room exists %s: %w", code, err)
	}
	return n > 0, nil
}

// RemovePlayer drops a player from the room's member hash.
func (c *Client) RemovePlayer(ctx context.Context, code string, playerID uuid.UUID) error {
	if err := c.rdb.HDel(ctx, playersKey(code), playerID.String()).Err(); err != nil {
		return fmt.Errorf("remove player from %s: %w", code, err)
	}
	return nil
}

// DeleteRoom removes the room record, its members and its state.
func (c *Client) DeleteRoom(ctx context.Context, code string) error {
	if err := c.rdb.Del(ctx, roomKey(code), playersKey(code), stateKey(code)).Err(); err != nil {
		return fmt.Errorf("delete room %s: %w", code, err)
	}
	return nil
}

// SetRoomStatus moves the room between lobby and playing.
func (c *Client) SetRoomStatus(ctx context.Context, code, status string) error {
	if err := c.rdb.HSet(ctx, roomKey(code), "status", status).Err(); err != nil {
		return fmt.Errorf("set room %s status: %w", code, err)
	}
	return nil
}

// Players lists the room's members ordered by join time.
func (c *Client) Players(ctx context.Context, code string) ([]models.Player, error) {
	raw, err := c.rdb.HGetAll(ctx, playersKey(code)).Result()
	if err != nil {
		return nil, fmt.Errorf("list players of %s: %w", code, err)
	}
	players := make([]models.Player, 0, len(raw))
	for id, v := range raw {
		var p models.Player
		if err := json.Unmarshal([]byte(v), &p); err != nil {
			logrus.WithError(err).WithField("player", id).Warn("skipping malformed player record")
			continue
		}
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].JoinedAt < players[j].JoinedAt })
	return players, nil
}

// PublishState stores the snapshot verbatim under the room's state key and
// fans it out on the room channel. Whole-state replacement: the last
// publish wins.
func (c *Client) PublishState(ctx context.Context, code string, state any) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, stateKey(code), raw, 0).Err(); err != nil {
		return fmt.Errorf("publish state for %s: %w", code, err)
	}
	if err := c.rdb.Publish(ctx, stateChannel(code), raw).Err(); err != nil {
		return fmt.Errorf("fan out state for %s: %w", code, err)
	}
	return nil
}

// SubscribeState delivers each published snapshot to fn until the returned
// cancel func runs. The current stored state, if any, is delivered first
// so late joiners converge immediately.
func (c *Client) SubscribeState(ctx context.Context, code string, fn func(raw []byte)) (func(), error) {
	sub := c.rdb.Subscribe(ctx, stateChannel(code))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe state for %s: %w", code, err)
	}

	if cur, err := c.rdb.Get(ctx, stateKey(code)).Bytes(); err == nil && len(cur) > 0 {
		fn(cur)
	}

	go func() {
		for msg := range sub.Channel() {
			fn([]byte(msg.Payload))
		}
	}()
	return func() {
		if err := sub.Close(); err != nil {
			logrus.WithError(err).Debug("closing state subscription")
		}
	}, nil
}
