// internal/game/store.go
package game

import (
	"context"
	"math/rand"
	"strconv"

	"github.com/google/uuid"
	"github.com/massivemedias/Lechartrand/internal/models"
)

// Store is the external real-time key-value collaborator. The engine side
// treats every call as an opaque, possibly-failing remote operation: a
// failed call surfaces as an error and never corrupts local game state.
// Solo play works with no store at all.
type Store interface {
	// CreateRoom registers a room keyed by code with its host as the first
	// member, in lobby status.
	CreateRoom(ctx context.Context, code string, host models.Player) error
	// JoinRoom adds a player to an existing room.
	JoinRoom(ctx context.Context, code string, p models.Player) error
	// RoomExists reports whether a room record is present under code.
	RoomExists(ctx context.Context, code string) (bool, error)
	// RemovePlayer drops a player from the room's member set.
	RemovePlayer(ctx context.Context, code string, playerID uuid.UUID) error
	// DeleteRoom removes the room record and everything under it.
	DeleteRoom(ctx context.Context, code string) error
	// SetRoomStatus moves the room between lobby and playing.
	SetRoomStatus(ctx context.Context, code, status string) error
	// Players lists the room's members ordered by join time.
	Players(ctx context.Context, code string) ([]models.Player, error)
	// PublishState stores the full state snapshot verbatim and fans it out
	// to subscribers. Last publish wins.
	PublishState(ctx context.Context, code string, state any) error
	// SubscribeState invokes fn with each raw published snapshot until the
	// returned cancel func is called.
	SubscribeState(ctx context.Context, code string, fn func(raw []byte)) (func(), error)
}

// NewRoomCode returns a short numeric room code in [100, 999]. The code is
// only a lookup key into the store; nothing validates it beyond length.
func NewRoomCode() string {
	return strconv.Itoa(100 + rand.Intn(900))
}
