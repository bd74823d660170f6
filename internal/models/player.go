// Package models holds the shared data types exchanged between the game
// host, the cache layer and the database.
package models

import "github.com/google/uuid"

// Player identifies one participant in a room. JoinedAt orders the lobby
// list; Online mirrors the store's presence flag.
type Player struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	IsHost   bool      `json:"isHost,omitempty"`
	Computer bool      `json:"isAI,omitempty"`
	Online   bool      `json:"online"`
	JoinedAt int64     `json:"joinedAt,omitempty"`
}

// RoomStatus values stored on a room record.
const (
	RoomStatusLobby   = "lobby"
	RoomStatusPlaying = "playing"
)
