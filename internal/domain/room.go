package domain

import "errors"

const (
	// RoomCodeLen is the fixed length of a room code.
	RoomCodeLen = 6
	// MinRoomPlayers and MaxRoomPlayers bound the player count a
	// creator may ask for.
	MinRoomPlayers = 1
	MaxRoomPlayers = 20
)

var ErrBadPlayerCount = errors.New("player count out of range")

// RoomCode is a short uppercase alphanumeric code identifying a live room.
type RoomCode string

// Room holds the immutable meta of a dice room. Membership lives in the
// room service, not here.
type Room struct {
	Code       RoomCode `json:"code"`
	MaxPlayers int      `json:"max_players"`
	CreatorID  UserID   `json:"creator_id"`
	Active     bool     `json:"active"`
}

// ValidatePlayerCount checks the requested room capacity.
func ValidatePlayerCount(n int) error {
	if n < MinRoomPlayers || n > MaxRoomPlayers {
		return ErrBadPlayerCount
	}
	return nil
}
