// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/dkeye/diceroom/internal/dice"
)

const (
	// MaxJoinNameLen bounds names entered while joining a room.
	MaxJoinNameLen = 50
	// MaxCreateNameLen bounds names entered in the create flow.
	MaxCreateNameLen = 30
)

var ErrNameEmpty = errors.New("name empty")

type (
	// UserID is the platform-supplied user identity.
	UserID int64
	// ChatID addresses an outbound message. For private chats it
	// equals the user id.
	ChatID int64
)

// RollResult is the last roll a player made. One slot per player,
// overwritten on every roll.
type RollResult struct {
	ID       string    `json:"id"`
	Kind     dice.Kind `json:"kind"`
	Value    int       `json:"value"`
	Count    int       `json:"count"`
	RolledAt time.Time `json:"rolled_at"`
}

// Player is a member of one room.
type Player struct {
	ID       UserID      `json:"id"`
	Name     string      `json:"name"`
	LastRoll *RollResult `json:"last_roll,omitempty"`
}

// NewPlayer avoids raw literals in adapters and keeps construction obvious.
func NewPlayer(id UserID, name string) *Player {
	return &Player{ID: id, Name: name}
}

// CleanName trims the raw input and truncates it to max runes.
// Empty input (after trimming) is rejected, not truncated.
func CleanName(raw string, max int) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrNameEmpty
	}
	if r := []rune(name); len(r) > max {
		name = string(r[:max])
	}
	return name, nil
}
