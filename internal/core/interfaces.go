package core

import (
	"errors"

	"github.com/dkeye/diceroom/internal/dice"
	"github.com/dkeye/diceroom/internal/domain"
)

// ErrNotAMember is returned for roll attempts by non-members.
var ErrNotAMember = errors.New("not a member of the room")

// Roller produces a uniformly distributed value in [1, kind.Sides()].
// Must be safe to call from concurrent requests.
type Roller interface {
	Roll(kind dice.Kind) int
}

// SendOptions carry transport hints for one outbound message.
type SendOptions struct {
	// DiceKeyboard asks the transport to attach the quick-reply dice buttons.
	DiceKeyboard bool
	// Monospace asks for literal/code styling, e.g. a copyable command.
	Monospace bool
}

// Messenger is the outbound half of a chat transport.
// Owned by the adapter; delivery is best-effort and errors are reported
// back only so the caller can log and skip the recipient.
type Messenger interface {
	Send(chat domain.ChatID, text string, opts SendOptions) error
	RegisterCommands(cmds []Command) error
}

// Command describes a chat command for platform-side registration.
// Purely descriptive; nothing in the core depends on it.
type Command struct {
	Name        string
	Description string
}

// PlayerDTO is a read-only member view for rendering (no transport fields).
type PlayerDTO struct {
	ID       domain.UserID      `json:"id"`
	Name     string             `json:"name"`
	LastRoll *domain.RollResult `json:"last_roll,omitempty"`
}

// RoomService is the core-facing API of one room.
// It owns the membership set but never touches transport resources.
type RoomService interface {
	Room() *domain.Room
	MemberCount() int
	HasMember(id domain.UserID) bool
	Member(id domain.UserID) (PlayerDTO, bool)
	MemberIDs() []domain.UserID
	MembersSnapshot() []PlayerDTO

	// AddMember reports false when the room is at capacity.
	// Adding an existing member is a re-join: the name is overwritten
	// and the last roll cleared.
	AddMember(id domain.UserID, name string) bool
	RemoveMember(id domain.UserID)

	// RecordRoll rolls for a member and stores the result as their
	// last roll. Non-members get ErrNotAMember.
	RecordRoll(id domain.UserID, kind dice.Kind) (domain.RollResult, error)
}

// RoomInfo is a registry-level summary for APIs.
type RoomInfo struct {
	Code        domain.RoomCode `json:"code"`
	MemberCount int             `json:"member_count"`
	MaxPlayers  int             `json:"max_players"`
}
