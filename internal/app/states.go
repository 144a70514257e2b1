package app

import (
	"sync"

	"github.com/dkeye/diceroom/internal/domain"
)

// StateKind tags what the bot last asked a user for.
type StateKind int

const (
	// StateNone means no multi-step command is in progress.
	StateNone StateKind = iota
	// StateAwaitingPlayerCount follows /create.
	StateAwaitingPlayerCount
	// StateAwaitingCreatorName follows a valid player count.
	StateAwaitingCreatorName
	// StateAwaitingJoinName follows a valid /join <code>.
	StateAwaitingJoinName
)

// UserState is the transient per-user conversational state. PendingCode
// is set only during the join flow.
type UserState struct {
	Kind        StateKind
	PendingCode domain.RoomCode
}

// States holds interaction state per user. Each user only ever touches
// their own entry (one message at a time per user), so a plain map
// under a mutex is enough; no cross-user coordination happens here.
type States struct {
	mu sync.RWMutex
	m  map[domain.UserID]UserState
}

func NewStates() *States {
	return &States{m: make(map[domain.UserID]UserState)}
}

func (s *States) Get(id domain.UserID) UserState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[id]
}

func (s *States) Set(id domain.UserID, st UserState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = st
}

// Clear resets the user to StateNone and drops any pending join code.
func (s *States) Clear(id domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
}
