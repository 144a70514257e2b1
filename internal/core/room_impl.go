package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/diceroom/internal/dice"
	"github.com/dkeye/diceroom/internal/domain"
)

// roomImpl is a threadsafe in-memory room.
// The capacity invariant lives here: the player set never grows past
// Room.MaxPlayers.
type roomImpl struct {
	room   *domain.Room
	roller Roller
	mu     sync.RWMutex
	byUser map[domain.UserID]*domain.Player
}

func NewRoomService(room *domain.Room, roller Roller) RoomService {
	return &roomImpl{
		room:   room,
		roller: roller,
		byUser: make(map[domain.UserID]*domain.Player),
	}
}

func (r *roomImpl) Room() *domain.Room { return r.room }

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}

func (r *roomImpl) HasMember(id domain.UserID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byUser[id]
	return ok
}

func (r *roomImpl) AddMember(id domain.UserID, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.byUser) >= r.room.MaxPlayers {
		return false
	}
	// Overwriting an existing entry is a re-join: fresh player, no roll.
	r.byUser[id] = domain.NewPlayer(id, name)
	log.Info().Str("module", "core.room").Str("code", string(r.room.Code)).Int64("user", int64(id)).Msg("member added")
	return true
}

func (r *roomImpl) RemoveMember(id domain.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUser, id)
	log.Info().Str("module", "core.room").Str("code", string(r.room.Code)).Int64("user", int64(id)).Msg("member removed")
}

func (r *roomImpl) RecordRoll(id domain.UserID, kind dice.Kind) (domain.RollResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	player, ok := r.byUser[id]
	if !ok {
		return domain.RollResult{}, ErrNotAMember
	}
	result := domain.RollResult{
		ID:       uuid.NewString(),
		Kind:     kind,
		Value:    r.roller.Roll(kind),
		Count:    1,
		RolledAt: time.Now(),
	}
	player.LastRoll = &result
	log.Debug().Str("module", "core.room").Str("code", string(r.room.Code)).Int64("user", int64(id)).Str("kind", kind.Token()).Int("value", result.Value).Msg("roll recorded")
	return result, nil
}

func (r *roomImpl) Member(id domain.UserID) (PlayerDTO, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	player, ok := r.byUser[id]
	if !ok {
		return PlayerDTO{}, false
	}
	return toDTO(player), true
}

func (r *roomImpl) MemberIDs() []domain.UserID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.UserID, 0, len(r.byUser))
	for id := range r.byUser {
		out = append(out, id)
	}
	return out
}

func (r *roomImpl) MembersSnapshot() []PlayerDTO {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PlayerDTO, 0, len(r.byUser))
	for _, player := range r.byUser {
		out = append(out, toDTO(player))
	}
	return out
}

// toDTO copies the last roll so callers never share the stored pointer.
func toDTO(p *domain.Player) PlayerDTO {
	dto := PlayerDTO{ID: p.ID, Name: p.Name}
	if p.LastRoll != nil {
		roll := *p.LastRoll
		dto.LastRoll = &roll
	}
	return dto
}
