package app

import (
	"math/rand"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/diceroom/internal/core"
	"github.com/dkeye/diceroom/internal/domain"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Registry is the process-wide map of live rooms and of each user's
// current room. It is the single authoritative user→room mapping;
// handlers never keep their own copy.
//
// The mutex covers room creation (uniqueness check plus insert),
// pointer updates and teardown. Sends to the transport never happen
// under this lock.
type Registry struct {
	mu     sync.RWMutex
	roller core.Roller
	rooms  map[domain.RoomCode]core.RoomService
	byUser map[domain.UserID]domain.RoomCode
}

func NewRegistry(roller core.Roller) *Registry {
	return &Registry{
		roller: roller,
		rooms:  make(map[domain.RoomCode]core.RoomService),
		byUser: make(map[domain.UserID]domain.RoomCode),
	}
}

// CreateRoom makes a new room with a fresh code and points the creator
// at it. The creator still has to join as a player to become a member.
func (r *Registry) CreateRoom(creator domain.UserID, maxPlayers int) core.RoomService {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Collision odds on a 36^6 space are negligible but the loop is
	// still required: codes must be unique across live rooms.
	var code domain.RoomCode
	for {
		code = generateCode()
		if _, taken := r.rooms[code]; !taken {
			break
		}
	}

	room := core.NewRoomService(&domain.Room{
		Code:       code,
		MaxPlayers: maxPlayers,
		CreatorID:  creator,
		Active:     true,
	}, r.roller)
	r.rooms[code] = room
	r.byUser[creator] = code

	log.Info().Str("module", "app.registry").Str("code", string(code)).Int64("creator", int64(creator)).Int("max_players", maxPlayers).Int("rooms", len(r.rooms)).Msg("room created")
	return room
}

// Room looks up a live room. Absence is not an error; it means
// "room not found" to the caller.
func (r *Registry) Room(code domain.RoomCode) (core.RoomService, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[code]
	return room, ok
}

// UserRoom resolves a user's current room through their pointer.
// A stale pointer (room already gone) yields nothing rather than a
// fabricated room.
func (r *Registry) UserRoom(id domain.UserID) (core.RoomService, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	code, ok := r.byUser[id]
	if !ok {
		return nil, false
	}
	room, ok := r.rooms[code]
	if !ok {
		return nil, false
	}
	return room, ok
}

// BindUser points a user at a room after a successful join.
func (r *Registry) BindUser(id domain.UserID, code domain.RoomCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[id] = code
	log.Info().Str("module", "app.registry").Int64("user", int64(id)).Str("code", string(code)).Msg("user bound to room")
}

// Leave removes the user from the room and clears their pointer.
// The last member leaving tears the room down. Idempotent; a pointer
// targeting some other room is left alone.
func (r *Registry) Leave(code domain.RoomCode, id domain.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byUser[id] == code {
		delete(r.byUser, id)
	}
	room, ok := r.rooms[code]
	if !ok {
		return
	}
	room.RemoveMember(id)
	if room.MemberCount() == 0 {
		delete(r.rooms, code)
		log.Info().Str("module", "app.registry").Str("code", string(code)).Msg("empty room deleted")
	}
}

// MemberIDs snapshots the member ids of a room at call time.
// An absent room yields an empty slice.
func (r *Registry) MemberIDs(code domain.RoomCode) []domain.UserID {
	r.mu.RLock()
	room, ok := r.rooms[code]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return room.MemberIDs()
}

// List summarizes live rooms for the ops API.
func (r *Registry) List() []core.RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(r.rooms))
	for code, room := range r.rooms {
		out = append(out, core.RoomInfo{
			Code:        code,
			MemberCount: room.MemberCount(),
			MaxPlayers:  room.Room().MaxPlayers,
		})
	}
	return out
}

func generateCode() domain.RoomCode {
	b := make([]byte, domain.RoomCodeLen)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return domain.RoomCode(b)
}
