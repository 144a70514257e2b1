package app

import (
	"regexp"
	"sync"
	"testing"

	"github.com/dkeye/diceroom/internal/dice"
	"github.com/dkeye/diceroom/internal/domain"
)

type fixedRoller struct{ v int }

func (r fixedRoller) Roll(dice.Kind) int { return r.v }

var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestCreateRoomCodeShape(t *testing.T) {
	reg := NewRegistry(fixedRoller{v: 1})
	room := reg.CreateRoom(1, 4)

	code := room.Room().Code
	if !codePattern.MatchString(string(code)) {
		t.Fatalf("code %q does not match [A-Z0-9]{6}", code)
	}
	if !room.Room().Active {
		t.Fatal("new room not active")
	}
	if got, ok := reg.Room(code); !ok || got != room {
		t.Fatal("created room not retrievable by code")
	}
}

func TestCreateRoomBindsCreatorPointer(t *testing.T) {
	reg := NewRegistry(fixedRoller{v: 1})
	room := reg.CreateRoom(42, 2)

	got, ok := reg.UserRoom(42)
	if !ok || got != room {
		t.Fatal("creator pointer not set to the new room")
	}
}

func TestCreateRoomCodesUniqueUnderConcurrency(t *testing.T) {
	reg := NewRegistry(fixedRoller{v: 1})

	const n = 50
	var wg sync.WaitGroup
	codes := make(chan domain.RoomCode, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(creator int) {
			defer wg.Done()
			room := reg.CreateRoom(domain.UserID(creator), 5)
			codes <- room.Room().Code
		}(i)
	}
	wg.Wait()
	close(codes)

	seen := make(map[domain.RoomCode]bool)
	for code := range codes {
		if seen[code] {
			t.Fatalf("duplicate room code %q", code)
		}
		seen[code] = true
	}
	if len(reg.List()) != n {
		t.Fatalf("registry lists %d rooms, want %d", len(reg.List()), n)
	}
}

func TestLeaveLastMemberDeletesRoom(t *testing.T) {
	reg := NewRegistry(fixedRoller{v: 1})
	room := reg.CreateRoom(1, 2)
	code := room.Room().Code
	room.AddMember(1, "Alice")

	reg.Leave(code, 1)

	if _, ok := reg.Room(code); ok {
		t.Fatal("empty room still in registry")
	}
	if _, ok := reg.UserRoom(1); ok {
		t.Fatal("pointer survived leaving")
	}
}

func TestLeaveKeepsRoomWithRemainingMembers(t *testing.T) {
	reg := NewRegistry(fixedRoller{v: 1})
	room := reg.CreateRoom(1, 3)
	code := room.Room().Code
	room.AddMember(1, "Alice")
	room.AddMember(2, "Bob")
	reg.BindUser(2, code)

	reg.Leave(code, 1)

	got, ok := reg.Room(code)
	if !ok {
		t.Fatal("room deleted while a member remained")
	}
	if got.MemberCount() != 1 || !got.HasMember(2) {
		t.Fatalf("unexpected remaining members: %v", got.MemberIDs())
	}
}

func TestLeaveIsIdempotent(t *testing.T) {
	reg := NewRegistry(fixedRoller{v: 1})
	room := reg.CreateRoom(1, 2)
	code := room.Room().Code
	room.AddMember(1, "Alice")

	// A user who never joined; nothing should change.
	reg.Leave(code, 99)
	if got, ok := reg.Room(code); !ok || got.MemberCount() != 1 {
		t.Fatal("leave of a non-member mutated the room")
	}

	// And a vanished room is a no-op too.
	reg.Leave("NOPE42", 1)
}

func TestLeaveOtherRoomKeepsPointer(t *testing.T) {
	reg := NewRegistry(fixedRoller{v: 1})
	other := reg.CreateRoom(1, 2)
	other.AddMember(1, "Alice")
	own := reg.CreateRoom(2, 2)
	own.AddMember(2, "Bob")

	// User 2 never joined the other room; leaving it must not clear
	// their pointer to their own.
	reg.Leave(other.Room().Code, 2)

	if got, ok := reg.UserRoom(2); !ok || got != own {
		t.Fatal("pointer to the user's own room was cleared")
	}
	if got, ok := reg.Room(other.Room().Code); !ok || got.MemberCount() != 1 {
		t.Fatal("leave of a non-member mutated the other room")
	}
}

func TestUserRoomStalePointer(t *testing.T) {
	reg := NewRegistry(fixedRoller{v: 1})
	room := reg.CreateRoom(1, 2)
	code := room.Room().Code
	room.AddMember(1, "Alice")
	reg.BindUser(2, code) // user 2 points at the room but the room dies

	reg.Leave(code, 1)

	if _, ok := reg.UserRoom(2); ok {
		t.Fatal("stale pointer resolved to a dead room")
	}
}

func TestMemberIDsAbsentRoom(t *testing.T) {
	reg := NewRegistry(fixedRoller{v: 1})
	if ids := reg.MemberIDs("ZZZZZZ"); len(ids) != 0 {
		t.Fatalf("expected no ids, got %v", ids)
	}
}
