package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dkeye/diceroom/internal/dice"
	"github.com/dkeye/diceroom/internal/domain"
)

type fixedRoller struct{ v int }

func (r fixedRoller) Roll(dice.Kind) int { return r.v }

func newTestRoom(maxPlayers int) RoomService {
	return NewRoomService(&domain.Room{
		Code:       "ABC123",
		MaxPlayers: maxPlayers,
		CreatorID:  1,
		Active:     true,
	}, fixedRoller{v: 4})
}

func TestAddMemberRespectsCapacity(t *testing.T) {
	const max = 3
	room := newTestRoom(max)

	for i := 1; i <= max; i++ {
		if !room.AddMember(domain.UserID(i), fmt.Sprintf("player%d", i)) {
			t.Fatalf("add %d of %d failed", i, max)
		}
	}
	if room.AddMember(domain.UserID(max+1), "late") {
		t.Fatal("add beyond capacity succeeded")
	}
	if got := room.MemberCount(); got != max {
		t.Fatalf("member count = %d, want %d", got, max)
	}
}

func TestAddMemberRejoinOverwritesNameAndClearsRoll(t *testing.T) {
	room := newTestRoom(2)
	if !room.AddMember(1, "Alice") {
		t.Fatal("first add failed")
	}
	if _, err := room.RecordRoll(1, dice.D6); err != nil {
		t.Fatalf("roll failed: %v", err)
	}

	if !room.AddMember(1, "Alicia") {
		t.Fatal("re-join failed")
	}
	if got := room.MemberCount(); got != 1 {
		t.Fatalf("member count after re-join = %d, want 1", got)
	}
	member, ok := room.Member(1)
	if !ok {
		t.Fatal("member lookup failed after re-join")
	}
	if member.Name != "Alicia" {
		t.Fatalf("name = %q, want %q", member.Name, "Alicia")
	}
	if member.LastRoll != nil {
		t.Fatalf("last roll survived re-join: %+v", member.LastRoll)
	}
}

func TestRecordRollNonMember(t *testing.T) {
	room := newTestRoom(2)
	_, err := room.RecordRoll(99, dice.D20)
	if !errors.Is(err, ErrNotAMember) {
		t.Fatalf("error = %v, want %v", err, ErrNotAMember)
	}
}

func TestRecordRollStoresLastRoll(t *testing.T) {
	room := newTestRoom(2)
	room.AddMember(1, "Alice")

	result, err := room.RecordRoll(1, dice.D6)
	if err != nil {
		t.Fatalf("roll failed: %v", err)
	}
	if result.Value != 4 {
		t.Fatalf("value = %d, want 4", result.Value)
	}
	if result.Kind != dice.D6 || result.Count != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.ID == "" {
		t.Fatal("roll id not set")
	}

	member, _ := room.Member(1)
	if member.LastRoll == nil || member.LastRoll.ID != result.ID {
		t.Fatalf("last roll not stored: %+v", member.LastRoll)
	}

	// A second roll replaces the slot, never appends.
	second, err := room.RecordRoll(1, dice.D20)
	if err != nil {
		t.Fatalf("second roll failed: %v", err)
	}
	member, _ = room.Member(1)
	if member.LastRoll.ID != second.ID || member.LastRoll.Kind != dice.D20 {
		t.Fatalf("last roll not replaced: %+v", member.LastRoll)
	}
}

func TestRemoveMemberIdempotent(t *testing.T) {
	room := newTestRoom(2)
	room.AddMember(1, "Alice")
	room.RemoveMember(1)
	room.RemoveMember(1)
	if got := room.MemberCount(); got != 0 {
		t.Fatalf("member count = %d, want 0", got)
	}
}

func TestMembersSnapshotCopiesRolls(t *testing.T) {
	room := newTestRoom(2)
	room.AddMember(1, "Alice")
	if _, err := room.RecordRoll(1, dice.D6); err != nil {
		t.Fatalf("roll failed: %v", err)
	}

	snap := room.MembersSnapshot()
	if len(snap) != 1 || snap[0].LastRoll == nil {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	snap[0].LastRoll.Value = -1

	member, _ := room.Member(1)
	if member.LastRoll.Value == -1 {
		t.Fatal("snapshot mutation leaked into the room")
	}
}
