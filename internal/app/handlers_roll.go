package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/diceroom/internal/core"
	"github.com/dkeye/diceroom/internal/dice"
	"github.com/dkeye/diceroom/internal/domain"
)

// handleRoll rolls a die for the caller. Inside a room the result is
// recorded on their player and broadcast to every member; outside a
// room the roll is private and nothing is persisted.
func (b *Bot) handleRoll(chat domain.ChatID, user domain.UserID, kind dice.Kind) {
	room, ok := b.Registry.UserRoom(user)
	if !ok || !room.HasMember(user) {
		// Solo roll: compute, reply, forget.
		value := b.Roller.Roll(kind)
		b.send(chat, strconv.Itoa(value))
		return
	}

	result, err := room.RecordRoll(user, kind)
	if errors.Is(err, core.ErrNotAMember) {
		// Lost membership in a race with /leave; fall back to a solo roll.
		b.send(chat, strconv.Itoa(b.Roller.Roll(kind)))
		return
	}
	if err != nil {
		log.Error().Err(err).Str("module", "app.bot").Int64("user", int64(user)).Msg("record roll")
		return
	}

	name := "player"
	if member, ok := room.Member(user); ok {
		name = member.Name
	}
	b.broadcast(room, fmt.Sprintf("🎲 %s rolled %s: %d", name, kind.Token(), result.Value), 0)
}

// handleStats renders every member's last roll, or a placeholder for
// members who have not rolled yet.
func (b *Bot) handleStats(chat domain.ChatID, user domain.UserID) {
	room, ok := b.Registry.UserRoom(user)
	if !ok {
		b.send(chat, msgNotInRoomStats)
		return
	}

	var sb strings.Builder
	sb.WriteString(msgStatsHeader)
	for _, member := range room.MembersSnapshot() {
		sb.WriteString("👤 ")
		sb.WriteString(member.Name)
		sb.WriteString(": ")
		if member.LastRoll != nil {
			sb.WriteString(member.LastRoll.Kind.Token())
			sb.WriteString(" → ")
			sb.WriteString(strconv.Itoa(member.LastRoll.Value))
		} else {
			sb.WriteString(msgStatsNoRolls)
		}
		sb.WriteString("\n")
	}
	b.send(chat, sb.String())
}
