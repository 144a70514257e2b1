package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/diceroom/internal/core"
	"github.com/dkeye/diceroom/internal/domain"
)

// handlePlayerCount consumes the reply to "/create". Invalid input
// re-prompts and keeps the state; the user can always bail with /cancel.
func (b *Bot) handlePlayerCount(chat domain.ChatID, user domain.UserID, text string) {
	maxPlayers, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || domain.ValidatePlayerCount(maxPlayers) != nil {
		b.send(chat, msgBadPlayerCount)
		return
	}

	room := b.Registry.CreateRoom(user, maxPlayers)
	code := room.Room().Code

	b.send(chat, fmt.Sprintf("✅ Room created!\n\n🔑 Room code: %s\n👥 Max players: %d\n\nSend this command to the other players:", code, maxPlayers))
	// Copyable join command for forwarding.
	b.send(chat, fmt.Sprintf("/join %s", code), core.SendOptions{Monospace: true})

	b.States.Set(user, UserState{Kind: StateAwaitingCreatorName})
	b.send(chat, msgAskName)
}

// handleCreatorName consumes the creator's name and seats them in the
// room they just created.
func (b *Bot) handleCreatorName(chat domain.ChatID, user domain.UserID, text string) {
	room, ok := b.Registry.UserRoom(user)
	if !ok {
		// Room vanished mid-flow; drop the stale state instead of
		// trapping the user in it.
		b.States.Clear(user)
		b.send(chat, msgCreateFirst)
		return
	}

	name, err := domain.CleanName(text, domain.MaxCreateNameLen)
	if err != nil {
		b.send(chat, msgEmptyName)
		return
	}

	if !room.AddMember(user, name) {
		b.States.Clear(user)
		b.send(chat, msgJoinFailed)
		return
	}
	b.States.Clear(user)

	b.send(chat, fmt.Sprintf("✅ Welcome to the game, %s!", name))
	b.showDiceKeyboard(chat)
}

// handleJoin validates "/join <code>" and, when the room is joinable,
// parks the code and asks for a name. Already-joined users skip the
// name step and go straight back to the dice keyboard.
func (b *Bot) handleJoin(chat domain.ChatID, user domain.UserID, text string) {
	parts := strings.SplitN(text, " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		b.send(chat, msgJoinUsage)
		return
	}
	code := domain.RoomCode(strings.TrimSpace(parts[1]))

	room, ok := b.Registry.Room(code)
	if !ok {
		b.send(chat, fmt.Sprintf("❌ No room with code %s! Check the code and try again.", code))
		return
	}
	if !room.Room().Active {
		b.send(chat, msgRoomInactive)
		return
	}
	if room.HasMember(user) {
		// Re-bind in case the pointer went stale; membership is the
		// source of truth.
		b.Registry.BindUser(user, code)
		b.send(chat, msgAlreadyInRoom)
		b.showDiceKeyboard(chat)
		return
	}
	if room.MemberCount() >= room.Room().MaxPlayers {
		b.send(chat, msgRoomFull)
		return
	}

	b.States.Set(user, UserState{Kind: StateAwaitingJoinName, PendingCode: code})
	b.send(chat, msgRoomFound)
}

// handleJoinName consumes the name for a pending join and seats the
// player. The room can fill up or vanish between the two steps; both
// surface a reply and reset to the idle state.
func (b *Bot) handleJoinName(chat domain.ChatID, user domain.UserID, state UserState, text string) {
	if state.PendingCode == "" {
		b.States.Clear(user)
		b.send(chat, msgJoinExpired)
		return
	}

	name, err := domain.CleanName(text, domain.MaxJoinNameLen)
	if err != nil {
		b.send(chat, msgEmptyName)
		return
	}

	room, ok := b.Registry.Room(state.PendingCode)
	if !ok {
		b.States.Clear(user)
		b.send(chat, msgRoomGone)
		return
	}

	if !room.AddMember(user, name) {
		b.States.Clear(user)
		b.send(chat, msgJoinFailed)
		return
	}
	b.Registry.BindUser(user, state.PendingCode)
	b.States.Clear(user)

	b.send(chat, fmt.Sprintf("✅ You joined the room as %s!", name))
	b.showDiceKeyboard(chat)

	b.broadcast(room, fmt.Sprintf("👤 %s joined the game!", name), user)
	log.Info().Str("module", "app.bot").Int64("user", int64(user)).Str("code", string(state.PendingCode)).Msg("player joined")
}

// handleLeave removes the caller from their room and tells the rest.
func (b *Bot) handleLeave(chat domain.ChatID, user domain.UserID) {
	room, ok := b.Registry.UserRoom(user)
	if !ok {
		b.send(chat, msgNotInRoom)
		return
	}
	code := room.Room().Code

	leaverName := "player"
	if member, ok := room.Member(user); ok {
		leaverName = member.Name
	}

	b.Registry.Leave(code, user)
	b.States.Clear(user)
	log.Info().Str("module", "app.bot").Int64("user", int64(user)).Str("code", string(code)).Msg("player left")

	// Leave already dropped the leaver, so this reaches the remainder.
	b.broadcast(room, fmt.Sprintf("👤 %s left the room!", leaverName), 0)
	b.send(chat, msgLeftRoom)
}
