package app

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/diceroom/internal/core"
	"github.com/dkeye/diceroom/internal/dice"
	"github.com/dkeye/diceroom/internal/domain"
)

// Bot is the per-user interaction state machine. Each incoming text is
// routed by command prefix first, then by the user's current state, then
// by dice-token match. Anything else is ignored on purpose: the bot
// stays quiet instead of replying "unknown command".
type Bot struct {
	Registry  *Registry
	States    *States
	Messenger core.Messenger
	Roller    core.Roller
}

func New(reg *Registry, messenger core.Messenger, roller core.Roller) *Bot {
	return &Bot{
		Registry:  reg,
		States:    NewStates(),
		Messenger: messenger,
		Roller:    roller,
	}
}

// Commands lists the chat commands for platform-side registration.
func (b *Bot) Commands() []core.Command {
	return []core.Command{
		{Name: "start", Description: "Start the bot"},
		{Name: "create", Description: "Create a room"},
		{Name: "join", Description: "Join a room (example: /join ABC123)"},
		{Name: "stats", Description: "Show everyone's last rolls"},
		{Name: "leave", Description: "Leave the room"},
		{Name: "help", Description: "Show help"},
		{Name: "cancel", Description: "Cancel the current action"},
	}
}

// Dispatch handles one inbound event on its own goroutine. A panic in
// a handler is logged and the event dropped; it never takes down the
// dispatch loop or other users' requests.
func (b *Bot) Dispatch(chat domain.ChatID, user domain.UserID, text string) {
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Str("module", "app.bot").Int64("user", int64(user)).Any("panic", rec).Msg("handler panicked, event dropped")
			}
		}()
		b.HandleText(chat, user, text)
	}()
}

// HandleText runs the state machine for one message, synchronously.
func (b *Bot) HandleText(chat domain.ChatID, user domain.UserID, text string) {
	log.Debug().Str("module", "app.bot").Int64("user", int64(user)).Str("text", text).Msg("incoming text")

	state := b.States.Get(user)
	switch {
	case text == "/start":
		b.send(chat, msgWelcome)
		b.showDiceKeyboard(chat)

	case text == "/help":
		b.send(chat, msgHelp)

	case text == "/stats":
		b.handleStats(chat, user)

	case text == "/leave":
		b.handleLeave(chat, user)

	case text == "/create":
		b.States.Set(user, UserState{Kind: StateAwaitingPlayerCount})
		b.send(chat, msgAskPlayerCount)

	case text == "/cancel":
		b.States.Clear(user)
		b.send(chat, msgCancelled)
		b.showDiceKeyboard(chat)

	case strings.HasPrefix(text, "/join"):
		b.handleJoin(chat, user, text)

	case state.Kind == StateAwaitingPlayerCount:
		b.handlePlayerCount(chat, user, text)

	case state.Kind == StateAwaitingCreatorName:
		b.handleCreatorName(chat, user, text)

	case state.Kind == StateAwaitingJoinName:
		b.handleJoinName(chat, user, state, text)

	default:
		if kind, ok := dice.Parse(text); ok {
			b.handleRoll(chat, user, kind)
			return
		}
		// Intentional quietness: unrecognized free text gets no reply.
		log.Debug().Str("module", "app.bot").Int64("user", int64(user)).Msg("ignoring unrecognized text")
	}
}

// send delivers one message, logging delivery failures. Fire-and-forget
// from the state machine's point of view.
func (b *Bot) send(chat domain.ChatID, text string, opts ...core.SendOptions) {
	var o core.SendOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if err := b.Messenger.Send(chat, text, o); err != nil {
		log.Warn().Err(err).Str("module", "app.bot").Int64("chat", int64(chat)).Msg("send failed")
	}
}

func (b *Bot) showDiceKeyboard(chat domain.ChatID) {
	b.send(chat, msgDiceKeyboard, core.SendOptions{DiceKeyboard: true})
}
