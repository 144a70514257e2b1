// Package telegram adapts the Telegram Bot API to the core Messenger
// and event contracts. All platform specifics (keyboards, markdown,
// long polling) stay behind this adapter.
package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/diceroom/internal/app"
	"github.com/dkeye/diceroom/internal/core"
	"github.com/dkeye/diceroom/internal/dice"
	"github.com/dkeye/diceroom/internal/domain"
)

type Adapter struct {
	api         *tgbotapi.BotAPI
	pollTimeout int
}

func New(token, username string, pollTimeout int) (*Adapter, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	// A mismatch usually means the token belongs to another bot.
	if username != "" && !strings.EqualFold(api.Self.UserName, username) {
		log.Warn().Str("module", "adapters.telegram").Str("configured", username).Str("actual", api.Self.UserName).Msg("BOT_USERNAME does not match the authorized account")
	}
	log.Info().Str("module", "adapters.telegram").Str("username", api.Self.UserName).Msg("authorized")
	return &Adapter{api: api, pollTimeout: pollTimeout}, nil
}

// Send implements core.Messenger. Errors are returned for the caller
// to log and skip; nothing retries here.
func (a *Adapter) Send(chat domain.ChatID, text string, opts core.SendOptions) error {
	if opts.Monospace {
		text = "`" + text + "`"
	}
	msg := tgbotapi.NewMessage(int64(chat), text)
	if opts.Monospace {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	if opts.DiceKeyboard {
		msg.ReplyMarkup = diceKeyboard()
	}
	if _, err := a.api.Send(msg); err != nil {
		log.Warn().Err(err).Str("module", "adapters.telegram").Int64("chat", int64(chat)).Msg("send failed")
		return err
	}
	return nil
}

// RegisterCommands publishes the command menu. Descriptive only.
func (a *Adapter) RegisterCommands(cmds []core.Command) error {
	list := make([]tgbotapi.BotCommand, 0, len(cmds))
	for _, c := range cmds {
		list = append(list, tgbotapi.BotCommand{Command: c.Name, Description: c.Description})
	}
	if _, err := a.api.Request(tgbotapi.NewSetMyCommands(list...)); err != nil {
		return fmt.Errorf("set commands: %w", err)
	}
	log.Info().Str("module", "adapters.telegram").Int("count", len(list)).Msg("commands registered")
	return nil
}

// Run long-polls updates and dispatches each text message until the
// context is cancelled.
func (a *Adapter) Run(ctx context.Context, bot *app.Bot) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = a.pollTimeout
	updates := a.api.GetUpdatesChan(u)

	log.Info().Str("module", "adapters.telegram").Msg("long polling started")
	for {
		select {
		case <-ctx.Done():
			a.api.StopReceivingUpdates()
			log.Info().Str("module", "adapters.telegram").Msg("long polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			msg := update.Message
			if msg == nil || msg.From == nil || msg.Text == "" {
				continue
			}
			bot.Dispatch(domain.ChatID(msg.Chat.ID), domain.UserID(msg.From.ID), msg.Text)
		}
	}
}

// diceKeyboard lays the dice tokens out in two rows, d4..d10 then
// d12..d100, matching the /start prompt.
func diceKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kinds := dice.Kinds()
	rows := make([][]tgbotapi.KeyboardButton, 0, 2)
	row := make([]tgbotapi.KeyboardButton, 0, 4)
	for _, k := range kinds {
		row = append(row, tgbotapi.NewKeyboardButton(k.Token()))
		if len(row) == 4 {
			rows = append(rows, row)
			row = make([]tgbotapi.KeyboardButton, 0, 4)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = false
	return kb
}
