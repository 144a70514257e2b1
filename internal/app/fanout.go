package app

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/diceroom/internal/core"
	"github.com/dkeye/diceroom/internal/domain"
)

// broadcast delivers text to every current member of the room except
// exclude (0 means nobody). Member ids are copied out first so no lock
// is held across the transport calls; one failed recipient is logged
// and skipped, never aborting the rest.
func (b *Bot) broadcast(room core.RoomService, text string, exclude domain.UserID) {
	ids := room.MemberIDs()

	sent := 0
	for _, id := range ids {
		if id == exclude {
			continue
		}
		if err := b.Messenger.Send(domain.ChatID(id), text, core.SendOptions{}); err != nil {
			log.Warn().Err(err).Str("module", "app.fanout").Int64("user", int64(id)).Str("code", string(room.Room().Code)).Msg("delivery failed, skipping recipient")
			continue
		}
		sent++
	}
	log.Debug().Str("module", "app.fanout").Str("code", string(room.Room().Code)).Int("sent_to", sent).Int("members", len(ids)).Msg("broadcast result")
}
