// Package devchat is a WebSocket chat transport for local development:
// it lets the bot run without platform credentials. Each connection is
// one chat user; inbound frames are plain message text, outbound frames
// are JSON envelopes carrying the text plus keyboard hints.
package devchat

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/diceroom/internal/app"
	"github.com/dkeye/diceroom/internal/core"
	"github.com/dkeye/diceroom/internal/dice"
	"github.com/dkeye/diceroom/internal/domain"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// outbound is the envelope written to dev chat sockets.
type outbound struct {
	Type      string     `json:"type"`
	Text      string     `json:"text"`
	Monospace bool       `json:"monospace,omitempty"`
	Keyboard  [][]string `json:"keyboard,omitempty"`
}

type Hub struct {
	mu    sync.RWMutex
	conns map[domain.UserID]*wsConn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[domain.UserID]*wsConn)}
}

// Send implements core.Messenger for connected dev users.
func (h *Hub) Send(chat domain.ChatID, text string, opts core.SendOptions) error {
	h.mu.RLock()
	c, ok := h.conns[domain.UserID(chat)]
	h.mu.RUnlock()
	if !ok {
		return fmt.Errorf("user %d not connected", chat)
	}

	env := outbound{Type: "message", Text: text, Monospace: opts.Monospace}
	if opts.DiceKeyboard {
		env.Keyboard = keyboardRows()
	}
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return c.TrySend(data)
}

// RegisterCommands is a no-op: there is no platform menu to publish to.
func (h *Hub) RegisterCommands(cmds []core.Command) error {
	log.Debug().Str("module", "devchat").Int("count", len(cmds)).Msg("commands noted (no platform menu)")
	return nil
}

// Handle upgrades one connection and pumps it until it drops. The
// client token cookie gives the user a stable identity across reconnects.
func (h *Hub) Handle(ctx context.Context, c *gin.Context, bot *app.Bot) {
	token := c.GetString("client_token")
	user := userIDFromToken(token)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "devchat").Msg("ws upgrade")
		return
	}
	conn := &wsConn{conn: ws, send: make(chan []byte, 32)}

	h.mu.Lock()
	if old, ok := h.conns[user]; ok {
		old.Close()
	}
	h.conns[user] = conn
	h.mu.Unlock()
	log.Info().Str("module", "devchat").Int64("user", int64(user)).Msg("dev chat connected")

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer cancel()
		h.writePump(ctx, conn)
	}()
	go func() {
		defer cancel()
		h.readPump(ctx, user, conn, bot)
	}()
}

// unregister drops the mapping only if c still owns it. On reconnect
// the old pump winds down after the new connection is installed; it
// must not evict its successor.
func (h *Hub) unregister(user domain.UserID, c *wsConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[user] == c {
		delete(h.conns, user)
	}
}

// userIDFromToken folds the uuid client token down to a stable positive
// numeric id, mirroring the platform-supplied int64 identity.
func userIDFromToken(token string) domain.UserID {
	hash := fnv.New64a()
	hash.Write([]byte(token))
	return domain.UserID(int64(hash.Sum64() &^ (1 << 63)))
}

func keyboardRows() [][]string {
	kinds := dice.Kinds()
	rows := make([][]string, 0, 2)
	row := make([]string, 0, 4)
	for _, k := range kinds {
		row = append(row, k.Token())
		if len(row) == 4 {
			rows = append(rows, row)
			row = make([]string, 0, 4)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
