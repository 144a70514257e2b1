package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/diceroom/internal/adapters/devchat"
	"github.com/dkeye/diceroom/internal/app"
	"github.com/dkeye/diceroom/internal/config"
)

func genClientToken() string {
	return uuid.NewString()
}

// ClientTokenMiddleware hands every browser a stable identity cookie,
// used by the dev chat transport.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

// SetupRouter builds the ops router: health, room summaries and (when a
// dev chat hub is wired) the WebSocket chat endpoint.
func SetupRouter(ctx context.Context, cfg *config.Config, reg *app.Registry, hub *devchat.Hub, bot *app.Bot) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("DiceRoomSessions", store))
	r.Use(ClientTokenMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": reg.List()})
	})

	if hub != nil {
		api.GET("/ws/chat", func(c *gin.Context) {
			log.Info().Str("module", "adapters.http").Str("token", c.GetString("client_token")).Msg("dev chat endpoint hit")
			hub.Handle(ctx, c, bot)
		})
	}

	log.Info().Str("module", "adapters.http").Bool("dev_chat", hub != nil).Msg("router setup")
	return r
}
