package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/diceroom/internal/adapters/devchat"
	router "github.com/dkeye/diceroom/internal/adapters/http"
	"github.com/dkeye/diceroom/internal/adapters/telegram"
	"github.com/dkeye/diceroom/internal/app"
	"github.com/dkeye/diceroom/internal/config"
	"github.com/dkeye/diceroom/internal/core"
	"github.com/dkeye/diceroom/internal/dice"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("LOG_DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	roller := dice.Roller{}
	reg := app.NewRegistry(roller)

	// Telegram when credentials are present, the dev WebSocket chat
	// otherwise.
	var (
		messenger core.Messenger
		tg        *telegram.Adapter
		hub       *devchat.Hub
	)
	if cfg.BotToken != "" {
		tg, err = telegram.New(cfg.BotToken, cfg.BotUsername, cfg.PollTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("telegram setup failed")
		}
		messenger = tg
	} else {
		log.Warn().Msg("BOT_TOKEN not set, running with the dev chat transport only")
		hub = devchat.NewHub()
		messenger = hub
	}

	bot := app.New(reg, messenger, roller)
	if err := messenger.RegisterCommands(bot.Commands()); err != nil {
		log.Error().Err(err).Msg("command registration failed")
	}

	r := router.SetupRouter(ctx, cfg, reg, hub, bot)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("diceroom server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	if tg != nil {
		go tg.Run(ctx, bot)
	}

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
