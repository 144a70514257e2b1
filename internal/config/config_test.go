package config

import "testing"

func TestLoadDefaultsAndEnvBindings(t *testing.T) {
	// Point at a config file that does not exist; Load falls back to
	// defaults, with credentials from the environment only.
	t.Setenv("CONFIG_ENV", "nosuchenv")
	t.Setenv("BOT_TOKEN", "123456:test-token")
	t.Setenv("BOT_USERNAME", "dice_room_bot")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Mode != "release" {
		t.Errorf("mode = %q, want release", cfg.Mode)
	}
	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.PollTimeout != 60 {
		t.Errorf("poll_timeout = %d, want 60", cfg.PollTimeout)
	}
	if cfg.BotToken != "123456:test-token" {
		t.Errorf("bot_token not taken from BOT_TOKEN, got %q", cfg.BotToken)
	}
	if cfg.BotUsername != "dice_room_bot" {
		t.Errorf("bot_username not taken from BOT_USERNAME, got %q", cfg.BotUsername)
	}
}
