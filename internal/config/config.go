package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode        string `mapstructure:"mode"`
	Port        int    `mapstructure:"port"`
	Secret      string `mapstructure:"secret"`
	BotToken    string `mapstructure:"bot_token"`
	BotUsername string `mapstructure:"bot_username"`
	// PollTimeout is the Telegram long-poll timeout in seconds.
	PollTimeout int `mapstructure:"poll_timeout"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("secret", "dev-only-secret")
	v.SetDefault("poll_timeout", 60)

	// Credentials come from the environment, never the file.
	_ = v.BindEnv("bot_token", "BOT_TOKEN")
	_ = v.BindEnv("bot_username", "BOT_USERNAME")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("config loaded")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Bool("telegram", cfg.BotToken != "").Msg("effective config")
	return &cfg, nil
}
