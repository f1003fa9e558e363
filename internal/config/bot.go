package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type BotConfig struct {
	WSURL      string        `env:"WS_URL" envDefault:"ws://localhost:3000/ws"`
	PlayerName string        `env:"BOT_NAME" envDefault:"bot"`
	GameID     string        `env:"BOT_GAME_ID"`
	Team       string        `env:"BOT_TEAM" envDefault:"allies"`
	Timeout    time.Duration `env:"BOT_TIMEOUT" envDefault:"5s"`
}

func LoadBot() (BotConfig, error) {
	var cfg BotConfig
	err := env.Parse(&cfg)
	return cfg, err
}
