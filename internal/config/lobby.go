package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ModeAuthoritative = "authoritative"
	ModeRelay         = "relay"
)

type LobbyConfig struct {
	Mode           string        `env:"LOBBY_MODE" envDefault:"authoritative"`
	ReaperInterval time.Duration `env:"REAPER_INTERVAL" envDefault:"1m"`
	SessionMaxAge  time.Duration `env:"SESSION_MAX_AGE" envDefault:"2h"`

	SendBuffer   int           `env:"WS_SEND_BUFFER" envDefault:"32"`
	WriteTimeout time.Duration `env:"WS_WRITE_TIMEOUT" envDefault:"5s"`
	ReadLimit    int64         `env:"WS_READ_LIMIT" envDefault:"65536"`
}

func LoadLobby() (LobbyConfig, error) {
	var cfg LobbyConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	switch cfg.Mode {
	case ModeAuthoritative, ModeRelay:
	default:
		return cfg, fmt.Errorf("LOBBY_MODE must be %q or %q, got %q", ModeAuthoritative, ModeRelay, cfg.Mode)
	}
	if cfg.ReaperInterval < 0 || cfg.SessionMaxAge <= 0 {
		return cfg, fmt.Errorf("invalid reaper settings: interval=%s max_age=%s", cfg.ReaperInterval, cfg.SessionMaxAge)
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 32
	}
	return cfg, nil
}
