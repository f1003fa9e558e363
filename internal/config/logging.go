package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}

type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty      bool   `env:"LOG_PRETTY" envDefault:"false"`
	Caller      bool   `env:"LOG_CALLER" envDefault:"false"`
	SampleEvery int    `env:"LOG_SAMPLE_EVERY" envDefault:"0"`
	File        string `env:"LOG_FILE"`
	MaxMB       int    `env:"LOG_MAX_MB" envDefault:"10"`
	// WSFrames logs every inbound websocket frame at debug level.
	WSFrames bool `env:"LOG_WS_FRAMES" envDefault:"false"`
}

func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	cfg.Level = strings.ToLower(strings.TrimSpace(cfg.Level))
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	known := false
	for _, l := range logLevels {
		if cfg.Level == l {
			known = true
			break
		}
	}
	if !known {
		return cfg, fmt.Errorf("LOG_LEVEL %q is not one of %s", cfg.Level, strings.Join(logLevels, ", "))
	}
	if cfg.SampleEvery < 0 {
		return cfg, fmt.Errorf("LOG_SAMPLE_EVERY must not be negative, got %d", cfg.SampleEvery)
	}
	if cfg.MaxMB <= 0 {
		cfg.MaxMB = 10
	}
	return cfg, nil
}
