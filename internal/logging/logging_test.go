package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"axis-lobby/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitWritesToFile(t *testing.T) {
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "lobby.log")
	Init(config.LogConfig{Level: "debug", File: path, MaxMB: 1})

	log.Debug().Str("game_id", "AB12CD").Msg("game_created")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"game_id":"AB12CD"`) {
		t.Fatalf("log file missing entry: %s", data)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Fatalf("level = %s, want debug", zerolog.GlobalLevel())
	}
}

func TestInitIgnoresUnknownLevel(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prevLevel) })

	Init(config.LogConfig{Level: "chatty"})
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("level = %s, want info", zerolog.GlobalLevel())
	}
	if Writer() == nil {
		t.Fatal("Writer() returned nil")
	}
}
