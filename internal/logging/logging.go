package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"axis-lobby/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	outMu sync.RWMutex
	out   io.Writer = os.Stdout
)

// Init configures the global zerolog logger. When cfg.File is set, every line
// is also appended to a size-capped file.
func Init(cfg config.LogConfig) {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var base io.Writer = os.Stdout
	if cfg.File != "" {
		fw, err := newSizeLimitedWriter(cfg.File, cfg.MaxMB)
		if err != nil {
			log.Error().Err(err).Str("path", cfg.File).Msg("open log file failed")
		} else {
			base = io.MultiWriter(os.Stdout, fw)
		}
	}
	outMu.Lock()
	out = base
	outMu.Unlock()

	var output io.Writer = base
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: base}
	}

	zerolog.SetGlobalLevel(level)
	ctx := zerolog.New(output).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	logger := ctx.Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger
}

// Writer returns the raw destination used by the global logger, for
// components that log through log/slog.
func Writer() io.Writer {
	outMu.RLock()
	defer outMu.RUnlock()
	return out
}
