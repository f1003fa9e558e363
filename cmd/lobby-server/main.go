package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"axis-lobby/internal/app/games"
	"axis-lobby/internal/config"
	"axis-lobby/internal/lobby"
	"axis-lobby/internal/logging"
	"axis-lobby/internal/registry"
	"axis-lobby/internal/relay"
	httptransport "axis-lobby/internal/transport/http"
	"axis-lobby/internal/ws"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := registry.New()
	bc := ws.NewBroadcaster(reg)

	var (
		handler ws.Handler
		svc     *games.Service
	)
	switch cfg.Lobby.Mode {
	case config.ModeRelay:
		hub := relay.NewHub(bc)
		handler = ws.NewRelayHandler(hub, reg)
		svc = games.NewRelay(hub)
	default:
		store := lobby.NewStore(bc)
		store.StartJanitor(ctx, cfg.Lobby.ReaperInterval, cfg.Lobby.SessionMaxAge)
		handler = ws.NewAuthoritativeHandler(store, reg)
		svc = games.NewAuthoritative(store)
	}

	wsSrv := ws.NewServer(reg, handler, ws.Options{
		SendBuffer:     cfg.Lobby.SendBuffer,
		WriteTimeout:   cfg.Lobby.WriteTimeout,
		ReadLimit:      cfg.Lobby.ReadLimit,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		LogFrames:      cfg.Log.WSFrames,
	})

	r := httptransport.NewRouter(cfg.Server, svc, http.HandlerFunc(wsSrv.HandleWS))
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Server.HTTPAddr).Str("mode", cfg.Lobby.Mode).Msg("lobby server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}
