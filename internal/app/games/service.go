// Package games is the read-only view of running games shared by the admin
// HTTP API and the MCP tools. It hides which lobby mode is active.
package games

import (
	"errors"
	"strings"

	"axis-lobby/internal/config"
	"axis-lobby/internal/lobby"
	"axis-lobby/internal/relay"
)

type Service struct {
	mode  string
	store *lobby.Store
	hub   *relay.Hub
}

func NewAuthoritative(store *lobby.Store) *Service {
	return &Service{mode: config.ModeAuthoritative, store: store}
}

func NewRelay(hub *relay.Hub) *Service {
	return &Service{mode: config.ModeRelay, hub: hub}
}

func (s *Service) Mode() string { return s.mode }

func (s *Service) Health() HealthResponse {
	out := HealthResponse{OK: true, Mode: s.mode}
	if s.store != nil {
		out.Games = s.store.Len()
	}
	if s.hub != nil {
		out.Games = s.hub.Len()
	}
	return out
}

func (s *Service) List() GamesResponse {
	out := GamesResponse{Mode: s.mode, Items: []GameItem{}}
	if s.store != nil {
		for _, g := range s.store.List() {
			out.Items = append(out.Items, GameItem{
				GameID:    g.GameID,
				Host:      g.Host,
				Members:   g.Players,
				Connected: g.Connected,
				Started:   g.Started,
				Version:   g.Version,
				CreatedAt: g.CreatedAt,
			})
		}
	}
	if s.hub != nil {
		for _, g := range s.hub.List() {
			out.Items = append(out.Items, GameItem{
				GameID:    g.GameID,
				Host:      g.HostClientID,
				Members:   g.Clients + 1,
				Connected: g.Clients + 1,
				CreatedAt: g.CreatedAt,
			})
		}
	}
	return out
}

// State returns the authoritative snapshot of one game. Relay games have no
// server-side state.
func (s *Service) State(gameID string) (*lobby.StateView, error) {
	if strings.TrimSpace(gameID) == "" {
		return nil, ErrInvalidRequest
	}
	if s.store == nil {
		if s.hub != nil && s.relayGameExists(gameID) {
			return nil, ErrStateUnavailable
		}
		return nil, ErrGameNotFound
	}
	view, err := s.store.Snapshot(gameID)
	if errors.Is(err, lobby.ErrGameNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *Service) relayGameExists(gameID string) bool {
	code := lobby.NormalizeCode(gameID)
	for _, g := range s.hub.List() {
		if g.GameID == code {
			return true
		}
	}
	return false
}
