package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"axis-lobby/internal/app/games"

	"github.com/go-chi/chi/v5"
)

type GameHandlers struct {
	games *games.Service
}

func NewGameHandlers(svc *games.Service) *GameHandlers {
	return &GameHandlers{games: svc}
}

func (h *GameHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(h.games.Health())
	}
}

func (h *GameHandlers) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricGamesListTotal.Add(1)
		limit, offset := ParsePagination(r)
		resp := h.games.List()
		total := len(resp.Items)
		items := resp.Items
		if offset >= len(items) {
			items = []games.GameItem{}
		} else {
			end := offset + limit
			if end > len(items) {
				end = len(items)
			}
			items = items[offset:end]
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"mode":   resp.Mode,
			"items":  items,
			"total":  total,
			"limit":  limit,
			"offset": offset,
		})
	}
}

func (h *GameHandlers) State() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricGameStateTotal.Add(1)
		state, err := h.games.State(chi.URLParam(r, "game_id"))
		if err != nil {
			metricGameStateErrors.Add(1)
			writeGamesError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"game_id": state.GameID, "state": state})
	}
}

func writeGamesError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, games.ErrInvalidRequest):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, games.ErrGameNotFound):
		WriteHTTPError(w, http.StatusNotFound, "game_not_found")
	case errors.Is(err, games.ErrStateUnavailable):
		WriteHTTPError(w, http.StatusConflict, "state_unavailable")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
