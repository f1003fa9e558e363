package ws

import (
	"encoding/json"
	"strings"

	"axis-lobby/internal/lobby"
	"axis-lobby/internal/registry"

	"github.com/rs/zerolog/log"
)

// AuthoritativeHandler serves the mode where the server owns lobby state.
type AuthoritativeHandler struct {
	store *lobby.Store
	reg   *registry.Registry
}

func NewAuthoritativeHandler(store *lobby.Store, reg *registry.Registry) *AuthoritativeHandler {
	return &AuthoritativeHandler{store: store, reg: reg}
}

func (h *AuthoritativeHandler) Handle(c *Client, kind string, raw []byte) bool {
	switch kind {
	case MsgCreateGame:
		var msg CreateGameMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendError(c, ReasonInvalidJSON)
			return true
		}
		h.createGame(c, msg)
	case MsgJoinGame:
		var msg JoinGameMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendError(c, ReasonInvalidJSON)
			return true
		}
		h.joinGame(c, msg)
	case MsgPlayerAction:
		var msg PlayerActionMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendError(c, ReasonInvalidJSON)
			return true
		}
		h.playerAction(c, msg)
	default:
		return false
	}
	return true
}

func (h *AuthoritativeHandler) createGame(c *Client, msg CreateGameMessage) {
	name := strings.TrimSpace(msg.PlayerName)
	if name == "" {
		sendError(c, lobby.Reason(lobby.ErrPlayerNameRequired))
		return
	}
	h.detach(c.id)
	view, err := h.store.Create(lobby.CreateParams{
		Code:       msg.GameID,
		PlayerName: name,
		Color:      msg.PlayerColor,
		ConnID:     c.id,
	})
	if err != nil {
		sendError(c, lobby.Reason(err))
		return
	}
	h.reg.Bind(c.id, registry.Binding{GameID: view.GameID, Member: name, Role: registry.RolePlayer})
}

func (h *AuthoritativeHandler) joinGame(c *Client, msg JoinGameMessage) {
	name := strings.TrimSpace(msg.PlayerName)
	if name == "" {
		sendError(c, lobby.Reason(lobby.ErrPlayerNameRequired))
		return
	}
	h.detach(c.id)
	res, err := h.store.Join(lobby.JoinParams{
		Code:       msg.GameID,
		PlayerName: name,
		Color:      msg.PlayerColor,
		ConnID:     c.id,
	})
	if err != nil {
		sendError(c, lobby.Reason(err))
		return
	}
	h.reg.Bind(c.id, registry.Binding{GameID: res.State.GameID, Member: name, Role: registry.RolePlayer})
}

func (h *AuthoritativeHandler) playerAction(c *Client, msg PlayerActionMessage) {
	b, ok := h.reg.Lookup(c.id)
	if !ok {
		sendError(c, ReasonNotInGame)
		return
	}
	action, err := lobby.ParseAction(msg.Action)
	if err != nil {
		sendError(c, lobby.Reason(err))
		return
	}
	if _, err := h.store.Apply(b.GameID, b.Member, action); err != nil {
		sendError(c, lobby.Reason(err))
	}
}

// detach leaves the game the connection is currently bound to, if any.
func (h *AuthoritativeHandler) detach(connID string) {
	b, ok := h.reg.Lookup(connID)
	if !ok {
		return
	}
	h.reg.Unbind(connID)
	log.Debug().Str("conn_id", connID).Str("game_id", b.GameID).Msg("connection switching games")
	h.Disconnect(connID, b)
}

func (h *AuthoritativeHandler) Disconnect(connID string, b registry.Binding) {
	if b.Role != registry.RolePlayer {
		return
	}
	h.store.MarkDisconnected(b.GameID, b.Member, connID)
}
