package ws

import (
	"encoding/json"
	"errors"
	"strings"

	"axis-lobby/internal/registry"
	"axis-lobby/internal/relay"
)

// RelayHandler serves the mode where the host owns game state and the server
// only forwards payloads.
type RelayHandler struct {
	hub *relay.Hub
	reg *registry.Registry
}

func NewRelayHandler(hub *relay.Hub, reg *registry.Registry) *RelayHandler {
	return &RelayHandler{hub: hub, reg: reg}
}

func (h *RelayHandler) Handle(c *Client, kind string, raw []byte) bool {
	switch kind {
	case MsgCreateGame:
		var msg CreateGameMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendError(c, ReasonInvalidJSON)
			return true
		}
		h.detach(c.id)
		m, err := h.hub.Create(msg.GameID, msg.ClientID, c.id)
		if err != nil {
			sendError(c, relayReason(err))
			return true
		}
		h.reg.Bind(c.id, registry.Binding{GameID: m.GameID, Member: m.ClientID, Role: registry.RoleHost})
	case MsgJoinGame:
		var msg JoinGameMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendError(c, ReasonInvalidJSON)
			return true
		}
		if strings.TrimSpace(msg.GameID) == "" {
			sendError(c, ReasonUnknownGame)
			return true
		}
		h.detach(c.id)
		m, err := h.hub.Join(msg.GameID, msg.ClientID, c.id)
		if err != nil {
			sendError(c, relayReason(err))
			return true
		}
		h.reg.Bind(c.id, registry.Binding{GameID: m.GameID, Member: m.ClientID, Role: registry.RoleClient})
	case MsgHostUpdate:
		var msg PayloadMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendError(c, ReasonInvalidJSON)
			return true
		}
		b, ok := h.reg.Lookup(c.id)
		if !ok || b.Role != registry.RoleHost {
			sendError(c, ReasonNotHost)
			return true
		}
		if err := h.hub.HostUpdate(b.GameID, c.id, msg.Payload); err != nil {
			sendError(c, relayReason(err))
		}
	case MsgClientAction:
		var msg PayloadMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			sendError(c, ReasonInvalidJSON)
			return true
		}
		b, ok := h.reg.Lookup(c.id)
		if !ok || b.Role != registry.RoleClient {
			sendError(c, ReasonNotClient)
			return true
		}
		if err := h.hub.ClientAction(b.GameID, c.id, msg.Payload); err != nil {
			sendError(c, relayReason(err))
		}
	default:
		return false
	}
	return true
}

func (h *RelayHandler) detach(connID string) {
	b, ok := h.reg.Lookup(connID)
	if !ok {
		return
	}
	h.reg.Unbind(connID)
	h.Disconnect(connID, b)
}

func (h *RelayHandler) Disconnect(connID string, b registry.Binding) {
	h.hub.Disconnect(b.GameID, connID)
}

func relayReason(err error) string {
	switch {
	case errors.Is(err, relay.ErrGameExists):
		return "game_exists"
	case errors.Is(err, relay.ErrUnknownGame):
		return ReasonUnknownGame
	case errors.Is(err, relay.ErrNotHost):
		return ReasonNotHost
	case errors.Is(err, relay.ErrNotClient):
		return ReasonNotClient
	default:
		return ReasonInternal
	}
}
