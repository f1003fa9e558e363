// Package relay forwards opaque payloads between a game's host and its
// clients. The server never interprets payloads, and losing the host ends
// the game.
package relay

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"axis-lobby/internal/lobby"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrGameExists  = errors.New("game_exists")
	ErrUnknownGame = errors.New("unknown_game")
	ErrNotHost     = errors.New("not_host")
	ErrNotClient   = errors.New("not_client")
)

const CloseReasonHostDisconnected = "host_disconnected"

const (
	MsgGameCreated  = "game_created"
	MsgJoinedGame   = "joined_game"
	MsgClientJoined = "client_joined"
	MsgClientLeft   = "client_left"
	MsgHostUpdate   = "host_update"
	MsgClientAction = "client_action"
	MsgGameClosed   = "game_closed"
)

// Message is an outbound relay frame.
type Message struct {
	Type     string          `json:"type"`
	GameID   string          `json:"gameId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	Reason   string          `json:"reason,omitempty"`
}

// Sink delivers relay frames. Both methods are called with a game lock held
// and must not block.
type Sink interface {
	Deliver(msg Message, connIDs []string)
	// CloseAfterFlush closes the connections once queued frames are written.
	CloseAfterFlush(connIDs []string)
}

// Membership identifies a connection inside a relay game.
type Membership struct {
	GameID   string
	ClientID string
}

type Summary struct {
	GameID       string    `json:"gameId"`
	HostClientID string    `json:"hostClientId"`
	Clients      int       `json:"clients"`
	CreatedAt    time.Time `json:"createdAt"`
}

type game struct {
	mu         sync.Mutex
	id         string
	hostConn   string
	hostClient string
	clients    map[string]string // conn id -> client id
	order      []string
	createdAt  time.Time
	closed     bool
}

func (g *game) clientConns() []string {
	return append([]string(nil), g.order...)
}

type Hub struct {
	mu    sync.RWMutex
	games map[string]*game
	sink  Sink

	now     func() time.Time
	newCode func() (string, error)
}

func NewHub(sink Sink) *Hub {
	return &Hub{
		games:   map[string]*game{},
		sink:    sink,
		now:     time.Now,
		newCode: lobby.NewCode,
	}
}

func newClientID(requested string) string {
	if id := strings.TrimSpace(requested); id != "" {
		return id
	}
	return uuid.NewString()
}

// Create opens a game hosted by connID and sends game_created to it.
func (h *Hub) Create(gameID, clientID, connID string) (Membership, error) {
	code := lobby.NormalizeCode(gameID)
	g := &game{
		hostConn:   connID,
		hostClient: newClientID(clientID),
		clients:    map[string]string{},
		createdAt:  h.now(),
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	h.mu.Lock()
	if code == "" {
		generated, err := h.freeCodeLocked()
		if err != nil {
			h.mu.Unlock()
			return Membership{}, err
		}
		code = generated
	} else if _, taken := h.games[code]; taken {
		h.mu.Unlock()
		return Membership{}, ErrGameExists
	}
	g.id = code
	h.games[code] = g
	h.mu.Unlock()

	metricGamesCreated.Add(1)
	log.Info().Str("game_id", code).Str("client_id", g.hostClient).Str("conn_id", connID).Msg("relay_game_created")
	h.sink.Deliver(Message{Type: MsgGameCreated, GameID: code, ClientID: g.hostClient}, []string{connID})
	return Membership{GameID: code, ClientID: g.hostClient}, nil
}

func (h *Hub) freeCodeLocked() (string, error) {
	for i := 0; i < 16; i++ {
		code, err := h.newCode()
		if err != nil {
			return "", err
		}
		if _, taken := h.games[code]; !taken {
			return code, nil
		}
	}
	return "", errors.New("code_space_exhausted")
}

func (h *Hub) lookup(gameID string) (*game, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	g, ok := h.games[lobby.NormalizeCode(gameID)]
	return g, ok
}

// Join adds connID as a client and tells the host.
func (h *Hub) Join(gameID, clientID, connID string) (Membership, error) {
	g, ok := h.lookup(gameID)
	if !ok {
		return Membership{}, ErrUnknownGame
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return Membership{}, ErrUnknownGame
	}
	cid := newClientID(clientID)
	if _, dup := g.clients[connID]; !dup {
		g.order = append(g.order, connID)
	}
	g.clients[connID] = cid

	log.Info().Str("game_id", g.id).Str("client_id", cid).Str("conn_id", connID).Msg("relay_client_joined")
	h.sink.Deliver(Message{Type: MsgJoinedGame, GameID: g.id, ClientID: cid}, []string{connID})
	h.sink.Deliver(Message{Type: MsgClientJoined, GameID: g.id, ClientID: cid}, []string{g.hostConn})
	return Membership{GameID: g.id, ClientID: cid}, nil
}

// HostUpdate forwards payload from the host to every client.
func (h *Hub) HostUpdate(gameID, connID string, payload json.RawMessage) error {
	g, ok := h.lookup(gameID)
	if !ok {
		return ErrUnknownGame
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrUnknownGame
	}
	if g.hostConn != connID {
		return ErrNotHost
	}
	if len(g.order) > 0 {
		metricForwarded.Add(int64(len(g.order)))
		h.sink.Deliver(Message{Type: MsgHostUpdate, GameID: g.id, Payload: payload}, g.clientConns())
	}
	return nil
}

// ClientAction forwards payload from a client to the host only.
func (h *Hub) ClientAction(gameID, connID string, payload json.RawMessage) error {
	g, ok := h.lookup(gameID)
	if !ok {
		return ErrUnknownGame
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrUnknownGame
	}
	if _, member := g.clients[connID]; !member {
		return ErrNotClient
	}
	metricForwarded.Add(1)
	h.sink.Deliver(Message{Type: MsgClientAction, GameID: g.id, Payload: payload}, []string{g.hostConn})
	return nil
}

// Disconnect runs the relay teardown for connID. A departing host closes the
// game and every client connection; a departing client is reported to the
// host.
func (h *Hub) Disconnect(gameID, connID string) {
	g, ok := h.lookup(gameID)
	if !ok {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	if g.hostConn == connID {
		g.closed = true
		h.mu.Lock()
		delete(h.games, g.id)
		h.mu.Unlock()

		clients := g.clientConns()
		metricGamesClosed.Add(1)
		log.Info().Str("game_id", g.id).Int("clients", len(clients)).Msg("relay_game_closed")
		if len(clients) > 0 {
			h.sink.Deliver(Message{Type: MsgGameClosed, GameID: g.id, Reason: CloseReasonHostDisconnected}, clients)
			h.sink.CloseAfterFlush(clients)
		}
		return
	}
	cid, member := g.clients[connID]
	if !member {
		return
	}
	delete(g.clients, connID)
	g.order = removeConn(g.order, connID)
	log.Info().Str("game_id", g.id).Str("client_id", cid).Msg("relay_client_left")
	h.sink.Deliver(Message{Type: MsgClientLeft, GameID: g.id, ClientID: cid}, []string{g.hostConn})
}

func (h *Hub) List() []Summary {
	h.mu.RLock()
	games := make([]*game, 0, len(h.games))
	for _, g := range h.games {
		games = append(games, g)
	}
	h.mu.RUnlock()

	out := make([]Summary, 0, len(games))
	for _, g := range games {
		g.mu.Lock()
		if !g.closed {
			out = append(out, Summary{GameID: g.id, HostClientID: g.hostClient, Clients: len(g.order), CreatedAt: g.createdAt})
		}
		g.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameID < out[j].GameID })
	return out
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games)
}

func removeConn(list []string, connID string) []string {
	out := list[:0]
	for _, id := range list {
		if id != connID {
			out = append(out, id)
		}
	}
	return out
}
