package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"axis-lobby/internal/registry"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Handler implements one lobby mode on top of the shared connection loop.
type Handler interface {
	// Handle processes one decoded frame and reports whether kind is known.
	Handle(c *Client, kind string, raw []byte) bool
	// Disconnect runs the mode's cleanup for a connection that was bound to a
	// game when it went away.
	Disconnect(connID string, b registry.Binding)
}

type Options struct {
	SendBuffer     int
	WriteTimeout   time.Duration
	ReadLimit      int64
	AllowedOrigins []string
	// LogFrames logs each inbound frame at debug level.
	LogFrames bool
}

type Server struct {
	reg      *registry.Registry
	handler  Handler
	opts     Options
	upgrader websocket.Upgrader
}

func NewServer(reg *registry.Registry, handler Handler, opts Options) *Server {
	s := &Server{reg: reg, handler: handler, opts: opts}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.opts.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.opts.AllowedOrigins {
		allowed = strings.TrimSpace(allowed)
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	log.Warn().Str("origin", origin).Msg("ws origin rejected")
	return false
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := newClient(registry.NewConnID(), conn, s.opts.SendBuffer, s.opts.WriteTimeout)
	s.reg.Register(client)
	metricConnectionsTotal.Add(1)
	metricConnectionsActive.Add(1)
	log.Debug().Str("conn_id", client.id).Str("remote", r.RemoteAddr).Msg("ws connected")

	go client.writeLoop()
	s.readLoop(client)
}

func (s *Server) readLoop(c *Client) {
	defer s.unregister(c)

	if s.opts.ReadLimit > 0 {
		c.conn.SetReadLimit(s.opts.ReadLimit)
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				log.Debug().Err(err).Str("conn_id", c.id).Msg("ws read error")
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		metricMessagesIn.Add(1)
		if s.opts.LogFrames {
			log.Debug().Str("conn_id", c.id).Bytes("frame", msg).Msg("ws frame in")
		}
		s.dispatch(c, msg)
	}
}

func (s *Server) dispatch(c *Client, msg []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("conn_id", c.id).Msg("ws handler panic")
			sendError(c, ReasonInternal)
		}
	}()

	var base struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &base); err != nil {
		sendError(c, ReasonInvalidJSON)
		return
	}
	if !s.handler.Handle(c, base.Type, msg) {
		sendError(c, ReasonUnknownMessageType)
	}
}

func (s *Server) unregister(c *Client) {
	binding, bound := s.reg.Unregister(c.id)
	if bound {
		s.handler.Disconnect(c.id, binding)
	}
	c.Close()
	metricConnectionsActive.Add(-1)
	log.Debug().Str("conn_id", c.id).Bool("bound", bound).Msg("ws disconnected")
}

func sendError(c *Client, reason string) {
	metricErrorReplies.Add(1)
	sendJSON(c, ErrorMessage{Type: MsgError, Reason: reason})
}

func sendJSON(c *Client, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("conn_id", c.id).Msg("ws encode failed")
		return
	}
	c.Send(data)
}
