// Package lobbyclient is a Go client for the lobby websocket protocol. It
// mirrors the lobby state and routes frames to per-type handlers.
package lobbyclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"axis-lobby/internal/lobby"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const DefaultTimeout = 5 * time.Second

var (
	ErrTimeout = errors.New("lobbyclient: timed out waiting for reply")
	ErrClosed  = errors.New("lobbyclient: connection closed")
	// ErrRequestPending is returned by Act while a create or join request
	// is waiting for its reply.
	ErrRequestPending = errors.New("lobbyclient: create or join in flight")
)

// ServerError is an error frame received in reply to a request.
type ServerError struct {
	Reason string
}

func (e *ServerError) Error() string { return "lobby error: " + e.Reason }

// Handler receives the raw frame of one message type.
type Handler func(raw []byte)

type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	reqMu   sync.Mutex
	Timeout time.Duration

	mu       sync.Mutex
	handlers map[string]map[int]Handler
	nextID   int
	onClose  []func(error)

	mirror    Mirror
	done      chan struct{}
	closeOnce sync.Once
	err       error
}

// Dial connects to a lobby server websocket URL and starts reading.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	c := &Client{
		conn:     conn,
		Timeout:  DefaultTimeout,
		handlers: map[string]map[int]Handler{},
		done:     make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// On registers fn for frames of type typ and returns a function that removes
// it again.
func (c *Client) On(typ string, fn Handler) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	bucket, ok := c.handlers[typ]
	if !ok {
		bucket = map[int]Handler{}
		c.handlers[typ] = bucket
	}
	id := c.nextID
	c.nextID++
	bucket[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.handlers[typ], id)
		c.mu.Unlock()
	}
}

// OnClose registers fn to run once when the connection ends.
func (c *Client) OnClose(fn func(error)) {
	c.mu.Lock()
	c.onClose = append(c.onClose, fn)
	c.mu.Unlock()
}

func (c *Client) Done() <-chan struct{} { return c.done }

// State returns the newest lobby state received.
func (c *Client) State() (lobby.StateView, bool) { return c.mirror.State() }

func (c *Client) Close() error {
	c.shutdown(ErrClosed)
	return nil
}

func (c *Client) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.timeout()))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *Client) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

func (c *Client) readLoop() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.shutdown(err)
			return
		}
		var base struct {
			Type  string           `json:"type"`
			State *lobby.StateView `json:"state"`
		}
		if err := json.Unmarshal(data, &base); err != nil {
			log.Debug().Err(err).Msg("lobbyclient: undecodable frame")
			continue
		}
		if base.State != nil {
			c.mirror.Apply(*base.State)
		}
		c.dispatch(base.Type, data)
	}
}

func (c *Client) dispatch(typ string, data []byte) {
	c.mu.Lock()
	fns := make([]Handler, 0, len(c.handlers[typ]))
	for _, fn := range c.handlers[typ] {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(data)
	}
}

func (c *Client) shutdown(err error) {
	c.closeOnce.Do(func() {
		c.err = err
		_ = c.conn.Close()
		close(c.done)
		c.mu.Lock()
		fns := append([]func(error){}, c.onClose...)
		c.mu.Unlock()
		for _, fn := range fns {
			fn(err)
		}
	})
}

// Err returns the reason the connection ended, or nil while it is open.
func (c *Client) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}
