package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client is one upgraded websocket connection. Frames are queued on send and
// written by a single writer goroutine.
type Client struct {
	id           string
	conn         *websocket.Conn
	send         chan []byte
	writeTimeout time.Duration

	mu     sync.Mutex
	closed bool
}

func newClient(id string, conn *websocket.Conn, buffer int, writeTimeout time.Duration) *Client {
	if buffer <= 0 {
		buffer = 32
	}
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &Client{id: id, conn: conn, send: make(chan []byte, buffer), writeTimeout: writeTimeout}
}

func (c *Client) ID() string { return c.id }

// Send queues msg without blocking. A client whose queue is full is
// disconnected.
func (c *Client) Send(msg []byte) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	select {
	case c.send <- msg:
		c.mu.Unlock()
		return true
	default:
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()

	metricSlowClientDrops.Add(1)
	log.Warn().Str("conn_id", c.id).Msg("send buffer full, dropping client")
	_ = c.conn.Close()
	return false
}

// Close drops the connection immediately.
func (c *Client) Close() {
	c.closeSend()
	_ = c.conn.Close()
}

// CloseAfterFlush stops accepting frames; the writer sends what is queued,
// then a close frame, then closes the socket.
func (c *Client) CloseAfterFlush() {
	c.closeSend()
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.closeSend()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.closeSend()
				return
			}
		}
	}
}
