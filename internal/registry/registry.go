// Package registry tracks live connections and the game membership attached
// to each of them. Sessions refer to connections only by id.
package registry

import "sync"

const (
	RoleHost   = "host"
	RoleClient = "client"
	RolePlayer = "player"
)

// Conn is the part of a live connection the rest of the server needs.
type Conn interface {
	ID() string
	// Send enqueues a frame without blocking and reports whether it was accepted.
	Send(msg []byte) bool
	Close()
}

// Binding is the game membership recorded for a connection once it has
// created or joined a game.
type Binding struct {
	GameID string
	Member string
	Role   string
}

type entry struct {
	conn    Conn
	binding Binding
	bound   bool
}

type Registry struct {
	mu    sync.RWMutex
	conns map[string]*entry
}

func New() *Registry {
	return &Registry{conns: map[string]*entry{}}
}

func (r *Registry) Register(c Conn) {
	if c == nil {
		return
	}
	r.mu.Lock()
	r.conns[c.ID()] = &entry{conn: c}
	r.mu.Unlock()
}

// Bind records the game membership for connID. It is a no-op for unknown ids.
func (r *Registry) Bind(connID string, b Binding) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[connID]
	if !ok {
		return false
	}
	e.binding = b
	e.bound = true
	return true
}

// Unbind clears the membership but keeps the connection registered.
func (r *Registry) Unbind(connID string) {
	r.mu.Lock()
	if e, ok := r.conns[connID]; ok {
		e.binding = Binding{}
		e.bound = false
	}
	r.mu.Unlock()
}

func (r *Registry) Lookup(connID string) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[connID]
	if !ok || !e.bound {
		return Binding{}, false
	}
	return e.binding, true
}

func (r *Registry) Conn(connID string) (Conn, bool) {
	if connID == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[connID]
	if !ok {
		return nil, false
	}
	return e.conn, true
}

// Unregister removes the connection and returns the binding it held, if any.
func (r *Registry) Unregister(connID string) (Binding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[connID]
	if !ok {
		return Binding{}, false
	}
	delete(r.conns, connID)
	return e.binding, e.bound
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
