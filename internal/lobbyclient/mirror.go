package lobbyclient

import (
	"sync"

	"axis-lobby/internal/lobby"
)

// Mirror holds the newest lobby state seen by a client.
type Mirror struct {
	mu    sync.RWMutex
	state lobby.StateView
	ok    bool
}

// Apply stores view unless it is older than the state already held for the
// same game. It reports whether the view was kept.
func (m *Mirror) Apply(view lobby.StateView) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ok && view.GameID == m.state.GameID && view.Version < m.state.Version {
		return false
	}
	m.state = view
	m.ok = true
	return true
}

func (m *Mirror) State() (lobby.StateView, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state, m.ok
}
