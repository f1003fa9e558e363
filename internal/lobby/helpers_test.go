package lobby

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type delivery struct {
	ev Event
	to []string
}

type recorder struct {
	mu  sync.Mutex
	out []delivery
}

func (r *recorder) Publish(ev Event, connIDs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.out = append(r.out, delivery{ev: ev, to: append([]string(nil), connIDs...)})
}

func (r *recorder) eventsFor(connID string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, d := range r.out {
		for _, id := range d.to {
			if id == connID {
				out = append(out, d.ev)
			}
		}
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.out = nil
	r.mu.Unlock()
}

func eventTypes(evs []Event) []string {
	out := make([]string, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Type)
	}
	return out
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func newTestStore(t *testing.T) (*Store, *recorder, *fakeClock) {
	t.Helper()
	rec := &recorder{}
	clock := &fakeClock{now: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)}
	st := NewStore(rec)
	st.now = clock.Now
	return st, rec, clock
}

// newLobby creates a game hosted by Alice and joined by Bob.
func newLobby(t *testing.T, st *Store) string {
	t.Helper()
	view, err := st.Create(CreateParams{Code: "AB12CD", PlayerName: "Alice", ConnID: "conn_alice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := st.Join(JoinParams{Code: view.GameID, PlayerName: "Bob", ConnID: "conn_bob"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	return view.GameID
}

func mustApply(t *testing.T, st *Store, code, name string, a Action) StateView {
	t.Helper()
	view, err := st.Apply(code, name, a)
	if err != nil {
		t.Fatalf("apply %s by %s: %v", a.Type, name, err)
	}
	return view
}

func expectErr(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}
