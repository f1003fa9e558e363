package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"axis-lobby/internal/lobby"
	"axis-lobby/internal/registry"
	"axis-lobby/internal/relay"

	"github.com/gorilla/websocket"
)

type frame map[string]any

func (f frame) str(key string) string {
	s, _ := f[key].(string)
	return s
}

type testEnv struct {
	srv   *httptest.Server
	reg   *registry.Registry
	store *lobby.Store
	hub   *relay.Hub
}

func (e *testEnv) wsURL() string {
	return "ws" + strings.TrimPrefix(e.srv.URL, "http")
}

func newAuthoritativeEnv(t *testing.T) *testEnv {
	t.Helper()
	reg := registry.New()
	store := lobby.NewStore(NewBroadcaster(reg))
	srv := NewServer(reg, NewAuthoritativeHandler(store, reg), Options{SendBuffer: 64, WriteTimeout: time.Second, LogFrames: true})
	ts := httptest.NewServer(http.HandlerFunc(srv.HandleWS))
	t.Cleanup(ts.Close)
	return &testEnv{srv: ts, reg: reg, store: store}
}

func newRelayEnv(t *testing.T) *testEnv {
	t.Helper()
	reg := registry.New()
	hub := relay.NewHub(NewBroadcaster(reg))
	srv := NewServer(reg, NewRelayHandler(hub, reg), Options{SendBuffer: 64, WriteTimeout: time.Second})
	ts := httptest.NewServer(http.HandlerFunc(srv.HandleWS))
	t.Cleanup(ts.Close)
	return &testEnv{srv: ts, reg: reg, hub: hub}
}

func dial(t *testing.T, env *testEnv) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(env.wsURL(), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	var data []byte
	switch msg := v.(type) {
	case string:
		data = []byte(msg)
	default:
		var err error
		data, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func read(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return f
}

// expect reads the next frame and checks its type.
func expect(t *testing.T, conn *websocket.Conn, typ string) frame {
	t.Helper()
	f := read(t, conn)
	if f.str("type") != typ {
		t.Fatalf("expected %s, got %v", typ, f)
	}
	return f
}

func expectError(t *testing.T, conn *websocket.Conn, reason string) {
	t.Helper()
	f := expect(t, conn, MsgError)
	if f.str("reason") != reason {
		t.Fatalf("expected reason %s, got %v", reason, f)
	}
}

func stateOf(t *testing.T, f frame) lobby.StateView {
	t.Helper()
	raw, err := json.Marshal(f["state"])
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	var view lobby.StateView
	if err := json.Unmarshal(raw, &view); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return view
}

func action(v map[string]any) map[string]any {
	return map[string]any{"type": MsgPlayerAction, "action": v}
}
