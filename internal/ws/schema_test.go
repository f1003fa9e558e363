package ws

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
	"testing"

	"axis-lobby/internal/lobby"
	"axis-lobby/internal/registry"
	"axis-lobby/internal/relay"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

type captureConn struct {
	id string
	mu *sync.Mutex
	to *[][]byte
}

func (c captureConn) ID() string { return c.id }

func (c captureConn) Send(msg []byte) bool {
	c.mu.Lock()
	*c.to = append(*c.to, msg)
	c.mu.Unlock()
	return true
}

func (c captureConn) Close() {}

func TestOutboundFramesMatchSchema(t *testing.T) {
	compiler := jsonschema.NewCompiler()
	data, err := os.ReadFile("../../api/schema/lobby_v1.schema.json")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if err := compiler.AddResource("lobby_v1.schema.json", strings.NewReader(string(data))); err != nil {
		t.Fatalf("add resource: %v", err)
	}
	schema, err := compiler.Compile("lobby_v1.schema.json")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	var mu sync.Mutex
	var frames [][]byte
	reg := registry.New()
	for _, id := range []string{"a", "b", "h", "c"} {
		reg.Register(captureConn{id: id, mu: &mu, to: &frames})
	}
	b := NewBroadcaster(reg)

	store := lobby.NewStore(b)
	view, err := store.Create(lobby.CreateParams{PlayerName: "Alice", ConnID: "a"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	code := view.GameID
	if _, err := store.Join(lobby.JoinParams{Code: code, PlayerName: "Bob", ConnID: "b"}); err != nil {
		t.Fatalf("join: %v", err)
	}
	steps := []lobby.Action{
		{Type: lobby.ActionJoinTeam, Team: lobby.TeamAxis},
		{Type: lobby.ActionAssignCountry, CountryID: "germany"},
		{Type: lobby.ActionSetReady, Ready: true},
		{Type: lobby.ActionStartGame},
	}
	for _, a := range steps {
		if _, err := store.Apply(code, "Alice", a); err != nil {
			t.Fatalf("apply %s: %v", a.Type, err)
		}
	}
	store.MarkDisconnected(code, "Bob", "b")
	if _, err := store.Join(lobby.JoinParams{Code: code, PlayerName: "Bob", ConnID: "b"}); err != nil {
		t.Fatalf("rejoin: %v", err)
	}

	hub := relay.NewHub(b)
	m, err := hub.Create("", "", "h")
	if err != nil {
		t.Fatalf("relay create: %v", err)
	}
	if _, err := hub.Join(m.GameID, "", "c"); err != nil {
		t.Fatalf("relay join: %v", err)
	}
	_ = hub.HostUpdate(m.GameID, "h", json.RawMessage(`{"turn":1}`))
	_ = hub.ClientAction(m.GameID, "c", json.RawMessage(`"buy"`))
	hub.Disconnect(m.GameID, "h")

	for _, reason := range []string{ReasonInvalidJSON, ReasonUnknownMessageType, "wrong_team", ReasonNotClient} {
		raw, _ := json.Marshal(ErrorMessage{Type: MsgError, Reason: reason})
		frames = append(frames, raw)
	}

	seen := map[string]bool{}
	for i, raw := range frames {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			t.Fatalf("unmarshal frame %d: %v", i, err)
		}
		if err := schema.Validate(v); err != nil {
			t.Fatalf("frame %d %s: %v", i, raw, err)
		}
		seen[v.(map[string]any)["type"].(string)] = true
	}
	for _, typ := range []string{
		"game_created", "joined_game", "rejoined_game", "state_update", "game_started",
		"player_joined", "player_disconnected", "player_reconnected",
		"client_joined", "host_update", "client_action", "game_closed", "error",
	} {
		if !seen[typ] {
			t.Fatalf("no %s frame produced", typ)
		}
	}
}
