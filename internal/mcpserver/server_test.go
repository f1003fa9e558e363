package mcpserver

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"

	"axis-lobby/internal/app/games"
	"axis-lobby/internal/lobby"
	"axis-lobby/internal/relay"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
)

func TestMCPToolsAuthoritative(t *testing.T) {
	store := lobby.NewStore(nil)
	if _, err := store.Create(lobby.CreateParams{Code: "AB12CD", PlayerName: "Alice", ConnID: "c1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Create(lobby.CreateParams{Code: "CD34EF", PlayerName: "Carol", ConnID: "c2"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	srv := New(games.NewAuthoritative(store))
	httpSrv := httptest.NewServer(srv.Handler())
	defer httpSrv.Close()

	mcpClient, closeClient := newMCPClient(t, httpSrv.URL+"/mcp")
	defer closeClient()

	assertToolNames(t, mustListTools(t, mcpClient), "get_server_info", "list_games", "get_game_state")

	info := decode[games.HealthResponse](t, mustCallTool(t, mcpClient, "get_server_info", map[string]any{}))
	if info.Mode != "authoritative" || info.Games != 2 {
		t.Fatalf("server info = %+v", info)
	}

	list := mustCallTool(t, mcpClient, "list_games", map[string]any{"limit": 1, "offset": 1})
	if list.IsError {
		t.Fatalf("list_games failed: %v", list.StructuredContent)
	}
	listed := decode[struct {
		Items []games.GameItem `json:"items"`
		Total int              `json:"total"`
	}](t, list)
	if listed.Total != 2 || len(listed.Items) != 1 {
		t.Fatalf("list_games = %+v", listed)
	}

	stateRes := mustCallTool(t, mcpClient, "get_game_state", map[string]any{"game_id": "ab12cd"})
	if stateRes.IsError {
		t.Fatalf("get_game_state failed: %v", stateRes.StructuredContent)
	}
	got := decode[struct {
		GameID string          `json:"game_id"`
		State  lobby.StateView `json:"state"`
	}](t, stateRes)
	if got.GameID != "AB12CD" || len(got.State.Players) != 1 || got.State.Players[0].Name != "Alice" {
		t.Fatalf("get_game_state = %+v", got)
	}

	missing := mustCallTool(t, mcpClient, "get_game_state", map[string]any{"game_id": "ZZZZZZ"})
	assertToolErrorCode(t, missing, "game_not_found")
}

func TestMCPGameStateUnavailableInRelayMode(t *testing.T) {
	hub := relay.NewHub(nopSink{})
	if _, err := hub.Create("ROOM01", "", "c1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	srv := New(games.NewRelay(hub))
	httpSrv := httptest.NewServer(srv.Handler())
	defer httpSrv.Close()

	mcpClient, closeClient := newMCPClient(t, httpSrv.URL+"/mcp")
	defer closeClient()

	res := mustCallTool(t, mcpClient, "get_game_state", map[string]any{"game_id": "ROOM01"})
	assertToolErrorCode(t, res, "state_unavailable")
}

func TestParseStateURI(t *testing.T) {
	cases := map[string]string{
		"game://AB12CD/state":  "AB12CD",
		"game:///state":        "",
		"game://AB/CD/state":   "",
		"table://AB12CD/state": "",
	}
	for uri, want := range cases {
		got, ok := parseStateURI(uri)
		if got != want || ok != (want != "") {
			t.Fatalf("parseStateURI(%q) = %q, %v", uri, got, ok)
		}
	}
}

type nopSink struct{}

func (nopSink) Deliver(relay.Message, []string) {}
func (nopSink) CloseAfterFlush([]string) {}

func decode[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	var out T
	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode structured content %s: %v", raw, err)
	}
	return out
}

func assertToolErrorCode(t *testing.T, res *mcp.CallToolResult, code string) {
	t.Helper()
	if !res.IsError {
		t.Fatalf("expected tool error %s, got %v", code, res.StructuredContent)
	}
	body := decode[struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}](t, res)
	if body.Error.Code != code {
		t.Fatalf("error code = %q, want %q", body.Error.Code, code)
	}
}

func newMCPClient(t *testing.T, endpoint string) (*client.Client, func()) {
	t.Helper()
	ctx := context.Background()
	trans, err := transport.NewStreamableHTTP(endpoint)
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}
	if err := trans.Start(ctx); err != nil {
		t.Fatalf("transport start: %v", err)
	}
	c := client.NewClient(trans)
	_, err = c.Initialize(ctx, mcp.InitializeRequest{Params: mcp.InitializeParams{ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION}})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return c, func() { _ = trans.Close() }
}

func mustListTools(t *testing.T, c *client.Client) []mcp.Tool {
	t.Helper()
	res, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	return res.Tools
}

func assertToolNames(t *testing.T, tools []mcp.Tool, expected ...string) {
	t.Helper()
	got := make([]string, 0, len(tools))
	for _, tool := range tools {
		got = append(got, tool.Name)
	}
	sort.Strings(got)
	sort.Strings(expected)
	if len(got) != len(expected) {
		t.Fatalf("tool count mismatch got=%v expected=%v", got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("tool list mismatch got=%v expected=%v", got, expected)
		}
	}
}

func mustCallTool(t *testing.T, c *client.Client, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := c.CallTool(context.Background(), mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}})
	if err != nil {
		t.Fatalf("call tool %s: %v", name, err)
	}
	return res
}
