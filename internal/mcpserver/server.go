package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"axis-lobby/internal/app/games"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "axis-lobby"
	serverVersion = "0.1.0"
)

// Server exposes read-only lobby introspection over MCP.
type Server struct {
	games *games.Service

	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
}

func New(svc *games.Service) *Server {
	mcpSrv := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithResourceRecovery(),
	)
	s := &Server{
		games:      svc,
		mcpServer:  mcpSrv,
		httpServer: server.NewStreamableHTTPServer(mcpSrv, server.WithStateLess(true), server.WithDisableStreaming(true)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer
}

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"game://{game_id}/state",
			"game_state",
			mcp.WithTemplateDescription("Authoritative lobby state by game id"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			raw := request.Params.URI
			gameID, ok := parseStateURI(raw)
			if !ok {
				return nil, fmt.Errorf("invalid resource uri %q", raw)
			}
			state, err := s.games.State(gameID)
			if err != nil {
				return nil, err
			}
			payload, err := json.Marshal(map[string]any{
				"game_id": state.GameID,
				"state":   state,
			})
			if err != nil {
				return nil, err
			}
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      raw,
					MIMEType: "application/json",
					Text:     string(payload),
				},
			}, nil
		},
	)
}

func parseStateURI(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "game://") || !strings.HasSuffix(raw, "/state") {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(raw, "game://"), "/state")
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
