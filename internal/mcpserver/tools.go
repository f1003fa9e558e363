package mcpserver

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_server_info",
			mcp.WithDescription("Lobby mode and number of open games"),
		),
		s.handleServerInfo,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_games",
			mcp.WithDescription("List open games with pagination"),
			mcp.WithNumber("limit", mcp.Description("Page size, default 50, max 500")),
			mcp.WithNumber("offset", mcp.Description("Page offset, default 0")),
		),
		s.handleListGames,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_game_state",
			mcp.WithDescription("Full lobby state of one game (authoritative mode only)"),
			mcp.WithString("game_id", mcp.Required(), mcp.Description("Six character game code")),
		),
		s.handleGetGameState,
	)
}

func (s *Server) handleServerInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.games.Health()), nil
}

func (s *Server) handleListGames(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit, offset := clampPagination(request.GetInt("limit", defaultPageLimit), request.GetInt("offset", 0), maxPageLimit)
	resp := s.games.List()
	total := len(resp.Items)
	return toolResult(map[string]any{
		"mode":   resp.Mode,
		"items":  page(resp.Items, limit, offset),
		"total":  total,
		"limit":  limit,
		"offset": offset,
	}), nil
}

func (s *Server) handleGetGameState(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gameID := strings.TrimSpace(request.GetString("game_id", ""))
	if gameID == "" {
		return toolError("invalid_request", "game_id is required"), nil
	}
	state, err := s.games.State(gameID)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(map[string]any{"game_id": state.GameID, "state": state}), nil
}
