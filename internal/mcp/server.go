package mcpserver

import (
	"context"
	"log/slog"

	"moodboard/internal/domain"
	"moodboard/internal/service"

	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for the mood board.
// It exposes tools, resources, and prompts so AI agents can pin images and
// notes to the board.
type Server struct {
	mcp     *server.MCPServer
	emitter service.EventEmitter
	layout  *LayoutEngine

	board *service.BoardService
}

// Deps holds all dependencies passed from the App layer to the MCP server.
type Deps struct {
	Emitter service.EventEmitter
	Board   *service.BoardService
}

// New creates and configures a new MCP server with all tools and resources.
func New(deps Deps) *Server {
	s := &Server{
		emitter: deps.Emitter,
		layout:  NewLayoutEngine(),
		board:   deps.Board,
	}

	s.mcp = server.NewMCPServer(
		"moodboard-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerBoardTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	slog.Info("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// emitBoardChanged notifies front-ends that the board was edited by an agent.
func (s *Server) emitBoardChanged(ctx context.Context) {
	if s.emitter != nil {
		s.emitter.Emit(ctx, "mcp:board-changed", nil)
	}
}

// itemSummary is the JSON shape agents see for each item.
type itemSummary struct {
	Index   int             `json:"index"`
	Kind    domain.ItemKind `json:"kind"`
	Content string          `json:"content"`
	Left    float64         `json:"left"`
	Top     float64         `json:"top"`
}

func summarizeItems(items []domain.Item) []itemSummary {
	out := make([]itemSummary, len(items))
	for i, it := range items {
		out[i] = summarizeItem(i, it)
	}
	return out
}

func summarizeItem(index int, it domain.Item) itemSummary {
	return itemSummary{
		Index:   index,
		Kind:    it.Kind,
		Content: it.Content,
		Left:    it.Position.Left,
		Top:     it.Position.Top,
	}
}

