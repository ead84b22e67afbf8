package mcpserver

import (
	"bytes"
	"context"

	"moodboard/internal/export"

	"github.com/mark3labs/mcp-go/mcp"
)

const boardResourceURI = "moodboard://board"

func (s *Server) registerResources() {
	// ── moodboard://board ──────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		boardResourceURI,
		"Mood Board Items",
		mcp.WithResourceDescription("Every item on the board in the stored record format"),
		mcp.WithMIMEType("application/json"),
	), s.handleBoardResource)
}

func (s *Server) handleBoardResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, s.board.Items()); err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      boardResourceURI,
			MIMEType: "application/json",
			Text:     buf.String(),
		},
	}, nil
}
