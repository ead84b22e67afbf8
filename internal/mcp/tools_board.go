package mcpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"moodboard/internal/domain"
	"moodboard/internal/export"
	"moodboard/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerBoardTools() {
	// ── list_items ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_items",
		mcp.WithDescription("List every item on the mood board in display order. The index is the item's identity."),
		mcp.WithString("kind", mcp.Description("Filter by kind: image or text (optional)")),
	), s.handleListItems)

	// ── add_text_item ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_text_item",
		mcp.WithDescription("Pin a text note to the board. Position is auto-calculated if not provided."),
		mcp.WithString("text", mcp.Description("Note text"), mcp.Required()),
		mcp.WithNumber("left", mcp.Description("Left offset in board pixels (optional)")),
		mcp.WithNumber("top", mcp.Description("Top offset in board pixels (optional)")),
	), s.handleAddTextItem)

	// ── add_image_item ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_image_item",
		mcp.WithDescription("Pin an image to the board by URL. Position is auto-calculated if not provided."),
		mcp.WithString("url", mcp.Description("Image URL"), mcp.Required()),
		mcp.WithNumber("left", mcp.Description("Left offset in board pixels (optional)")),
		mcp.WithNumber("top", mcp.Description("Top offset in board pixels (optional)")),
	), s.handleAddImageItem)

	// ── move_item ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_item",
		mcp.WithDescription("Move an item to a new position on the board"),
		mcp.WithNumber("index", mcp.Description("Item index from list_items"), mcp.Required()),
		mcp.WithNumber("left", mcp.Description("New left offset"), mcp.Required()),
		mcp.WithNumber("top", mcp.Description("New top offset"), mcp.Required()),
	), s.handleMoveItem)

	// ── arrange_items ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("arrange_items",
		mcp.WithDescription("Auto-arrange all items in rows, keeping their order"),
		mcp.WithNumber("left", mcp.Description("Starting left offset (default 0)")),
		mcp.WithNumber("top", mcp.Description("Starting top offset (default 0)")),
	), s.handleArrangeItems)

	// ── clear_board (destructive) ──────────────────────
	s.mcp.AddTool(mcp.NewTool("clear_board",
		mcp.WithDescription("🛑 DESTRUCTIVE: Remove every item from the board. Pass confirm=true."),
		mcp.WithBoolean("confirm", mcp.Description("Must be true"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleClearBoard)

	// ── export_board_json ──────────────────────────────
	s.mcp.AddTool(mcp.NewTool("export_board_json",
		mcp.WithDescription("Return the board in its stored JSON record format"),
	), s.handleExportBoardJSON)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleListItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	summaries := summarizeItems(s.board.Items())

	if kind, ok := args["kind"].(string); ok && kind != "" {
		filtered := []itemSummary{}
		for _, it := range summaries {
			if string(it.Kind) == kind {
				filtered = append(filtered, it)
			}
		}
		return jsonResult(filtered)
	}
	return jsonResult(summaries)
}

func (s *Server) handleAddTextItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	text, _ := args["text"].(string)
	return s.addItem(ctx, args, domain.ItemKindText, text)
}

func (s *Server) handleAddImageItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	url, _ := args["url"].(string)
	return s.addItem(ctx, args, domain.ItemKindImage, url)
}

func (s *Server) addItem(ctx context.Context, args map[string]any, kind domain.ItemKind, content string) (*mcp.CallToolResult, error) {
	// Auto-layout if position not provided
	left, hasLeft := args["left"].(float64)
	top, hasTop := args["top"].(float64)
	if !hasLeft || !hasTop {
		w, h := Footprint(kind, content)
		left, top = s.layout.NextPosition(s.board.Items(), w, h)
	}

	index, item, err := s.board.InsertItem(ctx, kind, content, domain.Position{Left: left, Top: top})
	if err != nil {
		return nil, fmt.Errorf("add %s item: %w", kind, err)
	}

	s.emitBoardChanged(ctx)
	return jsonResult(summarizeItem(index, item))
}

func (s *Server) handleMoveItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	index, err := getIndex(args)
	if err != nil {
		return nil, err
	}
	left, okL := args["left"].(float64)
	top, okT := args["top"].(float64)
	if !okL || !okT {
		return nil, fmt.Errorf("left and top are required")
	}

	if err := s.board.MoveItem(ctx, index, domain.Position{Left: left, Top: top}); err != nil {
		if errors.Is(err, service.ErrIndexOutOfRange) {
			return nil, fmt.Errorf("no item at index %d (use list_items)", index)
		}
		return nil, fmt.Errorf("move item: %w", err)
	}

	s.emitBoardChanged(ctx)
	return textResult(fmt.Sprintf("Item %d moved to (%g, %g)", index, left, top)), nil
}

func (s *Server) handleArrangeItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	items := s.board.Items()
	positions := s.layout.Arrange(items, getFloat(args, "left", 0), getFloat(args, "top", 0))

	for i, pos := range positions {
		if err := s.board.MoveItem(ctx, i, pos); err != nil {
			return nil, fmt.Errorf("arrange item %d: %w", i, err)
		}
	}

	s.emitBoardChanged(ctx)
	return textResult(fmt.Sprintf("Arranged %d item(s)", len(positions))), nil
}

func (s *Server) handleClearBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	if confirm, _ := args["confirm"].(bool); !confirm {
		return textResult("Board not cleared: confirm must be true"), nil
	}

	n := len(s.board.Items())
	if err := s.board.ClearBoard(ctx); err != nil {
		return nil, fmt.Errorf("clear board: %w", err)
	}

	s.emitBoardChanged(ctx)
	return textResult(fmt.Sprintf("Board cleared (%d item(s) removed)", n)), nil
}

func (s *Server) handleExportBoardJSON(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, s.board.Items()); err != nil {
		return nil, err
	}
	return textResult(buf.String()), nil
}
