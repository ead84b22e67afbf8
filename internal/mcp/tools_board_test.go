package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"moodboard/internal/service"
	"moodboard/internal/storage"

	"github.com/mark3labs/mcp-go/mcp"
)

func newTestServer(t *testing.T) (*Server, *service.MockEmitter) {
	t.Helper()
	emitter := &service.MockEmitter{}
	board := service.NewBoardService(storage.NewMemoryStore(), "", emitter)
	return New(Deps{Emitter: emitter, Board: board}), emitter
}

func callTool(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content %T", res.Content[0])
	}
	return tc.Text
}

func TestAddItems_AutoLayout(t *testing.T) {
	s, emitter := newTestServer(t)
	ctx := context.Background()

	if _, err := s.handleAddImageItem(ctx, callTool(map[string]any{"url": "http://x/a.png"})); err != nil {
		t.Fatalf("add image: %v", err)
	}
	res, err := s.handleAddTextItem(ctx, callTool(map[string]any{"text": "warm tones"}))
	if err != nil {
		t.Fatalf("add text: %v", err)
	}

	var got itemSummary
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Index != 1 || got.Content != "warm tones" {
		t.Errorf("unexpected summary %+v", got)
	}
	if got.Left == 0 && got.Top == 0 {
		t.Error("second item should not land on the first")
	}
	if emitter.Count("mcp:board-changed") != 2 {
		t.Errorf("expected 2 change events, got %v", emitter.Names())
	}
}

func TestAddItem_ExplicitPositionAndBlank(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	if _, err := s.handleAddTextItem(ctx, callTool(map[string]any{"text": "x", "left": 10.0, "top": 20.0})); err != nil {
		t.Fatalf("add: %v", err)
	}
	items := s.board.Items()
	if items[0].Position.Left != 10 || items[0].Position.Top != 20 {
		t.Errorf("position ignored: %+v", items[0].Position)
	}

	if _, err := s.handleAddTextItem(ctx, callTool(map[string]any{"text": "   "})); err == nil {
		t.Error("expected error for blank text")
	}
}

func TestAddItem_ReplyDescribesInsertedItem(t *testing.T) {
	ctx := context.Background()
	var board *service.BoardService
	cleared := false
	// Another writer wipes the board right after the insert lands.
	events := service.EmitterFunc(func(ctx context.Context, event string, _ any) {
		if event == service.EventItemPlaced && !cleared {
			cleared = true
			if err := board.ClearBoard(ctx); err != nil {
				t.Errorf("clear: %v", err)
			}
		}
	})
	board = service.NewBoardService(storage.NewMemoryStore(), "", events)
	s := New(Deps{Emitter: &service.MockEmitter{}, Board: board})

	res, err := s.handleAddTextItem(ctx, callTool(map[string]any{"text": "  raced  ", "left": 12.0, "top": 34.0}))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	var got itemSummary
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("reply is not an item summary: %v", err)
	}
	want := itemSummary{Index: 0, Kind: "text", Content: "raced", Left: 12, Top: 34}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if n := len(board.Items()); n != 0 {
		t.Errorf("expected the board to be cleared, has %d item(s)", n)
	}
}

func TestListItems_FilterByKind(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()
	s.handleAddImageItem(ctx, callTool(map[string]any{"url": "http://x/a.png"}))
	s.handleAddTextItem(ctx, callTool(map[string]any{"text": "note"}))

	res, err := s.handleListItems(ctx, callTool(map[string]any{"kind": "image"}))
	if err != nil {
		t.Fatal(err)
	}
	var got []itemSummary
	json.Unmarshal([]byte(resultText(t, res)), &got)
	if len(got) != 1 || got[0].Kind != "image" {
		t.Errorf("unexpected filter result %+v", got)
	}
}

func TestMoveItem(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()
	s.handleAddTextItem(ctx, callTool(map[string]any{"text": "note"}))

	if _, err := s.handleMoveItem(ctx, callTool(map[string]any{"index": 0.0, "left": 50.0, "top": 60.0})); err != nil {
		t.Fatalf("move: %v", err)
	}
	if pos := s.board.Items()[0].Position; pos.Left != 50 || pos.Top != 60 {
		t.Errorf("position = %+v", pos)
	}

	_, err := s.handleMoveItem(ctx, callTool(map[string]any{"index": 3.0, "left": 1.0, "top": 1.0}))
	if err == nil || !strings.Contains(err.Error(), "no item at index 3") {
		t.Errorf("expected index error, got %v", err)
	}
	if _, err := s.handleMoveItem(ctx, callTool(map[string]any{"left": 1.0, "top": 1.0})); err == nil {
		t.Error("expected error without index")
	}
}

func TestArrangeItems(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		s.handleAddImageItem(ctx, callTool(map[string]any{"url": "http://x/a.png", "left": 0.0, "top": 0.0}))
	}

	if _, err := s.handleArrangeItems(ctx, callTool(nil)); err != nil {
		t.Fatalf("arrange: %v", err)
	}
	items := s.board.Items()
	if items[0].Position.Left == items[1].Position.Left && items[0].Position.Top == items[1].Position.Top {
		t.Error("items still stacked after arrange")
	}
}

func TestClearBoard_RequiresConfirm(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()
	s.handleAddTextItem(ctx, callTool(map[string]any{"text": "note"}))

	res, err := s.handleClearBoard(ctx, callTool(map[string]any{}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resultText(t, res), "not cleared") || len(s.board.Items()) != 1 {
		t.Error("board cleared without confirmation")
	}

	if _, err := s.handleClearBoard(ctx, callTool(map[string]any{"confirm": true})); err != nil {
		t.Fatal(err)
	}
	if n := len(s.board.Items()); n != 0 {
		t.Errorf("expected empty board, got %d", n)
	}
}

func TestExportBoardJSON(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()
	s.handleAddImageItem(ctx, callTool(map[string]any{"url": "http://x/a.png", "left": 10.0, "top": 20.0}))

	res, err := s.handleExportBoardJSON(ctx, callTool(nil))
	if err != nil {
		t.Fatal(err)
	}
	items, err := service.DecodeBoard(resultText(t, res))
	if err != nil || len(items) != 1 || items[0].Content != "http://x/a.png" {
		t.Errorf("export = %v %+v", err, items)
	}
}
