package tui

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"moodboard/internal/config"
	"moodboard/internal/domain"
	"moodboard/internal/service"
	"moodboard/internal/storage"
)

func newTestModel(t *testing.T) (Model, *service.BoardService) {
	t.Helper()
	board := service.NewBoardService(storage.NewMemoryStore(), service.DefaultBoardKey, nil)
	board.LoadBoard(context.Background())
	m := New(context.Background(), board, config.Default(), Options{ExportDir: t.TempDir()})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	return m, board
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func mouse(x, y int, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func TestMetrics(t *testing.T) {
	mt := Metrics{CellWidth: 8, CellHeight: 16, OriginRow: 3}
	p := mt.ToBoard(10, 5)
	if p.X != 80 || p.Y != 32 {
		t.Errorf("ToBoard = %+v", p)
	}
	col, row := mt.ToCell(domain.Position{Left: 17, Top: 31})
	if col != 2 || row != 1 {
		t.Errorf("ToCell = %d,%d", col, row)
	}
	col, row = mt.ToCell(domain.Position{Left: -1, Top: -1})
	if col != -1 || row != -1 {
		t.Errorf("negative ToCell = %d,%d", col, row)
	}
	if !mt.OnBoard(0, 3, 80, 10) || !mt.OnBoard(79, 12, 80, 10) {
		t.Error("cells inside the board reported outside")
	}
	if mt.OnBoard(0, 2, 80, 10) || mt.OnBoard(0, 13, 80, 10) || mt.OnBoard(80, 5, 80, 10) || mt.OnBoard(-1, 5, 80, 10) {
		t.Error("cells outside the board reported inside")
	}
}

func TestLabel(t *testing.T) {
	if got := label(domain.ItemKindImage, "http://x/a.png"); got != "▣ http://x/a.png" {
		t.Errorf("image label = %q", got)
	}
	if got := label(domain.ItemKindText, "first\nsecond"); got != "first …" {
		t.Errorf("multi-line label = %q", got)
	}
	long := strings.Repeat("a", 100)
	if got := []rune(label(domain.ItemKindText, long)); len(got) != maxTextLabel || got[len(got)-1] != '…' {
		t.Errorf("long label not truncated: %q", string(got))
	}
}

func TestHitTest_TopmostWins(t *testing.T) {
	boxes := []cellBox{
		{index: 0, col: 0, row: 0, text: "aaaaaaaa"},
		{index: 1, col: 4, row: 0, text: "bbbb"},
		{index: -1, col: 0, row: 0, text: "pending"},
	}
	if i, ok := hitTest(boxes, 5, 0); !ok || i != 1 {
		t.Errorf("hit = %d,%v want 1", i, ok)
	}
	if i, ok := hitTest(boxes, 1, 0); !ok || i != 0 {
		t.Errorf("hit = %d,%v want 0 (pending is not draggable)", i, ok)
	}
	if _, ok := hitTest(boxes, 1, 1); ok {
		t.Error("expected miss on empty row")
	}
}

func TestCanvasClipsAndRenders(t *testing.T) {
	c := newCanvas(5, 2)
	c.draw(cellBox{col: 3, row: 0, text: "abcd"})
	c.draw(cellBox{col: 0, row: 5, text: "zz"})
	lines := strings.Split(c.render(), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || strings.Contains(lines[0], "c") {
		t.Errorf("row not clipped: %q", lines[0])
	}
}

func TestCanvasWideRunes(t *testing.T) {
	c := newCanvas(6, 1)
	c.draw(cellBox{col: 0, row: 0, text: "日本"})
	c.draw(cellBox{col: 5, row: 0, text: "語"}) // would straddle the edge
	if got := c.render(); got != "日本  " {
		t.Fatalf("render = %q", got)
	}

	// Overwriting the second half of a wide rune blanks its first half.
	c.draw(cellBox{col: 1, row: 0, text: "x"})
	got := c.render()
	if got != " x本  " {
		t.Errorf("render after overlap = %q", got)
	}
	if w := runewidth.StringWidth(got); w != 6 {
		t.Errorf("row is %d cells wide, want 6", w)
	}
}

func TestHitTest_WideLabel(t *testing.T) {
	boxes := []cellBox{{index: 0, col: 2, row: 0, text: "日本語"}}
	if i, ok := hitTest(boxes, 7, 0); !ok || i != 0 {
		t.Errorf("last cell of a wide label missed: %d,%v", i, ok)
	}
	if _, ok := hitTest(boxes, 8, 0); ok {
		t.Error("cell past a wide label hit")
	}
	if got := runewidth.StringWidth(label(domain.ItemKindText, strings.Repeat("語", 30))); got > maxTextLabel {
		t.Errorf("wide label is %d cells, limit %d", got, maxTextLabel)
	}
}

func TestSubmitCreatesPendingWithoutTouchingBoard(t *testing.T) {
	m, board := newTestModel(t)
	m = typeText(t, m, "http://x/a.png")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	pv, ok := board.PendingView()
	if !ok {
		t.Fatal("expected a pending item")
	}
	if pv.Kind != domain.ItemKindImage || pv.Content != "http://x/a.png" {
		t.Errorf("pending = %+v", pv)
	}
	if len(board.Items()) != 0 {
		t.Error("board changed before placement")
	}
	if m.inputs[focusImage].Value() != "" {
		t.Error("input not cleared after submit")
	}
}

func TestSubmitBlankIgnored(t *testing.T) {
	m, board := newTestModel(t)
	m = typeText(t, m, "   ")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := board.PendingView(); ok {
		t.Error("blank input created a pending item")
	}
	if m.Status() != "" {
		t.Errorf("unexpected status %q", m.Status())
	}
}

func TestTabSwitchesInputs(t *testing.T) {
	m, board := newTestModel(t)
	if m.Focused() != "image" {
		t.Fatalf("initial focus = %s", m.Focused())
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Focused() != "text" {
		t.Fatalf("focus after tab = %s", m.Focused())
	}
	m = typeText(t, m, "hello")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	pv, ok := board.PendingView()
	if !ok || pv.Kind != domain.ItemKindText {
		t.Errorf("expected pending text item, got %+v", pv)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Focused() != "board" {
		t.Errorf("focus after second tab = %s", m.Focused())
	}
}

func TestPlaceAndDrag(t *testing.T) {
	m, board := newTestModel(t)
	m = typeText(t, m, "http://x/a.png")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Label is 16 cells wide, 128x16 px, centred on (80,32).
	m = update(t, m, mouse(10, 5, tea.MouseActionMotion))
	pv, _ := board.PendingView()
	if pv.Position != (domain.Position{Left: 16, Top: 24}) {
		t.Errorf("pending follows at %+v", pv.Position)
	}
	m = update(t, m, mouse(10, 5, tea.MouseActionPress))
	items := board.Items()
	if len(items) != 1 || items[0].Position != (domain.Position{Left: 16, Top: 24}) {
		t.Fatalf("placed items = %+v", items)
	}
	if _, ok := board.PendingView(); ok {
		t.Error("pending survived placement")
	}

	// Item sits at cell (2,1) on the board, terminal row 4.
	m = update(t, m, mouse(3, 4, tea.MouseActionPress))
	if m.dragging != 0 {
		t.Fatalf("drag did not start, dragging = %d", m.dragging)
	}
	m = update(t, m, mouse(13, 9, tea.MouseActionMotion))
	if m.dragAt != (domain.Position{Left: 96, Top: 104}) {
		t.Errorf("drag preview at %+v", m.dragAt)
	}
	if board.Items()[0].Position != (domain.Position{Left: 16, Top: 24}) {
		t.Error("board moved before release")
	}
	m = update(t, m, mouse(13, 9, tea.MouseActionRelease))
	if m.dragging != -1 {
		t.Error("drag still active after release")
	}
	if got := board.Items()[0].Position; got != (domain.Position{Left: 96, Top: 104}) {
		t.Errorf("final position = %+v", got)
	}
}

func TestDragEndsWhenBoardCleared(t *testing.T) {
	m, board := newTestModel(t)
	ctx := context.Background()
	if _, _, err := board.InsertItem(ctx, domain.ItemKindText, "note", domain.Position{Left: 16, Top: 16}); err != nil {
		t.Fatal(err)
	}

	m = update(t, m, mouse(3, 4, tea.MouseActionPress))
	if m.dragging != 0 {
		t.Fatalf("drag did not start, dragging = %d", m.dragging)
	}
	if err := board.ClearBoard(ctx); err != nil {
		t.Fatal(err)
	}
	m = update(t, m, boardEventMsg{event: service.EventBoardCleared})
	if m.dragging != -1 {
		t.Error("drag survived a clear")
	}
	m = update(t, m, mouse(10, 10, tea.MouseActionRelease))
	if n := len(board.Items()); n != 0 {
		t.Errorf("release after clear recreated %d item(s)", n)
	}
}

func TestReleaseAfterClearReportsNothingMoved(t *testing.T) {
	m, board := newTestModel(t)
	ctx := context.Background()
	if _, _, err := board.InsertItem(ctx, domain.ItemKindText, "note", domain.Position{Left: 16, Top: 16}); err != nil {
		t.Fatal(err)
	}
	m = update(t, m, mouse(3, 4, tea.MouseActionPress))
	if err := board.ClearBoard(ctx); err != nil {
		t.Fatal(err)
	}
	// No event delivered: the release itself must notice.
	m = update(t, m, mouse(10, 10, tea.MouseActionRelease))
	if m.Status() != "item is no longer on the board" {
		t.Errorf("status = %q", m.Status())
	}
	if n := len(board.Items()); n != 0 {
		t.Errorf("board has %d item(s)", n)
	}
}

func TestClickOutsideBoardDoesNotPlace(t *testing.T) {
	m, board := newTestModel(t)
	m = typeText(t, m, "note")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, mouse(5, 29, tea.MouseActionPress)) // status line
	if len(board.Items()) != 0 {
		t.Error("click on the status line placed an item")
	}
	if _, ok := board.PendingView(); !ok {
		t.Error("pending item lost")
	}
}

func TestEscCancelsPending(t *testing.T) {
	m, board := newTestModel(t)
	m = typeText(t, m, "http://x/b.png")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := board.PendingView(); ok {
		t.Error("esc did not cancel the pending item")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Focused() != "board" {
		t.Errorf("second esc should leave the inputs, focus = %s", m.Focused())
	}
}

func TestClearBoardNeedsConfirmation(t *testing.T) {
	m, board := newTestModel(t)
	ctx := context.Background()
	if _, _, err := board.InsertItem(ctx, domain.ItemKindText, "keep", domain.Position{}); err != nil {
		t.Fatal(err)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	m = typeText(t, m, "n")
	if len(board.Items()) != 1 {
		t.Fatal("board cleared without confirmation")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	m = typeText(t, m, "y")
	if len(board.Items()) != 0 {
		t.Error("board not cleared after confirmation")
	}
	if m.Status() != "board cleared" {
		t.Errorf("status = %q", m.Status())
	}
}

func TestQuitOnlyFromBoardFocus(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "q")
	if m.inputs[focusImage].Value() != "q" {
		t.Errorf("q not typed, input = %q", m.inputs[focusImage].Value())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q on the board did not quit")
	}
}

func TestPasteAppendsToFocusedInput(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "hi ")
	m = update(t, m, clipboardMsg{text: " there\n"})
	if got := m.inputs[focusText].Value(); got != "hi there" {
		t.Errorf("text input = %q", got)
	}
}

func TestExportPNG(t *testing.T) {
	m, board := newTestModel(t)
	m.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	m = update(t, m, cmd())
	if m.Status() != "nothing to export" {
		t.Errorf("status on empty board = %q", m.Status())
	}

	if _, _, err := board.InsertItem(context.Background(), domain.ItemKindText, "hello", domain.Position{Left: 10, Top: 10}); err != nil {
		t.Fatal(err)
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	done := cmd().(exportDoneMsg)
	if done.err != nil {
		t.Fatalf("export: %v", done.err)
	}
	if !strings.HasSuffix(done.path, "moodboard-20260102-030405.png") {
		t.Errorf("path = %s", done.path)
	}
	if _, err := os.Stat(done.path); err != nil {
		t.Errorf("png not written: %v", err)
	}
}

func TestViewShowsItems(t *testing.T) {
	m, board := newTestModel(t)
	if _, _, err := board.InsertItem(context.Background(), domain.ItemKindText, "hello board", domain.Position{Left: 80, Top: 32}); err != nil {
		t.Fatal(err)
	}
	out := m.View()
	if !strings.Contains(out, "hello board") {
		t.Errorf("view missing item:\n%s", out)
	}
	if !strings.Contains(out, "1 items") {
		t.Errorf("status line missing count:\n%s", out)
	}
}

func TestEventsCollapse(t *testing.T) {
	ev := NewEvents()
	ev.Emit(context.Background(), service.EventBoardChanged, nil)
	ev.Emit(context.Background(), service.EventBoardCleared, nil)
	msg := ev.listen()().(boardEventMsg)
	if msg.event != service.EventBoardChanged {
		t.Errorf("event = %s", msg.event)
	}
	select {
	case e := <-ev.ch:
		t.Errorf("second event not dropped: %s", e)
	default:
	}
}

func TestHelpRendersKeys(t *testing.T) {
	md := helpMarkdown(newKeyMap(config.Default().Keys))
	for _, want := range []string{"ctrl+x", "clear board", "ctrl+e"} {
		if !strings.Contains(md, want) {
			t.Errorf("help missing %q", want)
		}
	}
}
