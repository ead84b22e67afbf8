package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"moodboard/internal/config"
	"moodboard/internal/domain"
	"moodboard/internal/service"
)

// Rows above the board: two inputs and a rule.
const headerRows = 3

type focus int

const (
	focusImage focus = iota
	focusText
	focusBoard
)

// Model is the terminal front-end of the board.
type Model struct {
	ctx     context.Context
	board   *service.BoardService
	events  *Events
	keys    keyMap
	metrics Metrics

	inputs [2]textinput.Model
	focus  focus

	width  int
	height int

	// dragging is the index of the item under a left-button drag, or -1.
	dragging int
	dragAt   domain.Position

	confirmClear bool
	showHelp     bool
	status       string
	statusErr    bool

	exportDir string
	now       func() time.Time
}

// Options configures New.
type Options struct {
	Events    *Events
	ExportDir string
}

func New(ctx context.Context, board *service.BoardService, cfg *config.Config, opts Options) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	cw, ch := cfg.TUI.CellWidth, cfg.TUI.CellHeight
	if cw <= 0 {
		cw = 8
	}
	if ch <= 0 {
		ch = 16
	}
	dir := opts.ExportDir
	if dir == "" {
		dir = "."
	}

	image := textinput.New()
	image.Prompt = "image › "
	image.Placeholder = "https://…"
	image.CharLimit = 2048

	text := textinput.New()
	text.Prompt = "text  › "
	text.Placeholder = "a note"
	text.CharLimit = 1024

	m := Model{
		ctx:       ctx,
		board:     board,
		events:    opts.Events,
		keys:      newKeyMap(cfg.Keys),
		metrics:   Metrics{CellWidth: float64(cw), CellHeight: float64(ch), OriginRow: headerRows},
		inputs:    [2]textinput.Model{image, text},
		dragging:  -1,
		width:     80,
		height:    24,
		exportDir: dir,
		now:       time.Now,
	}
	m.setFocus(focusImage)
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.events != nil {
		cmds = append(cmds, m.events.listen())
	}
	return tea.Batch(cmds...)
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	var cmd tea.Cmd
	for i := range m.inputs {
		if focus(i) == f {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// boardRows is the height of the board area: everything but the header
// and the status line.
func (m Model) boardRows() int {
	if r := m.height - headerRows - 1; r > 0 {
		return r
	}
	return 1
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

// Focused reports which input has focus: "image", "text" or "board".
func (m Model) Focused() string {
	switch m.focus {
	case focusImage:
		return "image"
	case focusText:
		return "text"
	}
	return "board"
}

// Status returns the current status line text.
func (m Model) Status() string { return m.status }
