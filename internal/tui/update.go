package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"moodboard/internal/domain"
	"moodboard/internal/export"
	"moodboard/internal/service"
)

type clipboardMsg struct {
	text string
	err  error
}

type exportDoneMsg struct {
	path string
	err  error
}

func readClipboard() tea.Msg {
	text, err := clipboard.ReadAll()
	return clipboardMsg{text: text, err: err}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for i := range m.inputs {
			m.inputs[i].Width = max(msg.Width-len(m.inputs[i].Prompt)-1, 10)
		}
		return m, nil

	case boardEventMsg:
		// A clear or an external reload ends drags in progress.
		if m.dragging >= 0 && !m.board.Dragging(m.dragging) {
			m.dragging = -1
		}
		if msg.event == service.EventBackupWritten {
			m.setStatus("backup written", false)
		}
		if m.events == nil {
			return m, nil
		}
		return m, m.events.listen()

	case clipboardMsg:
		if msg.err != nil {
			m.setStatus("clipboard: "+msg.err.Error(), true)
			return m, nil
		}
		cmd := m.paste(msg.text)
		return m, cmd

	case exportDoneMsg:
		switch {
		case errors.Is(msg.err, export.ErrNothingToExport):
			m.setStatus("nothing to export", true)
		case msg.err != nil:
			m.setStatus("export failed: "+msg.err.Error(), true)
		default:
			m.setStatus("exported "+msg.path, false)
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if !m.confirmClear {
		m.status = ""
	}
	if m.confirmClear {
		m.confirmClear = false
		if msg.String() != "y" {
			m.setStatus("clear cancelled", false)
			return m, nil
		}
		if err := m.board.ClearBoard(m.ctx); err != nil {
			m.setStatus("clear failed: "+err.Error(), true)
			return m, nil
		}
		m.dragging = -1
		m.setStatus("board cleared", false)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if m.board.CancelPending() {
			m.setStatus("placement cancelled", false)
			return m, nil
		}
		if m.dragging >= 0 {
			m.board.CancelDrag(m.dragging)
			m.dragging = -1
			return m, nil
		}
		cmd := m.setFocus(focusBoard)
		return m, cmd

	case key.Matches(msg, m.keys.SwitchInput):
		cmd := m.setFocus((m.focus + 1) % 3)
		return m, cmd

	case key.Matches(msg, m.keys.Paste):
		return m, readClipboard

	case key.Matches(msg, m.keys.ClearBoard):
		m.confirmClear = true
		m.setStatus("clear the board? (y/n)", false)
		return m, nil

	case key.Matches(msg, m.keys.ExportPNG):
		return m, m.exportPNG()
	}

	if m.focus == focusBoard {
		switch {
		case key.Matches(msg, m.keys.ShowHelp):
			m.showHelp = true
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Submit) {
		m.submit()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit turns the focused input into a pending item. Blank input is ignored.
func (m *Model) submit() {
	in := &m.inputs[m.focus]
	value := strings.TrimSpace(in.Value())
	if value == "" {
		return
	}
	kind := domain.ItemKindImage
	if m.focus == focusText {
		kind = domain.ItemKindText
	}

	pending, err := m.board.AddItem(m.ctx, kind, value)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	in.Reset()
	cols := runewidth.StringWidth(label(pending.Kind, pending.Content))
	if err := m.board.SetPendingSize(m.metrics.Size(cols, 1)); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("click the board to place the "+string(kind), false)
}

func (m *Model) paste(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var cmd tea.Cmd
	if m.focus == focusBoard {
		cmd = m.setFocus(focusImage)
	}
	in := &m.inputs[m.focus]
	in.SetValue(in.Value() + text)
	in.CursorEnd()
	return cmd
}

func (m Model) exportPNG() tea.Cmd {
	items := m.board.Items()
	path := filepath.Join(m.exportDir, "moodboard-"+m.now().Format("20060102-150405")+".png")
	return func() tea.Msg {
		err := export.WritePNG(path, items, export.DefaultPNGOptions())
		return exportDoneMsg{path: path, err: err}
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := m.metrics.ToBoard(msg.X, msg.Y)
	onBoard := m.metrics.OnBoard(msg.X, msg.Y, m.width, m.boardRows())

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if msg.Y < len(m.inputs) {
			cmd := m.setFocus(focus(msg.Y))
			return m, cmd
		}
		if !onBoard {
			return m, nil
		}
		if _, ok := m.board.Pending(); ok {
			index, err := m.board.PlaceAtPointer(m.ctx, p)
			if err != nil {
				m.setStatus("place failed: "+err.Error(), true)
				return m, nil
			}
			m.setStatus(fmt.Sprintf("placed item #%d", index), false)
			return m, nil
		}
		col, row := msg.X, msg.Y-m.metrics.OriginRow
		index, ok := hitTest(m.layout(), col, row)
		if !ok {
			return m, nil
		}
		if err := m.board.BeginDrag(index, p); err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.dragging = index
		if items := m.board.Items(); index < len(items) {
			m.dragAt = items[index].Position
		}

	case tea.MouseActionMotion:
		if m.dragging >= 0 {
			if at, ok := m.board.DragTo(m.dragging, p); ok {
				m.dragAt = at
			}
			return m, nil
		}
		m.board.TrackPointer(p)

	case tea.MouseActionRelease:
		if m.dragging < 0 {
			return m, nil
		}
		index := m.dragging
		m.dragging = -1
		_, moved, err := m.board.EndDrag(m.ctx, index, p)
		switch {
		case err != nil:
			m.setStatus("move failed: "+err.Error(), true)
		case !moved:
			m.setStatus("item is no longer on the board", false)
		}
	}
	return m, nil
}
