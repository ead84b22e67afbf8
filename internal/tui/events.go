package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Events wakes the program when the board changes outside the event loop,
// e.g. when the watcher reloads an edit made by the desktop window.
type Events struct {
	ch chan string
}

func NewEvents() *Events {
	return &Events{ch: make(chan string, 1)}
}

// Emit implements service.EventEmitter. Bursts collapse into one wake-up.
func (e *Events) Emit(_ context.Context, event string, _ any) {
	select {
	case e.ch <- event:
	default:
	}
}

type boardEventMsg struct{ event string }

func (e *Events) listen() tea.Cmd {
	return func() tea.Msg {
		return boardEventMsg{event: <-e.ch}
	}
}
