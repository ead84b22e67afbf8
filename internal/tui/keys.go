package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"moodboard/internal/config"
)

type keyMap struct {
	SwitchInput key.Binding
	Submit      key.Binding
	Cancel      key.Binding
	Paste       key.Binding
	ClearBoard  key.Binding
	ExportPNG   key.Binding
	ShowHelp    key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

func newKeyMap(k config.KeyMappings) keyMap {
	return keyMap{
		SwitchInput: key.NewBinding(key.WithKeys(k.SwitchInput), key.WithHelp(k.SwitchInput, "switch input")),
		Submit:      key.NewBinding(key.WithKeys(k.Submit), key.WithHelp(k.Submit, "add")),
		Cancel:      key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cancel")),
		Paste:       key.NewBinding(key.WithKeys(k.Paste), key.WithHelp(k.Paste, "paste")),
		ClearBoard:  key.NewBinding(key.WithKeys(k.ClearBoard), key.WithHelp(k.ClearBoard, "clear board")),
		ExportPNG:   key.NewBinding(key.WithKeys(k.ExportPNG), key.WithHelp(k.ExportPNG, "export png")),
		ShowHelp:    key.NewBinding(key.WithKeys(k.ShowHelp), key.WithHelp(k.ShowHelp, "help")),
		Quit:        key.NewBinding(key.WithKeys(k.Quit), key.WithHelp(k.Quit, "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.SwitchInput, k.Submit, k.Paste, k.ClearBoard, k.ExportPNG, k.ShowHelp, k.Quit}
}
