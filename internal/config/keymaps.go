package config

// KeyMappings defines the configurable terminal key bindings
type KeyMappings struct {
	SwitchInput string `yaml:"switch_input"`
	Submit      string `yaml:"submit"`
	Cancel      string `yaml:"cancel"`
	Paste       string `yaml:"paste"`
	ClearBoard  string `yaml:"clear_board"`
	ExportPNG   string `yaml:"export_png"`
	ShowHelp    string `yaml:"show_help"`
	Quit        string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		SwitchInput: "tab",
		Submit:      "enter",
		Cancel:      "esc",
		Paste:       "ctrl+v",
		ClearBoard:  "ctrl+x",
		ExportPNG:   "ctrl+e",
		ShowHelp:    "?",
		Quit:        "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.SwitchInput == "" {
		k.SwitchInput = defaults.SwitchInput
	}
	if k.Submit == "" {
		k.Submit = defaults.Submit
	}
	if k.Cancel == "" {
		k.Cancel = defaults.Cancel
	}
	if k.Paste == "" {
		k.Paste = defaults.Paste
	}
	if k.ClearBoard == "" {
		k.ClearBoard = defaults.ClearBoard
	}
	if k.ExportPNG == "" {
		k.ExportPNG = defaults.ExportPNG
	}
	if k.ShowHelp == "" {
		k.ShowHelp = defaults.ShowHelp
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}
