package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

var (
	helpRenderer      *glamour.TermRenderer
	helpRendererWidth int
)

func renderHelp(k keyMap, width int) string {
	if width <= 0 {
		width = 80
	}
	md := helpMarkdown(k)
	if helpRenderer == nil || helpRendererWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		helpRenderer = r
		helpRendererWidth = width
	}
	out, err := helpRenderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func helpMarkdown(k keyMap) string {
	var b strings.Builder
	b.WriteString("# Mood board\n\n")
	b.WriteString("Type an image URL or some text and press **")
	b.WriteString(k.Submit.Help().Key)
	b.WriteString("**. The new item follows the mouse until you click the board.\n")
	b.WriteString("Drag placed items with the left button to move them.\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	for _, kb := range k.shortHelp() {
		h := kb.Help()
		fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
	}
	fmt.Fprintf(&b, "| `%s` | %s |\n", k.Cancel.Help().Key, "drop the pending item or leave the inputs")
	b.WriteString("\nPress any key to close this help.\n")
	return b.String()
}
