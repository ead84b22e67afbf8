package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"moodboard/internal/domain"
	"moodboard/internal/pointer"
)

const (
	maxImageLabel = 32
	maxTextLabel  = 40
)

// label is the one-line terminal rendering of an item.
func label(kind domain.ItemKind, content string) string {
	switch kind {
	case domain.ItemKindImage:
		return "▣ " + truncate(content, maxImageLabel)
	default:
		first, rest, more := strings.Cut(content, "\n")
		if more && strings.TrimSpace(rest) != "" {
			first += " …"
		}
		return truncate(first, maxTextLabel)
	}
}

// truncate cuts s to at most max terminal cells.
func truncate(s string, max int) string {
	return runewidth.Truncate(s, max, "…")
}

// cellBox is an item laid out on the terminal grid, board-relative.
type cellBox struct {
	index int
	col   int
	row   int
	text  string
	style lipgloss.Style
}

// width is the number of terminal cells the label covers.
func (b cellBox) width() int { return runewidth.StringWidth(b.text) }

func (b cellBox) contains(col, row int) bool {
	r := pointer.Rect{Left: float64(b.col), Top: float64(b.row), Width: float64(b.width()), Height: 1}
	return r.Contains(pointer.Point{X: float64(col), Y: float64(row)})
}

// hitTest returns the topmost item under the cell, later items win.
func hitTest(boxes []cellBox, col, row int) (int, bool) {
	for i := len(boxes) - 1; i >= 0; i-- {
		if boxes[i].index >= 0 && boxes[i].contains(col, row) {
			return boxes[i].index, true
		}
	}
	return -1, false
}

// wideTail marks the second cell of a double-width rune.
const wideTail rune = 0

// canvas is a fixed-size grid of styled terminal cells.
type canvas struct {
	w, h    int
	cells   [][]rune
	styles  [][]int
	palette []lipgloss.Style
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, palette: []lipgloss.Style{lipgloss.NewStyle()}}
	c.cells = make([][]rune, h)
	c.styles = make([][]int, h)
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", w))
		c.styles[y] = make([]int, w)
	}
	return c
}

// draw writes b clipped to the canvas. Double-width runes take two cells and
// are dropped when they would straddle an edge.
func (c *canvas) draw(b cellBox) {
	if b.row < 0 || b.row >= c.h {
		return
	}
	c.palette = append(c.palette, b.style)
	id := len(c.palette) - 1
	x := b.col
	for _, r := range b.text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x >= 0 && x+rw <= c.w {
			c.set(x, b.row, r, id)
			if rw == 2 {
				c.set(x+1, b.row, wideTail, id)
			}
		}
		x += rw
	}
}

// set writes one cell, blanking the other half of any wide rune it splits.
func (c *canvas) set(x, y int, r rune, style int) {
	row := c.cells[y]
	if row[x] == wideTail && r != wideTail && x > 0 {
		row[x-1] = ' '
	}
	if x+1 < c.w && row[x+1] == wideTail && runewidth.RuneWidth(row[x]) == 2 {
		row[x+1] = ' '
	}
	row[x] = r
	c.styles[y][x] = style
}

func (c *canvas) render() string {
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.styles[y][x] == c.styles[y][start] {
				continue
			}
			run := c.text(y, start, x)
			if id := c.styles[y][start]; id == 0 {
				sb.WriteString(run)
			} else {
				sb.WriteString(c.palette[id].Render(run))
			}
			start = x
		}
	}
	return sb.String()
}

func (c *canvas) text(y, from, to int) string {
	var sb strings.Builder
	for _, r := range c.cells[y][from:to] {
		if r != wideTail {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
