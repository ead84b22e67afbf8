package mcpserver

import (
	"math"

	"moodboard/internal/domain"
)

const (
	GridSize = 20.0
	Padding  = 20.0 // one grid cell between items
	MaxRowW  = 1200.0

	// Nominal footprints used when the real rendered size is unknown.
	ImageWidth  = 160.0
	ImageHeight = 120.0
	CharWidth   = 8.0
	LineHeight  = 24.0
)

// LayoutEngine picks positions for agent-created items so that they don't
// overlap what is already on the board.
type LayoutEngine struct {
	gridSize float64
	padding  float64
	maxRowW  float64
}

func NewLayoutEngine() *LayoutEngine {
	return &LayoutEngine{
		gridSize: GridSize,
		padding:  Padding,
		maxRowW:  MaxRowW,
	}
}

// snap rounds v to the nearest grid point.
func (le *LayoutEngine) snap(v float64) float64 {
	return math.Round(v/le.gridSize) * le.gridSize
}

// rect is a simple axis-aligned bounding box.
type rect struct {
	x, y, w, h float64
}

func (a rect) intersects(b rect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x &&
		a.y < b.y+b.h && a.y+a.h > b.y
}

// Footprint estimates the on-board size of an item.
func Footprint(kind domain.ItemKind, content string) (w, h float64) {
	if kind == domain.ItemKindImage {
		return ImageWidth, ImageHeight
	}
	longest, lines := 0, 1
	cur := 0
	for _, r := range content {
		if r == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
		if cur > longest {
			longest = cur
		}
	}
	return math.Max(float64(longest)*CharWidth, CharWidth), float64(lines) * LineHeight
}

func itemRect(it domain.Item) rect {
	w, h := Footprint(it.Kind, it.Content)
	return rect{it.Position.Left, it.Position.Top, w, h}
}

// NextPosition finds the next non-overlapping grid position for an item
// of size (newW, newH) given the items already on the board.
func (le *LayoutEngine) NextPosition(existing []domain.Item, newW, newH float64) (float64, float64) {
	if len(existing) == 0 {
		return 0, 0
	}

	occupied := make([]rect, len(existing))
	for i, it := range existing {
		occupied[i] = itemRect(it)
	}

	// Scan rows top-to-bottom, columns left-to-right
	candidate := rect{w: newW, h: newH}
	for y := 0.0; y < 100000; y += le.gridSize {
		for x := 0.0; x == 0 || x+newW <= le.maxRowW; x += le.gridSize {
			candidate.x = le.snap(x)
			candidate.y = le.snap(y)

			overlaps := false
			for _, occ := range occupied {
				padded := rect{
					x: occ.x - le.padding,
					y: occ.y - le.padding,
					w: occ.w + le.padding*2,
					h: occ.h + le.padding*2,
				}
				if candidate.intersects(padded) {
					overlaps = true
					break
				}
			}
			if !overlaps {
				return candidate.x, candidate.y
			}
		}
	}

	// Fallback: place below everything
	maxY := 0.0
	for _, occ := range occupied {
		maxY = math.Max(maxY, occ.y+occ.h)
	}
	return 0, le.snap(maxY + le.padding)
}

// Arrange lays items out in rows starting from (startX, startY) and returns
// the new position of each item, in board order.
func (le *LayoutEngine) Arrange(items []domain.Item, startX, startY float64) []domain.Position {
	out := make([]domain.Position, len(items))
	x := le.snap(startX)
	y := le.snap(startY)
	rowHeight := 0.0

	for i, it := range items {
		w, h := Footprint(it.Kind, it.Content)

		// Wrap to next row
		if x > le.snap(startX) && x+w > le.maxRowW {
			x = le.snap(startX)
			y += le.snap(rowHeight + le.padding)
			rowHeight = 0
		}

		out[i] = domain.Position{Left: x, Top: y}
		rowHeight = math.Max(rowHeight, h)
		x += le.snap(w + le.padding)
	}

	return out
}
