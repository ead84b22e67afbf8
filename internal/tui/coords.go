package tui

import (
	"math"

	"moodboard/internal/domain"
	"moodboard/internal/pointer"
)

// Metrics maps terminal cells to board pixels so the terminal and the
// desktop window share one board record.
type Metrics struct {
	CellWidth  float64
	CellHeight float64
	// OriginRow is the terminal row where the board starts.
	OriginRow int
}

// area is the board's rectangle in terminal cells.
func (m Metrics) area(cols, rows int) pointer.Rect {
	return pointer.Rect{Top: float64(m.OriginRow), Width: float64(cols), Height: float64(rows)}
}

// ToBoard converts a terminal cell into a board-relative point.
func (m Metrics) ToBoard(col, row int) pointer.Point {
	local := m.area(0, 0).ToLocal(pointer.Point{X: float64(col), Y: float64(row)})
	return pointer.Point{X: local.X * m.CellWidth, Y: local.Y * m.CellHeight}
}

// ToCell converts a board position into the board-relative cell it falls in.
func (m Metrics) ToCell(p domain.Position) (col, row int) {
	return int(math.Floor(p.Left / m.CellWidth)), int(math.Floor(p.Top / m.CellHeight))
}

// Size returns the pixel size of a label spanning cols x rows cells.
func (m Metrics) Size(cols, rows int) pointer.Size {
	return pointer.Size{Width: float64(cols) * m.CellWidth, Height: float64(rows) * m.CellHeight}
}

// OnBoard reports whether a terminal cell lies inside a board of
// cols x rows cells.
func (m Metrics) OnBoard(col, row, cols, rows int) bool {
	return m.area(cols, rows).Contains(pointer.Point{X: float64(col), Y: float64(row)})
}
