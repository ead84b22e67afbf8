// Package pointer turns raw pointer events into board positions.
//
// All coordinates handled here are board-relative pixels: front-ends
// subtract the board container origin before handing a point over.
package pointer

// Point is a location in board coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is the rendered size of an element.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Half returns the offset from an element's corner to its centre.
func (s Size) Half() Point {
	return Point{X: s.Width / 2, Y: s.Height / 2}
}

// Rect is an axis-aligned box, usually an element's bounding rectangle.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Origin() Point {
	return Point{X: r.Left, Y: r.Top}
}

// Contains reports whether p lies inside r. The right and bottom edges
// are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Left+r.Width &&
		p.Y >= r.Top && p.Y < r.Top+r.Height
}

// ToLocal converts a point in r's parent frame into r's own frame.
func (r Rect) ToLocal(p Point) Point {
	return p.Sub(r.Origin())
}

// CenterOn returns the top-left corner that centres an element of the
// given size on p.
func CenterOn(p Point, size Size) Point {
	return p.Sub(size.Half())
}
