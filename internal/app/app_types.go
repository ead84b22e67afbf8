package app

import "moodboard/internal/domain"

// BoardView is what the frontend renders from.
type BoardView struct {
	Items   []domain.Item       `json:"items"`
	Pending *domain.PendingView `json:"pending,omitempty"`
}

// PointView is a board-relative position returned to the frontend as plain
// numbers, ready to be written into style.left / style.top.
type PointView struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
	OK   bool    `json:"ok"`
}

func pointView(p domain.Position, ok bool) PointView {
	return PointView{Left: p.Left, Top: p.Top, OK: ok}
}
