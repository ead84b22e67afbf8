package domain

// BoardState is the full state returned to a front-end so it can
// rebuild the board view from scratch.
type BoardState struct {
	Items   []Item       `json:"items"`
	Pending *PendingView `json:"pending,omitempty"`
}

// PendingView describes the item currently following the pointer.
type PendingView struct {
	ID       string   `json:"id"`
	Kind     ItemKind `json:"kind"`
	Content  string   `json:"content"`
	Position Position `json:"position"`
}
