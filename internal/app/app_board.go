package app

import (
	"errors"
	"log/slog"

	"moodboard/internal/domain"
	"moodboard/internal/pointer"
	"moodboard/internal/service"
)

// ============================================================
// Board
// ============================================================
//
// Every coordinate crossing this boundary is board-relative: the frontend
// subtracts the board container's client origin before calling in.

// LoadBoard returns the current board and pending item.
func (a *App) LoadBoard() BoardView {
	st := a.board.State()
	return BoardView{Items: st.Items, Pending: st.Pending}
}

// ReloadBoard adopts the stored record if another process changed it. A
// failed read keeps the current board.
func (a *App) ReloadBoard() BoardView {
	a.board.Reload(a.ctx)
	return a.LoadBoard()
}

// AddImage starts placing an image. Blank input is ignored.
func (a *App) AddImage(url string) (*domain.PendingView, error) {
	return a.add(domain.ItemKindImage, url)
}

// AddText starts placing a text note. Blank input is ignored.
func (a *App) AddText(text string) (*domain.PendingView, error) {
	return a.add(domain.ItemKindText, text)
}

func (a *App) add(kind domain.ItemKind, content string) (*domain.PendingView, error) {
	if _, err := a.board.AddItem(a.ctx, kind, content); err != nil {
		if errors.Is(err, service.ErrEmptyContent) {
			return nil, nil
		}
		return nil, err
	}
	v, _ := a.board.PendingView()
	return &v, nil
}

// SetPendingSize reports the rendered size of the pending item.
func (a *App) SetPendingSize(width, height float64) error {
	return a.board.SetPendingSize(pointer.Size{Width: width, Height: height})
}

// TrackPointer returns where the pending item should be drawn for a pointer
// at (x, y).
func (a *App) TrackPointer(x, y float64) PointView {
	return pointView(a.board.TrackPointer(pointer.Point{X: x, Y: y}))
}

// PlaceAt drops the pending item centred on (x, y) and returns its index.
func (a *App) PlaceAt(x, y float64) (int, error) {
	return a.board.PlaceAtPointer(a.ctx, pointer.Point{X: x, Y: y})
}

// CancelPending discards the pending item.
func (a *App) CancelPending() bool {
	return a.board.CancelPending()
}

// BeginDrag starts moving the item at index with the pointer at (x, y).
func (a *App) BeginDrag(index int, x, y float64) error {
	return a.board.BeginDrag(index, pointer.Point{X: x, Y: y})
}

// DragTo returns where the dragged item should be drawn.
func (a *App) DragTo(index int, x, y float64) PointView {
	return pointView(a.board.DragTo(index, pointer.Point{X: x, Y: y}))
}

// EndDrag releases the drag and stores the final position. OK is false when
// nothing was stored, in which case the frontend should re-render the board.
func (a *App) EndDrag(index int, x, y float64) (PointView, error) {
	pos, moved, err := a.board.EndDrag(a.ctx, index, pointer.Point{X: x, Y: y})
	if err != nil {
		slog.Error("end drag", "index", index, "error", err)
		return PointView{}, err
	}
	return pointView(pos, moved), nil
}

// CancelDrag abandons a drag, e.g. when the pointer leaves the window.
func (a *App) CancelDrag(index int) {
	a.board.CancelDrag(index)
}

// ClearBoard removes every item and the stored record.
func (a *App) ClearBoard() error {
	return a.board.ClearBoard(a.ctx)
}
