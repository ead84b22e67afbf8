package pointer

import "testing"

func TestDrag_PressMoveRelease(t *testing.T) {
	var d Drag
	// Element at (10,20); grabbed 5px right and 3px down of its corner.
	d.Press(Point{X: 15, Y: 23}, Point{X: 10, Y: 20})

	// No movement yet: the element stays put under the grab point.
	if at, ok := d.Move(Point{X: 15, Y: 23}); !ok || at != (Point{X: 10, Y: 20}) {
		t.Fatalf("grab offset not kept, move = %+v, %v", at, ok)
	}

	at, ok := d.Move(Point{X: 55, Y: 63})
	if !ok || at != (Point{X: 50, Y: 60}) {
		t.Fatalf("move = %+v, %v", at, ok)
	}

	final, ok := d.Release(Point{X: 55, Y: 63})
	if !ok || final != (Point{X: 50, Y: 60}) {
		t.Fatalf("release = %+v, %v", final, ok)
	}
	if d.Tracking() {
		t.Error("drag should be idle after release")
	}
}

func TestDrag_EventsAfterReleaseAreIgnored(t *testing.T) {
	var d Drag
	d.Press(Point{}, Point{})
	d.Release(Point{X: 1, Y: 1})

	if _, ok := d.Move(Point{X: 9, Y: 9}); ok {
		t.Error("move after release should be ignored")
	}
	if _, ok := d.Release(Point{X: 9, Y: 9}); ok {
		t.Error("second release should be ignored")
	}
}

func TestDrag_MoveWithoutPress(t *testing.T) {
	var d Drag
	if _, ok := d.Move(Point{X: 1, Y: 1}); ok {
		t.Error("move without press should be ignored")
	}
}

func TestDrag_Cancel(t *testing.T) {
	var d Drag
	d.Press(Point{X: 1, Y: 1}, Point{})
	d.Cancel()
	if d.State() != DragIdle {
		t.Fatalf("expected idle, got %v", d.State())
	}
	if _, ok := d.Release(Point{X: 3, Y: 3}); ok {
		t.Error("release after cancel should be ignored")
	}
}

func TestDrag_IndependentElements(t *testing.T) {
	var a, b Drag
	a.Press(Point{X: 10, Y: 10}, Point{X: 0, Y: 0})

	if _, ok := b.Move(Point{X: 100, Y: 100}); ok {
		t.Error("pressing one element must not start another")
	}
	at, _ := a.Move(Point{X: 20, Y: 20})
	if at != (Point{X: 10, Y: 10}) {
		t.Errorf("got %+v", at)
	}
}

func TestRect_ToLocalAndContains(t *testing.T) {
	board := Rect{Left: 100, Top: 50, Width: 400, Height: 300}
	if got := board.ToLocal(Point{X: 110, Y: 70}); got != (Point{X: 10, Y: 20}) {
		t.Errorf("ToLocal = %+v", got)
	}
	if !board.Contains(Point{X: 100, Y: 50}) {
		t.Error("top-left corner should be inside")
	}
	if board.Contains(Point{X: 500, Y: 60}) {
		t.Error("right edge should be exclusive")
	}
}
