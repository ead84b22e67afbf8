package pointer

// DragState is the state of a single element's drag sequence.
type DragState int

const (
	DragIdle DragState = iota
	DragTracking
)

func (s DragState) String() string {
	if s == DragTracking {
		return "tracking"
	}
	return "idle"
}

// Drag follows one element through press, move and release. Each element
// owns its own Drag; nothing is shared between elements.
//
// Events that arrive outside a press/release pair are ignored, so a
// finished drag cannot report a second position.
type Drag struct {
	state  DragState
	offset Point // pointer minus element origin at press time
	at     Point
}

// Press starts tracking. origin is the element's current top-left corner.
// A press while already tracking restarts the sequence.
func (d *Drag) Press(pointer, origin Point) {
	d.state = DragTracking
	d.offset = pointer.Sub(origin)
	d.at = origin
}

func (d *Drag) State() DragState { return d.state }

func (d *Drag) Tracking() bool { return d.state == DragTracking }

// Move returns the element position for pointer.
func (d *Drag) Move(pointer Point) (Point, bool) {
	if d.state != DragTracking {
		return Point{}, false
	}
	d.at = pointer.Sub(d.offset)
	return d.at, true
}

// Release ends tracking and returns the final element position.
func (d *Drag) Release(pointer Point) (Point, bool) {
	at, ok := d.Move(pointer)
	if !ok {
		return Point{}, false
	}
	d.state = DragIdle
	return at, true
}

// Cancel ends tracking without producing a position.
func (d *Drag) Cancel() {
	d.state = DragIdle
}
