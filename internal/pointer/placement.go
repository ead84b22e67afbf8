package pointer

import "fmt"

// PlacementState is the lifecycle of a freshly added item before it is
// committed to the board.
type PlacementState int

const (
	PlacementIdle PlacementState = iota
	PlacementFollowing
	PlacementPlaced
)

func (s PlacementState) String() string {
	switch s {
	case PlacementIdle:
		return "idle"
	case PlacementFollowing:
		return "following_pointer"
	case PlacementPlaced:
		return "placed"
	default:
		return fmt.Sprintf("PlacementState(%d)", int(s))
	}
}

// Placement moves a pending item with the pointer until it is dropped.
// The zero value is idle.
type Placement struct {
	state PlacementState
	size  Size
	at    Point
}

// Start puts the placement into the following state. It is a no-op once
// the item has been placed.
func (p *Placement) Start(size Size) bool {
	if p.state == PlacementPlaced {
		return false
	}
	p.state = PlacementFollowing
	p.size = size
	return true
}

func (p *Placement) State() PlacementState { return p.state }

// Following reports whether the item currently mirrors the pointer.
func (p *Placement) Following() bool { return p.state == PlacementFollowing }

func (p *Placement) Size() Size { return p.size }

// Position is the top-left corner of the item in board coordinates.
func (p *Placement) Position() Point { return p.at }

// Resize records the rendered size once a front-end has measured it.
func (p *Placement) Resize(size Size) {
	if p.state == PlacementFollowing {
		p.size = size
	}
}

// Follow centres the item under pointer. ok is false when the item is not
// following the pointer.
func (p *Placement) Follow(pointer Point) (at Point, ok bool) {
	if p.state != PlacementFollowing {
		return Point{}, false
	}
	p.at = CenterOn(pointer, p.size)
	return p.at, true
}

// Drop fixes the item centred under pointer and ends the placement.
func (p *Placement) Drop(pointer Point) (at Point, ok bool) {
	if _, ok := p.Follow(pointer); !ok {
		return Point{}, false
	}
	p.state = PlacementPlaced
	return p.at, true
}

// DropAt fixes the item with its top-left corner at topLeft.
func (p *Placement) DropAt(topLeft Point) bool {
	if p.state != PlacementFollowing {
		return false
	}
	p.at = topLeft
	p.state = PlacementPlaced
	return true
}

// Cancel abandons a following placement.
func (p *Placement) Cancel() {
	if p.state == PlacementFollowing {
		p.state = PlacementIdle
	}
}
