package service

import (
	"context"
	"sync"
)

// JobGate lets one run of a job through at a time and lets shutdown wait for
// the run in flight. The zero value is ready to use.
type JobGate struct {
	mu   sync.Mutex
	busy bool
	done chan struct{}
}

// Enter claims the gate. It returns false while another run holds it.
func (g *JobGate) Enter() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return false
	}
	g.busy = true
	g.done = make(chan struct{})
	return true
}

// Leave releases the gate. Must follow a successful Enter.
func (g *JobGate) Leave() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.busy = false
	close(g.done)
}

// Wait blocks until the current run leaves or ctx is cancelled.
func (g *JobGate) Wait(ctx context.Context) {
	g.mu.Lock()
	if !g.busy {
		g.mu.Unlock()
		return
	}
	done := g.done
	g.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
	}
}
