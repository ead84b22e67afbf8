package watcher

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval is used for backends without a local file to watch.
const DefaultPollInterval = 2 * time.Second

// Poller periodically reloads the board. It stands in for FileWatcher when
// the store is a remote database.
type Poller struct {
	target   Reloader
	interval time.Duration

	mu     sync.Mutex
	stopCh chan struct{}
	done   chan struct{}
}

// NewPoller creates a Poller. A non-positive interval means DefaultPollInterval.
func NewPoller(target Reloader, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{target: target, interval: interval}
}

// Start begins the polling loop. Should be called once.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	p.stopCh = make(chan struct{})
	p.done = make(chan struct{})
	stopCh, done := p.stopCh, p.done
	p.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.target.Reload(ctx)
			case <-stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Close terminates the polling loop.
func (p *Poller) Close() error {
	p.mu.Lock()
	stopCh, done := p.stopCh, p.done
	p.stopCh = nil
	p.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-done
	}
	return nil
}
