// Package watcher notices when another process rewrites the board record
// and asks the board service to reload it.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reloader re-reads persisted state and reports whether anything changed.
type Reloader interface {
	Reload(ctx context.Context) bool
}

// DefaultDebounce collapses bursts of writes (SQLite touches the db, WAL and
// shm files for a single commit) into one reload.
const DefaultDebounce = 300 * time.Millisecond

// FileWatcher watches a database file and its SQLite sidecars.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	target   Reloader
	debounce time.Duration

	mu       sync.Mutex
	watching map[string]bool
	timer    *time.Timer
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewFileWatcher watches dbPath plus its -wal and -journal files.
func NewFileWatcher(dbPath string, target Reloader) (*FileWatcher, error) {
	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// fsnotify watches directories for file events.
	if err := w.Add(filepath.Dir(absPath)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	return &FileWatcher{
		watcher:  w,
		target:   target,
		debounce: DefaultDebounce,
		watching: map[string]bool{
			absPath:              true,
			absPath + "-wal":     true,
			absPath + "-journal": true,
		},
	}, nil
}

// SetDebounce changes the quiet period before a reload. Call before Start.
func (f *FileWatcher) SetDebounce(d time.Duration) {
	f.debounce = d
}

// Start runs the event loop until ctx is cancelled or Close is called.
func (f *FileWatcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	f.mu.Lock()
	f.cancel = cancel
	f.done = make(chan struct{})
	f.mu.Unlock()

	go f.loop(ctx)
}

func (f *FileWatcher) loop(ctx context.Context) {
	defer close(f.done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			absPath, _ := filepath.Abs(event.Name)
			if !f.watching[absPath] {
				continue
			}
			f.schedule(ctx)
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("board watcher: error", "error", err)
		}
	}
}

func (f *FileWatcher) schedule(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		if f.target.Reload(ctx) {
			slog.Debug("board watcher: external change applied")
		}
	})
}

// Close stops the loop and releases the fsnotify handle.
func (f *FileWatcher) Close() error {
	f.mu.Lock()
	cancel, done := f.cancel, f.done
	if f.timer != nil {
		f.timer.Stop()
	}
	f.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	err := f.watcher.Close()
	if done != nil {
		<-done
	}
	return err
}
