// Package bootstrap assembles the board services from configuration. The
// desktop app, the MCP server and the terminal UI all start from an Env.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"moodboard/internal/config"
	"moodboard/internal/domain"
	"moodboard/internal/service"
	"moodboard/internal/storage"
	"moodboard/internal/watcher"
)

// Options tweak how an Env is opened.
type Options struct {
	// Ephemeral keeps the board in memory only.
	Ephemeral bool
	Emitter   service.EventEmitter
}

// Env holds the opened store and the services built on it.
type Env struct {
	Config   *config.Config
	Store    domain.KVStore
	Board    *service.BoardService
	Settings *service.SettingsService
	Backup   *service.BackupService

	watch io.Closer
}

// Open connects to the configured store, builds the services and loads the
// board.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*Env, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	storeOpts := storage.Options{
		Driver:     cfg.Storage.Driver,
		Path:       cfg.Storage.Path,
		DSN:        cfg.Storage.DSN,
		URI:        cfg.Storage.URI,
		Database:   cfg.Storage.Database,
		Collection: cfg.Storage.Collection,
	}
	if opts.Ephemeral {
		storeOpts = storage.Options{Driver: storage.DriverMemory}
	}

	store, err := storage.Open(ctx, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", storeOpts.Driver, err)
	}

	board := service.NewBoardService(store, cfg.BoardKey, opts.Emitter)
	env := &Env{
		Config:   cfg,
		Store:    store,
		Board:    board,
		Settings: service.NewSettingsService(store),
		Backup: service.NewBackupService(board, service.BackupOptions{
			Schedule: cfg.Backup.Schedule,
			Dir:      cfg.Backup.Dir,
			Keep:     cfg.Backup.Keep,
		}, opts.Emitter),
	}

	items := board.LoadBoard(ctx)
	slog.Info("board loaded", "driver", storeOpts.Driver, "key", board.Key(), "items", len(items))
	return env, nil
}

// StartBackground starts the change watcher and the backup schedule.
// Failures are logged; the board keeps working without them.
func (e *Env) StartBackground(ctx context.Context) {
	if e.Config.Watch.Enabled {
		e.startWatcher(ctx)
	}
	if err := e.Backup.Start(ctx); err != nil {
		slog.Warn("backup schedule not started", "error", err)
	}
}

func (e *Env) startWatcher(ctx context.Context) {
	if _, ok := e.Store.(*storage.MemoryStore); ok {
		return
	}

	if path := storage.FilePath(e.Store); path != "" {
		fw, err := watcher.NewFileWatcher(path, e.Board)
		if err != nil {
			slog.Warn("board watcher unavailable", "path", path, "error", err)
			return
		}
		fw.Start(ctx)
		e.watch = fw
		slog.Info("board watcher: watching", "path", path)
		return
	}

	interval, err := time.ParseDuration(e.Config.Watch.PollInterval)
	if err != nil {
		slog.Warn("invalid watch.poll_interval, using default", "value", e.Config.Watch.PollInterval)
		interval = watcher.DefaultPollInterval
	}
	p := watcher.NewPoller(e.Board, interval)
	p.Start(ctx)
	e.watch = p
	slog.Info("board watcher: polling", "interval", interval)
}

// Close stops background work and releases the store. Running backups get
// until ctx expires to finish.
func (e *Env) Close(ctx context.Context) error {
	e.Backup.Stop()
	e.Backup.WaitRunning(ctx)

	var errs []error
	if e.watch != nil {
		errs = append(errs, e.watch.Close())
		e.watch = nil
	}
	if e.Store != nil {
		errs = append(errs, e.Store.Close())
	}
	return errors.Join(errs...)
}
