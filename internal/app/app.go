package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"moodboard/internal/bootstrap"
	"moodboard/internal/config"
	"moodboard/internal/service"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context

	// runtimeCtx is the Wails runtime context; nil until Startup.
	mu         sync.RWMutex
	runtimeCtx context.Context

	cfg *config.Config
	env *bootstrap.Env

	board    *service.BoardService
	settings *service.SettingsService
	backup   *service.BackupService
}

// Options configure App construction.
type Options struct {
	Ephemeral bool
}

// New opens the store and builds the services. The store is opened before
// the window exists so the saved window size can be applied.
func New(cfg *config.Config, opts Options) (*App, error) {
	a := &App{cfg: cfg}

	env, err := bootstrap.Open(context.Background(), cfg, bootstrap.Options{
		Ephemeral: opts.Ephemeral,
		Emitter:   a,
	})
	if err != nil {
		return nil, err
	}

	a.env = env
	a.board = env.Board
	a.settings = env.Settings
	a.backup = env.Backup
	return a, nil
}

// Emit implements service.EventEmitter by delegating to the Wails runtime.
// Events raised before Startup are dropped.
func (a *App) Emit(_ context.Context, event string, data any) {
	a.mu.RLock()
	ctx := a.runtimeCtx
	a.mu.RUnlock()
	if ctx == nil {
		return
	}
	wailsRuntime.EventsEmit(ctx, event, data)
}

// WindowSize returns the size to open the main window with.
func (a *App) WindowSize() service.WindowSize {
	return a.settings.LoadWindowSize(context.Background())
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	a.mu.Lock()
	a.runtimeCtx = ctx
	a.mu.Unlock()

	a.env.StartBackground(ctx)
	slog.Info("moodboard started", "items", len(a.board.Items()))
}

// BeforeClose saves the window size. It never prevents closing.
func (a *App) BeforeClose(ctx context.Context) bool {
	w, h := wailsRuntime.WindowGetSize(ctx)
	if err := a.settings.SaveWindowSize(ctx, w, h); err != nil {
		slog.Warn("failed to save window size", "error", err)
	}
	return false
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := a.env.Close(closeCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
}
