package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moodboard/internal/bootstrap"
	"moodboard/internal/config"
	mcpserver "moodboard/internal/mcp"
	"moodboard/internal/service"
)

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no GUI.
// A running desktop window picks up the changes through its board watcher.
func ServeMCP(cfg *config.Config, opts Options) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// No window to notify; board events only reach the log.
	events := service.EmitterFunc(func(_ context.Context, event string, _ any) {
		slog.Debug("board event", "event", event)
	})

	env, err := bootstrap.Open(ctx, cfg, bootstrap.Options{Ephemeral: opts.Ephemeral, Emitter: events})
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		env.Close(closeCtx)
	}()

	// Pick up edits made in the window while the agent is connected.
	env.StartBackground(ctx)

	mcpSrv := mcpserver.New(mcpserver.Deps{Board: env.Board, Emitter: events})

	slog.Info("[MCP] Starting standalone stdio server...")
	return mcpSrv.ServeStdio()
}
