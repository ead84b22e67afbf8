// Command moodboard-tui edits the mood board from a terminal. It shares the
// board record with the desktop app, so both can run side by side.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"moodboard/internal/bootstrap"
	"moodboard/internal/config"
	"moodboard/internal/logging"
	"moodboard/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	ephemeral := flag.Bool("ephemeral", false, "keep the board in memory only")
	exportDir := flag.String("export-dir", ".", "directory for PNG exports")
	flag.Parse()

	if err := run(*configPath, *ephemeral, *exportDir); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(configPath string, ephemeral bool, exportDir string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Logs go to the file only; stderr belongs to the terminal UI.
	logCloser, err := logging.Init(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logCloser.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := tui.NewEvents()
	env, err := bootstrap.Open(ctx, cfg, bootstrap.Options{Ephemeral: ephemeral, Emitter: events})
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := env.Close(closeCtx); err != nil {
			logging.Logger.Warn("shutdown", "error", err)
		}
	}()
	env.StartBackground(ctx)

	m := tui.New(ctx, env.Board, cfg, tui.Options{Events: events, ExportDir: exportDir})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
