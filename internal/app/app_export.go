package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"moodboard/internal/export"
)

// ============================================================
// Export & Backup
// ============================================================

// ExportPNG asks for a destination and renders the board there. An empty
// path means the user cancelled.
func (a *App) ExportPNG() (string, error) {
	path, err := wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:           "Export board as PNG",
		DefaultFilename: "moodboard.png",
		Filters:         []wailsRuntime.FileFilter{{DisplayName: "PNG image", Pattern: "*.png"}},
	})
	if err != nil || path == "" {
		return "", err
	}
	if err := export.WritePNG(path, a.board.Items(), export.PNGOptions{}); err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			return "", fmt.Errorf("the board is empty")
		}
		return "", err
	}
	slog.Info("exported png", "path", path)
	return path, nil
}

// ExportJSON asks for a destination and writes the board record there.
func (a *App) ExportJSON() (string, error) {
	path, err := wailsRuntime.SaveFileDialog(a.ctx, wailsRuntime.SaveDialogOptions{
		Title:           "Export board as JSON",
		DefaultFilename: "moodboard.json",
		Filters:         []wailsRuntime.FileFilter{{DisplayName: "JSON", Pattern: "*.json"}},
	})
	if err != nil || path == "" {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := export.WriteJSON(f, a.board.Items()); err != nil {
		return "", err
	}
	slog.Info("exported json", "path", path)
	return path, nil
}

// BackupNow writes a backup snapshot immediately.
func (a *App) BackupNow() (string, error) {
	return a.backup.RunOnce(a.ctx)
}

// ListBackups returns existing backup files, newest first.
func (a *App) ListBackups() ([]string, error) {
	return a.backup.ListBackups()
}
