package logging

import (
	"context"
	"log/slog"
	"os"
)

// levelTrace sits below debug; Wails emits a lot of trace chatter.
const levelTrace = slog.LevelDebug - 4

// WailsLogger routes Wails runtime logs into slog. It satisfies the
// github.com/wailsapp/wails/v2/pkg/logger.Logger interface.
type WailsLogger struct {
	l *slog.Logger
}

// NewWailsLogger wraps l, or the default logger when l is nil.
func NewWailsLogger(l *slog.Logger) *WailsLogger {
	if l == nil {
		l = slog.Default()
	}
	return &WailsLogger{l: l.With("source", "wails")}
}

func (w *WailsLogger) Print(message string) { w.l.Info(message) }
func (w *WailsLogger) Trace(message string) {
	w.l.Log(context.Background(), levelTrace, message)
}
func (w *WailsLogger) Debug(message string)   { w.l.Debug(message) }
func (w *WailsLogger) Info(message string)    { w.l.Info(message) }
func (w *WailsLogger) Warning(message string) { w.l.Warn(message) }
func (w *WailsLogger) Error(message string)   { w.l.Error(message) }
func (w *WailsLogger) Fatal(message string) {
	w.l.Error(message, "fatal", true)
	os.Exit(1)
}
