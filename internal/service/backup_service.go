package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ─────────────────────────────────────────────────────────────
// Backup Service: periodic JSON snapshots of the board
// ─────────────────────────────────────────────────────────────

const (
	backupFilePrefix = "moodboard-"
	backupFileSuffix = ".json"
	backupTimeLayout = "20060102T150405.000Z"
	defaultKeep      = 10

	EventBackupWritten = "board:backup-written"
)

// BackupOptions configures the backup schedule.
type BackupOptions struct {
	Schedule string // cron expression, e.g. "@every 30m"; empty disables scheduling
	Dir      string
	Keep     int
}

// BackupService writes snapshots of the board to a directory, either on a
// cron schedule or on demand.
type BackupService struct {
	board   *BoardService
	opts    BackupOptions
	emitter EventEmitter
	gate    JobGate
	now     func() time.Time

	mu        sync.Mutex
	cronSched *cron.Cron
}

// NewBackupService creates a BackupService. Keep defaults to 10.
func NewBackupService(board *BoardService, opts BackupOptions, emitter EventEmitter) *BackupService {
	if opts.Keep <= 0 {
		opts.Keep = defaultKeep
	}
	return &BackupService{
		board:   board,
		opts:    opts,
		emitter: emitter,
		now:     time.Now,
	}
}

// Start schedules backups. It is a no-op when no schedule is configured.
func (s *BackupService) Start(ctx context.Context) error {
	s.Stop()
	if s.opts.Schedule == "" {
		return nil
	}
	if s.opts.Dir == "" {
		return ErrNoBackupTarget
	}

	c := cron.New()
	_, err := c.AddFunc(s.opts.Schedule, func() {
		if _, err := s.RunOnce(ctx); err != nil {
			slog.Warn("backup cron: run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("backup: invalid schedule %q: %w", s.opts.Schedule, err)
	}
	c.Start()

	s.mu.Lock()
	s.cronSched = c
	s.mu.Unlock()
	slog.Info("backup cron: scheduled", "schedule", s.opts.Schedule, "dir", s.opts.Dir)
	return nil
}

// RunOnce writes a snapshot now and prunes old ones. It returns the path of
// the new file.
func (s *BackupService) RunOnce(ctx context.Context) (string, error) {
	if s.opts.Dir == "" {
		return "", ErrNoBackupTarget
	}
	if !s.gate.Enter() {
		return "", ErrBackupRunning
	}
	defer s.gate.Leave()

	data, err := EncodeBoard(s.board.Items())
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.opts.Dir, 0o755); err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}

	name := backupFilePrefix + s.now().UTC().Format(backupTimeLayout) + backupFileSuffix
	path := filepath.Join(s.opts.Dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(data), 0o644); err != nil {
		return "", fmt.Errorf("backup: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("backup: %w", err)
	}

	if err := s.prune(); err != nil {
		slog.Warn("backup: prune failed", "error", err)
	}
	slog.Debug("backup written", "path", path)
	if s.emitter != nil {
		s.emitter.Emit(ctx, EventBackupWritten, path)
	}
	return path, nil
}

// ListBackups returns backup files in the backup directory, newest first.
func (s *BackupService) ListBackups() ([]string, error) {
	entries, err := os.ReadDir(s.opts.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || !strings.HasPrefix(n, backupFilePrefix) || !strings.HasSuffix(n, backupFileSuffix) {
			continue
		}
		names = append(names, n)
	}
	// Timestamps sort lexically.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(s.opts.Dir, n)
	}
	return paths, nil
}

func (s *BackupService) prune() error {
	paths, err := s.ListBackups()
	if err != nil {
		return err
	}
	if len(paths) <= s.opts.Keep {
		return nil
	}
	for _, p := range paths[s.opts.Keep:] {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// WaitRunning blocks until a running backup finishes or ctx is cancelled.
func (s *BackupService) WaitRunning(ctx context.Context) {
	s.gate.Wait(ctx)
}

// Stop halts the scheduler. Safe to call repeatedly.
func (s *BackupService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cronSched != nil {
		s.cronSched.Stop()
		s.cronSched = nil
	}
}

// SetClock replaces the time source used for file names.
func (s *BackupService) SetClock(now func() time.Time) {
	s.now = now
}
