package service

import (
	"context"
	"fmt"
	"strconv"

	"moodboard/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Window Size Persistence
// ─────────────────────────────────────────────────────────────
//
// Saves and restores the main Wails window size between sessions.
// Stored next to the board record as plain key-value rows.

// WindowSize holds the saved window dimensions.
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SettingsService persists window size between sessions.
type SettingsService struct {
	store domain.KVStore
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(store domain.KVStore) *SettingsService {
	return &SettingsService{store: store}
}

const (
	settingWindowWidth  = "window_width"
	settingWindowHeight = "window_height"
	defaultWindowWidth  = 1280
	defaultWindowHeight = 800
	minWindowWidth      = 800
	minWindowHeight     = 600
)

// DefaultWindowSize is used when nothing valid has been saved.
func DefaultWindowSize() WindowSize {
	return WindowSize{Width: defaultWindowWidth, Height: defaultWindowHeight}
}

// LoadWindowSize returns the saved window dimensions, or sensible defaults.
func (s *SettingsService) LoadWindowSize(ctx context.Context) WindowSize {
	if s.store == nil {
		return DefaultWindowSize()
	}
	w := s.readInt(ctx, settingWindowWidth, defaultWindowWidth)
	h := s.readInt(ctx, settingWindowHeight, defaultWindowHeight)

	if w < minWindowWidth {
		w = defaultWindowWidth
	}
	if h < minWindowHeight {
		h = defaultWindowHeight
	}
	return WindowSize{Width: w, Height: h}
}

// SaveWindowSize persists the current window dimensions.
func (s *SettingsService) SaveWindowSize(ctx context.Context, width, height int) error {
	if s.store == nil {
		return fmt.Errorf("window settings: no store")
	}
	if err := s.store.Set(ctx, settingWindowWidth, strconv.Itoa(width)); err != nil {
		return fmt.Errorf("window settings: %w", err)
	}
	if err := s.store.Set(ctx, settingWindowHeight, strconv.Itoa(height)); err != nil {
		return fmt.Errorf("window settings: %w", err)
	}
	return nil
}

func (s *SettingsService) readInt(ctx context.Context, key string, def int) int {
	raw, found, err := s.store.Get(ctx, key)
	if err != nil || !found {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
