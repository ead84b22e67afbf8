package service_test

import (
	"context"
	"testing"

	"moodboard/internal/service"
	"moodboard/internal/storage"
)

func TestSettingsService_Defaults(t *testing.T) {
	svc := service.NewSettingsService(storage.NewMemoryStore())
	got := svc.LoadWindowSize(context.Background())
	if got != service.DefaultWindowSize() {
		t.Errorf("expected defaults, got %+v", got)
	}

	if got := service.NewSettingsService(nil).LoadWindowSize(context.Background()); got != service.DefaultWindowSize() {
		t.Errorf("nil store: expected defaults, got %+v", got)
	}
}

func TestSettingsService_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := service.NewSettingsService(store)

	if err := svc.SaveWindowSize(ctx, 1600, 900); err != nil {
		t.Fatalf("SaveWindowSize: %v", err)
	}
	got := service.NewSettingsService(store).LoadWindowSize(ctx)
	if got.Width != 1600 || got.Height != 900 {
		t.Errorf("got %+v", got)
	}
}

func TestSettingsService_TooSmallFallsBack(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := service.NewSettingsService(store)

	svc.SaveWindowSize(ctx, 300, 200)
	got := svc.LoadWindowSize(ctx)
	if got != service.DefaultWindowSize() {
		t.Errorf("expected defaults for tiny window, got %+v", got)
	}

	store.Set(ctx, "window_width", "wide")
	if got := svc.LoadWindowSize(ctx); got.Width != 1280 {
		t.Errorf("garbage width should fall back, got %+v", got)
	}
}

func TestSettingsService_SaveWithoutStore(t *testing.T) {
	if err := service.NewSettingsService(nil).SaveWindowSize(context.Background(), 1000, 1000); err == nil {
		t.Error("expected error without a store")
	}
}
