package storage

import (
	"context"
	"path/filepath"
	"testing"

	"moodboard/internal/domain"
)

func newTestSQLite(t *testing.T) *KVStore {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "moodboard.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	s := NewKVStore(db)
	t.Cleanup(func() { s.Close() })
	return s
}

func exerciseKVStore(t *testing.T, s domain.KVStore) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := s.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("Get(missing) = found %v, err %v", found, err)
	}

	if err := s.Set(ctx, "moodBoardItems", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "moodBoardItems", `[{"kind":"text"}]`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, found, err := s.Get(ctx, "moodBoardItems")
	if err != nil || !found {
		t.Fatalf("Get = found %v, err %v", found, err)
	}
	if v != `[{"kind":"text"}]` {
		t.Errorf("Get = %q", v)
	}

	if err := s.Delete(ctx, "moodBoardItems"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := s.Get(ctx, "moodBoardItems"); found {
		t.Error("key still present after Delete")
	}
	if err := s.Delete(ctx, "moodBoardItems"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func TestKVStore_SQLite(t *testing.T) {
	exerciseKVStore(t, newTestSQLite(t))
}

func TestMemoryStore(t *testing.T) {
	exerciseKVStore(t, NewMemoryStore())
}

func TestKVStore_SQLiteReopenKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moodboard.db")
	ctx := context.Background()

	db, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := NewKVStore(db).Set(ctx, "k", "v"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	v, found, err := NewKVStore(db).Get(ctx, "k")
	if err != nil || !found || v != "v" {
		t.Errorf("after reopen: %q %v %v", v, found, err)
	}
}

func TestKVStore_PostgresPlaceholders(t *testing.T) {
	s := &KVStore{db: &DB{dialect: DialectPostgres}}
	got := s.query(`INSERT INTO kv_store (name, value, updated_at) VALUES (?, ?, ?)`)
	want := `INSERT INTO kv_store (name, value, updated_at) VALUES ($1, $2, $3)`
	if got != want {
		t.Errorf("got %s", got)
	}

	s = &KVStore{db: &DB{dialect: DialectMySQL}}
	if q := s.query(`SELECT ? `); q != `SELECT ? ` {
		t.Errorf("mysql query rewritten: %s", q)
	}
}

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	mem, err := Open(ctx, Options{Driver: DriverMemory})
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if FilePath(mem) != "" {
		t.Error("memory store should have no file path")
	}

	path := filepath.Join(t.TempDir(), "board.db")
	sq, err := Open(ctx, Options{Driver: DriverSQLite, Path: path})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	defer sq.Close()
	if FilePath(sq) != path {
		t.Errorf("FilePath = %q, want %q", FilePath(sq), path)
	}

	if _, err := Open(ctx, Options{Driver: "redis"}); err == nil {
		t.Error("expected error for unknown driver")
	}
	if _, err := Open(ctx, Options{Driver: DriverSQLite}); err == nil {
		t.Error("expected error for sqlite without a path")
	}
}
