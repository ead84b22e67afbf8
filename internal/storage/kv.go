package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KVStore implements domain.KVStore on top of a SQL database.
type KVStore struct {
	db *DB
}

func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db}
}

// DB returns the database the store writes to.
func (s *KVStore) DB() *DB {
	return s.db
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.Conn().QueryRowContext(ctx, s.query(`SELECT value FROM kv_store WHERE name = ?`), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	var stmt string
	switch s.db.Dialect() {
	case DialectMySQL:
		stmt = `INSERT INTO kv_store (name, value, updated_at) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)`
	default:
		stmt = `INSERT INTO kv_store (name, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	}
	if _, err := s.db.Conn().ExecContext(ctx, s.query(stmt), key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Conn().ExecContext(ctx, s.query(`DELETE FROM kv_store WHERE name = ?`), key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Close() error {
	return s.db.Close()
}

// query rewrites ? placeholders into $n for Postgres.
func (s *KVStore) query(q string) string {
	if s.db.Dialect() != DialectPostgres {
		return q
	}
	out := make([]byte, 0, len(q)+8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, q[i])
	}
	return string(out)
}
