package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL flavour behind a DB.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// DB wraps a SQL database connection.
type DB struct {
	conn    *sql.DB
	dialect Dialect
	path    string // sqlite file, empty for network databases
}

// New creates a new DB, opening (or creating) the SQLite file at dbPath.
func New(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite only supports one writer, so limit to single connection to prevent SQLITE_BUSY
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, dialect: DialectSQLite, path: dbPath}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// OpenSQL connects to a Postgres or MySQL server using dsn.
func OpenSQL(dialect Dialect, dsn string) (*DB, error) {
	var driver string
	switch dialect {
	case DialectPostgres:
		driver = "postgres"
	case DialectMySQL:
		driver = "mysql"
	case DialectSQLite:
		return New(dsn)
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	db := &DB{conn: conn, dialect: dialect}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the SQLite file path, or "" for network databases.
func (db *DB) Path() string {
	return db.path
}

func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Conn returns the underlying database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

func (db *DB) migrate() error {
	var migrations []string
	switch db.dialect {
	case DialectMySQL:
		migrations = []string{
			`CREATE TABLE IF NOT EXISTS kv_store (
				name VARCHAR(191) NOT NULL PRIMARY KEY,
				value LONGTEXT NOT NULL,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		}
	case DialectPostgres:
		migrations = []string{
			`CREATE TABLE IF NOT EXISTS kv_store (
				name TEXT PRIMARY KEY,
				value TEXT NOT NULL DEFAULT '',
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		}
	default:
		migrations = []string{
			`CREATE TABLE IF NOT EXISTS kv_store (
				name TEXT PRIMARY KEY,
				value TEXT NOT NULL DEFAULT '',
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`,
		}
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %s: %w", firstLine(m), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
