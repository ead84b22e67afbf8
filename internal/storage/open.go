package storage

import (
	"context"
	"fmt"

	"moodboard/internal/domain"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMongoDB  = "mongodb"
	DriverMemory   = "memory"
)

// Options selects and configures a KV backend.
type Options struct {
	Driver     string
	Path       string // sqlite database file
	DSN        string // postgres / mysql connection string
	URI        string // mongodb connection URI
	Database   string // mongodb database
	Collection string // mongodb collection
}

// Open returns the KV backend described by opts.
func Open(ctx context.Context, opts Options) (domain.KVStore, error) {
	switch opts.Driver {
	case "", DriverSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite: no database path")
		}
		db, err := New(opts.Path)
		if err != nil {
			return nil, err
		}
		return NewKVStore(db), nil
	case DriverPostgres:
		db, err := OpenSQL(DialectPostgres, opts.DSN)
		if err != nil {
			return nil, err
		}
		return NewKVStore(db), nil
	case DriverMySQL:
		db, err := OpenSQL(DialectMySQL, opts.DSN)
		if err != nil {
			return nil, err
		}
		return NewKVStore(db), nil
	case DriverMongoDB:
		return NewMongoStore(ctx, opts.URI, opts.Database, opts.Collection)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", opts.Driver)
	}
}

// FilePath returns the on-disk file behind store, if it has one.
func FilePath(store domain.KVStore) string {
	if kv, ok := store.(*KVStore); ok {
		return kv.DB().Path()
	}
	return ""
}
