package domain

import "context"

// KVStore is the persistent key-value collaborator behind the board.
// Values are opaque strings; a missing key is reported with found=false.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
