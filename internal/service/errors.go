package service

import "errors"

// Board errors
var (
	// ErrEmptyContent is returned when an item is added with blank content.
	ErrEmptyContent = errors.New("item content cannot be empty")
	ErrUnknownKind  = errors.New("unknown item kind")

	// ErrNoPendingItem means there is nothing following the pointer, or the
	// given pending item was displaced or already placed.
	ErrNoPendingItem = errors.New("no pending item")

	// ErrIndexOutOfRange is the addressing error for index-based updates.
	ErrIndexOutOfRange = errors.New("item index out of range")
)

// Backup errors
var (
	ErrBackupRunning  = errors.New("backup already running")
	ErrNoBackupTarget = errors.New("backup directory not configured")
)

func isIndexError(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}
