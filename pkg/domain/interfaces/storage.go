package interfaces

import (
	"context"
	"errors"
)

var (
	// ErrStorageKeyNotFound is returned when no object exists for a key.
	ErrStorageKeyNotFound = errors.New("storage key not found")

	// ErrInvalidStorageKey is returned for keys that fail validation,
	// e.g. path traversal attempts.
	ErrInvalidStorageKey = errors.New("invalid storage key")
)

// StorageAdapter stores opaque blobs (uploaded gallery images) under string
// keys.
type StorageAdapter interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}
