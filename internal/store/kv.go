package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KV.Get when no value exists for the key.
var ErrNotFound = errors.New("store: key not found")

// KV is the opaque key-value surface the progress engine persists through.
// Implementations make no atomicity promise across multiple keys.
type KV interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value at key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists all keys starting with prefix, sorted ascending.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases the backend's resources.
	Close() error
}
