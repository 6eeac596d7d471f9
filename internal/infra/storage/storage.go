// Package storage defines the durable key-value medium the wallet persists
// its state into. Values are opaque strings; callers own the serialization
// (the history store and address book each keep a JSON document under a
// single well-known key).
package storage

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned by Get when the key has no value.
	ErrKeyNotFound = errors.New("key not found")
)

// KV is the persistence medium abstraction. Implementations must be safe for
// concurrent use.
type KV interface {
	// Get retrieves the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value string) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Ping checks that the medium is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}
