// Package kv defines the key-value persistence capability the ledger is
// built over. Implementations live in subpackages so the ledger can be
// constructed over an in-memory fake in tests with no hidden global state.
package kv

import "context"

// Store is the port for outbound persistence adapters. Values are opaque
// JSON-serialized aggregates addressed by string key; a Set fully rewrites
// the value under its key.
type Store interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set overwrites the value under key.
	Set(ctx context.Context, key string, value []byte) error
}
