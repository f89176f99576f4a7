package kv

import (
	"context"
	"errors"
	"time"
)

// Store is the contract against the external document store: opaque
// JSON values addressed by string keys. Consumers define cart
// semantics on top; adapters here know nothing about carts.
type Store interface {
	// Get returns the raw value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes value under key. A positive ttl bounds the record's
	// lifetime; zero means the record does not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// SetAndDelete writes value under setKey and removes delKey in a
	// single call. Adapters commit both atomically when the backing
	// store supports a multi-key transaction.
	SetAndDelete(ctx context.Context, setKey string, value []byte, ttl time.Duration, delKey string) error
}

var ErrNotFound = errors.New("key not found")
