// Package cache stores derived layout results keyed by their inputs.
//
// A layout is a pure function of the tile sizes, the container width and
// the layout options, so its serialized document can be reused across CLI
// runs and server requests. Backends:
//
//   - [NullCache]: stores nothing, used with --no-cache.
//   - [MemoryCache]: bounded LRU in process memory.
//   - [FileCache]: one JSON file per entry under a cache directory.
//   - [RedisCache]: shared cache for several server instances.
//   - [MongoCache]: documents expired by a TTL index.
//
// Keys are built by a [Keyer] so that every backend sees the same key for
// the same inputs.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases connections held by the backend.
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Clear drops every entry of c if the backend supports it.
func Clear(ctx context.Context, c Cache) error {
	if cl, ok := c.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}
