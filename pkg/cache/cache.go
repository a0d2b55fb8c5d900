// Package cache stores rendered diagram artifacts (PNG, SVG, DOT) keyed by
// the content of the diagram and the render options.
//
// Rendering a diagram is deterministic, so an artifact can be reused for as
// long as the diagram document and the options are unchanged. Keys are
// SHA-256 hashes of both, see [DefaultKeyer].
//
// Three implementations are provided:
//   - [FileCache] for CLI use, one file per entry under a directory
//   - [RedisCache] for a shared cache next to a Redis diagram store
//   - [NullCache] when caching is disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the entry for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Close releases resources held by the cache.
	Close() error
}
