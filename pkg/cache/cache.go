// Package cache stores rendered artifacts between runs.
//
// The pipeline keys every document by a content hash of the node set and
// the options that shape the output, so a cache hit always returns the
// bytes a fresh render would produce. Three backends implement [Cache]:
//
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP service
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys are generated by a [Keyer]. [ScopedKeyer] prefixes keys so several
// deployments can share one Redis database.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	// TTLDocument bounds how long a rendered artifact is reused.
	TTLDocument = 7 * 24 * time.Hour
	// TTLRelease bounds how long a release check result is reused.
	TTLRelease = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. An expired or
	// unreadable entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Clear empties c when the backend supports it and reports whether it did.
func Clear(ctx context.Context, c Cache) (bool, error) {
	cl, ok := c.(Clearer)
	if !ok {
		return false, nil
	}
	return true, cl.Clear(ctx)
}
