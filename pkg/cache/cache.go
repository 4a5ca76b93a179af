// Package cache stores rendered chart artifacts.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for the HTTP service, and [NullCache] when caching is disabled. Keys are
// built by a [Keyer] from a hash of the input points and the render options,
// so any change in data or appearance produces a new key.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// TTLs for cached entries.
const (
	TTLArtifact = 7 * 24 * time.Hour
)
