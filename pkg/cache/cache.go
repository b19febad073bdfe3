// Package cache provides result caching for computed dashboard views.
//
// Computed views are pure functions of a snapshot and the layout options, so
// they cache perfectly: the key is a hash of the snapshot's canonical record
// encoding plus the options, never an object identity or a version that can
// go stale. A new snapshot produces a new key, which is how stale results
// are discarded between refreshes.
//
// Three backends are provided:
//   - [FileCache]: file-based, for CLI usage
//   - [RedisCache]: Redis-backed, for multi-instance server deployments
//   - [NullCache]: no-op, for tests or when caching is disabled
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
// Implementations must treat an expired or missing key as a miss, not an
// error; errors are reserved for backend failures.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the different cached artifact types.
type Keyer interface {
	// ViewKey generates a key for a computed view, from the snapshot's
	// content hash and the layout options that shaped it.
	ViewKey(snapshotHash string, opts ViewKeyOpts) string

	// SnapshotKey generates a key for a raw snapshot payload.
	SnapshotKey(snapshotID string) string
}

// ViewKeyOpts captures every input that changes the computed view besides
// the snapshot itself. Two computations with equal snapshot hashes and equal
// opts are interchangeable.
type ViewKeyOpts struct {
	CanvasWidth  float64
	CanvasHeight float64
	Padding      float64
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ViewKey generates a key for a computed view.
func (k *DefaultKeyer) ViewKey(snapshotHash string, opts ViewKeyOpts) string {
	return hashKey("view", snapshotHash, opts)
}

// SnapshotKey generates a key for a raw snapshot payload.
func (k *DefaultKeyer) SnapshotKey(snapshotID string) string {
	return hashKey("snapshot", snapshotID)
}
