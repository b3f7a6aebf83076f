// Package cache provides pluggable byte caches used to skip recomputing
// layouts for graphs that were already processed.
//
// Implementations:
//   - FileCache: directory-backed cache for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: disables caching
//
// Keys are produced by a Keyer so that every consumer derives them the
// same way from graph content hashes and layout options.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind. Graphs are inputs supplied
// by the user and may change underneath their hash source, so they expire
// sooner than computed layouts, which are pure functions of their key.
const (
	TTLGraph  = 24 * time.Hour
	TTLLayout = 7 * 24 * time.Hour
)

// Cache is a byte-oriented cache with per-entry expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit;
	// a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given time-to-live. A zero ttl means
	// the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}

// LayoutKeyOpts are the option values that change a layout result and
// therefore take part in the cache key.
type LayoutKeyOpts struct {
	Algorithm  string  `json:"algorithm"`
	Dim        int     `json:"dim"`
	Seed       uint64  `json:"seed"`
	Iterations int     `json:"iterations"`
	Scale      float64 `json:"scale"`
	RandomInit bool    `json:"random_init"`
}

// Keyer derives cache keys from content hashes and options.
type Keyer interface {
	// GraphKey generates a key for a parsed graph, derived from a hash
	// of its serialized content.
	GraphKey(graphHash string) string

	// LayoutKey generates a key for a computed layout.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer is the standard key derivation used by both the CLI and
// the server.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a parsed graph.
func (k *DefaultKeyer) GraphKey(graphHash string) string {
	return "graph:" + graphHash
}

// LayoutKey generates a key for a computed layout. All option values are
// hashed in, so any change produces a distinct key.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}
