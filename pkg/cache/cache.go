// Package cache provides content-addressed caching for document analyses.
//
// JSONLens caches are keyed by the SHA-256 hash of the raw document bytes,
// so a cache entry can never describe a different document than the one the
// caller holds. Three backends implement the [Cache] interface:
//   - FileCache: XDG cache directory storage for CLI usage
//   - RedisCache: shared cache for the serve mode
//   - NullCache: no-op backend for --no-cache and tests
//
// # Keys
//
// Keys are produced by a [Keyer] so every component derives them the same
// way. Report keys cover the build output (tree + stats); artifact keys
// cover rendered exports (dot, svg, png) and include the render options,
// since different options produce different artifacts for one document.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ReportKeyOpts captures build options that change the cached report.
type ReportKeyOpts struct {
	RootLabel string `json:"root_label"`
}

// ArtifactKeyOpts captures render options that change a cached artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
	MaxDepth int    `json:"max_depth"`
}

// Keyer derives cache keys for the different cached products.
type Keyer interface {
	// ReportKey generates a key for a build report (tree + stats).
	ReportKey(docHash string, opts ReportKeyOpts) string

	// ArtifactKey generates a key for a rendered export artifact.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key derivation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ReportKey generates a key for a build report.
func (k *DefaultKeyer) ReportKey(docHash string, opts ReportKeyOpts) string {
	return hashKey("report", docHash, opts)
}

// ArtifactKey generates a key for a rendered export artifact.
func (k *DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
