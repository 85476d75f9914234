// Package cache stores solved colorings and rendered drawings.
//
// # Overview
//
// Solving a coloring program is the expensive step of every run, and its
// result depends only on the graph and the encoder options. The pipeline keys
// solutions by a hash of the normalized graph plus those options, so solving
// the same graph twice is served from the cache.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] builds keys; [DefaultKeyer] hashes the options into the key and
// [ScopedKeyer] prepends a namespace.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL. A miss is
// reported as (nil, false, nil); errors are reserved for backend failures.
// Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs per entry kind. Solutions are deterministic in their key, so
// they live long; rendered drawings are cheap to rebuild.
const (
	TTLSolution = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// SolutionKeyOpts holds the inputs besides the graph that change a solution.
type SolutionKeyOpts struct {
	UsageForcing bool   `json:"usage_forcing"`
	Solver       string `json:"solver"`
}

// ArtifactKeyOpts holds the inputs that change a rendered drawing.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// Keyer builds cache keys.
type Keyer interface {
	// SolutionKey keys a decoded solution by graph hash and options.
	SolutionKey(graphHash string, opts SolutionKeyOpts) string

	// ArtifactKey keys a rendered drawing by solution hash and options.
	ArtifactKey(solutionHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "kind:sha256(inputs)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolutionKey implements Keyer.
func (DefaultKeyer) SolutionKey(graphHash string, opts SolutionKeyOpts) string {
	return hashKey("solution", graphHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(solutionHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", solutionHash, opts)
}
