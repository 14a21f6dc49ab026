// Package cache stores rendered label artifacts by content hash.
//
// Three backends implement [Cache]: [FileCache] for the CLI (one JSON entry
// per key under ~/.cache/labelkit), [RedisCache] for shared preview servers,
// and [NullCache] when caching is disabled. Keys are produced by a [Keyer]
// so the pipeline never builds key strings by hand.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A miss is reported as
// ok == false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (removed int, err error)
}

// ArtifactKeyOpts are the render settings that distinguish artifacts built
// from the same export document.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ExportKey addresses the export document built from a set of inputs.
	ExportKey(inputHash string) string
	// ArtifactKey addresses a rendered artifact of an export document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ExportKey implements Keyer.
func (DefaultKeyer) ExportKey(inputHash string) string {
	return kindKey("export", inputHash)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return kindKey("artifact", docHash, opts)
}
