// Package cache stores rendered frames and artifacts.
//
// A [Cache] is a plain byte store with per-entry TTL. Three backends exist:
//   - [FileCache]: files under a directory, for the CLI
//   - [RedisCache]: a shared redis instance, for servers
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// Keys are derived by a [Keyer] from content hashes, so equal inputs map to
// equal keys across processes:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.FrameKey(cfg.Hash())
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is a byte store with expiring entries.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// FrameKey is the key of the frame produced by a configuration.
	FrameKey(configHash string) string
	// ArtifactKey is the key of a frame rendered with opts.
	ArtifactKey(frameHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Format   string
	Arc      bool
	Cross    bool
	NoLabels bool
	Scale    float64
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FrameKey returns "frame:" followed by a hash of configHash.
func (DefaultKeyer) FrameKey(configHash string) string {
	return hashKey("frame", configHash)
}

// ArtifactKey returns "artifact:<format>:" followed by a hash of the inputs.
func (DefaultKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, frameHash, opts)
}

// GetJSON decodes the value of key into v. It returns [ErrCacheMiss] when
// the key is absent or holds data that no longer decodes.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok || json.Unmarshal(data, v) != nil {
		return ErrCacheMiss
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
