// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// ReferenceCache defines the interface for the short-lived cache in front of
// reference data (category and supplier lists). Values are opaque JSON blobs;
// cache misses and backend failures both surface as ok=false so callers fall
// through to the repository.
type ReferenceCache interface {
	// Get retrieves a cached value. ok is false on miss.
	Get(ctx context.Context, key string) (value []byte, ok bool)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Invalidate drops the given keys.
	Invalidate(ctx context.Context, keys ...string) error
}
