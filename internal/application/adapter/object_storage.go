// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"io"
	"strings"
	"time"
)

// StagingPrefix is the key namespace for uploads that are staged first and
// linked to their owner later.
const StagingPrefix = "staging/"

// IsStagingKey reports whether a key lives in the staging namespace.
func IsStagingKey(key string) bool {
	return strings.HasPrefix(key, StagingPrefix) && len(key) > len(StagingPrefix)
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	SizeBytes    int64
	ContentType  string
	LastModified time.Time
}

// ObjectStorage defines the interface for the object store holding uploaded
// files (transaction receipts, supplier documents, project images, staged
// uploads, rendered reports).
type ObjectStorage interface {
	// Put writes an object under the given key.
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Get opens an object for reading. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, *ObjectInfo, error)

	// Stat returns object metadata without reading the body. Returns
	// ErrObjectNotFound when the key does not resolve.
	Stat(ctx context.Context, key string) (*ObjectInfo, error)

	// Copy duplicates an object under a new key.
	Copy(ctx context.Context, srcKey, dstKey string) error

	// Delete removes an object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// PublicURL returns the externally reachable URL for a key.
	PublicURL(key string) string
}
