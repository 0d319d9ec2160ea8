// Package archive defines the Store interface for archival storage
// backends: the local long-term archive and its cloud mirror.
//
// Implementations must be safe for concurrent use.
package archive

import (
	"context"
	"io"
)

// Store is the abstraction over an archival storage backend.
type Store interface {
	// Put writes the object under key, overwriting any existing object.
	// Keys are slash-separated paths relative to the archive root
	// (e.g., "books/oliver-twist/audio/ch01.mp3").
	Put(ctx context.Context, key string, r io.Reader) error

	// Open returns a reader for the object under key. The caller closes it.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// URL returns the public address of the object, or the empty string if
	// the backend has no public endpoint (e.g., the local archive).
	URL(key string) string
}
