// Package archive persists completed backtest results to durable storage,
// either the local filesystem or an S3-compatible object store.
package archive

import "context"

// Storage is a flat key space of byte blobs. Keys are slash-separated
// relative paths; backends map them onto their own namespace.
type Storage interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)

	// List returns every key under the given prefix. A prefix with no
	// keys yields an empty slice, not an error.
	List(ctx context.Context, prefix string) ([]string, error)

	Remove(ctx context.Context, key string) error
}
