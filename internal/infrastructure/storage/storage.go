package storage

import (
	"context"
	"io"
)

// ObjectStorage is the blob surface used for profile pictures.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
	// Key maps a URL produced by URL back to its object key.
	Key(url string) (string, bool)
}
