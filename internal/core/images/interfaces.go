package images

import "context"

// BlobStore persists image bytes under a key and makes them publicly
// retrievable. Implementations live in internal/storage.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}
