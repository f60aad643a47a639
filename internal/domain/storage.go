package domain

import "context"

// ImageStore abstracts the binary-object store holding uploaded images.
// Upload returns the public URL and a key usable for later deletion.
type ImageStore interface {
	Upload(ctx context.Context, folder string, data []byte, contentType string) (url, key string, err error)
	Delete(ctx context.Context, key string) error
}
