package ports

import (
	"context"
	"mime/multipart"
)

// ImageStorage is the durable media store for avatars, cover images, and blog
// thumbnails. Implementations own the local staging of the upload and must
// remove any temporary file on every exit path.
type ImageStorage interface {
	// Upload stores the file under the given logical folder and returns the
	// durable URL.
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
	// Delete removes a previously uploaded file by its URL. Best effort;
	// callers treat failures as non-fatal.
	Delete(ctx context.Context, url string) error
}
