package port

import (
	"context"
	"io"
)

// FileStorage abstracts where uploaded file bytes live. Implementations
// exist for the local uploads directory and for S3.
type FileStorage interface {
	// Save writes the file under fileName and returns the storage path to
	// persist in metadata.
	Save(ctx context.Context, fileName string, body io.Reader, size int64, contentType string) (string, error)
	// Open returns a reader for a previously saved file.
	Open(ctx context.Context, storagePath string) (io.ReadCloser, error)
	Delete(ctx context.Context, storagePath string) error
}
