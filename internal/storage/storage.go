package storage

import (
	"context"
	"io"
	"time"
)

// BlobStore defines the interface for binary object storage.
// Keys are opaque paths of the form "projectID/folderID/storageFileName".
type BlobStore interface {
	// Put stores an object under the given key
	Put(ctx context.Context, key string, body io.Reader, contentType string) error

	// Delete removes an object. Deleting a missing object is not an
	// error; cascade deletes rely on this being idempotent.
	Delete(ctx context.Context, key string) error

	// PresignURL returns a time-limited URL for downloading the object
	PresignURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
