package docsystem

import (
	"fmt"
	"time"
)

type File struct {
	ID        string `json:"id" db:"id"`
	ProjectID string `json:"project_id" db:"project_id"`
	FolderID  string `json:"folder_id" db:"folder_id"`
	// DisplayName is the user-facing name ("Report"). StorageFileName is
	// the generated key component the binary is stored under; the two are
	// decoupled so renames never touch the blob store.
	DisplayName     string    `json:"display_name" db:"display_name"`
	StorageFileName string    `json:"storage_file_name" db:"storage_file_name"`
	Size            int64     `json:"size" db:"size"` // canonical byte count
	ContentType     string    `json:"content_type" db:"content_type"`
	Description     *string   `json:"description,omitempty" db:"description"`
	UploadedAt      time.Time `json:"uploaded_at" db:"uploaded_at"`
	LastModified    time.Time `json:"last_modified" db:"last_modified"`

	// Computed, not stored: short-lived presigned URL for the binary.
	DownloadURL string `json:"download_url,omitempty"`
}

// BlobKey returns the object-storage key for this file's binary.
func (f *File) BlobKey() string {
	return fmt.Sprintf("%s/%s/%s", f.ProjectID, f.FolderID, f.StorageFileName)
}
