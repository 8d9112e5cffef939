package docsystem

import (
	"context"
	"io"

	"atrium/internal/domain/models/docsystem"
)

// FileService handles upload, deletion and download resolution for files.
type FileService interface {
	// UploadFile stores a binary and its metadata record after the
	// capacity checks pass. Rejections happen before any remote call.
	UploadFile(ctx context.Context, req *UploadFileRequest) (*UploadResult, error)

	// GetFile retrieves a file record with a fresh download URL
	GetFile(ctx context.Context, userID, fileID string) (*docsystem.File, error)

	// DeleteFile removes the binary (best effort) and the metadata record
	// (required), returning the owning folder's updated snapshot.
	DeleteFile(ctx context.Context, userID, fileID string) (*docsystem.Folder, error)

	// ResolveDownload returns a fresh presigned URL for the file's binary.
	// Read-only: no folder state is touched.
	ResolveDownload(ctx context.Context, userID, fileID string) (string, error)
}

// UploadFileRequest represents a file upload request
type UploadFileRequest struct {
	UserID      string
	FolderID    string
	DisplayName string
	Description *string
	ContentType string
	Content     io.Reader
	Size        int64 // byte count of Content, from the multipart header
}

// UploadResult carries the created file and the owning folder's updated
// snapshot (size and remaining space recomputed).
type UploadResult struct {
	File   *docsystem.File   `json:"file"`
	Folder *docsystem.Folder `json:"folder"`
}
