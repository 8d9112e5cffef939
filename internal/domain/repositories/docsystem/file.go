package docsystem

import (
	"context"

	"atrium/internal/domain/models/docsystem"
)

// FileRepository defines data access operations for file metadata records
type FileRepository interface {
	// Create creates a new file record
	Create(ctx context.Context, file *docsystem.File) error

	// GetByID retrieves a file record by ID
	GetByID(ctx context.Context, id string) (*docsystem.File, error)

	// Update updates a file record (re-upload, description edit)
	Update(ctx context.Context, file *docsystem.File) error

	// Delete removes a file record
	Delete(ctx context.Context, id string) error

	// ListByFolder lists all file records in a folder, oldest upload first
	ListByFolder(ctx context.Context, folderID string) ([]docsystem.File, error)
}
