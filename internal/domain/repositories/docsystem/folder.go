package docsystem

import (
	"context"

	"atrium/internal/domain/models/docsystem"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *docsystem.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*docsystem.Folder, error)

	// Update updates a folder (rename)
	Update(ctx context.Context, folder *docsystem.Folder) error

	// Delete removes a folder record. Callers must have deleted the
	// folder's files first; the cascade lives in the service layer.
	Delete(ctx context.Context, id string) error

	// ListByProject lists all folders in a project
	ListByProject(ctx context.Context, projectID string) ([]docsystem.Folder, error)
}
