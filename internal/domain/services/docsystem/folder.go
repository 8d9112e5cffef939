package docsystem

import (
	"context"

	"atrium/internal/domain/models/docsystem"
)

// FolderService handles folder business logic. Every mutating operation
// returns the folder snapshot with Size and RemainingSpace recomputed from
// the full file list, so callers can re-render without refetching.
type FolderService interface {
	// CreateFolder creates a new, empty folder
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*docsystem.Folder, error)

	// GetFolder retrieves a folder with its files, size and remaining space
	GetFolder(ctx context.Context, userID, folderID string) (*docsystem.Folder, error)

	// ListFolders lists all folders in a project, each with its files and sizes
	ListFolders(ctx context.Context, userID, projectID string) ([]docsystem.Folder, error)

	// RenameFolder renames a folder. Files and sizes are unaffected.
	RenameFolder(ctx context.Context, userID, folderID string, req *RenameFolderRequest) (*docsystem.Folder, error)

	// DeleteFolder deletes a folder by cascading deletion to every
	// contained file first. All file deletions are attempted; the folder
	// record is removed only if every file deletion succeeded.
	DeleteFolder(ctx context.Context, userID, folderID string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	UserID    string `json:"-"`
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
}

// RenameFolderRequest represents a folder rename request
type RenameFolderRequest struct {
	Name string `json:"name"`
}
