package docsystem

import (
	"context"
	"fmt"

	"atrium/internal/domain"
	models "atrium/internal/domain/models/docsystem"
	docsysRepo "atrium/internal/domain/repositories/docsystem"
)

// ResourceValidator centralizes ownership checks for the document system.
// Project lookups are owner-scoped, so a project belonging to someone else
// surfaces as not-found rather than leaking its existence.
type ResourceValidator struct {
	projectRepo docsysRepo.ProjectRepository
	folderRepo  docsysRepo.FolderRepository
}

// NewResourceValidator creates a new resource validator
func NewResourceValidator(
	projectRepo docsysRepo.ProjectRepository,
	folderRepo docsysRepo.FolderRepository,
) *ResourceValidator {
	return &ResourceValidator{
		projectRepo: projectRepo,
		folderRepo:  folderRepo,
	}
}

// ValidateProject checks that the project exists, is not deleted, and
// belongs to the user.
func (v *ResourceValidator) ValidateProject(ctx context.Context, projectID, userID string) error {
	if _, err := v.projectRepo.GetByID(ctx, projectID, userID); err != nil {
		return err
	}
	return nil
}

// AuthorizeFolder loads a folder and verifies the user owns its project.
func (v *ResourceValidator) AuthorizeFolder(ctx context.Context, folderID, userID string) (*models.Folder, error) {
	folder, err := v.folderRepo.GetByID(ctx, folderID)
	if err != nil {
		return nil, err
	}

	if err := v.ValidateProject(ctx, folder.ProjectID, userID); err != nil {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}

	return folder, nil
}
