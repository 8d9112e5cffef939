package docsystem

import (
	"context"

	"atrium/internal/domain/models/docsystem"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	// Create creates a new project
	Create(ctx context.Context, project *docsystem.Project) error

	// GetByID retrieves a project by ID, scoped to its owner
	GetByID(ctx context.Context, id, ownerID string) (*docsystem.Project, error)

	// List retrieves all non-deleted projects for an owner
	List(ctx context.Context, ownerID string) ([]docsystem.Project, error)

	// Update updates a project
	Update(ctx context.Context, project *docsystem.Project) error

	// SoftDelete marks a project as deleted without removing its records
	SoftDelete(ctx context.Context, id, ownerID string) error
}
