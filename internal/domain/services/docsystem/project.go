package docsystem

import (
	"context"

	"atrium/internal/domain/models/docsystem"
)

// ProjectService handles project business logic
type ProjectService interface {
	// CreateProject creates a new project
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*docsystem.Project, error)

	// GetProject retrieves a project by ID
	GetProject(ctx context.Context, id, ownerID string) (*docsystem.Project, error)

	// ListProjects retrieves all projects for an owner
	ListProjects(ctx context.Context, ownerID string) ([]docsystem.Project, error)

	// UpdateProject updates a project's name or description
	UpdateProject(ctx context.Context, id, ownerID string, req *UpdateProjectRequest) (*docsystem.Project, error)

	// DeleteProject soft-deletes a project. Folders and files are retained;
	// they become unreachable through the API once the project is gone.
	DeleteProject(ctx context.Context, id, ownerID string) error
}

// CreateProjectRequest represents a project creation request
type CreateProjectRequest struct {
	OwnerID     string  `json:"-"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateProjectRequest represents a project update request
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
