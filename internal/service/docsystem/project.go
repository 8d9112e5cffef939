package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"atrium/internal/config"
	"atrium/internal/domain"
	models "atrium/internal/domain/models/docsystem"
	docsysRepo "atrium/internal/domain/repositories/docsystem"
	docsysSvc "atrium/internal/domain/services/docsystem"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo docsysRepo.ProjectRepository
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo docsysRepo.ProjectRepository,
	logger *slog.Logger,
) docsysSvc.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// CreateProject creates a new project
func (s *projectService) CreateProject(ctx context.Context, req *docsysSvc.CreateProjectRequest) (*models.Project, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	project := &models.Project{
		OwnerID:     req.OwnerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"name", project.Name,
		"owner_id", req.OwnerID,
	)

	return project, nil
}

// GetProject retrieves a project by ID
func (s *projectService) GetProject(ctx context.Context, id, ownerID string) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id, ownerID)
}

// ListProjects retrieves all projects for an owner
func (s *projectService) ListProjects(ctx context.Context, ownerID string) ([]models.Project, error) {
	projects, err := s.projectRepo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if projects == nil {
		projects = []models.Project{}
	}

	return projects, nil
}

// UpdateProject updates a project's name or description
func (s *projectService) UpdateProject(ctx context.Context, id, ownerID string, req *docsysSvc.UpdateProjectRequest) (*models.Project, error) {
	if req.Name == nil && req.Description == nil {
		return nil, fmt.Errorf("%w: at least one field must be provided", domain.ErrValidation)
	}

	project, err := s.projectRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validation.Validate(name,
			validation.Required,
			validation.Length(1, config.MaxProjectNameLength),
		); err != nil {
			return nil, fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
		}
		project.Name = name
	}

	if req.Description != nil {
		project.Description = req.Description
	}

	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", project.ID,
		"name", project.Name,
	)

	return project, nil
}

// DeleteProject soft-deletes a project. Folders and files are retained
// but become unreachable through the API.
func (s *projectService) DeleteProject(ctx context.Context, id, ownerID string) error {
	if err := s.projectRepo.SoftDelete(ctx, id, ownerID); err != nil {
		return err
	}

	s.logger.Info("project deleted",
		"id", id,
		"owner_id", ownerID,
	)

	return nil
}

// validateCreateRequest validates a project creation request
func (s *projectService) validateCreateRequest(req *docsysSvc.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxProjectNameLength),
		),
	)
}
