package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"atrium/internal/domain"
	models "atrium/internal/domain/models/docsystem"
	docsysRepo "atrium/internal/domain/repositories/docsystem"
	"atrium/internal/repository/postgres"
)

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *postgres.RepositoryConfig) docsysRepo.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new project
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (owner_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Projects)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.OwnerID,
		project.Name,
		project.Description,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by ID, scoped to its owner
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id, ownerID string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM %s
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL
	`, r.tables.Projects)

	var project models.Project
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, ownerID).Scan(
		&project.ID,
		&project.OwnerID,
		&project.Name,
		&project.Description,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

// List retrieves all non-deleted projects for an owner
func (r *PostgresProjectRepository) List(ctx context.Context, ownerID string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM %s
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
	`, r.tables.Projects)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(
			&p.ID,
			&p.OwnerID,
			&p.Name,
			&p.Description,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// Update updates a project
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4 AND owner_id = $5 AND deleted_at IS NULL
	`, r.tables.Projects)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		project.Name,
		project.Description,
		project.UpdatedAt,
		project.ID,
		project.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}

	return nil
}

// SoftDelete marks a project as deleted without removing its records
func (r *PostgresProjectRepository) SoftDelete(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = $1
		WHERE id = $2 AND owner_id = $3 AND deleted_at IS NULL
	`, r.tables.Projects)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, time.Now(), id, ownerID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
