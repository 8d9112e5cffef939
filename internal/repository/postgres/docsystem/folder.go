package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"atrium/internal/domain"
	models "atrium/internal/domain/models/docsystem"
	docsysRepo "atrium/internal/domain/repositories/docsystem"
	"atrium/internal/repository/postgres"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *postgres.RepositoryConfig) docsysRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.ProjectID,
		folder.Name,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			existingID, queryErr := r.getExistingFolderID(ctx, folder.ProjectID, folder.Name)
			if queryErr != nil {
				// Fallback to generic conflict error if we can't find the existing folder
				return fmt.Errorf("folder %q already exists in this project: %w", folder.Name, domain.ErrConflict)
			}

			return &domain.ConflictError{
				Message:      fmt.Sprintf("folder %q already exists in this project", folder.Name),
				ResourceType: "folder",
				ResourceID:   existingID,
			}
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, name, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Folders)

	var folder models.Folder
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&folder.ID,
		&folder.ProjectID,
		&folder.Name,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// Update updates a folder (rename)
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, updated_at = $2
		WHERE id = $3
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, folder.Name, folder.UpdatedAt, folder.ID)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			existingID, queryErr := r.getExistingFolderID(ctx, folder.ProjectID, folder.Name)
			if queryErr != nil {
				return fmt.Errorf("folder %q already exists in this project: %w", folder.Name, domain.ErrConflict)
			}

			return &domain.ConflictError{
				Message:      fmt.Sprintf("folder %q already exists in this project", folder.Name),
				ResourceType: "folder",
				ResourceID:   existingID,
			}
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a folder record
func (r *PostgresFolderRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByProject lists all folders in a project
func (r *PostgresFolderRepository) ListByProject(ctx context.Context, projectID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, name, created_at, updated_at
		FROM %s
		WHERE project_id = $1
		ORDER BY name
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(
			&f.ID,
			&f.ProjectID,
			&f.Name,
			&f.CreatedAt,
			&f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}

	return folders, rows.Err()
}

// getExistingFolderID looks up the ID of the folder causing a name conflict
func (r *PostgresFolderRepository) getExistingFolderID(ctx context.Context, projectID, name string) (string, error) {
	query := fmt.Sprintf(`
		SELECT id FROM %s WHERE project_id = $1 AND name = $2
	`, r.tables.Folders)

	var id string
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, projectID, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}
