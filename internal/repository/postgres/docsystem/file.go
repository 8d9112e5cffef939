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

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *postgres.RepositoryConfig) docsysRepo.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new file record
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, folder_id, display_name, storage_file_name,
			size, content_type, description, uploaded_at, last_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, uploaded_at, last_modified
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		file.ProjectID,
		file.FolderID,
		file.DisplayName,
		file.StorageFileName,
		file.Size,
		file.ContentType,
		file.Description,
		file.UploadedAt,
		file.LastModified,
	).Scan(&file.ID, &file.UploadedAt, &file.LastModified)

	if err != nil {
		return fmt.Errorf("create file record: %w", err)
	}

	return nil
}

// GetByID retrieves a file record by ID
func (r *PostgresFileRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, folder_id, display_name, storage_file_name,
			size, content_type, description, uploaded_at, last_modified
		FROM %s
		WHERE id = $1
	`, r.tables.Files)

	var file models.File
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.ProjectID,
		&file.FolderID,
		&file.DisplayName,
		&file.StorageFileName,
		&file.Size,
		&file.ContentType,
		&file.Description,
		&file.UploadedAt,
		&file.LastModified,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

// Update updates a file record
func (r *PostgresFileRepository) Update(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET display_name = $1, storage_file_name = $2, size = $3,
			content_type = $4, description = $5, last_modified = $6
		WHERE id = $7
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		file.DisplayName,
		file.StorageFileName,
		file.Size,
		file.ContentType,
		file.Description,
		file.LastModified,
		file.ID,
	)
	if err != nil {
		return fmt.Errorf("update file: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a file record
func (r *PostgresFileRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByFolder lists all file records in a folder, oldest upload first
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, folder_id, display_name, storage_file_name,
			size, content_type, description, uploaded_at, last_modified
		FROM %s
		WHERE folder_id = $1
		ORDER BY uploaded_at
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var f models.File
		if err := rows.Scan(
			&f.ID,
			&f.ProjectID,
			&f.FolderID,
			&f.DisplayName,
			&f.StorageFileName,
			&f.Size,
			&f.ContentType,
			&f.Description,
			&f.UploadedAt,
			&f.LastModified,
		); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}

	return files, rows.Err()
}
