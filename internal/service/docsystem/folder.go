package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"atrium/internal/config"
	"atrium/internal/domain"
	models "atrium/internal/domain/models/docsystem"
	docsysRepo "atrium/internal/domain/repositories/docsystem"
	docsysSvc "atrium/internal/domain/services/docsystem"
	"atrium/internal/storage"
)

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

// folderService implements the FolderService interface
type folderService struct {
	folderRepo    docsysRepo.FolderRepository
	fileRepo      docsysRepo.FileRepository
	blobStore     storage.BlobStore
	policy        *CapacityPolicy
	validator     *ResourceValidator
	presignExpiry time.Duration
	logger        *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo docsysRepo.FolderRepository,
	fileRepo docsysRepo.FileRepository,
	blobStore storage.BlobStore,
	policy *CapacityPolicy,
	validator *ResourceValidator,
	presignExpiry time.Duration,
	logger *slog.Logger,
) docsysSvc.FolderService {
	return &folderService{
		folderRepo:    folderRepo,
		fileRepo:      fileRepo,
		blobStore:     blobStore,
		policy:        policy,
		validator:     validator,
		presignExpiry: presignExpiry,
		logger:        logger,
	}
}

// CreateFolder creates a new, empty folder
func (s *folderService) CreateFolder(ctx context.Context, req *docsysSvc.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.validator.ValidateProject(ctx, req.ProjectID, req.UserID); err != nil {
		return nil, err
	}

	folder := &models.Folder{
		ProjectID: req.ProjectID,
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	// A new folder starts empty with the full capacity available
	applyFolderUsage(folder, nil, s.policy.MaxFolderSize())

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"project_id", req.ProjectID,
	)

	return folder, nil
}

// GetFolder retrieves a folder with its files, size and remaining space
func (s *folderService) GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	folder, err := s.validator.AuthorizeFolder(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}

	files, err := s.fileRepo.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	s.resolveDownloadURLs(ctx, files)
	applyFolderUsage(folder, files, s.policy.MaxFolderSize())

	return folder, nil
}

// ListFolders lists all folders in a project with their files and sizes
func (s *folderService) ListFolders(ctx context.Context, userID, projectID string) ([]models.Folder, error) {
	if err := s.validator.ValidateProject(ctx, projectID, userID); err != nil {
		return nil, err
	}

	folders, err := s.folderRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	for i := range folders {
		files, err := s.fileRepo.ListByFolder(ctx, folders[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list files for folder %s: %w", folders[i].ID, err)
		}
		s.resolveDownloadURLs(ctx, files)
		applyFolderUsage(&folders[i], files, s.policy.MaxFolderSize())
	}

	if folders == nil {
		folders = []models.Folder{}
	}

	return folders, nil
}

// RenameFolder renames a folder. Files, size and remaining space are
// unaffected; only Name and UpdatedAt change.
func (s *folderService) RenameFolder(ctx context.Context, userID, folderID string, req *docsysSvc.RenameFolderRequest) (*models.Folder, error) {
	if err := validation.Validate(strings.TrimSpace(req.Name),
		validation.Required,
		validation.Length(1, config.MaxFolderNameLength),
		validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
	); err != nil {
		return nil, fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
	}

	folder, err := s.validator.AuthorizeFolder(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}

	folder.Name = strings.TrimSpace(req.Name)
	folder.UpdatedAt = time.Now()

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	files, err := s.fileRepo.ListByFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	applyFolderUsage(folder, files, s.policy.MaxFolderSize())

	s.logger.Info("folder renamed",
		"id", folder.ID,
		"name", folder.Name,
	)

	return folder, nil
}

// DeleteFolder deletes a folder by cascading deletion to every contained
// file first. Every file deletion is attempted even if earlier ones fail;
// the folder record is removed only when all of them succeeded, so a
// partial cascade leaves the folder visible with its surviving files.
func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID string) error {
	folder, err := s.validator.AuthorizeFolder(ctx, folderID, userID)
	if err != nil {
		return err
	}

	files, err := s.fileRepo.ListByFolder(ctx, folderID)
	if err != nil {
		return fmt.Errorf("list files: %w", err)
	}

	var failures []error
	for i := range files {
		if err := s.deleteFile(ctx, &files[i]); err != nil {
			failures = append(failures, fmt.Errorf("delete file %q: %w", files[i].DisplayName, err))
			continue
		}
		s.logger.Debug("deleted file in cascade",
			"file_id", files[i].ID,
			"folder_id", folderID,
		)
	}

	if len(failures) > 0 {
		return fmt.Errorf("folder %q not deleted, %d of %d file deletions failed: %w",
			folder.Name, len(failures), len(files), errors.Join(failures...))
	}

	if err := s.folderRepo.Delete(ctx, folderID); err != nil {
		return err
	}

	s.logger.Info("folder deleted",
		"id", folderID,
		"name", folder.Name,
		"project_id", folder.ProjectID,
		"files_deleted", len(files),
	)

	return nil
}

// deleteFile removes one file's blob (best effort - a missing blob is
// tolerated) and its metadata record (required).
func (s *folderService) deleteFile(ctx context.Context, file *models.File) error {
	if err := s.blobStore.Delete(ctx, file.BlobKey()); err != nil {
		s.logger.Warn("blob delete failed, continuing with metadata delete",
			"file_id", file.ID,
			"key", file.BlobKey(),
			"error", err,
		)
	}

	return s.fileRepo.Delete(ctx, file.ID)
}

// resolveDownloadURLs attaches presigned URLs to a file list. Presign
// failures degrade to an empty URL with a warning; clients can still
// request a fresh URL through the download endpoint.
func (s *folderService) resolveDownloadURLs(ctx context.Context, files []models.File) {
	for i := range files {
		url, err := s.blobStore.PresignURL(ctx, files[i].BlobKey(), s.presignExpiry)
		if err != nil {
			s.logger.Warn("failed to presign download URL",
				"file_id", files[i].ID,
				"error", err,
			)
			continue
		}
		files[i].DownloadURL = url
	}
}

// validateCreateRequest validates a folder creation request
func (s *folderService) validateCreateRequest(req *docsysSvc.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
			validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
		),
	)
}
