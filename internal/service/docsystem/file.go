package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"atrium/internal/config"
	"atrium/internal/domain"
	models "atrium/internal/domain/models/docsystem"
	docsysRepo "atrium/internal/domain/repositories/docsystem"
	docsysSvc "atrium/internal/domain/services/docsystem"
	"atrium/internal/sizeutil"
	"atrium/internal/storage"
)

// fileService implements the FileService interface
type fileService struct {
	fileRepo      docsysRepo.FileRepository
	folderRepo    docsysRepo.FolderRepository
	blobStore     storage.BlobStore
	policy        *CapacityPolicy
	validator     *ResourceValidator
	presignExpiry time.Duration
	logger        *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo docsysRepo.FileRepository,
	folderRepo docsysRepo.FolderRepository,
	blobStore storage.BlobStore,
	policy *CapacityPolicy,
	validator *ResourceValidator,
	presignExpiry time.Duration,
	logger *slog.Logger,
) docsysSvc.FileService {
	return &fileService{
		fileRepo:      fileRepo,
		folderRepo:    folderRepo,
		blobStore:     blobStore,
		policy:        policy,
		validator:     validator,
		presignExpiry: presignExpiry,
		logger:        logger,
	}
}

// UploadFile stores a binary and its metadata record. Both capacity
// checks run against the folder's current file list before any remote
// call, so a rejected upload leaves no trace anywhere.
func (s *fileService) UploadFile(ctx context.Context, req *docsysSvc.UploadFileRequest) (*docsysSvc.UploadResult, error) {
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if err := s.validateUploadRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.validator.AuthorizeFolder(ctx, req.FolderID, req.UserID)
	if err != nil {
		return nil, err
	}

	files, err := s.fileRepo.ListByFolder(ctx, req.FolderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	var currentTotal int64
	for i := range files {
		currentTotal += files[i].Size
	}

	if err := s.policy.CheckUpload(currentTotal, req.Size); err != nil {
		return nil, err
	}

	// The storage name is generated, never derived from user input, so
	// display-name collisions and renames can't touch the blob store.
	storageFileName := uuid.New().String() + strings.ToLower(filepath.Ext(req.DisplayName))

	file := &models.File{
		ProjectID:       folder.ProjectID,
		FolderID:        folder.ID,
		DisplayName:     req.DisplayName,
		StorageFileName: storageFileName,
		Size:            req.Size,
		ContentType:     req.ContentType,
		Description:     req.Description,
		UploadedAt:      time.Now(),
		LastModified:    time.Now(),
	}

	if err := s.blobStore.Put(ctx, file.BlobKey(), req.Content, req.ContentType); err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		// The blob is already written; clean it up so a failed upload
		// leaves no orphaned binary behind.
		if delErr := s.blobStore.Delete(ctx, file.BlobKey()); delErr != nil {
			s.logger.Error("failed to clean up blob after metadata insert failure",
				"key", file.BlobKey(),
				"error", delErr,
			)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	// Download URL is a convenience; presign failure degrades to an empty
	// URL rather than failing an upload that already committed.
	url, err := s.blobStore.PresignURL(ctx, file.BlobKey(), s.presignExpiry)
	if err != nil {
		s.logger.Warn("failed to presign download URL", "file_id", file.ID, "error", err)
	} else {
		file.DownloadURL = url
	}

	applyFolderUsage(folder, append(files, *file), s.policy.MaxFolderSize())

	s.logger.Info("file uploaded",
		"id", file.ID,
		"display_name", file.DisplayName,
		"folder_id", folder.ID,
		"project_id", folder.ProjectID,
		"size", sizeutil.FormatSize(file.Size),
		"folder_size", sizeutil.FormatSize(folder.Size),
	)

	return &docsysSvc.UploadResult{File: file, Folder: folder}, nil
}

// GetFile retrieves a file record with a fresh download URL
func (s *fileService) GetFile(ctx context.Context, userID, fileID string) (*models.File, error) {
	file, err := s.authorizeFile(ctx, fileID, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.blobStore.PresignURL(ctx, file.BlobKey(), s.presignExpiry)
	if err != nil {
		s.logger.Warn("failed to presign download URL", "file_id", file.ID, "error", err)
	} else {
		file.DownloadURL = url
	}

	return file, nil
}

// DeleteFile removes the binary (best effort) and the metadata record
// (required). A missing blob is tolerated; a failed metadata delete
// fails the operation and leaves the folder unchanged.
func (s *fileService) DeleteFile(ctx context.Context, userID, fileID string) (*models.Folder, error) {
	file, err := s.authorizeFile(ctx, fileID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.blobStore.Delete(ctx, file.BlobKey()); err != nil {
		s.logger.Warn("blob delete failed, continuing with metadata delete",
			"file_id", file.ID,
			"key", file.BlobKey(),
			"error", err,
		)
	}

	if err := s.fileRepo.Delete(ctx, fileID); err != nil {
		return nil, fmt.Errorf("failed to delete file: %w", err)
	}

	folder, err := s.folderRepo.GetByID(ctx, file.FolderID)
	if err != nil {
		return nil, err
	}

	files, err := s.fileRepo.ListByFolder(ctx, file.FolderID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	applyFolderUsage(folder, files, s.policy.MaxFolderSize())

	s.logger.Info("file deleted",
		"id", fileID,
		"folder_id", file.FolderID,
		"folder_size", sizeutil.FormatSize(folder.Size),
	)

	return folder, nil
}

// ResolveDownload returns a fresh presigned URL for the file's binary.
// Read-only: no folder state is touched.
func (s *fileService) ResolveDownload(ctx context.Context, userID, fileID string) (string, error) {
	file, err := s.authorizeFile(ctx, fileID, userID)
	if err != nil {
		return "", err
	}

	url, err := s.blobStore.PresignURL(ctx, file.BlobKey(), s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to resolve download URL: %w", err)
	}

	return url, nil
}

// authorizeFile loads a file and verifies the user owns its project via
// the owning folder.
func (s *fileService) authorizeFile(ctx context.Context, fileID, userID string) (*models.File, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if _, err := s.validator.AuthorizeFolder(ctx, file.FolderID, userID); err != nil {
		return nil, fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
	}

	return file, nil
}

// validateUploadRequest validates a file upload request
func (s *fileService) validateUploadRequest(req *docsysSvc.UploadFileRequest) error {
	if req.Content == nil {
		return fmt.Errorf("file content is required")
	}
	if req.Size < 0 {
		return fmt.Errorf("file size cannot be negative")
	}

	return validation.ValidateStruct(req,
		validation.Field(&req.FolderID, validation.Required),
		validation.Field(&req.DisplayName,
			validation.Required,
			validation.Length(1, config.MaxFileNameLength),
			validation.Match(folderNamePattern).Error("file name cannot contain slashes"),
		),
		validation.Field(&req.Description,
			validation.Length(0, config.MaxFileDescriptionLength),
		),
	)
}
