package docsystem

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"atrium/internal/config"
	"atrium/internal/domain"
	models "atrium/internal/domain/models/docsystem"
	docsysSvc "atrium/internal/domain/services/docsystem"
)

func TestUploadFileUpdatesFolderUsage(t *testing.T) {
	e := newEnv(t)

	const size = 2 * 1024 * 1024
	res := e.upload(t, "reef-photos.pdf", size)

	if res.File.Size != size {
		t.Errorf("File.Size = %d, want %d", res.File.Size, size)
	}
	if res.File.DisplayName != "reef-photos.pdf" {
		t.Errorf("DisplayName = %q", res.File.DisplayName)
	}
	if res.File.StorageFileName == "reef-photos.pdf" {
		t.Error("storage name must not be the display name")
	}
	if !strings.HasSuffix(res.File.StorageFileName, ".pdf") {
		t.Errorf("storage name %q should keep the extension", res.File.StorageFileName)
	}
	if !strings.HasPrefix(res.File.BlobKey(), "project-1/folder-1/") {
		t.Errorf("blob key %q should be scoped to project and folder", res.File.BlobKey())
	}
	if res.File.DownloadURL == "" {
		t.Error("expected a presigned download URL")
	}

	if res.Folder.Size != size {
		t.Errorf("Folder.Size = %d, want %d", res.Folder.Size, size)
	}
	if want := int64(config.DefaultMaxFolderSize - size); res.Folder.RemainingSpace != want {
		t.Errorf("RemainingSpace = %d, want %d", res.Folder.RemainingSpace, want)
	}
	if len(res.Folder.Files) != 1 {
		t.Fatalf("Folder.Files has %d entries, want 1", len(res.Folder.Files))
	}
	if e.blobs.putCalls != 1 {
		t.Errorf("blob put calls = %d, want 1", e.blobs.putCalls)
	}

	// Deleting the file restores the folder to empty
	folder, err := e.fileSvc.DeleteFile(context.Background(), "user-1", res.File.ID)
	if err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if folder.Size != 0 {
		t.Errorf("after delete Folder.Size = %d, want 0", folder.Size)
	}
	if folder.RemainingSpace != config.DefaultMaxFolderSize {
		t.Errorf("after delete RemainingSpace = %d, want %d", folder.RemainingSpace, int64(config.DefaultMaxFolderSize))
	}
	if len(folder.Files) != 0 {
		t.Errorf("after delete Folder.Files has %d entries, want 0", len(folder.Files))
	}
}

func TestUploadFileRejectsOversizeFile(t *testing.T) {
	e := newEnv(t)

	// Exactly at the per-file ceiling: accepted
	e.upload(t, "at-limit.bin", config.DefaultMaxFileSize)

	putsBefore := e.blobs.putCalls
	createsBefore := e.files.createCalls

	_, err := e.fileSvc.UploadFile(context.Background(), &docsysSvc.UploadFileRequest{
		UserID:      "user-1",
		FolderID:    "folder-1",
		DisplayName: "over-limit.bin",
		ContentType: "application/octet-stream",
		Content:     bytes.NewReader(nil),
		Size:        config.DefaultMaxFileSize + 1,
	})
	if !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}

	// Rejection happens before any remote call
	if e.blobs.putCalls != putsBefore {
		t.Errorf("blob put calls = %d, want %d (no writes on rejection)", e.blobs.putCalls, putsBefore)
	}
	if e.files.createCalls != createsBefore {
		t.Errorf("file create calls = %d, want %d (no writes on rejection)", e.files.createCalls, createsBefore)
	}
}

func TestUploadFileRejectsWhenFolderFull(t *testing.T) {
	e := newEnv(t)

	// Seed the folder to 1 KB below its ceiling
	seed := &models.File{
		ProjectID:       "project-1",
		FolderID:        "folder-1",
		DisplayName:     "archive.bin",
		StorageFileName: "archive.bin",
		Size:            config.DefaultMaxFolderSize - 1024,
	}
	if err := e.files.Create(context.Background(), seed); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	// An upload filling the folder exactly is accepted
	res := e.upload(t, "last-kilobyte.bin", 1024)
	if res.Folder.RemainingSpace != 0 {
		t.Errorf("RemainingSpace = %d, want 0", res.Folder.RemainingSpace)
	}

	// The folder is now full; even one more byte is rejected
	putsBefore := e.blobs.putCalls
	_, err := e.fileSvc.UploadFile(context.Background(), &docsysSvc.UploadFileRequest{
		UserID:      "user-1",
		FolderID:    "folder-1",
		DisplayName: "one-byte.bin",
		ContentType: "application/octet-stream",
		Content:     bytes.NewReader([]byte{0}),
		Size:        1,
	})
	if !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if e.blobs.putCalls != putsBefore {
		t.Errorf("blob put calls = %d, want %d (no writes on rejection)", e.blobs.putCalls, putsBefore)
	}
}

func TestUploadFileValidation(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name string
		req  docsysSvc.UploadFileRequest
	}{
		{
			name: "empty display name",
			req: docsysSvc.UploadFileRequest{
				UserID: "user-1", FolderID: "folder-1",
				DisplayName: "   ",
				Content:     bytes.NewReader(nil),
			},
		},
		{
			name: "slash in display name",
			req: docsysSvc.UploadFileRequest{
				UserID: "user-1", FolderID: "folder-1",
				DisplayName: "notes/day-one.txt",
				Content:     bytes.NewReader(nil),
			},
		},
		{
			name: "negative size",
			req: docsysSvc.UploadFileRequest{
				UserID: "user-1", FolderID: "folder-1",
				DisplayName: "notes.txt",
				Content:     bytes.NewReader(nil),
				Size:        -1,
			},
		},
		{
			name: "missing content",
			req: docsysSvc.UploadFileRequest{
				UserID: "user-1", FolderID: "folder-1",
				DisplayName: "notes.txt",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			_, err := e.fileSvc.UploadFile(context.Background(), &req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}

	if e.blobs.putCalls != 0 {
		t.Errorf("blob put calls = %d, want 0", e.blobs.putCalls)
	}
}

func TestUploadFileCleansUpBlobOnRecordFailure(t *testing.T) {
	e := newEnv(t)
	e.files.failCreate = true

	_, err := e.fileSvc.UploadFile(context.Background(), &docsysSvc.UploadFileRequest{
		UserID:      "user-1",
		FolderID:    "folder-1",
		DisplayName: "doomed.txt",
		ContentType: "text/plain",
		Content:     strings.NewReader("hello"),
		Size:        5,
	})
	if err == nil {
		t.Fatal("expected error when the metadata insert fails")
	}

	if e.blobs.putCalls != 1 {
		t.Errorf("blob put calls = %d, want 1", e.blobs.putCalls)
	}
	if e.blobs.deleteCalls != 1 {
		t.Errorf("blob delete calls = %d, want 1 (orphan cleanup)", e.blobs.deleteCalls)
	}
	if len(e.blobs.objects) != 0 {
		t.Errorf("%d orphaned blobs left behind", len(e.blobs.objects))
	}
}

func TestDeleteFileToleratesMissingBlob(t *testing.T) {
	e := newEnv(t)
	res := e.upload(t, "notes.txt", 512)

	e.blobs.failDelete = true

	folder, err := e.fileSvc.DeleteFile(context.Background(), "user-1", res.File.ID)
	if err != nil {
		t.Fatalf("DeleteFile with failing blob store: %v", err)
	}
	if folder.Size != 0 {
		t.Errorf("Folder.Size = %d, want 0", folder.Size)
	}
	if _, err := e.files.GetByID(context.Background(), res.File.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("file record should be gone, got %v", err)
	}
}

func TestDeleteFileFailsWhenRecordDeleteFails(t *testing.T) {
	e := newEnv(t)
	res := e.upload(t, "notes.txt", 512)

	e.files.failDeleteIDs[res.File.ID] = true

	if _, err := e.fileSvc.DeleteFile(context.Background(), "user-1", res.File.ID); err == nil {
		t.Fatal("expected error when the metadata delete fails")
	}

	// The record survives and the folder still accounts for it
	folder, err := e.folderSvc.GetFolder(context.Background(), "user-1", "folder-1")
	if err != nil {
		t.Fatalf("GetFolder: %v", err)
	}
	if folder.Size != 512 {
		t.Errorf("Folder.Size = %d, want 512", folder.Size)
	}
}

func TestResolveDownload(t *testing.T) {
	e := newEnv(t)
	res := e.upload(t, "notes.txt", 512)

	url, err := e.fileSvc.ResolveDownload(context.Background(), "user-1", res.File.ID)
	if err != nil {
		t.Fatalf("ResolveDownload: %v", err)
	}
	if !strings.Contains(url, res.File.StorageFileName) {
		t.Errorf("URL %q should reference the storage name", url)
	}

	// Unlike listings, a presign failure here is an error: the URL is the
	// whole point of the call.
	e.blobs.failPresign = true
	if _, err := e.fileSvc.ResolveDownload(context.Background(), "user-1", res.File.ID); err == nil {
		t.Fatal("expected error when presigning fails")
	}
}

func TestFileAccessScopedToOwner(t *testing.T) {
	e := newEnv(t)
	res := e.upload(t, "notes.txt", 512)

	if _, err := e.fileSvc.GetFile(context.Background(), "user-2", res.File.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign user GetFile: expected ErrNotFound, got %v", err)
	}
	if _, err := e.fileSvc.DeleteFile(context.Background(), "user-2", res.File.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign user DeleteFile: expected ErrNotFound, got %v", err)
	}
	if e.files.deleteCalls != 0 {
		t.Errorf("file delete calls = %d, want 0", e.files.deleteCalls)
	}
}
