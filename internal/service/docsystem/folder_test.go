package docsystem

import (
	"context"
	"errors"
	"testing"

	"atrium/internal/config"
	"atrium/internal/domain"
	docsysSvc "atrium/internal/domain/services/docsystem"
)

func TestCreateFolderStartsEmpty(t *testing.T) {
	e := newEnv(t)

	folder, err := e.folderSvc.CreateFolder(context.Background(), &docsysSvc.CreateFolderRequest{
		UserID:    "user-1",
		ProjectID: "project-1",
		Name:      "  Dive Logs  ",
	})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	if folder.Name != "Dive Logs" {
		t.Errorf("Name = %q, want %q (trimmed)", folder.Name, "Dive Logs")
	}
	if folder.Size != 0 {
		t.Errorf("Size = %d, want 0", folder.Size)
	}
	if folder.RemainingSpace != config.DefaultMaxFolderSize {
		t.Errorf("RemainingSpace = %d, want %d", folder.RemainingSpace, int64(config.DefaultMaxFolderSize))
	}
	if folder.Files == nil || len(folder.Files) != 0 {
		t.Errorf("Files = %v, want empty non-nil slice", folder.Files)
	}
}

func TestCreateFolderValidation(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name       string
		folderName string
	}{
		{"empty name", ""},
		{"whitespace only name", "   "},
		{"slash in name", "field/notes"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.folderSvc.CreateFolder(context.Background(), &docsysSvc.CreateFolderRequest{
				UserID:    "user-1",
				ProjectID: "project-1",
				Name:      tc.folderName,
			})
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}

	if e.folders.createCalls != 1 { // only the seed folder
		t.Errorf("folder create calls = %d, want 1", e.folders.createCalls)
	}
}

func TestCreateFolderRequiresOwnedProject(t *testing.T) {
	e := newEnv(t)

	_, err := e.folderSvc.CreateFolder(context.Background(), &docsysSvc.CreateFolderRequest{
		UserID:    "user-2",
		ProjectID: "project-1",
		Name:      "Intruder",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign project: expected ErrNotFound, got %v", err)
	}
}

func TestRenameFolderLeavesUsageUntouched(t *testing.T) {
	e := newEnv(t)
	e.upload(t, "notes.txt", 1024)
	e.upload(t, "photos.zip", 4096)

	folder, err := e.folderSvc.RenameFolder(context.Background(), "user-1", "folder-1",
		&docsysSvc.RenameFolderRequest{Name: "Expedition Notes"})
	if err != nil {
		t.Fatalf("RenameFolder: %v", err)
	}

	if folder.Name != "Expedition Notes" {
		t.Errorf("Name = %q, want %q", folder.Name, "Expedition Notes")
	}
	if folder.Size != 5120 {
		t.Errorf("Size = %d, want 5120", folder.Size)
	}
	if want := int64(config.DefaultMaxFolderSize - 5120); folder.RemainingSpace != want {
		t.Errorf("RemainingSpace = %d, want %d", folder.RemainingSpace, want)
	}
	if len(folder.Files) != 2 {
		t.Errorf("Files has %d entries, want 2", len(folder.Files))
	}
}

func TestRenameFolderValidation(t *testing.T) {
	e := newEnv(t)

	_, err := e.folderSvc.RenameFolder(context.Background(), "user-1", "folder-1",
		&docsysSvc.RenameFolderRequest{Name: "a/b"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestDeleteFolderCascades(t *testing.T) {
	e := newEnv(t)
	e.upload(t, "one.txt", 100)
	e.upload(t, "two.txt", 200)
	e.upload(t, "three.txt", 300)

	if err := e.folderSvc.DeleteFolder(context.Background(), "user-1", "folder-1"); err != nil {
		t.Fatalf("DeleteFolder: %v", err)
	}

	if e.files.deleteCalls != 3 {
		t.Errorf("file delete calls = %d, want 3", e.files.deleteCalls)
	}
	if e.blobs.deleteCalls != 3 {
		t.Errorf("blob delete calls = %d, want 3", e.blobs.deleteCalls)
	}
	if e.folders.deleteCalls != 1 {
		t.Errorf("folder delete calls = %d, want 1", e.folders.deleteCalls)
	}
	if _, err := e.folders.GetByID(context.Background(), "folder-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("folder should be gone, got %v", err)
	}
	if len(e.blobs.objects) != 0 {
		t.Errorf("%d blobs left behind", len(e.blobs.objects))
	}
}

func TestDeleteEmptyFolder(t *testing.T) {
	e := newEnv(t)

	if err := e.folderSvc.DeleteFolder(context.Background(), "user-1", "folder-1"); err != nil {
		t.Fatalf("DeleteFolder: %v", err)
	}
	if e.files.deleteCalls != 0 {
		t.Errorf("file delete calls = %d, want 0", e.files.deleteCalls)
	}
	if e.folders.deleteCalls != 1 {
		t.Errorf("folder delete calls = %d, want 1", e.folders.deleteCalls)
	}
}

func TestDeleteFolderPartialFailureKeepsFolder(t *testing.T) {
	e := newEnv(t)
	e.upload(t, "one.txt", 100)
	stuck := e.upload(t, "two.txt", 200)
	e.upload(t, "three.txt", 300)

	e.files.failDeleteIDs[stuck.File.ID] = true

	err := e.folderSvc.DeleteFolder(context.Background(), "user-1", "folder-1")
	if err == nil {
		t.Fatal("expected error when a file deletion fails")
	}

	// Every file deletion was still attempted
	if e.files.deleteCalls != 3 {
		t.Errorf("file delete calls = %d, want 3 (all attempted)", e.files.deleteCalls)
	}
	// The folder record was never touched
	if e.folders.deleteCalls != 0 {
		t.Errorf("folder delete calls = %d, want 0", e.folders.deleteCalls)
	}

	// The folder survives with the stuck file still accounted for
	folder, getErr := e.folderSvc.GetFolder(context.Background(), "user-1", "folder-1")
	if getErr != nil {
		t.Fatalf("GetFolder: %v", getErr)
	}
	if len(folder.Files) != 1 {
		t.Errorf("surviving Files = %d, want 1", len(folder.Files))
	}
	if folder.Size != 200 {
		t.Errorf("Size = %d, want 200", folder.Size)
	}
}

func TestDeleteFolderToleratesBlobErrors(t *testing.T) {
	e := newEnv(t)
	e.upload(t, "one.txt", 100)
	e.upload(t, "two.txt", 200)

	// Blob deletions fail (objects already gone); the cascade still
	// removes every record and the folder.
	e.blobs.failDelete = true

	if err := e.folderSvc.DeleteFolder(context.Background(), "user-1", "folder-1"); err != nil {
		t.Fatalf("DeleteFolder with failing blob store: %v", err)
	}
	if e.folders.deleteCalls != 1 {
		t.Errorf("folder delete calls = %d, want 1", e.folders.deleteCalls)
	}
}

func TestListFoldersComputesUsagePerFolder(t *testing.T) {
	e := newEnv(t)
	e.upload(t, "notes.txt", 2048)

	if _, err := e.folderSvc.CreateFolder(context.Background(), &docsysSvc.CreateFolderRequest{
		UserID:    "user-1",
		ProjectID: "project-1",
		Name:      "Empty",
	}); err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}

	folders, err := e.folderSvc.ListFolders(context.Background(), "user-1", "project-1")
	if err != nil {
		t.Fatalf("ListFolders: %v", err)
	}
	if len(folders) != 2 {
		t.Fatalf("got %d folders, want 2", len(folders))
	}

	byName := make(map[string]int64)
	for _, f := range folders {
		byName[f.Name] = f.Size
	}
	if byName["Field Notes"] != 2048 {
		t.Errorf("Field Notes size = %d, want 2048", byName["Field Notes"])
	}
	if byName["Empty"] != 0 {
		t.Errorf("Empty size = %d, want 0", byName["Empty"])
	}
}
