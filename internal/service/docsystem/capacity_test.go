package docsystem

import (
	"errors"
	"testing"

	"atrium/internal/config"
	"atrium/internal/domain"
)

func testPolicy() *CapacityPolicy {
	return NewCapacityPolicy(config.StorageLimits{
		MaxFolderSize: config.DefaultMaxFolderSize,
		MaxFileSize:   config.DefaultMaxFileSize,
	})
}

func TestCheckUploadPerFileCeiling(t *testing.T) {
	policy := testPolicy()

	// A file of exactly the ceiling is accepted
	if err := policy.CheckUpload(0, config.DefaultMaxFileSize); err != nil {
		t.Fatalf("file at exactly the ceiling rejected: %v", err)
	}

	// One byte over is rejected
	err := policy.CheckUpload(0, config.DefaultMaxFileSize+1)
	if err == nil {
		t.Fatal("expected rejection for file one byte over the ceiling")
	}
	if !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}

	var capErr *domain.CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected *domain.CapacityError, got %T", err)
	}
	if capErr.Limit != "file" {
		t.Errorf("Limit = %q, want %q", capErr.Limit, "file")
	}
	if capErr.FormattedLimit != "10.00 MB" {
		t.Errorf("FormattedLimit = %q, want %q", capErr.FormattedLimit, "10.00 MB")
	}
}

func TestCheckUploadFolderCeiling(t *testing.T) {
	policy := testPolicy()

	// Filling the folder to exactly its ceiling is legal
	current := int64(config.DefaultMaxFolderSize - 1024)
	if err := policy.CheckUpload(current, 1024); err != nil {
		t.Fatalf("upload filling folder exactly rejected: %v", err)
	}

	// One byte past the ceiling is rejected
	err := policy.CheckUpload(current, 1025)
	if err == nil {
		t.Fatal("expected rejection for upload overflowing the folder")
	}
	if !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}

	var capErr *domain.CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected *domain.CapacityError, got %T", err)
	}
	if capErr.Limit != "folder" {
		t.Errorf("Limit = %q, want %q", capErr.Limit, "folder")
	}
	if capErr.FormattedLimit != "100.00 MB" {
		t.Errorf("FormattedLimit = %q, want %q", capErr.FormattedLimit, "100.00 MB")
	}
}

func TestCheckUploadPerFileBeatsFolderCheck(t *testing.T) {
	// An oversize file into a nearly full folder reports the file limit,
	// which is the actionable one for the user.
	policy := testPolicy()

	err := policy.CheckUpload(config.DefaultMaxFolderSize-1, config.DefaultMaxFileSize+1)
	if err == nil {
		t.Fatal("expected rejection")
	}

	var capErr *domain.CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected *domain.CapacityError, got %T", err)
	}
	if capErr.Limit != "file" {
		t.Errorf("Limit = %q, want %q", capErr.Limit, "file")
	}
}
