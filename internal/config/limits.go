package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// MaxProjectNameLength is the maximum length for project names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxProjectNameLength = 255

	// MaxFolderNameLength is the maximum length for folder names.
	// Same rationale as project names.
	MaxFolderNameLength = 255

	// MaxFileNameLength is the maximum length for file display names.
	MaxFileNameLength = 255

	// MaxFileDescriptionLength is the maximum length for the optional
	// free-text description attached to an uploaded file.
	MaxFileDescriptionLength = 2000

	// DefaultMaxFolderSize is the aggregate byte ceiling per folder (100 MiB).
	DefaultMaxFolderSize = 100 * 1024 * 1024

	// DefaultMaxFileSize is the byte ceiling for a single uploaded file (10 MiB).
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// StorageLimits holds the capacity ceilings enforced on uploads.
// Limits are injected into the capacity policy rather than read from a
// package constant so they can vary per deployment (and later per tenant).
type StorageLimits struct {
	MaxFolderSize int64 `yaml:"max_folder_size"`
	MaxFileSize   int64 `yaml:"max_file_size"`
}

// DefaultStorageLimits returns the built-in ceilings (100 MiB / 10 MiB).
func DefaultStorageLimits() StorageLimits {
	return StorageLimits{
		MaxFolderSize: DefaultMaxFolderSize,
		MaxFileSize:   DefaultMaxFileSize,
	}
}

// LoadStorageLimits reads limit overrides from a YAML file. Fields left at
// zero keep their defaults. An empty path returns the defaults unchanged.
func LoadStorageLimits(path string) (StorageLimits, error) {
	limits := DefaultStorageLimits()
	if path == "" {
		return limits, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return limits, fmt.Errorf("read storage limits file: %w", err)
	}

	var overrides StorageLimits
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return limits, fmt.Errorf("parse storage limits file: %w", err)
	}

	if overrides.MaxFolderSize > 0 {
		limits.MaxFolderSize = overrides.MaxFolderSize
	}
	if overrides.MaxFileSize > 0 {
		limits.MaxFileSize = overrides.MaxFileSize
	}

	if limits.MaxFileSize > limits.MaxFolderSize {
		return limits, fmt.Errorf("max_file_size (%d) cannot exceed max_folder_size (%d)",
			limits.MaxFileSize, limits.MaxFolderSize)
	}

	return limits, nil
}
