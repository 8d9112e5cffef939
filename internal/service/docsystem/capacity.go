package docsystem

import (
	"atrium/internal/config"
	"atrium/internal/domain"
	"atrium/internal/sizeutil"
)

// CapacityPolicy enforces the storage ceilings on uploads: a per-file
// maximum and an aggregate maximum per folder. Limits are injected so
// deployments (and later tenants) can carry different ceilings.
type CapacityPolicy struct {
	limits config.StorageLimits
}

// NewCapacityPolicy creates a capacity policy with the given limits
func NewCapacityPolicy(limits config.StorageLimits) *CapacityPolicy {
	return &CapacityPolicy{limits: limits}
}

// MaxFolderSize returns the aggregate byte ceiling per folder
func (p *CapacityPolicy) MaxFolderSize() int64 {
	return p.limits.MaxFolderSize
}

// MaxFileSize returns the byte ceiling for a single file
func (p *CapacityPolicy) MaxFileSize() int64 {
	return p.limits.MaxFileSize
}

// CheckUpload rejects an upload that would violate either ceiling.
// Both boundaries are inclusive: a file of exactly MaxFileSize is
// accepted, and a folder filled to exactly MaxFolderSize is legal.
// Callers run this before any remote mutation (reject-before-write).
func (p *CapacityPolicy) CheckUpload(currentTotal, incoming int64) error {
	if incoming > p.limits.MaxFileSize {
		return &domain.CapacityError{
			Limit:          "file",
			LimitBytes:     p.limits.MaxFileSize,
			RequestedBytes: incoming,
			FormattedLimit: sizeutil.FormatSize(p.limits.MaxFileSize),
		}
	}

	if currentTotal+incoming > p.limits.MaxFolderSize {
		return &domain.CapacityError{
			Limit:          "folder",
			LimitBytes:     p.limits.MaxFolderSize,
			RequestedBytes: currentTotal + incoming,
			FormattedLimit: sizeutil.FormatSize(p.limits.MaxFolderSize),
		}
	}

	return nil
}
