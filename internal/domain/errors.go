package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrValidation       = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrCapacityExceeded = errors.New("capacity exceeded")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (project, folder, file)
	ResourceID   string // ID of the existing/conflicting resource
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// CapacityError indicates an upload would exceed a storage ceiling.
// Limit distinguishes the per-file ceiling from the folder aggregate so
// clients can tell the user which limit was hit.
type CapacityError struct {
	Limit          string // "file" or "folder"
	LimitBytes     int64
	RequestedBytes int64
	FormattedLimit string // human-readable limit for the error message
}

func (e *CapacityError) Error() string {
	if e.Limit == "file" {
		return fmt.Sprintf("file exceeds the maximum upload size of %s", e.FormattedLimit)
	}
	return fmt.Sprintf("folder capacity of %s would be exceeded", e.FormattedLimit)
}

func (e *CapacityError) StatusCode() int {
	return http.StatusRequestEntityTooLarge
}

// Is allows errors.Is() to match against ErrCapacityExceeded
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
