package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrForbidden indicates the caller is not permitted to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicateWorkspace indicates an attempt to register a workspace whose ID is already present.
var ErrDuplicateWorkspace = errors.New("workspace already exists")

// ErrCannotRemoveCurrent indicates an attempt to remove the workspace that is currently active.
// The caller must switch away before removing it.
var ErrCannotRemoveCurrent = errors.New("cannot remove the current workspace")

// ErrAlreadyCurrent indicates a switch request targeting the workspace that is already active.
var ErrAlreadyCurrent = errors.New("workspace is already current")

// ErrSwitchInProgress indicates that another workspace switch is already in flight.
var ErrSwitchInProgress = errors.New("a workspace switch is already in progress")

// ErrRemoteUnreachable indicates a transient failure talking to the shop cloud.
// Callers may retry with backoff.
var ErrRemoteUnreachable = errors.New("remote store unreachable")

// ErrRemoteRejected indicates the shop cloud refused the request (e.g. an invalid or
// revoked company code). Not retryable.
var ErrRemoteRejected = errors.New("remote store rejected the request")

// ErrCacheCommit indicates a failure while committing a cache transition. The local cache
// may no longer match the registry and the failure must be surfaced to the user.
var ErrCacheCommit = errors.New("cache commit failed")

// AppError carries a status code alongside a message and the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a generic AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches apperrors.ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewConflictError creates an AppError that matches apperrors.ErrDuplicateWorkspace.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrDuplicateWorkspace}
}

// NewValidationFailedError creates an AppError that matches apperrors.ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// IsRetryable reports whether the error is transient and safe to retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRemoteUnreachable)
}
