package services

import (
	"context"
	"time"

	"github.com/shoplite/pos_workspace_app/internal/core/domain"
)

// RegistryReaderSvc defines read operations over the workspace registry. All reads
// return consistent snapshots: callers never observe a half-updated current pointer.
type RegistryReaderSvc interface {
	// ListWorkspaces returns every known workspace.
	ListWorkspaces(ctx context.Context) ([]domain.Workspace, error)

	// FindWorkspaceByID retrieves a specific workspace.
	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)

	// CurrentWorkspace returns the workspace the local cache belongs to.
	// Returns apperrors.ErrNotFound when no workspace has been selected yet.
	CurrentWorkspace(ctx context.Context) (*domain.Workspace, error)
}

// RegistryWriterSvc defines mutations of the workspace registry. Every mutation is
// persisted as a whole-document write before returning.
type RegistryWriterSvc interface {
	// AddWorkspace registers a workspace. Fails with apperrors.ErrDuplicateWorkspace if
	// the ID is already present. The first workspace added becomes default and current.
	AddWorkspace(ctx context.Context, workspace domain.Workspace) error

	// UpdateWorkspace applies the patch to the workspace's descriptive fields.
	UpdateWorkspace(ctx context.Context, workspaceID string, patch domain.WorkspacePatch) (*domain.Workspace, error)

	// RemoveWorkspace drops the local registry entry. Fails with
	// apperrors.ErrCannotRemoveCurrent when the workspace is current. Removal never
	// touches the remote record set; rejoining with the company code recovers it.
	RemoveWorkspace(ctx context.Context, workspaceID string) (*domain.RemoveResult, error)

	// SetDefaultWorkspace marks the workspace as default, clearing the flag elsewhere.
	SetDefaultWorkspace(ctx context.Context, workspaceID string) error

	// SetCurrentWorkspace moves the current pointer and bumps lastAccessedAt. Pure
	// metadata: it never touches the local cache and is invoked by the switcher only
	// after the cache transition succeeded.
	SetCurrentWorkspace(ctx context.Context, workspaceID string) error

	// TouchLastSync records a successful sync time for the workspace.
	TouchLastSync(ctx context.Context, workspaceID string, at time.Time) error

	// ResetRegistry drops every workspace and the current pointer. Device reset only.
	ResetRegistry(ctx context.Context) error
}

// RegistrySvcFacade combines all registry service interfaces.
type RegistrySvcFacade interface {
	RegistryReaderSvc
	RegistryWriterSvc
}
