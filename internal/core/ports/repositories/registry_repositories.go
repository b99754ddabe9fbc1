package repositories

import (
	"context"

	"github.com/shoplite/pos_workspace_app/internal/core/domain"
)

// RegistryDocumentStore persists the workspace registry as a single durable document.
// The whole document is read once at startup and rewritten after every registry mutation,
// so readers never observe a half-updated workspace list.
type RegistryDocumentStore interface {
	// Load reads the registry document. Returns apperrors.ErrNotFound when no document
	// has been saved yet (fresh install).
	Load(ctx context.Context) (*domain.RegistryState, error)

	// Save atomically replaces the registry document.
	Save(ctx context.Context, state domain.RegistryState) error
}
