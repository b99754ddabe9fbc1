package services

import (
	"context"

	"github.com/shoplite/pos_workspace_app/internal/core/domain"
)

// CatalogSvcFacade serves reads and local writes against the cached record set of the
// current workspace. Writes land in the cache and the outbox; the next sync pushes them.
type CatalogSvcFacade interface {
	// CreateProduct stores a new catalog product and queues it for push.
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)

	// GetProduct retrieves a cached product by ID.
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts pages through the cached catalog ordered by name.
	ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)

	// VerifyStaffPIN checks a staff member's till PIN against the cached bcrypt hash.
	// Returns apperrors.ErrForbidden on mismatch so callers cannot tell a wrong PIN from
	// a right one timed differently.
	VerifyStaffPIN(ctx context.Context, staffID string, pin string) (*domain.Staff, error)
}
