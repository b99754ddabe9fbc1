package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	portsrepo "github.com/shoplite/pos_workspace_app/internal/core/ports/repositories"
	portssvc "github.com/shoplite/pos_workspace_app/internal/core/ports/services"
	"github.com/shoplite/pos_workspace_app/internal/utils"
)

// catalogService serves the cached record set of whichever workspace is resident. It
// never talks to the shop cloud directly: local writes go through the cache repository,
// which records the outbox mutation alongside, and the sync service pushes them later.
type catalogService struct {
	BaseService
	cache portsrepo.CacheStoreFacade
}

// NewCatalogService creates a new catalog service backed by the local cache.
func NewCatalogService(cache portsrepo.CacheStoreFacade) portssvc.CatalogSvcFacade {
	return &catalogService{cache: cache}
}

// Ensure catalogService implements the CatalogSvcFacade interface
var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

// CreateProduct stores a new catalog product and queues it for push on the next sync.
func (s *catalogService) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(product.Name) == "" {
		return nil, apperrors.NewValidationFailedError("product name is required")
	}
	if product.Price.IsNegative() {
		return nil, apperrors.NewValidationFailedError("product price cannot be negative")
	}

	if product.ProductID == "" {
		product.ProductID = uuid.NewString()
	}
	product.UpdatedAt = time.Now()

	if err := s.cache.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to save product", slog.String("product_id", product.ProductID))
		return nil, err
	}

	s.LogInfo(ctx, "Product created",
		slog.String("product_id", product.ProductID),
		slog.String("sku", product.SKU))
	return &product, nil
}

// GetProduct retrieves a cached product by ID.
func (s *catalogService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return s.cache.FindProductByID(ctx, productID)
}

// ListProducts pages through the cached catalog ordered by name.
func (s *catalogService) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	if offset < 0 {
		offset = 0
	}
	return s.cache.ListProducts(ctx, limit, offset)
}

// VerifyStaffPIN checks a staff member's till PIN against the cached bcrypt hash.
func (s *catalogService) VerifyStaffPIN(ctx context.Context, staffID string, pin string) (*domain.Staff, error) {
	staff, err := s.cache.FindStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}

	if !utils.CheckStaffPIN(pin, staff.PINHash) {
		s.LogWarn(ctx, "Staff PIN verification failed", slog.String("staff_id", staffID))
		return nil, apperrors.ErrForbidden
	}

	return staff, nil
}
