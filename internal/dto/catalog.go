package dto

import (
	"time"

	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Catalog DTOs ---

// CreateProductRequest defines data for creating a catalog product.
type CreateProductRequest struct {
	SKU   string          `json:"sku" binding:"required"`
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price" binding:"required"`
	Stock int64           `json:"stock"`
}

// ToProduct converts the request into a domain product.
func (r CreateProductRequest) ToProduct() domain.Product {
	return domain.Product{
		SKU:   r.SKU,
		Name:  r.Name,
		Price: r.Price,
		Stock: r.Stock,
	}
}

// ProductResponse defines data returned for a cached product.
type ProductResponse struct {
	ProductID string          `json:"productID"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToProductResponse converts domain.Product to DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID: p.ProductID,
		SKU:       p.SKU,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		UpdatedAt: p.UpdatedAt,
	}
}

// ListProductsResponse wraps a page of cached products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// ToListProductsResponse converts a slice of domain.Product to DTO.
func ToListProductsResponse(ps []domain.Product) ListProductsResponse {
	list := make([]ProductResponse, len(ps))
	for i, p := range ps {
		list[i] = ToProductResponse(&p)
	}
	return ListProductsResponse{Products: list}
}

// VerifyStaffPINRequest defines data for a till PIN check.
type VerifyStaffPINRequest struct {
	PIN string `json:"pin" binding:"required,numeric,min=4,max=8"`
}

// StaffResponse defines data returned for a staff member. The PIN hash never leaves the
// cache.
type StaffResponse struct {
	StaffID string `json:"staffID"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}

// ToStaffResponse converts domain.Staff to DTO.
func ToStaffResponse(s *domain.Staff) StaffResponse {
	return StaffResponse{
		StaffID: s.StaffID,
		Name:    s.Name,
		Role:    s.Role,
	}
}
