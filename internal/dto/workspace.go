package dto

import (
	"time"

	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	"github.com/shoplite/pos_workspace_app/internal/utils"
)

// --- Workspace DTOs ---

// CreateWorkspaceRequest defines data for creating a brand-new shop workspace.
type CreateWorkspaceRequest struct {
	Name     string `json:"name" binding:"required"`
	ShopType string `json:"shopType" binding:"required,oneof=RETAIL RESTAURANT SERVICE OTHER"`
	Currency string `json:"currency" binding:"required,iso4217"`
	LogoURL  string `json:"logoURL"`
}

// JoinWorkspaceRequest defines data for joining an existing shop by company code.
type JoinWorkspaceRequest struct {
	CompanyCode string `json:"companyCode" binding:"required,companycode"`
	Name        string `json:"name" binding:"required"`
}

// UpdateWorkspaceRequest defines the mutable descriptive fields. Omitted fields are left
// unchanged.
type UpdateWorkspaceRequest struct {
	Name     *string `json:"name"`
	ShopType *string `json:"shopType" binding:"omitempty,oneof=RETAIL RESTAURANT SERVICE OTHER"`
	Currency *string `json:"currency" binding:"omitempty,iso4217"`
	LogoURL  *string `json:"logoURL"`
}

// ToWorkspacePatch converts the request into a domain patch.
func (r UpdateWorkspaceRequest) ToWorkspacePatch() domain.WorkspacePatch {
	return domain.WorkspacePatch{
		Name:     r.Name,
		ShopType: r.ShopType,
		Currency: r.Currency,
		LogoURL:  r.LogoURL,
	}
}

// WorkspaceResponse defines data returned for a workspace. The company code is masked;
// the clear value is only available from the dedicated reveal endpoint.
type WorkspaceResponse struct {
	WorkspaceID    string     `json:"workspaceID"`
	Name           string     `json:"name"`
	ShopType       string     `json:"shopType"`
	Currency       string     `json:"currency"`
	CompanyCode    string     `json:"companyCode"`
	LogoURL        string     `json:"logoURL,omitempty"`
	IsDefault      bool       `json:"isDefault"`
	IsCurrent      bool       `json:"isCurrent"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastAccessedAt time.Time  `json:"lastAccessedAt"`
	LastSyncAt     *time.Time `json:"lastSyncAt,omitempty"`
}

// ToWorkspaceResponse converts domain.Workspace to DTO, masking the company code.
func ToWorkspaceResponse(w *domain.Workspace, isCurrent bool) WorkspaceResponse {
	return WorkspaceResponse{
		WorkspaceID:    w.WorkspaceID,
		Name:           w.Name,
		ShopType:       w.ShopType,
		Currency:       w.Currency,
		CompanyCode:    utils.MaskCompanyCode(w.CompanyCode),
		LogoURL:        w.LogoURL,
		IsDefault:      w.IsDefault,
		IsCurrent:      isCurrent,
		CreatedAt:      w.CreatedAt,
		LastAccessedAt: w.LastAccessedAt,
		LastSyncAt:     w.LastSyncAt,
	}
}

// ListWorkspacesResponse wraps the full local registry listing.
type ListWorkspacesResponse struct {
	Workspaces []WorkspaceResponse `json:"workspaces"`
}

// ToListWorkspacesResponse converts a slice of domain.Workspace to DTO. currentID may be
// empty when no workspace is selected yet.
func ToListWorkspacesResponse(ws []domain.Workspace, currentID string) ListWorkspacesResponse {
	list := make([]WorkspaceResponse, len(ws))
	for i, w := range ws {
		list[i] = ToWorkspaceResponse(&w, w.WorkspaceID == currentID)
	}
	return ListWorkspacesResponse{Workspaces: list}
}

// CompanyCodeResponse carries the clear company code for copy-to-clipboard.
type CompanyCodeResponse struct {
	WorkspaceID string `json:"workspaceID"`
	CompanyCode string `json:"companyCode"`
}

// RemoveWorkspaceResponse reports the outcome of removing a workspace locally.
type RemoveWorkspaceResponse struct {
	RemovedID      string `json:"removedID"`
	DefaultCleared bool   `json:"defaultCleared"`
}

// ToRemoveWorkspaceResponse converts domain.RemoveResult to DTO.
func ToRemoveWorkspaceResponse(r *domain.RemoveResult) RemoveWorkspaceResponse {
	return RemoveWorkspaceResponse{
		RemovedID:      r.RemovedID,
		DefaultCleared: r.DefaultCleared,
	}
}
