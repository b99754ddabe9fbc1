package services

import (
	"context"

	"github.com/shoplite/pos_workspace_app/internal/core/domain"
)

// OnboardingSvcFacade brings new workspaces into the local registry, either by creating
// a fresh shop or by joining an existing one through its company code.
type OnboardingSvcFacade interface {
	// CreateWorkspace registers a brand-new shop. A company code is generated for it so
	// other devices can join later. The first workspace on the device becomes default
	// and current.
	CreateWorkspace(ctx context.Context, name, shopType, currency, logoURL string) (*domain.Workspace, error)

	// JoinWorkspace validates the company code against the shop cloud and registers the
	// existing shop locally. Fails with apperrors.ErrRemoteRejected for an unknown or
	// revoked code, apperrors.ErrRemoteUnreachable when the cloud cannot be reached, and
	// apperrors.ErrDuplicateWorkspace when the shop is already registered on this device.
	JoinWorkspace(ctx context.Context, companyCode, name string) (*domain.Workspace, error)
}
