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

// onboardingService registers workspaces in the local registry. Creating a shop mints a
// fresh company code; joining validates the code against the shop cloud first, so a typo
// never lands a dead workspace in the registry.
type onboardingService struct {
	BaseService
	registry portssvc.RegistrySvcFacade
	remote   portsrepo.RemoteShopStore
}

// NewOnboardingService creates a new onboarding service.
func NewOnboardingService(registry portssvc.RegistrySvcFacade, remote portsrepo.RemoteShopStore) portssvc.OnboardingSvcFacade {
	return &onboardingService{registry: registry, remote: remote}
}

// Ensure onboardingService implements the OnboardingSvcFacade interface
var _ portssvc.OnboardingSvcFacade = (*onboardingService)(nil)

// CreateWorkspace registers a brand-new shop with a freshly generated company code.
func (s *onboardingService) CreateWorkspace(ctx context.Context, name, shopType, currency, logoURL string) (*domain.Workspace, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationFailedError("workspace name is required")
	}

	companyCode, err := utils.GenerateCompanyCode()
	if err != nil {
		s.LogError(ctx, err, "Failed to generate company code")
		return nil, apperrors.NewAppError(500, "failed to generate company code", err)
	}

	now := time.Now()
	workspace := domain.Workspace{
		WorkspaceID:    uuid.NewString(),
		Name:           name,
		ShopType:       shopType,
		Currency:       currency,
		CompanyCode:    companyCode,
		LogoURL:        logoURL,
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	if err := s.registry.AddWorkspace(ctx, workspace); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Workspace created",
		slog.String("workspace_id", workspace.WorkspaceID),
		slog.String("name", workspace.Name))

	added, err := s.registry.FindWorkspaceByID(ctx, workspace.WorkspaceID)
	if err != nil {
		return nil, err
	}
	return added, nil
}

// JoinWorkspace validates the company code against the shop cloud and registers the
// existing shop locally. The record set itself arrives when the user switches to it.
func (s *onboardingService) JoinWorkspace(ctx context.Context, companyCode, name string) (*domain.Workspace, error) {
	companyCode = strings.ToUpper(strings.TrimSpace(companyCode))
	if companyCode == "" {
		return nil, apperrors.NewValidationFailedError("company code is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationFailedError("workspace name is required")
	}

	existing, err := s.registry.ListWorkspaces(ctx)
	if err != nil {
		return nil, err
	}
	for _, w := range existing {
		if w.CompanyCode == companyCode {
			return nil, apperrors.NewConflictError("this shop is already registered on this device")
		}
	}

	// Probe the remote so a bad code is rejected before anything is registered.
	if _, err := s.remote.Fetch(ctx, companyCode, nil); err != nil {
		s.LogWarn(ctx, "Company code validation failed", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now()
	workspace := domain.Workspace{
		WorkspaceID:    uuid.NewString(),
		Name:           name,
		CompanyCode:    companyCode,
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	if err := s.registry.AddWorkspace(ctx, workspace); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Workspace joined",
		slog.String("workspace_id", workspace.WorkspaceID),
		slog.String("name", workspace.Name))

	added, err := s.registry.FindWorkspaceByID(ctx, workspace.WorkspaceID)
	if err != nil {
		return nil, err
	}
	return added, nil
}
