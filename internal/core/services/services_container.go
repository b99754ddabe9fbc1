package services

import (
	portsrepo "github.com/shoplite/pos_workspace_app/internal/core/ports/repositories"
	portssvc "github.com/shoplite/pos_workspace_app/internal/core/ports/services"
	"github.com/shoplite/pos_workspace_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. The returned registry service still needs Load called before traffic.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, *registryService) {
	container := &portssvc.ServiceContainer{}

	// Registry first since both sync and switching depend on it
	registry := NewRegistryService(repos.Registry)
	container.Registry = registry

	// One gate shared between sync and switching keeps them mutually exclusive
	gate := NewGate()

	container.Sync = NewSyncService(
		registry,
		repos.Cache,
		repos.Remote,
		gate,
		cfg.SyncMaxRetries,
		cfg.SyncBackoffBase,
	)

	container.Switcher = NewSwitchService(
		registry,
		container.Sync,
		repos.Cache,
		gate,
	)

	container.Catalog = NewCatalogService(repos.Cache)
	container.Onboarding = NewOnboardingService(registry, repos.Remote)

	return container, registry
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.RegistrySvcFacade   = (*registryService)(nil)
	_ portssvc.SyncSvcFacade       = (*syncService)(nil)
	_ portssvc.SwitchSvcFacade     = (*switchService)(nil)
	_ portssvc.CatalogSvcFacade    = (*catalogService)(nil)
	_ portssvc.OnboardingSvcFacade = (*onboardingService)(nil)
)
