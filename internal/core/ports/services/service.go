package services

// ServiceContainer holds all the services handed to the HTTP layer.
type ServiceContainer struct {
	Registry   RegistrySvcFacade
	Sync       SyncSvcFacade
	Switcher   SwitchSvcFacade
	Catalog    CatalogSvcFacade
	Onboarding OnboardingSvcFacade
}
