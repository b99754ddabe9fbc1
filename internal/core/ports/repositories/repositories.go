package repositories

// RepositoryProvider bundles every data source the service layer needs.
type RepositoryProvider struct {
	Registry RegistryDocumentStore
	Cache    CacheStoreFacade
	Remote   RemoteShopStore
}
