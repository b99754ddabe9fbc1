package pgsql

import (
	portsrepo "github.com/shoplite/pos_workspace_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql-backed repository. The remote store is not
// database-backed and is attached by the caller.
func NewRepositoryProvider(pool *pgxpool.Pool, remote portsrepo.RemoteShopStore) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Registry: newPgxRegistryRepository(pool),
		Cache:    newPgxCacheRepository(pool),
		Remote:   remote,
	}
}
