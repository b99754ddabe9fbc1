package repositories

import (
	"context"

	"github.com/shoplite/pos_workspace_app/internal/core/domain"
)

// CacheClearer empties every registered operational table. All-or-nothing: readers never
// observe a partially cleared table set.
type CacheClearer interface {
	ClearAll(ctx context.Context) error
}

// SnapshotAdopter bulk-loads a staged snapshot into the operational tables, replacing
// whatever workspace's data was resident before. Clear and load happen inside a single
// transaction, so a failed adopt leaves the prior contents in place.
type SnapshotAdopter interface {
	Adopt(ctx context.Context, snapshot domain.RecordSnapshot) error
}

// ChangeApplier applies a partial snapshot in place without clearing, using
// last-write-wins on the record's updated_at. Used by ordinary sync of the current
// workspace. Partial snapshots carry no tombstones: a record deleted remotely stays
// cached until the next full Adopt replaces the table set.
type ChangeApplier interface {
	ApplyChanges(ctx context.Context, changes domain.RecordSnapshot) error
}

// MutationOutbox stores locally originated changes until they are pushed to the shop
// cloud. The outbox belongs to the current workspace and is discarded on adopt.
type MutationOutbox interface {
	EnqueueMutation(ctx context.Context, m domain.Mutation) error
	ListPendingMutations(ctx context.Context) ([]domain.Mutation, error)
	MarkMutationsPushed(ctx context.Context, mutationIDs []string) error
	CountPendingMutations(ctx context.Context) (int, error)
}

// ProductReader defines read operations against the cached product table.
type ProductReader interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)
}

// ProductWriter defines write operations against the cached product table. Writes also
// enqueue the corresponding outbox mutation in the same transaction.
type ProductWriter interface {
	SaveProduct(ctx context.Context, product domain.Product) error
}

// StaffReader defines read operations against the cached staff table.
type StaffReader interface {
	FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error)
}

// CacheInspector exposes table bookkeeping for status surfaces.
type CacheInspector interface {
	// TableNames lists every registered operational table. New tables must register so
	// clear/adopt can never silently skip them.
	TableNames() []string
	CountsByTable(ctx context.Context) (map[string]int64, error)
}

// CacheStoreFacade combines all local-cache repository interfaces.
type CacheStoreFacade interface {
	CacheClearer
	SnapshotAdopter
	ChangeApplier
	MutationOutbox
	ProductReader
	ProductWriter
	StaffReader
	CacheInspector
}
