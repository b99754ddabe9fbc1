package pgsql

import (
	"context"
	"fmt"

	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	portsrepo "github.com/shoplite/pos_workspace_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// cacheTable describes one operational table the cache manages: how to clear it, how to
// bulk-load it from a snapshot, and how to apply incremental changes. Every operational
// table must be registered here; ClearAll and Adopt iterate the registered set, so a new
// table added to the schema cannot be silently skipped.
type cacheTable struct {
	name    string
	columns []string
	rows    func(snap *domain.RecordSnapshot) [][]any
	apply   func(ctx context.Context, tx pgx.Tx, snap *domain.RecordSnapshot) error
}

var operationalTables = []cacheTable{
	{
		name:    "products",
		columns: []string{"product_id", "sku", "name", "price", "stock", "updated_at"},
		rows: func(snap *domain.RecordSnapshot) [][]any {
			rows := make([][]any, len(snap.Products))
			for i, p := range snap.Products {
				rows[i] = []any{p.ProductID, p.SKU, p.Name, p.Price, p.Stock, p.UpdatedAt}
			}
			return rows
		},
		apply: applyProducts,
	},
	{
		name:    "orders",
		columns: []string{"order_id", "number", "customer_id", "total", "status", "placed_at", "updated_at"},
		rows: func(snap *domain.RecordSnapshot) [][]any {
			rows := make([][]any, len(snap.Orders))
			for i, o := range snap.Orders {
				rows[i] = []any{o.OrderID, o.Number, o.CustomerID, o.Total, o.Status, o.PlacedAt, o.UpdatedAt}
			}
			return rows
		},
		apply: applyOrders,
	},
	{
		name:    "customers",
		columns: []string{"customer_id", "name", "email", "phone", "updated_at"},
		rows: func(snap *domain.RecordSnapshot) [][]any {
			rows := make([][]any, len(snap.Customers))
			for i, c := range snap.Customers {
				rows[i] = []any{c.CustomerID, c.Name, c.Email, c.Phone, c.UpdatedAt}
			}
			return rows
		},
		apply: applyCustomers,
	},
	{
		name:    "staff",
		columns: []string{"staff_id", "name", "role", "pin_hash", "updated_at"},
		rows: func(snap *domain.RecordSnapshot) [][]any {
			rows := make([][]any, len(snap.Staff))
			for i, m := range snap.Staff {
				rows[i] = []any{m.StaffID, m.Name, m.Role, m.PINHash, m.UpdatedAt}
			}
			return rows
		},
		apply: applyStaff,
	},
}

// PgxCacheRepository is the local cache store: the operational tables for exactly one
// workspace at a time, plus the pending mutation outbox.
type PgxCacheRepository struct {
	BaseRepository
}

// newPgxCacheRepository creates a new repository for the local operational cache.
func newPgxCacheRepository(pool *pgxpool.Pool) portsrepo.CacheStoreFacade {
	return &PgxCacheRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCacheRepository implements portsrepo.CacheStoreFacade
var _ portsrepo.CacheStoreFacade = (*PgxCacheRepository)(nil)

// TableNames lists every registered operational table.
func (r *PgxCacheRepository) TableNames() []string {
	names := make([]string, len(operationalTables))
	for i, t := range operationalTables {
		names[i] = t.name
	}
	return names
}

// ClearAll empties every registered operational table and the outbox in one transaction.
func (r *PgxCacheRepository) ClearAll(ctx context.Context) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := truncateAll(ctx, tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// Adopt replaces the cache contents with the staged snapshot. Clear and bulk load run in
// a single transaction: either the whole snapshot is resident afterwards, or the
// transaction rolled back and the prior workspace's data is untouched. The outbox is
// discarded with the old data since its mutations belong to the outgoing workspace.
func (r *PgxCacheRepository) Adopt(ctx context.Context, snapshot domain.RecordSnapshot) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := truncateAll(ctx, tx); err != nil {
		return err
	}

	for _, table := range operationalTables {
		rows := table.rows(&snapshot)
		if len(rows) == 0 {
			continue
		}
		_, err := tx.CopyFrom(ctx, pgx.Identifier{table.name}, table.columns, pgx.CopyFromRows(rows))
		if err != nil {
			return apperrors.NewAppError(500, "failed to bulk load table "+table.name, err)
		}
	}

	return r.Commit(ctx, tx)
}

// ApplyChanges applies a partial snapshot in place. Each record upserts with a
// last-write-wins guard on updated_at, so a stale remote row never overwrites a newer
// local one. Runs in one transaction; a failure leaves the cache untouched.
func (r *PgxCacheRepository) ApplyChanges(ctx context.Context, changes domain.RecordSnapshot) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	for _, table := range operationalTables {
		if err := table.apply(ctx, tx, &changes); err != nil {
			return apperrors.NewAppError(500, "failed to apply changes to table "+table.name, err)
		}
	}

	return r.Commit(ctx, tx)
}

// CountsByTable reports the row count of every registered table.
func (r *PgxCacheRepository) CountsByTable(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(operationalTables))
	for _, table := range operationalTables {
		var count int64
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, pgx.Identifier{table.name}.Sanitize())
		if err := r.Pool.QueryRow(ctx, query).Scan(&count); err != nil {
			return nil, apperrors.NewAppError(500, "failed to count table "+table.name, err)
		}
		counts[table.name] = count
	}
	return counts, nil
}

func truncateAll(ctx context.Context, tx pgx.Tx) error {
	for _, table := range operationalTables {
		query := fmt.Sprintf(`TRUNCATE %s`, pgx.Identifier{table.name}.Sanitize())
		if _, err := tx.Exec(ctx, query); err != nil {
			return apperrors.NewAppError(500, "failed to clear table "+table.name, err)
		}
	}
	if _, err := tx.Exec(ctx, `TRUNCATE pending_mutations`); err != nil {
		return apperrors.NewAppError(500, "failed to clear pending mutations", err)
	}
	return nil
}

func applyProducts(ctx context.Context, tx pgx.Tx, snap *domain.RecordSnapshot) error {
	query := `
		INSERT INTO products (product_id, sku, name, price, stock, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id) DO UPDATE
		SET sku = EXCLUDED.sku, name = EXCLUDED.name, price = EXCLUDED.price,
			stock = EXCLUDED.stock, updated_at = EXCLUDED.updated_at
		WHERE products.updated_at <= EXCLUDED.updated_at;
	`
	for _, p := range snap.Products {
		if _, err := tx.Exec(ctx, query, p.ProductID, p.SKU, p.Name, p.Price, p.Stock, p.UpdatedAt); err != nil {
			return err
		}
	}
	return nil
}

func applyOrders(ctx context.Context, tx pgx.Tx, snap *domain.RecordSnapshot) error {
	query := `
		INSERT INTO orders (order_id, number, customer_id, total, status, placed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (order_id) DO UPDATE
		SET number = EXCLUDED.number, customer_id = EXCLUDED.customer_id, total = EXCLUDED.total,
			status = EXCLUDED.status, placed_at = EXCLUDED.placed_at, updated_at = EXCLUDED.updated_at
		WHERE orders.updated_at <= EXCLUDED.updated_at;
	`
	for _, o := range snap.Orders {
		if _, err := tx.Exec(ctx, query, o.OrderID, o.Number, o.CustomerID, o.Total, o.Status, o.PlacedAt, o.UpdatedAt); err != nil {
			return err
		}
	}
	return nil
}

func applyCustomers(ctx context.Context, tx pgx.Tx, snap *domain.RecordSnapshot) error {
	query := `
		INSERT INTO customers (customer_id, name, email, phone, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (customer_id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone,
			updated_at = EXCLUDED.updated_at
		WHERE customers.updated_at <= EXCLUDED.updated_at;
	`
	for _, c := range snap.Customers {
		if _, err := tx.Exec(ctx, query, c.CustomerID, c.Name, c.Email, c.Phone, c.UpdatedAt); err != nil {
			return err
		}
	}
	return nil
}

func applyStaff(ctx context.Context, tx pgx.Tx, snap *domain.RecordSnapshot) error {
	query := `
		INSERT INTO staff (staff_id, name, role, pin_hash, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (staff_id) DO UPDATE
		SET name = EXCLUDED.name, role = EXCLUDED.role, pin_hash = EXCLUDED.pin_hash,
			updated_at = EXCLUDED.updated_at
		WHERE staff.updated_at <= EXCLUDED.updated_at;
	`
	for _, m := range snap.Staff {
		if _, err := tx.Exec(ctx, query, m.StaffID, m.Name, m.Role, m.PINHash, m.UpdatedAt); err != nil {
			return err
		}
	}
	return nil
}
