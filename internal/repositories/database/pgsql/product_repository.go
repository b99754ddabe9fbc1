package pgsql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Product CRUD of PgxCacheRepository. Local writes enqueue the matching outbox mutation
// in the same transaction, so a crash can never leave a cached change without its
// pending push.

var FULL_PRODUCT_SELECT_QUERY = `
SELECT
	p.product_id, p.sku, p.name, p.price, p.stock, p.updated_at
FROM products p
`

func (r *PgxCacheRepository) getProducts(ctx context.Context, filterQuery string, args ...any) ([]domain.Product, error) {
	query := FULL_PRODUCT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products", err)
	}
	defer rows.Close()

	products, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Product])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Product{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect product rows", err)
	}
	return products, nil
}

func (r *PgxCacheRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	products, err := r.getProducts(ctx, `WHERE p.product_id = $1`, productID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &products[0], nil
}

func (r *PgxCacheRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	return r.getProducts(ctx, `ORDER BY p.name ASC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *PgxCacheRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO products (product_id, sku, name, price, stock, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id) DO UPDATE
		SET sku = EXCLUDED.sku, name = EXCLUDED.name, price = EXCLUDED.price,
			stock = EXCLUDED.stock, updated_at = EXCLUDED.updated_at;
	`
	_, err = tx.Exec(ctx, query,
		product.ProductID,
		product.SKU,
		product.Name,
		product.Price,
		product.Stock,
		product.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation (sku)
			return apperrors.NewConflictError("product SKU " + product.SKU + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save product "+product.ProductID, err)
	}

	payload, err := json.Marshal(product)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode product mutation", err)
	}
	outboxQuery := `
		INSERT INTO pending_mutations (mutation_id, table_name, op, record_id, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, outboxQuery,
		uuid.NewString(),
		"products",
		domain.MutationUpsert,
		product.ProductID,
		payload,
		product.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to enqueue product mutation", err)
	}

	return r.Commit(ctx, tx)
}
