package pgsql

import (
	"context"
	"errors"

	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// Outbox operations of PgxCacheRepository. The pending_mutations table stores locally
// originated changes until a push clears them; rows survive restarts.

var FULL_MUTATION_SELECT_QUERY = `
SELECT
	m.mutation_id, m.table_name, m.op, m.record_id, m.payload, m.occurred_at
FROM pending_mutations m
`

func (r *PgxCacheRepository) EnqueueMutation(ctx context.Context, m domain.Mutation) error {
	query := `
		INSERT INTO pending_mutations (mutation_id, table_name, op, record_id, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (mutation_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MutationID,
		m.TableName,
		m.Op,
		m.RecordID,
		m.Payload,
		m.OccurredAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to enqueue mutation "+m.MutationID, err)
	}
	return nil
}

func (r *PgxCacheRepository) ListPendingMutations(ctx context.Context) ([]domain.Mutation, error) {
	query := FULL_MUTATION_SELECT_QUERY + `ORDER BY m.occurred_at ASC`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pending mutations", err)
	}
	defer rows.Close()

	mutations, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Mutation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Mutation{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect mutation rows", err)
	}
	return mutations, nil
}

func (r *PgxCacheRepository) MarkMutationsPushed(ctx context.Context, mutationIDs []string) error {
	if len(mutationIDs) == 0 {
		return nil
	}
	query := `DELETE FROM pending_mutations WHERE mutation_id = ANY($1)`
	if _, err := r.Pool.Exec(ctx, query, mutationIDs); err != nil {
		return apperrors.NewAppError(500, "failed to mark mutations pushed", err)
	}
	return nil
}

func (r *PgxCacheRepository) CountPendingMutations(ctx context.Context) (int, error) {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM pending_mutations`).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count pending mutations", err)
	}
	return count, nil
}
