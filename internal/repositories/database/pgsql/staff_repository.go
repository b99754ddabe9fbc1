package pgsql

import (
	"context"
	"errors"

	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

var FULL_STAFF_SELECT_QUERY = `
SELECT
	s.staff_id, s.name, s.role, s.pin_hash, s.updated_at
FROM staff s
`

func (r *PgxCacheRepository) FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	query := FULL_STAFF_SELECT_QUERY + `WHERE s.staff_id = $1`
	rows, err := r.Pool.Query(ctx, query, staffID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query staff", err)
	}
	defer rows.Close()

	staff, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Staff])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect staff row", err)
	}
	return &staff, nil
}
