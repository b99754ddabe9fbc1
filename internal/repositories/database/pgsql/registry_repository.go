package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	portsrepo "github.com/shoplite/pos_workspace_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRegistryRepository persists the workspace registry as a single serialized document
// in a one-row table, so the workspace list and the current pointer are always written
// and read as one unit.
type PgxRegistryRepository struct {
	BaseRepository
}

// newPgxRegistryRepository creates a new repository for the registry document.
func newPgxRegistryRepository(pool *pgxpool.Pool) portsrepo.RegistryDocumentStore {
	return &PgxRegistryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxRegistryRepository implements portsrepo.RegistryDocumentStore
var _ portsrepo.RegistryDocumentStore = (*PgxRegistryRepository)(nil)

func (r *PgxRegistryRepository) Load(ctx context.Context) (*domain.RegistryState, error) {
	query := `SELECT document FROM registry_state WHERE id = 1`

	var raw []byte
	err := r.Pool.QueryRow(ctx, query).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to load registry document", err)
	}

	var state domain.RegistryState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode registry document", err)
	}
	return &state, nil
}

func (r *PgxRegistryRepository) Save(ctx context.Context, state domain.RegistryState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode registry document", err)
	}

	query := `
		INSERT INTO registry_state (id, document, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, raw, time.Now()); err != nil {
		return apperrors.NewAppError(500, "failed to save registry document", err)
	}
	return nil
}
