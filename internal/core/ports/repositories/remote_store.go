package repositories

import (
	"context"
	"time"

	"github.com/shoplite/pos_workspace_app/internal/core/domain"
)

// RemoteShopStore is the shop cloud: the durable, remote-authoritative record store keyed
// by company code. The local cache is only ever a projection of it.
//
// Implementations map transport failures and timeouts to apperrors.ErrRemoteUnreachable
// and refusals (invalid or revoked company code) to apperrors.ErrRemoteRejected.
type RemoteShopStore interface {
	// Fetch returns the record set for the company code. A nil since requests the full
	// snapshot; otherwise only records changed after since are returned.
	Fetch(ctx context.Context, companyCode string, since *time.Time) (*domain.RecordSnapshot, error)

	// Submit sends locally originated mutations. Conflicts resolve last-write-wins by
	// mutation timestamp with the remote clock as tiebreak. Re-submitting an
	// already-applied mutation is a no-op.
	Submit(ctx context.Context, companyCode string, mutations []domain.Mutation) (*domain.SubmitAck, error)
}
