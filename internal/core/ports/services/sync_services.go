package services

import (
	"context"

	"github.com/shoplite/pos_workspace_app/internal/core/domain"
)

// SnapshotPuller stages a workspace's full remote record set without applying it.
type SnapshotPuller interface {
	// Pull fetches the complete record set for the workspace's company code. Transient
	// failures are retried with exponential backoff before surfacing
	// apperrors.ErrRemoteUnreachable; apperrors.ErrRemoteRejected is never retried.
	Pull(ctx context.Context, workspace domain.Workspace) (*domain.RecordSnapshot, error)
}

// MutationPusher sends locally originated mutations to the shop cloud.
type MutationPusher interface {
	// Push submits the mutations, deduplicated by mutation ID and ordered by their
	// occurrence time. Pushing the same set twice leaves the remote unchanged. The ack
	// lists which mutation IDs the remote accepted.
	Push(ctx context.Context, workspace domain.Workspace, mutations []domain.Mutation) (*domain.SubmitAck, error)
}

// SyncSvcFacade combines pull/push with the convenience sync of the active workspace.
type SyncSvcFacade interface {
	SnapshotPuller
	MutationPusher

	// SyncCurrent pulls net-new remote changes for the current workspace into the cache
	// in place (no clear), pushes the pending outbox, and updates lastSyncAt on success.
	// The cache is left untouched on failure.
	SyncCurrent(ctx context.Context) error

	// Status reports the current workspace's sync state for the UI.
	Status(ctx context.Context) (*domain.SyncStatus, error)
}
