package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	portsrepo "github.com/shoplite/pos_workspace_app/internal/core/ports/repositories"
	portssvc "github.com/shoplite/pos_workspace_app/internal/core/ports/services"
)

// syncService implements the SyncSvcFacade interface. It owns no persistent state of its
// own: pulled snapshots are staged in memory, pushed mutations live in the cache outbox,
// and lastSyncAt is written back into the workspace being synced.
type syncService struct {
	BaseService
	registry portssvc.RegistrySvcFacade
	cache    portsrepo.CacheStoreFacade
	remote   portsrepo.RemoteShopStore
	gate     *Gate

	maxRetries  int
	backoffBase time.Duration
}

// NewSyncService creates a new sync service with the provided dependencies. The gate is
// shared with the switcher so ordinary sync never runs during a switch.
func NewSyncService(
	registry portssvc.RegistrySvcFacade,
	cache portsrepo.CacheStoreFacade,
	remote portsrepo.RemoteShopStore,
	gate *Gate,
	maxRetries int,
	backoffBase time.Duration,
) portssvc.SyncSvcFacade {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if backoffBase <= 0 {
		backoffBase = 500 * time.Millisecond
	}
	return &syncService{
		registry:    registry,
		cache:       cache,
		remote:      remote,
		gate:        gate,
		maxRetries:  maxRetries,
		backoffBase: backoffBase,
	}
}

// Ensure syncService implements the SyncSvcFacade interface
var _ portssvc.SyncSvcFacade = (*syncService)(nil)

// Pull fetches the full current record set for the workspace's company code and returns
// it as a staged, not-yet-applied snapshot.
func (s *syncService) Pull(ctx context.Context, workspace domain.Workspace) (*domain.RecordSnapshot, error) {
	var snapshot *domain.RecordSnapshot
	err := s.withRetry(ctx, "pull", func() error {
		var fetchErr error
		snapshot, fetchErr = s.remote.Fetch(ctx, workspace.CompanyCode, nil)
		return fetchErr
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to pull snapshot",
			slog.String("workspace_id", workspace.WorkspaceID))
		return nil, err
	}

	s.LogInfo(ctx, "Snapshot staged",
		slog.String("workspace_id", workspace.WorkspaceID),
		slog.Int("record_count", snapshot.RecordCount()))
	return snapshot, nil
}

// Push submits locally originated mutations. Duplicate mutation IDs are collapsed before
// sending and the batch is ordered by occurrence time, so conflicts resolve
// last-write-wins with the remote clock as tiebreak.
func (s *syncService) Push(ctx context.Context, workspace domain.Workspace, mutations []domain.Mutation) (*domain.SubmitAck, error) {
	if len(mutations) == 0 {
		return &domain.SubmitAck{}, nil
	}

	batch := dedupeMutations(mutations)
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].OccurredAt.Before(batch[j].OccurredAt)
	})

	var ack *domain.SubmitAck
	err := s.withRetry(ctx, "push", func() error {
		var submitErr error
		ack, submitErr = s.remote.Submit(ctx, workspace.CompanyCode, batch)
		return submitErr
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to push mutations",
			slog.String("workspace_id", workspace.WorkspaceID),
			slog.Int("mutation_count", len(batch)))
		return nil, err
	}

	s.LogInfo(ctx, "Mutations pushed",
		slog.String("workspace_id", workspace.WorkspaceID),
		slog.Int("accepted_count", len(ack.AppliedIDs)))
	return ack, nil
}

// SyncCurrent pulls net-new remote changes for the active workspace into the cache in
// place and pushes the pending outbox. lastSyncAt moves only after everything succeeded;
// any failure leaves the cache and registry untouched.
func (s *syncService) SyncCurrent(ctx context.Context) error {
	if !s.gate.TryAcquire() {
		return apperrors.ErrSwitchInProgress
	}
	defer s.gate.Release()

	current, err := s.registry.CurrentWorkspace(ctx)
	if err != nil {
		return err
	}

	var changes *domain.RecordSnapshot
	err = s.withRetry(ctx, "sync fetch", func() error {
		var fetchErr error
		changes, fetchErr = s.remote.Fetch(ctx, current.CompanyCode, current.LastSyncAt)
		return fetchErr
	})
	if err != nil {
		s.LogError(ctx, err, "Sync fetch failed", slog.String("workspace_id", current.WorkspaceID))
		return err
	}

	if changes.RecordCount() > 0 {
		if err := s.cache.ApplyChanges(ctx, *changes); err != nil {
			s.LogError(ctx, err, "Failed to apply remote changes",
				slog.String("workspace_id", current.WorkspaceID))
			return fmt.Errorf("applying remote changes: %w", err)
		}
	}

	pending, err := s.cache.ListPendingMutations(ctx)
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		ack, err := s.Push(ctx, *current, pending)
		if err != nil {
			return err
		}
		if len(ack.AppliedIDs) > 0 {
			if err := s.cache.MarkMutationsPushed(ctx, ack.AppliedIDs); err != nil {
				return err
			}
		}
	}

	syncedAt := changes.FetchedAt
	if syncedAt.IsZero() {
		syncedAt = time.Now()
	}
	if err := s.registry.TouchLastSync(ctx, current.WorkspaceID, syncedAt); err != nil {
		return err
	}

	s.LogInfo(ctx, "Sync completed",
		slog.String("workspace_id", current.WorkspaceID),
		slog.Int("applied_count", changes.RecordCount()),
		slog.Int("pushed_count", len(pending)))
	return nil
}

// Status reports the current workspace's sync state for the UI.
func (s *syncService) Status(ctx context.Context) (*domain.SyncStatus, error) {
	current, err := s.registry.CurrentWorkspace(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := s.cache.CountPendingMutations(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.cache.CountsByTable(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.SyncStatus{
		WorkspaceID:      current.WorkspaceID,
		LastSyncAt:       current.LastSyncAt,
		PendingMutations: pending,
		CachedRecords:    counts,
	}, nil
}

// withRetry runs op, retrying transient remote failures with exponential backoff.
// ErrRemoteRejected and every other error surface immediately.
func (s *syncService) withRetry(ctx context.Context, label string, op func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = op()
		if err == nil || !apperrors.IsRetryable(err) || attempt >= s.maxRetries {
			return err
		}

		backoff := s.backoffBase << attempt
		s.LogWarn(ctx, "Transient remote failure, retrying",
			slog.String("operation", label),
			slog.Int("attempt", attempt+1),
			slog.Duration("backoff", backoff))

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func dedupeMutations(mutations []domain.Mutation) []domain.Mutation {
	seen := make(map[string]struct{}, len(mutations))
	out := make([]domain.Mutation, 0, len(mutations))
	for _, m := range mutations {
		if _, dup := seen[m.MutationID]; dup {
			continue
		}
		seen[m.MutationID] = struct{}{}
		out = append(out, m)
	}
	return out
}
