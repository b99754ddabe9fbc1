package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	portsrepo "github.com/shoplite/pos_workspace_app/internal/core/ports/repositories"
	portssvc "github.com/shoplite/pos_workspace_app/internal/core/ports/services"
)

// switchService implements the SwitchSvcFacade interface. It drives the only path that
// may replace the cache contents: stage the target's snapshot first, adopt it in a single
// atomic step, and flip the registry pointer last. Mutual exclusion comes from the state
// itself; a second switch is rejected with ErrSwitchInProgress rather than queued.
type switchService struct {
	BaseService
	registry portssvc.RegistrySvcFacade
	puller   portssvc.SnapshotPuller
	cache    portsrepo.CacheStoreFacade
	gate     *Gate

	mu      sync.Mutex
	state   portssvc.SwitchState
	target  *domain.Workspace
	blocked bool
}

// NewSwitchService creates a new switch service. The gate is shared with the sync service
// so a switch waits out an in-flight sync and sync skips while a switch runs.
func NewSwitchService(
	registry portssvc.RegistrySvcFacade,
	puller portssvc.SnapshotPuller,
	cache portsrepo.CacheStoreFacade,
	gate *Gate,
) portssvc.SwitchSvcFacade {
	return &switchService{
		registry: registry,
		puller:   puller,
		cache:    cache,
		gate:     gate,
		state:    portssvc.SwitchStateIdle,
	}
}

// Ensure switchService implements the SwitchSvcFacade interface
var _ portssvc.SwitchSvcFacade = (*switchService)(nil)

// RequestSwitch transitions the client to the target workspace.
//
// Success path: Idle -> Staging (pull target snapshot) -> Committing (atomic cache adopt,
// then registry pointer flip) -> Idle. A failure while staging returns to Idle with no
// observable change. The adopt runs clear+load inside one transaction, so a failed commit
// rolls the cache back to the prior workspace. Only a pointer-flip failure after a
// successful adopt leaves cache and registry disagreeing; that blocks further switches
// until the user acknowledges.
func (s *switchService) RequestSwitch(ctx context.Context, targetID string) error {
	s.mu.Lock()
	if s.blocked {
		s.mu.Unlock()
		return fmt.Errorf("previous switch failed and must be acknowledged: %w", apperrors.ErrCacheCommit)
	}
	if s.state != portssvc.SwitchStateIdle {
		s.mu.Unlock()
		return apperrors.ErrSwitchInProgress
	}

	target, err := s.registry.FindWorkspaceByID(ctx, targetID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if current, err := s.registry.CurrentWorkspace(ctx); err == nil && current.WorkspaceID == targetID {
		s.mu.Unlock()
		return apperrors.ErrAlreadyCurrent
	}

	s.state = portssvc.SwitchStateStaging
	s.target = target
	s.mu.Unlock()

	s.LogInfo(ctx, "Workspace switch staging",
		slog.String("target_id", targetID),
		slog.String("target_name", target.Name))

	// Wait out any in-flight sync before touching the cache.
	if err := s.gate.Acquire(ctx); err != nil {
		s.toIdle()
		return err
	}
	defer s.gate.Release()

	snapshot, err := s.puller.Pull(ctx, *target)
	if err != nil {
		s.toIdle()
		s.LogError(ctx, err, "Switch staging failed, no state was changed",
			slog.String("target_id", targetID))
		return err
	}

	// Cancellation is honored up to here; committing must run to completion.
	if err := ctx.Err(); err != nil {
		s.toIdle()
		return err
	}

	s.setState(portssvc.SwitchStateCommitting)
	commitCtx := context.WithoutCancel(ctx)

	if err := s.cache.Adopt(commitCtx, *snapshot); err != nil {
		// The adopt transaction rolled back: the prior workspace's cache is intact.
		s.toIdle()
		s.LogError(ctx, err, "Switch commit failed, cache rolled back to prior workspace",
			slog.String("target_id", targetID))
		return fmt.Errorf("%w: %v", apperrors.ErrCacheCommit, err)
	}

	if err := s.registry.SetCurrentWorkspace(commitCtx, targetID); err != nil {
		// Cache now holds the target but the pointer still names the prior workspace.
		// Block everything until the user acknowledges; a retried switch repairs it.
		s.mu.Lock()
		s.blocked = true
		s.state = portssvc.SwitchStateIdle
		s.target = nil
		s.mu.Unlock()
		s.LogError(ctx, err, "Registry pointer flip failed after cache adopt, switching blocked",
			slog.String("target_id", targetID))
		return fmt.Errorf("%w: %v", apperrors.ErrCacheCommit, err)
	}

	s.toIdle()
	s.LogInfo(ctx, "Workspace switch completed",
		slog.String("current_id", targetID),
		slog.Int("record_count", snapshot.RecordCount()))
	return nil
}

// State reports the switcher's current lifecycle state.
func (s *switchService) State() portssvc.SwitchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TargetWorkspace returns a copy of the workspace being switched to, or nil when idle.
func (s *switchService) TargetWorkspace() *domain.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target == nil {
		return nil
	}
	t := copyWorkspace(*s.target)
	return &t
}

// CurrentWorkspace proxies the registry's consistent current snapshot.
func (s *switchService) CurrentWorkspace(ctx context.Context) (*domain.Workspace, error) {
	return s.registry.CurrentWorkspace(ctx)
}

// Blocked reports whether a commit failure is awaiting acknowledgment.
func (s *switchService) Blocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocked
}

// AcknowledgeFailure clears the blocked state after the user confirmed the commit
// failure notice.
func (s *switchService) AcknowledgeFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocked = false
}

// DeleteWorkspace removes a non-current workspace from the local registry. The remote
// record set is kept; rejoining with the company code restores the workspace.
func (s *switchService) DeleteWorkspace(ctx context.Context, workspaceID string) (*domain.RemoveResult, error) {
	s.mu.Lock()
	if s.state != portssvc.SwitchStateIdle {
		s.mu.Unlock()
		return nil, apperrors.ErrSwitchInProgress
	}
	s.mu.Unlock()

	result, err := s.registry.RemoveWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if result.DefaultCleared {
		s.LogWarn(ctx, "Removed workspace was the default, no new default was chosen",
			slog.String("workspace_id", workspaceID))
	}
	return result, nil
}

// SignOutAll clears every workspace from the registry and every table from the cache.
// The cache is wiped first so the shop's records are gone even if the registry reset
// then fails; the leftover registry entries only hold metadata and a retry completes
// the wipe.
func (s *switchService) SignOutAll(ctx context.Context) error {
	s.mu.Lock()
	if s.state != portssvc.SwitchStateIdle {
		s.mu.Unlock()
		return apperrors.ErrSwitchInProgress
	}
	s.mu.Unlock()

	if err := s.gate.Acquire(ctx); err != nil {
		return err
	}
	defer s.gate.Release()

	if err := s.cache.ClearAll(ctx); err != nil {
		s.LogError(ctx, err, "Failed to clear cache during sign-out")
		return fmt.Errorf("%w: %v", apperrors.ErrCacheCommit, err)
	}
	if err := s.registry.ResetRegistry(ctx); err != nil {
		s.LogError(ctx, err, "Failed to reset registry during sign-out")
		return err
	}

	s.mu.Lock()
	s.blocked = false
	s.mu.Unlock()

	s.LogInfo(ctx, "Signed out of all workspaces, local state wiped")
	return nil
}

func (s *switchService) toIdle() {
	s.mu.Lock()
	s.state = portssvc.SwitchStateIdle
	s.target = nil
	s.mu.Unlock()
}

func (s *switchService) setState(state portssvc.SwitchState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
