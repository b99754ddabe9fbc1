package services

import (
	"context"

	"github.com/shoplite/pos_workspace_app/internal/core/domain"
)

// SwitchState is the switcher's position in its transition lifecycle.
type SwitchState string

const (
	SwitchStateIdle       SwitchState = "IDLE"
	SwitchStateStaging    SwitchState = "STAGING"
	SwitchStateCommitting SwitchState = "COMMITTING"
)

// SwitchSvcFacade orchestrates workspace transitions: it is the only component allowed
// to drive the cache through clear/adopt and to move the registry's current pointer.
type SwitchSvcFacade interface {
	// RequestSwitch stages the target workspace's remote data and, on success, atomically
	// replaces the cache and flips the current pointer. Rejections:
	// apperrors.ErrAlreadyCurrent, apperrors.ErrSwitchInProgress, apperrors.ErrNotFound.
	// A failure during staging leaves registry and cache byte-for-byte unchanged.
	// Cancellation via ctx is honored only while staging; once committing begins the
	// transition runs to completion or failure.
	RequestSwitch(ctx context.Context, targetID string) error

	// State reports the switcher's current lifecycle state.
	State() SwitchState

	// TargetWorkspace returns the workspace being switched to, or nil when idle. Exposed
	// together with CurrentWorkspace so the UI can render its confirmation prompt.
	TargetWorkspace() *domain.Workspace

	// CurrentWorkspace proxies the registry's current pointer as a consistent snapshot.
	CurrentWorkspace(ctx context.Context) (*domain.Workspace, error)

	// Blocked reports whether a commit-phase failure left the client in a state that
	// requires explicit acknowledgment before further switches.
	Blocked() bool

	// AcknowledgeFailure clears the blocked state after the user has acknowledged a
	// commit failure. The next successful switch or sync repairs the cache.
	AcknowledgeFailure()

	// DeleteWorkspace removes a non-current workspace from the local registry. The
	// remote record set is deliberately kept; it is the recovery path.
	DeleteWorkspace(ctx context.Context, workspaceID string) (*domain.RemoveResult, error)

	// SignOutAll clears every workspace from the registry and every table from the
	// cache. Complete device reset, not part of normal switching.
	SignOutAll(ctx context.Context) error
}
