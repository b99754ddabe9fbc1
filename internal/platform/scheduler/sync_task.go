package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	portssvc "github.com/shoplite/pos_workspace_app/internal/core/ports/services"
	"github.com/shoplite/pos_workspace_app/internal/middleware"
)

// SyncTask periodically syncs the current workspace in the background. It defers to the
// switcher: while a switch is staging or committing, the scheduled run is skipped rather
// than queued, and the next tick picks up normally.
type SyncTask struct {
	syncService portssvc.SyncSvcFacade
	switcher    portssvc.SwitchSvcFacade
	logger      *slog.Logger
	cron        *cron.Cron
	spec        string
	timeout     time.Duration
}

// NewSyncTask creates the background sync task with the given cron spec (with seconds).
func NewSyncTask(syncService portssvc.SyncSvcFacade, switcher portssvc.SwitchSvcFacade, logger *slog.Logger, spec string) *SyncTask {
	return &SyncTask{
		syncService: syncService,
		switcher:    switcher,
		logger:      logger,
		cron:        cron.New(cron.WithSeconds()),
		spec:        spec,
		timeout:     5 * time.Minute,
	}
}

// Start runs one sync immediately and then on the configured cadence.
func (t *SyncTask) Start() error {
	go t.run()

	if _, err := t.cron.AddFunc(t.spec, t.run); err != nil {
		return err
	}
	t.cron.Start()

	t.logger.Info("Background sync task started", slog.String("cron_spec", t.spec))
	return nil
}

// Stop halts the schedule. A run already in flight finishes on its own.
func (t *SyncTask) Stop() {
	t.cron.Stop()
}

func (t *SyncTask) run() {
	if t.switcher.State() != portssvc.SwitchStateIdle {
		t.logger.Debug("Skipping scheduled sync, a workspace switch is in flight")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()
	ctx = middleware.AddLoggerToCtx(ctx, t.logger)

	err := t.syncService.SyncCurrent(ctx)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrNotFound):
		t.logger.Debug("Skipping scheduled sync, no current workspace")
	case errors.Is(err, apperrors.ErrSwitchInProgress):
		t.logger.Debug("Skipping scheduled sync, cache is gated by a switch")
	case errors.Is(err, apperrors.ErrRemoteRejected):
		t.logger.Error("Scheduled sync rejected by shop cloud, not retrying", slog.String("error", err.Error()))
	default:
		t.logger.Warn("Scheduled sync failed, will retry on next tick", slog.String("error", err.Error()))
	}
}
