package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	portsrepo "github.com/shoplite/pos_workspace_app/internal/core/ports/repositories"
	portssvc "github.com/shoplite/pos_workspace_app/internal/core/ports/services"
)

// registryService implements the RegistrySvcFacade interface. It keeps the registry
// document in memory behind an RWMutex and rewrites the whole document through the
// store after every mutation, so persistence and reads are always whole-registry
// consistent. Mutations build a candidate state first and only install it in memory
// after the document write succeeded; a failed save leaves no observable change.
type registryService struct {
	BaseService
	store portsrepo.RegistryDocumentStore

	mu    sync.RWMutex
	state domain.RegistryState
}

// NewRegistryService creates a new registry service backed by the given document store.
// Call Load before serving traffic.
func NewRegistryService(store portsrepo.RegistryDocumentStore) *registryService {
	return &registryService{store: store}
}

// Ensure registryService implements the RegistrySvcFacade interface
var _ portssvc.RegistrySvcFacade = (*registryService)(nil)

// Load reads the persisted registry document into memory. A missing document is a fresh
// install, not an error.
func (s *registryService) Load(ctx context.Context) error {
	state, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "No registry document found, starting with an empty registry")
			return nil
		}
		s.LogError(ctx, err, "Failed to load registry document")
		return err
	}

	s.mu.Lock()
	s.state = *state
	s.mu.Unlock()

	s.LogInfo(ctx, "Registry loaded",
		slog.Int("workspace_count", len(state.Workspaces)),
		slog.Bool("has_current", state.CurrentID != nil))
	return nil
}

// ListWorkspaces returns a copy of every known workspace.
func (s *registryService) ListWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyWorkspaces(s.state.Workspaces), nil
}

// FindWorkspaceByID retrieves a specific workspace by its ID.
func (s *registryService) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexOfWorkspace(s.state.Workspaces, workspaceID)
	if idx < 0 {
		return nil, apperrors.ErrNotFound
	}
	w := copyWorkspace(s.state.Workspaces[idx])
	return &w, nil
}

// CurrentWorkspace returns the workspace the current pointer refers to.
func (s *registryService) CurrentWorkspace(ctx context.Context) (*domain.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.CurrentID == nil {
		return nil, apperrors.ErrNotFound
	}
	idx := indexOfWorkspace(s.state.Workspaces, *s.state.CurrentID)
	if idx < 0 {
		// The pointer invariant guarantees this cannot happen for states built through
		// this service; a corrupted document surfaces as not-found.
		return nil, apperrors.ErrNotFound
	}
	w := copyWorkspace(s.state.Workspaces[idx])
	return &w, nil
}

// AddWorkspace registers a new workspace. The first workspace added becomes the default,
// and the current pointer if none is set.
func (s *registryService) AddWorkspace(ctx context.Context, workspace domain.Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOfWorkspace(s.state.Workspaces, workspace.WorkspaceID) >= 0 {
		return apperrors.ErrDuplicateWorkspace
	}

	now := time.Now()
	if workspace.CreatedAt.IsZero() {
		workspace.CreatedAt = now
	}

	next := copyState(s.state)

	hasDefault := false
	for _, w := range next.Workspaces {
		if w.IsDefault {
			hasDefault = true
			break
		}
	}
	workspace.IsDefault = !hasDefault

	if next.CurrentID == nil {
		id := workspace.WorkspaceID
		next.CurrentID = &id
		workspace.LastAccessedAt = now
	}

	next.Workspaces = append(next.Workspaces, workspace)

	if err := s.store.Save(ctx, next); err != nil {
		s.LogError(ctx, err, "Failed to persist registry after add",
			slog.String("workspace_id", workspace.WorkspaceID))
		return err
	}
	s.state = next

	s.LogInfo(ctx, "Workspace added to registry",
		slog.String("workspace_id", workspace.WorkspaceID),
		slog.Bool("is_default", workspace.IsDefault))
	return nil
}

// UpdateWorkspace applies the patch to a workspace's descriptive fields.
func (s *registryService) UpdateWorkspace(ctx context.Context, workspaceID string, patch domain.WorkspacePatch) (*domain.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfWorkspace(s.state.Workspaces, workspaceID)
	if idx < 0 {
		return nil, apperrors.ErrNotFound
	}

	next := copyState(s.state)
	w := &next.Workspaces[idx]
	if patch.Name != nil {
		w.Name = *patch.Name
	}
	if patch.ShopType != nil {
		w.ShopType = *patch.ShopType
	}
	if patch.Currency != nil {
		w.Currency = *patch.Currency
	}
	if patch.LogoURL != nil {
		w.LogoURL = *patch.LogoURL
	}

	if err := s.store.Save(ctx, next); err != nil {
		s.LogError(ctx, err, "Failed to persist registry after update",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	s.state = next

	updated := copyWorkspace(next.Workspaces[idx])
	s.LogInfo(ctx, "Workspace updated", slog.String("workspace_id", workspaceID))
	return &updated, nil
}

// RemoveWorkspace drops the local registry entry for a non-current workspace. If the
// removed workspace was the default, the result says so and no replacement is promoted.
func (s *registryService) RemoveWorkspace(ctx context.Context, workspaceID string) (*domain.RemoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfWorkspace(s.state.Workspaces, workspaceID)
	if idx < 0 {
		return nil, apperrors.ErrNotFound
	}
	if s.state.CurrentID != nil && *s.state.CurrentID == workspaceID {
		return nil, apperrors.ErrCannotRemoveCurrent
	}

	next := copyState(s.state)
	wasDefault := next.Workspaces[idx].IsDefault
	next.Workspaces = append(next.Workspaces[:idx], next.Workspaces[idx+1:]...)

	if err := s.store.Save(ctx, next); err != nil {
		s.LogError(ctx, err, "Failed to persist registry after remove",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	s.state = next

	s.LogInfo(ctx, "Workspace removed from registry",
		slog.String("workspace_id", workspaceID),
		slog.Bool("default_cleared", wasDefault))
	return &domain.RemoveResult{RemovedID: workspaceID, DefaultCleared: wasDefault}, nil
}

// SetDefaultWorkspace marks the workspace as default and clears the flag on all others.
func (s *registryService) SetDefaultWorkspace(ctx context.Context, workspaceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOfWorkspace(s.state.Workspaces, workspaceID) < 0 {
		return apperrors.ErrNotFound
	}

	next := copyState(s.state)
	for i := range next.Workspaces {
		next.Workspaces[i].IsDefault = next.Workspaces[i].WorkspaceID == workspaceID
	}

	if err := s.store.Save(ctx, next); err != nil {
		s.LogError(ctx, err, "Failed to persist registry after default change",
			slog.String("workspace_id", workspaceID))
		return err
	}
	s.state = next

	s.LogInfo(ctx, "Default workspace changed", slog.String("workspace_id", workspaceID))
	return nil
}

// SetCurrentWorkspace moves the current pointer and bumps lastAccessedAt on the target.
// Pure metadata: the switcher calls this only after the cache transition committed.
func (s *registryService) SetCurrentWorkspace(ctx context.Context, workspaceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfWorkspace(s.state.Workspaces, workspaceID)
	if idx < 0 {
		return apperrors.ErrNotFound
	}

	next := copyState(s.state)
	id := workspaceID
	next.CurrentID = &id
	if now := time.Now(); now.After(next.Workspaces[idx].LastAccessedAt) {
		next.Workspaces[idx].LastAccessedAt = now
	}

	if err := s.store.Save(ctx, next); err != nil {
		s.LogError(ctx, err, "Failed to persist registry after current change",
			slog.String("workspace_id", workspaceID))
		return err
	}
	s.state = next

	s.LogInfo(ctx, "Current workspace changed", slog.String("workspace_id", workspaceID))
	return nil
}

// TouchLastSync records a successful sync time for the workspace. The field is monotonic
// non-decreasing.
func (s *registryService) TouchLastSync(ctx context.Context, workspaceID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOfWorkspace(s.state.Workspaces, workspaceID)
	if idx < 0 {
		return apperrors.ErrNotFound
	}

	next := copyState(s.state)
	prev := next.Workspaces[idx].LastSyncAt
	if prev != nil && at.Before(*prev) {
		return nil
	}
	next.Workspaces[idx].LastSyncAt = &at

	if err := s.store.Save(ctx, next); err != nil {
		s.LogError(ctx, err, "Failed to persist registry after sync time update",
			slog.String("workspace_id", workspaceID))
		return err
	}
	s.state = next
	return nil
}

// ResetRegistry drops every workspace and the current pointer.
func (s *registryService) ResetRegistry(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := domain.RegistryState{}
	if err := s.store.Save(ctx, next); err != nil {
		s.LogError(ctx, err, "Failed to persist registry reset")
		return err
	}
	s.state = next

	s.LogInfo(ctx, "Registry reset, all workspaces removed")
	return nil
}

func indexOfWorkspace(workspaces []domain.Workspace, id string) int {
	for i := range workspaces {
		if workspaces[i].WorkspaceID == id {
			return i
		}
	}
	return -1
}

func copyWorkspace(w domain.Workspace) domain.Workspace {
	if w.LastSyncAt != nil {
		t := *w.LastSyncAt
		w.LastSyncAt = &t
	}
	return w
}

func copyWorkspaces(in []domain.Workspace) []domain.Workspace {
	out := make([]domain.Workspace, len(in))
	for i, w := range in {
		out[i] = copyWorkspace(w)
	}
	return out
}

func copyState(state domain.RegistryState) domain.RegistryState {
	next := domain.RegistryState{Workspaces: copyWorkspaces(state.Workspaces)}
	if state.CurrentID != nil {
		id := *state.CurrentID
		next.CurrentID = &id
	}
	return next
}
