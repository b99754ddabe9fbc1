package dto

import (
	"time"

	"github.com/shoplite/pos_workspace_app/internal/core/domain"
	portssvc "github.com/shoplite/pos_workspace_app/internal/core/ports/services"
)

// --- Switch DTOs ---

// SwitchRequest names the workspace to switch to.
type SwitchRequest struct {
	WorkspaceID string `json:"workspaceID" binding:"required"`
}

// SwitchStatusResponse reports the switcher's lifecycle state for the UI.
type SwitchStatusResponse struct {
	State   portssvc.SwitchState `json:"state"`
	Blocked bool                 `json:"blocked"`
	Target  *WorkspaceResponse   `json:"target,omitempty"`
	Current *WorkspaceResponse   `json:"current,omitempty"`
}

// --- Sync DTOs ---

// SyncStatusResponse reports the current workspace's sync state.
type SyncStatusResponse struct {
	WorkspaceID      string           `json:"workspaceID"`
	LastSyncAt       *time.Time       `json:"lastSyncAt,omitempty"`
	PendingMutations int              `json:"pendingMutations"`
	CachedRecords    map[string]int64 `json:"cachedRecords"`
}

// ToSyncStatusResponse converts domain.SyncStatus to DTO.
func ToSyncStatusResponse(s *domain.SyncStatus) SyncStatusResponse {
	return SyncStatusResponse{
		WorkspaceID:      s.WorkspaceID,
		LastSyncAt:       s.LastSyncAt,
		PendingMutations: s.PendingMutations,
		CachedRecords:    s.CachedRecords,
	}
}
