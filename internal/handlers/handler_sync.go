package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	portssvc "github.com/shoplite/pos_workspace_app/internal/core/ports/services"
	"github.com/shoplite/pos_workspace_app/internal/dto"
	"github.com/shoplite/pos_workspace_app/internal/middleware"
)

// syncHandler handles HTTP requests for on-demand sync of the current workspace.
type syncHandler struct {
	syncService portssvc.SyncSvcFacade
}

// newSyncHandler creates a new syncHandler.
func newSyncHandler(ss portssvc.SyncSvcFacade) *syncHandler {
	return &syncHandler{syncService: ss}
}

// registerSyncRoutes registers routes for manual sync and sync status.
func registerSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvcFacade) {
	h := newSyncHandler(syncService)

	sync := rg.Group("/sync")
	{
		sync.POST("", h.syncNow)
		sync.GET("/status", h.syncStatus)
	}
}

// syncNow godoc
// @Summary Sync the current workspace
// @Description Pulls net-new remote changes into the cache and pushes the pending outbox. The cache is untouched on failure.
// @Tags sync
// @Produce  json
// @Success 200 {object} dto.SyncStatusResponse
// @Failure 404 {object} map[string]string "No workspace selected"
// @Failure 409 {object} map[string]string "A switch is in progress"
// @Failure 502 {object} map[string]string "Shop cloud unreachable"
// @Security BearerAuth
// @Router /sync [post]
func (h *syncHandler) syncNow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to sync current workspace")

	err := h.syncService.SyncCurrent(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No workspace has been selected yet"})
		case errors.Is(err, apperrors.ErrSwitchInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "A workspace switch is in progress"})
		case errors.Is(err, apperrors.ErrRemoteRejected):
			logger.Warn("Sync rejected by shop cloud")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Sync was rejected by the shop cloud"})
		case errors.Is(err, apperrors.ErrRemoteUnreachable):
			logger.Warn("Shop cloud unreachable during sync")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Shop cloud is unreachable, try again later"})
		default:
			logger.Error("Failed to sync current workspace", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync"})
		}
		return
	}

	status, err := h.syncService.Status(c.Request.Context())
	if err != nil {
		logger.Error("Sync succeeded but status lookup failed", slog.String("error", err.Error()))
		c.Status(http.StatusNoContent)
		return
	}

	logger.Info("Sync completed", slog.String("workspace_id", status.WorkspaceID))
	c.JSON(http.StatusOK, dto.ToSyncStatusResponse(status))
}

// syncStatus godoc
// @Summary Get sync status
// @Description Reports the current workspace's last sync time and pending outbox depth.
// @Tags sync
// @Produce  json
// @Success 200 {object} dto.SyncStatusResponse
// @Failure 404 {object} map[string]string "No workspace selected"
// @Security BearerAuth
// @Router /sync/status [get]
func (h *syncHandler) syncStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	status, err := h.syncService.Status(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No workspace has been selected yet"})
			return
		}
		logger.Error("Failed to get sync status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get sync status"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSyncStatusResponse(status))
}
