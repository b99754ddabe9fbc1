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

// switchHandler handles HTTP requests driving workspace transitions.
type switchHandler struct {
	switchService portssvc.SwitchSvcFacade
}

// newSwitchHandler creates a new switchHandler.
func newSwitchHandler(sw portssvc.SwitchSvcFacade) *switchHandler {
	return &switchHandler{switchService: sw}
}

// registerSwitchRoutes registers routes for switching workspaces and device reset.
func registerSwitchRoutes(rg *gin.RouterGroup, switchService portssvc.SwitchSvcFacade) {
	h := newSwitchHandler(switchService)

	sw := rg.Group("/switch")
	{
		sw.POST("", h.requestSwitch)
		sw.GET("/status", h.switchStatus)
		sw.POST("/acknowledge", h.acknowledgeFailure)
	}

	rg.POST("/signout-all", h.signOutAll)
}

// requestSwitch godoc
// @Summary Switch to another workspace
// @Description Stages the target workspace's remote data, atomically replaces the local cache, and flips the current pointer. A staging failure leaves everything unchanged.
// @Tags switch
// @Accept  json
// @Produce  json
// @Param   switch body dto.SwitchRequest true "Target workspace"
// @Success 200 {object} dto.WorkspaceResponse "Now-current workspace"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Workspace not found"
// @Failure 409 {object} map[string]string "Already current, switch in progress, or blocked"
// @Failure 422 {object} map[string]string "Company code rejected"
// @Failure 502 {object} map[string]string "Shop cloud unreachable"
// @Security BearerAuth
// @Router /switch [post]
func (h *switchHandler) requestSwitch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SwitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RequestSwitch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("target_workspace_id", req.WorkspaceID))
	logger.Info("Received request to switch workspace")

	err := h.switchService.RequestSwitch(c.Request.Context(), req.WorkspaceID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		case errors.Is(err, apperrors.ErrAlreadyCurrent):
			c.JSON(http.StatusConflict, gin.H{"error": "Workspace is already current"})
		case errors.Is(err, apperrors.ErrSwitchInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "A workspace switch is already in progress"})
		case errors.Is(err, apperrors.ErrCacheCommit):
			logger.Error("Switch failed during commit", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": "Switch failed while committing, acknowledge before retrying"})
		case errors.Is(err, apperrors.ErrRemoteRejected):
			logger.Warn("Switch rejected by shop cloud")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Company code was rejected by the shop cloud"})
		case errors.Is(err, apperrors.ErrRemoteUnreachable):
			logger.Warn("Shop cloud unreachable during switch")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Shop cloud is unreachable, try again later"})
		default:
			logger.Error("Failed to switch workspace", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to switch workspace"})
		}
		return
	}

	current, err := h.switchService.CurrentWorkspace(c.Request.Context())
	if err != nil {
		logger.Error("Switch succeeded but current workspace lookup failed", slog.String("error", err.Error()))
		c.Status(http.StatusNoContent)
		return
	}

	logger.Info("Workspace switch completed", slog.String("workspace_id", current.WorkspaceID))
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(current, true))
}

// switchStatus godoc
// @Summary Get switch status
// @Description Reports the switcher's lifecycle state, the target while a switch is in flight, and whether a commit failure awaits acknowledgment.
// @Tags switch
// @Produce  json
// @Success 200 {object} dto.SwitchStatusResponse
// @Security BearerAuth
// @Router /switch/status [get]
func (h *switchHandler) switchStatus(c *gin.Context) {
	resp := dto.SwitchStatusResponse{
		State:   h.switchService.State(),
		Blocked: h.switchService.Blocked(),
	}

	if target := h.switchService.TargetWorkspace(); target != nil {
		t := dto.ToWorkspaceResponse(target, false)
		resp.Target = &t
	}

	if current, err := h.switchService.CurrentWorkspace(c.Request.Context()); err == nil {
		cur := dto.ToWorkspaceResponse(current, true)
		resp.Current = &cur
	}

	c.JSON(http.StatusOK, resp)
}

// acknowledgeFailure godoc
// @Summary Acknowledge a failed switch commit
// @Description Clears the blocked state after a commit-phase failure so switching can be retried.
// @Tags switch
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /switch/acknowledge [post]
func (h *switchHandler) acknowledgeFailure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	h.switchService.AcknowledgeFailure()
	logger.Info("Switch failure acknowledged")
	c.Status(http.StatusNoContent)
}

// signOutAll godoc
// @Summary Sign out of every workspace
// @Description Clears the entire registry and every cached table. Complete device reset.
// @Tags switch
// @Success 204 "No Content"
// @Failure 409 {object} map[string]string "A switch is in progress"
// @Security BearerAuth
// @Router /signout-all [post]
func (h *switchHandler) signOutAll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to sign out of all workspaces")

	if err := h.switchService.SignOutAll(c.Request.Context()); err != nil {
		if errors.Is(err, apperrors.ErrSwitchInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "A workspace switch is in progress"})
			return
		}
		logger.Error("Failed to sign out of all workspaces", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
		return
	}

	logger.Info("Signed out of all workspaces")
	c.Status(http.StatusNoContent)
}
