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

// workspaceHandler handles HTTP requests related to the workspace registry.
type workspaceHandler struct {
	registryService   portssvc.RegistrySvcFacade
	onboardingService portssvc.OnboardingSvcFacade
	switchService     portssvc.SwitchSvcFacade
}

// newWorkspaceHandler creates a new workspaceHandler.
func newWorkspaceHandler(rs portssvc.RegistrySvcFacade, os portssvc.OnboardingSvcFacade, sw portssvc.SwitchSvcFacade) *workspaceHandler {
	return &workspaceHandler{
		registryService:   rs,
		onboardingService: os,
		switchService:     sw,
	}
}

// RegisterWorkspaceRoutes registers routes for managing the local workspace registry.
func RegisterWorkspaceRoutes(rg *gin.RouterGroup, registryService portssvc.RegistrySvcFacade, onboardingService portssvc.OnboardingSvcFacade, switchService portssvc.SwitchSvcFacade) {
	h := newWorkspaceHandler(registryService, onboardingService, switchService)

	workspaces := rg.Group("/workspaces")
	{
		workspaces.POST("", h.createWorkspace)
		workspaces.POST("/join", h.joinWorkspace)
		workspaces.GET("", h.listWorkspaces)
		workspaces.GET("/current", h.getCurrentWorkspace)
	}

	workspaceSpecific := rg.Group("/workspaces/:workspace_id")
	{
		workspaceSpecific.GET("", h.getWorkspace)
		workspaceSpecific.PUT("", h.updateWorkspace)
		workspaceSpecific.DELETE("", h.deleteWorkspace)
		workspaceSpecific.POST("/default", h.setDefaultWorkspace)
		workspaceSpecific.GET("/company-code", h.revealCompanyCode)
	}
}

// createWorkspace godoc
// @Summary Create a new workspace
// @Description Creates a brand-new shop workspace and generates its company code.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace body dto.CreateWorkspaceRequest true "Workspace details"
// @Success 201 {object} dto.WorkspaceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create workspace"
// @Security BearerAuth
// @Router /workspaces [post]
func (h *workspaceHandler) createWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWorkspace", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create workspace", slog.String("workspace_name", req.Name))

	workspace, err := h.onboardingService.CreateWorkspace(c.Request.Context(), req.Name, req.ShopType, req.Currency, req.LogoURL)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create workspace in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create workspace"})
		return
	}

	logger.Info("Workspace created successfully", slog.String("workspace_id", workspace.WorkspaceID))
	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(workspace, h.isCurrent(c, workspace.WorkspaceID)))
}

// joinWorkspace godoc
// @Summary Join an existing shop by company code
// @Description Validates the company code against the shop cloud and registers the shop locally.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   join body dto.JoinWorkspaceRequest true "Company code and display name"
// @Success 201 {object} dto.WorkspaceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Shop already registered"
// @Failure 422 {object} map[string]string "Company code rejected"
// @Failure 502 {object} map[string]string "Shop cloud unreachable"
// @Security BearerAuth
// @Router /workspaces/join [post]
func (h *workspaceHandler) joinWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.JoinWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for JoinWorkspace", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to join workspace", slog.String("workspace_name", req.Name))

	workspace, err := h.onboardingService.JoinWorkspace(c.Request.Context(), req.CompanyCode, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicateWorkspace):
			c.JSON(http.StatusConflict, gin.H{"error": "This shop is already registered on this device"})
		case errors.Is(err, apperrors.ErrRemoteRejected):
			logger.Warn("Join rejected by shop cloud")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Company code was rejected by the shop cloud"})
		case errors.Is(err, apperrors.ErrRemoteUnreachable):
			logger.Warn("Shop cloud unreachable during join")
			c.JSON(http.StatusBadGateway, gin.H{"error": "Shop cloud is unreachable, try again later"})
		default:
			logger.Error("Failed to join workspace in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join workspace"})
		}
		return
	}

	logger.Info("Workspace joined successfully", slog.String("workspace_id", workspace.WorkspaceID))
	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(workspace, h.isCurrent(c, workspace.WorkspaceID)))
}

// listWorkspaces godoc
// @Summary List registered workspaces
// @Description Retrieves every workspace known to this device, flagging default and current.
// @Tags workspaces
// @Produce  json
// @Success 200 {object} dto.ListWorkspacesResponse
// @Failure 500 {object} map[string]string "Failed to list workspaces"
// @Security BearerAuth
// @Router /workspaces [get]
func (h *workspaceHandler) listWorkspaces(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	workspaces, err := h.registryService.ListWorkspaces(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list workspaces from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list workspaces"})
		return
	}

	currentID := ""
	if current, err := h.registryService.CurrentWorkspace(c.Request.Context()); err == nil {
		currentID = current.WorkspaceID
	}

	c.JSON(http.StatusOK, dto.ToListWorkspacesResponse(workspaces, currentID))
}

// getCurrentWorkspace godoc
// @Summary Get the current workspace
// @Description Returns the workspace whose data is resident in the local cache.
// @Tags workspaces
// @Produce  json
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 404 {object} map[string]string "No workspace selected"
// @Security BearerAuth
// @Router /workspaces/current [get]
func (h *workspaceHandler) getCurrentWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	current, err := h.registryService.CurrentWorkspace(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No workspace has been selected yet"})
			return
		}
		logger.Error("Failed to get current workspace", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get current workspace"})
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(current, true))
}

// getWorkspace godoc
// @Summary Get a workspace
// @Description Retrieves a single workspace by ID.
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 404 {object} map[string]string "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [get]
func (h *workspaceHandler) getWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	workspace, err := h.registryService.FindWorkspaceByID(c.Request.Context(), workspaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
			return
		}
		logger.Error("Failed to get workspace", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get workspace"})
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace, h.isCurrent(c, workspaceID)))
}

// updateWorkspace godoc
// @Summary Update workspace details
// @Description Updates the descriptive fields of a workspace. Omitted fields are unchanged.
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   workspace body dto.UpdateWorkspaceRequest true "Fields to update"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [put]
func (h *workspaceHandler) updateWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateWorkspace", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	workspace, err := h.registryService.UpdateWorkspace(c.Request.Context(), workspaceID, req.ToWorkspacePatch())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
			return
		}
		logger.Error("Failed to update workspace", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update workspace"})
		return
	}

	logger.Info("Workspace updated", slog.String("workspace_id", workspaceID))
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace, h.isCurrent(c, workspaceID)))
}

// deleteWorkspace godoc
// @Summary Remove a workspace from this device
// @Description Removes the local registry entry. The shop's remote record set is kept; rejoining with the company code recovers it. The current workspace cannot be removed.
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.RemoveWorkspaceResponse
// @Failure 404 {object} map[string]string "Workspace not found"
// @Failure 409 {object} map[string]string "Workspace is current or a switch is in progress"
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [delete]
func (h *workspaceHandler) deleteWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	result, err := h.switchService.DeleteWorkspace(c.Request.Context(), workspaceID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		case errors.Is(err, apperrors.ErrCannotRemoveCurrent):
			c.JSON(http.StatusConflict, gin.H{"error": "Cannot remove the current workspace, switch away first"})
		case errors.Is(err, apperrors.ErrSwitchInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "A workspace switch is in progress"})
		default:
			logger.Error("Failed to delete workspace", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete workspace"})
		}
		return
	}

	logger.Info("Workspace removed", slog.String("workspace_id", workspaceID), slog.Bool("default_cleared", result.DefaultCleared))
	c.JSON(http.StatusOK, dto.ToRemoveWorkspaceResponse(result))
}

// setDefaultWorkspace godoc
// @Summary Mark a workspace as default
// @Description Makes the workspace the one selected on startup. Any other default flag is cleared.
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/default [post]
func (h *workspaceHandler) setDefaultWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	if err := h.registryService.SetDefaultWorkspace(c.Request.Context(), workspaceID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
			return
		}
		logger.Error("Failed to set default workspace", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set default workspace"})
		return
	}

	logger.Info("Default workspace set", slog.String("workspace_id", workspaceID))
	c.Status(http.StatusNoContent)
}

// revealCompanyCode godoc
// @Summary Reveal a workspace's company code
// @Description Returns the clear company code for copy-to-clipboard. Everywhere else the code is masked.
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.CompanyCodeResponse
// @Failure 404 {object} map[string]string "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/company-code [get]
func (h *workspaceHandler) revealCompanyCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	workspace, err := h.registryService.FindWorkspaceByID(c.Request.Context(), workspaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
			return
		}
		logger.Error("Failed to reveal company code", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reveal company code"})
		return
	}

	logger.Info("Company code revealed", slog.String("workspace_id", workspaceID))
	c.JSON(http.StatusOK, dto.CompanyCodeResponse{
		WorkspaceID: workspace.WorkspaceID,
		CompanyCode: workspace.CompanyCode,
	})
}

// isCurrent reports whether the given workspace is the registry's current one.
func (h *workspaceHandler) isCurrent(c *gin.Context, workspaceID string) bool {
	current, err := h.registryService.CurrentWorkspace(c.Request.Context())
	return err == nil && current.WorkspaceID == workspaceID
}
