package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/pos_workspace_app/internal/apperrors"
	portssvc "github.com/shoplite/pos_workspace_app/internal/core/ports/services"
	"github.com/shoplite/pos_workspace_app/internal/dto"
	"github.com/shoplite/pos_workspace_app/internal/middleware"
)

// catalogHandler handles HTTP requests against the cached record set.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

// newCatalogHandler creates a new catalogHandler.
func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{catalogService: cs}
}

// registerCatalogRoutes registers routes for cached products and staff.
func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(catalogService)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:product_id", h.getProduct)
	}

	rg.POST("/staff/:staff_id/verify-pin", h.verifyStaffPIN)
}

// createProduct godoc
// @Summary Create a catalog product
// @Description Stores a new product in the local cache and queues it for push on the next sync.
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Duplicate SKU"
// @Security BearerAuth
// @Router /products [post]
func (h *catalogHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), req.ToProduct())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDuplicateWorkspace):
			c.JSON(http.StatusConflict, gin.H{"error": "A product with this SKU already exists"})
		default:
			logger.Error("Failed to create product", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		}
		return
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List cached products
// @Description Pages through the current workspace's cached catalog ordered by name.
// @Tags catalog
// @Produce  json
// @Param   limit query int false "Page size (default 25, max 100)"
// @Param   offset query int false "Page offset"
// @Success 200 {object} dto.ListProductsResponse
// @Failure 500 {object} map[string]string "Failed to list products"
// @Security BearerAuth
// @Router /products [get]
func (h *catalogHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	products, err := h.catalogService.ListProducts(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list products", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListProductsResponse(products))
}

// getProduct godoc
// @Summary Get a cached product
// @Description Retrieves a single product from the local cache.
// @Tags catalog
// @Produce  json
// @Param   product_id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /products/{product_id} [get]
func (h *catalogHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("product_id")

	product, err := h.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		logger.Error("Failed to get product", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// verifyStaffPIN godoc
// @Summary Verify a staff till PIN
// @Description Checks the PIN against the cached staff record for till unlock.
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   staff_id path string true "Staff ID"
// @Param   pin body dto.VerifyStaffPINRequest true "Till PIN"
// @Success 200 {object} dto.StaffResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Wrong PIN"
// @Failure 404 {object} map[string]string "Staff not found"
// @Security BearerAuth
// @Router /staff/{staff_id}/verify-pin [post]
func (h *catalogHandler) verifyStaffPIN(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	staffID := c.Param("staff_id")

	var req dto.VerifyStaffPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for VerifyStaffPIN", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	staff, err := h.catalogService.VerifyStaffPIN(c.Request.Context(), staffID, req.PIN)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Wrong PIN"})
		default:
			logger.Error("Failed to verify staff PIN", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify PIN"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStaffResponse(staff))
}
