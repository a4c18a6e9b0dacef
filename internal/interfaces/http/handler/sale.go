package handler

import (
	appinventory "github.com/coldstore/backend/internal/application/inventory"
	"github.com/coldstore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SaleHandler handles sales book endpoints
type SaleHandler struct {
	BaseHandler
	service *appinventory.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(service *appinventory.SaleService) *SaleHandler {
	return &SaleHandler{service: service}
}

// RegisterRoutes registers sales book routes on the API group
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.CreateSale)
		sales.GET("", h.ListSales)
		sales.GET("/:id", h.GetSale)
	}
}

// CreateSale handles POST /api/v1/sales
func (h *SaleHandler) CreateSale(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appinventory.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	sale, err := h.service.CreateSale(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// GetSale handles GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}
	saleID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.service.GetSale(c.Request.Context(), tenantID, saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// ListSales handles GET /api/v1/sales
func (h *SaleHandler) ListSales(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	result, err := h.service.ListSales(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
