package handler

import (
	apppartner "github.com/coldstore/backend/internal/application/partner"
	"github.com/coldstore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PartnerHandler handles buyer and farmer directory endpoints
type PartnerHandler struct {
	BaseHandler
	service *apppartner.PartnerService
}

// NewPartnerHandler creates a new PartnerHandler.
func NewPartnerHandler(service *apppartner.PartnerService) *PartnerHandler {
	return &PartnerHandler{service: service}
}

// RegisterRoutes registers partner directory routes on the API group
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	buyers := rg.Group("/buyers")
	{
		buyers.POST("", h.CreateBuyer)
		buyers.GET("", h.ListBuyers)
		buyers.GET("/:id", h.GetBuyer)
		buyers.PUT("/:id", h.UpdateBuyer)
	}
	farmers := rg.Group("/farmers")
	{
		farmers.POST("", h.CreateFarmer)
		farmers.GET("", h.ListFarmers)
		farmers.GET("/:id", h.GetFarmer)
		farmers.PUT("/:id", h.UpdateFarmer)
		farmers.PUT("/:id/receivables", h.SetFarmerReceivables)
	}
}

// CreateBuyer handles POST /api/v1/buyers
func (h *PartnerHandler) CreateBuyer(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req apppartner.CreateBuyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	buyer, err := h.service.CreateBuyer(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, buyer)
}

// GetBuyer handles GET /api/v1/buyers/:id
func (h *PartnerHandler) GetBuyer(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid buyer ID")
		return
	}
	buyerID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid buyer ID")
		return
	}

	buyer, err := h.service.GetBuyer(c.Request.Context(), tenantID, buyerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, buyer)
}

// ListBuyers handles GET /api/v1/buyers
func (h *PartnerHandler) ListBuyers(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	result, err := h.service.ListBuyers(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateBuyer handles PUT /api/v1/buyers/:id
func (h *PartnerHandler) UpdateBuyer(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid buyer ID")
		return
	}
	buyerID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid buyer ID")
		return
	}

	var req apppartner.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	buyer, err := h.service.UpdateBuyer(c.Request.Context(), tenantID, buyerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, buyer)
}

// CreateFarmer handles POST /api/v1/farmers
func (h *PartnerHandler) CreateFarmer(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req apppartner.CreateFarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	farmer, err := h.service.CreateFarmer(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, farmer)
}

// GetFarmer handles GET /api/v1/farmers/:id
func (h *PartnerHandler) GetFarmer(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid farmer ID")
		return
	}
	farmerID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid farmer ID")
		return
	}

	farmer, err := h.service.GetFarmer(c.Request.Context(), tenantID, farmerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, farmer)
}

// ListFarmers handles GET /api/v1/farmers
func (h *PartnerHandler) ListFarmers(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	result, err := h.service.ListFarmers(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UpdateFarmer handles PUT /api/v1/farmers/:id
func (h *PartnerHandler) UpdateFarmer(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid farmer ID")
		return
	}
	farmerID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid farmer ID")
		return
	}

	var req apppartner.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	farmer, err := h.service.UpdateFarmer(c.Request.Context(), tenantID, farmerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, farmer)
}

// SetFarmerReceivables handles PUT /api/v1/farmers/:id/receivables
func (h *PartnerHandler) SetFarmerReceivables(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid farmer ID")
		return
	}
	farmerID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid farmer ID")
		return
	}

	var req apppartner.UpdateFarmerReceivablesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	farmer, err := h.service.SetFarmerReceivables(c.Request.Context(), tenantID, farmerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, farmer)
}
