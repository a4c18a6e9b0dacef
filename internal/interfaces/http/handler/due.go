package handler

import (
	appledger "github.com/coldstore/backend/internal/application/ledger"
	"github.com/coldstore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DueHandler handles derived due position endpoints
type DueHandler struct {
	BaseHandler
	service *appledger.DueService
}

// NewDueHandler creates a new DueHandler.
func NewDueHandler(service *appledger.DueService) *DueHandler {
	return &DueHandler{service: service}
}

// RegisterRoutes registers due routes on the API group
func (h *DueHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dues := rg.Group("/dues")
	{
		dues.GET("/buyers", h.ListBuyerDues)
		dues.GET("/buyers/:id", h.GetBuyerDue)
		dues.GET("/farmers", h.ListFarmerDues)
		dues.GET("/farmers/:id", h.GetFarmerDue)
	}
}

type dueListQuery struct {
	MinDue string `form:"min_due"`
}

// minDue parses the optional min_due threshold; nil means no filter.
func (h *DueHandler) minDue(c *gin.Context) (*decimal.Decimal, bool) {
	var q dueListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return nil, false
	}
	if q.MinDue == "" {
		return nil, true
	}
	min, err := decimal.NewFromString(q.MinDue)
	if err != nil {
		h.BadRequest(c, "min_due must be a decimal number")
		return nil, false
	}
	return &min, true
}

// ListBuyerDues handles GET /api/v1/dues/buyers
func (h *DueHandler) ListBuyerDues(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	min, ok := h.minDue(c)
	if !ok {
		return
	}
	dues, err := h.service.ListBuyerDues(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if min != nil {
		filtered := make([]appledger.BuyerDueResponse, 0, len(dues))
		for _, due := range dues {
			if due.Due.GreaterThanOrEqual(*min) {
				filtered = append(filtered, due)
			}
		}
		dues = filtered
	}
	h.Success(c, dues)
}

// GetBuyerDue handles GET /api/v1/dues/buyers/:id
func (h *DueHandler) GetBuyerDue(c *gin.Context) {
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

	due, err := h.service.GetBuyerDue(c.Request.Context(), tenantID, buyerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, due)
}

// ListFarmerDues handles GET /api/v1/dues/farmers
func (h *DueHandler) ListFarmerDues(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	min, ok := h.minDue(c)
	if !ok {
		return
	}
	dues, err := h.service.ListFarmerDues(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if min != nil {
		filtered := make([]appledger.FarmerDueResponse, 0, len(dues))
		for _, due := range dues {
			if due.Due.GreaterThanOrEqual(*min) {
				filtered = append(filtered, due)
			}
		}
		dues = filtered
	}
	h.Success(c, dues)
}

// GetFarmerDue handles GET /api/v1/dues/farmers/:id
func (h *DueHandler) GetFarmerDue(c *gin.Context) {
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

	due, err := h.service.GetFarmerDue(c.Request.Context(), tenantID, farmerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, due)
}
