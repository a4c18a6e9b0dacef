package handler

import (
	"time"

	appledger "github.com/coldstore/backend/internal/application/ledger"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/gin-gonic/gin"
)

// BalanceHandler handles derived balance and day book endpoints
type BalanceHandler struct {
	BaseHandler
	service    *appledger.BalanceService
	startMonth time.Month
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(service *appledger.BalanceService, startMonth time.Month) *BalanceHandler {
	return &BalanceHandler{service: service, startMonth: startMonth}
}

// RegisterRoutes registers balance routes on the API group
func (h *BalanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/balances", h.GetBalances)
	rg.GET("/daybook", h.GetDayBook)
}

type balanceQuery struct {
	FiscalYear int `form:"fiscal_year" binding:"required"`
}

// GetBalances handles GET /api/v1/balances
func (h *BalanceHandler) GetBalances(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var q balanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "fiscal_year is required")
		return
	}

	sheet, err := h.service.GetBalances(c.Request.Context(), tenantID, valueobject.FiscalYear(q.FiscalYear))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sheet)
}

type dayBookQuery struct {
	Date string `form:"date"`
}

// GetDayBook handles GET /api/v1/daybook. Defaults to today when no date is
// given.
func (h *BalanceHandler) GetDayBook(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var q dayBookQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	day := time.Now()
	if q.Date != "" {
		parsed, err := time.Parse("2006-01-02", q.Date)
		if err != nil {
			h.BadRequest(c, "date must be in YYYY-MM-DD format")
			return
		}
		day = parsed
	}

	summary, err := h.service.GetDayBook(c.Request.Context(), tenantID, day)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
