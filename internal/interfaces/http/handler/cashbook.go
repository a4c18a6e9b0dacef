package handler

import (
	"fmt"
	"time"

	appledger "github.com/coldstore/backend/internal/application/ledger"
	"github.com/coldstore/backend/internal/domain/ledger"
	"github.com/coldstore/backend/internal/infrastructure/telemetry"
	"github.com/coldstore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CashbookHandler handles cashbook entry endpoints
type CashbookHandler struct {
	BaseHandler
	service *appledger.CashbookService
	metrics *telemetry.CashbookMetrics
}

// NewCashbookHandler creates a new CashbookHandler. Metrics may be nil when
// telemetry is disabled.
func NewCashbookHandler(service *appledger.CashbookService, metrics *telemetry.CashbookMetrics) *CashbookHandler {
	return &CashbookHandler{service: service, metrics: metrics}
}

// RegisterRoutes registers cashbook routes on the API group
func (h *CashbookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cashbook := rg.Group("/cashbook")
	{
		cashbook.POST("/receipts", h.CreateReceipt)
		cashbook.POST("/expenses", h.CreateExpense)
		cashbook.POST("/transfers", h.CreateTransfer)
		cashbook.POST("/buyer-transfers", h.CreateBuyerTransfer)
		cashbook.POST("/farmer-transfers", h.CreateFarmerTransfer)
		cashbook.POST("/discounts", h.CreateDiscount)
		cashbook.GET("/entries", h.ListEntries)
		cashbook.GET("/entries/:id", h.GetEntry)
		cashbook.POST("/entries/:id/reverse", h.ReverseEntry)
	}
}

// CreateReceipt handles POST /api/v1/cashbook/receipts
func (h *CashbookHandler) CreateReceipt(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appledger.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	entry, err := h.service.CreateReceipt(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.recordEntry(c, tenantID, entry)
	h.Created(c, entry)
}

// CreateExpense handles POST /api/v1/cashbook/expenses
func (h *CashbookHandler) CreateExpense(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appledger.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	entry, err := h.service.CreateExpense(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.recordEntry(c, tenantID, entry)
	h.Created(c, entry)
}

// CreateTransfer handles POST /api/v1/cashbook/transfers
func (h *CashbookHandler) CreateTransfer(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appledger.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	entry, err := h.service.CreateTransfer(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.recordEntry(c, tenantID, entry)
	h.Created(c, entry)
}

// CreateBuyerTransfer handles POST /api/v1/cashbook/buyer-transfers
func (h *CashbookHandler) CreateBuyerTransfer(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appledger.CreateBuyerTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	entry, err := h.service.CreateBuyerTransfer(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.recordEntry(c, tenantID, entry)
	h.Created(c, entry)
}

// CreateFarmerTransfer handles POST /api/v1/cashbook/farmer-transfers
func (h *CashbookHandler) CreateFarmerTransfer(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appledger.CreateFarmerTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	entry, err := h.service.CreateFarmerTransfer(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.recordEntry(c, tenantID, entry)
	h.Created(c, entry)
}

// CreateDiscount handles POST /api/v1/cashbook/discounts
func (h *CashbookHandler) CreateDiscount(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appledger.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	entry, err := h.service.CreateDiscount(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.recordEntry(c, tenantID, entry)
	h.Created(c, entry)
}

// ReverseEntry handles POST /api/v1/cashbook/entries/:id/reverse
func (h *CashbookHandler) ReverseEntry(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}
	entryID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.service.ReverseEntry(c.Request.Context(), tenantID, entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordReversal(c.Request.Context(), tenantID, entry.Kind)
	}
	h.Success(c, entry)
}

// ListEntries handles GET /api/v1/cashbook/entries
func (h *CashbookHandler) ListEntries(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, err := parseEntryFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	result, err := h.service.ListEntries(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetEntry handles GET /api/v1/cashbook/entries/:id
func (h *CashbookHandler) GetEntry(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}
	entryID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.service.GetEntry(c.Request.Context(), tenantID, entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

func (h *CashbookHandler) recordEntry(c *gin.Context, tenantID uuid.UUID, entry *appledger.EntryResponse) {
	if h.metrics == nil {
		return
	}
	amount, _ := entry.Amount.Float64()
	h.metrics.RecordEntry(c.Request.Context(), tenantID, entry.Kind, amount)
}

// entryFilterQuery binds cashbook history query parameters
type entryFilterQuery struct {
	Kind            string `form:"kind"`
	FromDate        string `form:"from_date"`
	ToDate          string `form:"to_date"`
	CounterpartyID  string `form:"counterparty_id" binding:"omitempty,uuid"`
	PoolKey         string `form:"pool_key"`
	ExcludeReversed bool   `form:"exclude_reversed"`
	Search          string `form:"search"`
	Page            int    `form:"page" binding:"omitempty,min=1"`
	PageSize        int    `form:"page_size" binding:"omitempty,min=1,max=200"`
}

func parseEntryFilter(c *gin.Context) (ledger.EntryFilter, error) {
	var q entryFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return ledger.EntryFilter{}, err
	}

	filter := ledger.EntryFilter{
		ExcludeReversed: q.ExcludeReversed,
		Search:          q.Search,
		Page:            q.Page,
		PageSize:        q.PageSize,
	}
	if q.Kind != "" {
		kind := ledger.EntryKind(q.Kind)
		if !kind.IsValid() {
			return ledger.EntryFilter{}, fmt.Errorf("unknown entry kind %q", q.Kind)
		}
		filter.Kind = &kind
	}
	if q.FromDate != "" {
		from, err := time.Parse("2006-01-02", q.FromDate)
		if err != nil {
			return ledger.EntryFilter{}, err
		}
		filter.FromDate = &from
	}
	if q.ToDate != "" {
		to, err := time.Parse("2006-01-02", q.ToDate)
		if err != nil {
			return ledger.EntryFilter{}, err
		}
		// ToDate is inclusive on the wire, exclusive in the repository.
		to = to.AddDate(0, 0, 1)
		filter.ToDate = &to
	}
	if q.CounterpartyID != "" {
		id, err := uuid.Parse(q.CounterpartyID)
		if err != nil {
			return ledger.EntryFilter{}, err
		}
		filter.CounterpartyID = &id
	}
	if q.PoolKey != "" {
		filter.PoolKey = &q.PoolKey
	}
	return filter, nil
}
