package handler

import (
	"strconv"

	appledger "github.com/coldstore/backend/internal/application/ledger"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/coldstore/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BankAccountHandler handles bank account and opening balance endpoints
type BankAccountHandler struct {
	BaseHandler
	service *appledger.AccountService
}

// NewBankAccountHandler creates a new BankAccountHandler.
func NewBankAccountHandler(service *appledger.AccountService) *BankAccountHandler {
	return &BankAccountHandler{service: service}
}

// RegisterRoutes registers bank account and opening balance routes
func (h *BankAccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	accounts := rg.Group("/bank-accounts")
	{
		accounts.POST("", h.CreateBankAccount)
		accounts.GET("", h.ListBankAccounts)
		accounts.PUT("/:id", h.UpdateBankAccount)
		accounts.DELETE("/:id", h.DeleteBankAccount)
	}
	rg.GET("/opening-balances/:fiscalYear", h.GetOpeningBalance)
	rg.PUT("/opening-balances/:fiscalYear", h.SetOpeningBalance)
}

// CreateBankAccount handles POST /api/v1/bank-accounts
func (h *BankAccountHandler) CreateBankAccount(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appledger.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	account, err := h.service.CreateBankAccount(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// UpdateBankAccount handles PUT /api/v1/bank-accounts/:id
func (h *BankAccountHandler) UpdateBankAccount(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	accountID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req appledger.UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	account, err := h.service.UpdateBankAccount(c.Request.Context(), tenantID, accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// DeleteBankAccount handles DELETE /api/v1/bank-accounts/:id
func (h *BankAccountHandler) DeleteBankAccount(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	accountID, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	if err := h.service.DeleteBankAccount(c.Request.Context(), tenantID, accountID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

type fiscalYearQuery struct {
	FiscalYear int `form:"fiscal_year" binding:"required"`
}

// ListBankAccounts handles GET /api/v1/bank-accounts
func (h *BankAccountHandler) ListBankAccounts(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var q fiscalYearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "fiscal_year is required")
		return
	}
	accounts, err := h.service.ListBankAccounts(c.Request.Context(), tenantID, valueobject.FiscalYear(q.FiscalYear))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}

// GetOpeningBalance handles GET /api/v1/opening-balances/:fiscalYear
func (h *BankAccountHandler) GetOpeningBalance(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	fiscalYear, ok := h.fiscalYearParam(c)
	if !ok {
		return
	}
	opening, err := h.service.GetOpeningBalance(c.Request.Context(), tenantID, fiscalYear)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, opening)
}

// SetOpeningBalance handles PUT /api/v1/opening-balances/:fiscalYear
func (h *BankAccountHandler) SetOpeningBalance(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	fiscalYear, ok := h.fiscalYearParam(c)
	if !ok {
		return
	}
	var req appledger.OpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	opening, err := h.service.SetOpeningBalance(c.Request.Context(), tenantID, fiscalYear, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, opening)
}

func (h *BankAccountHandler) fiscalYearParam(c *gin.Context) (valueobject.FiscalYear, bool) {
	year, err := strconv.Atoi(c.Param("fiscalYear"))
	if err != nil {
		h.BadRequest(c, "Fiscal year must be a number")
		return 0, false
	}
	return valueobject.FiscalYear(year), true
}
