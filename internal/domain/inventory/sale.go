package inventory

import (
	"time"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrTransferExceedsOutstanding rejects moving more due off a sale than the
// sale still carries.
var ErrTransferExceedsOutstanding = shared.NewDomainError("EXCEEDS_BUYER_DUE", "Transfer amount exceeds the sale's outstanding amount")

// SaleRecord is a credit sale of stored goods. OutstandingAmount is a stored
// projection of what the cashbook log implies; the only writers are the
// buyer-transfer commit and reversal paths, and due views re-derive it to
// detect drift.
type SaleRecord struct {
	shared.TenantAggregateRoot
	SaleNumber        string          `json:"sale_number"`
	BuyerID           uuid.UUID       `json:"buyer_id"`
	BuyerName         string          `json:"buyer_name"`
	FarmerID          uuid.UUID       `json:"farmer_id"`
	FarmerName        string          `json:"farmer_name"`
	SelfSale          bool            `json:"self_sale"`
	SaleDate          time.Time       `json:"sale_date"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}

// NewSaleRecord creates a sale. A self-sale is the farmer buying back their
// own stored goods; the buyer reference then points at the farmer.
func NewSaleRecord(
	tenantID uuid.UUID,
	saleNumber string,
	buyerID uuid.UUID,
	buyerName string,
	farmerID uuid.UUID,
	farmerName string,
	selfSale bool,
	saleDate time.Time,
	totalAmount valueobject.Money,
) (*SaleRecord, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_COUNTERPARTY", "Sales must name a buyer")
	}
	if farmerID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_COUNTERPARTY", "Sales must name the farmer whose goods were sold")
	}
	if !totalAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Sale amount must be positive")
	}
	if saleDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Sale date is required")
	}

	return &SaleRecord{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SaleNumber:          saleNumber,
		BuyerID:             buyerID,
		BuyerName:           buyerName,
		FarmerID:            farmerID,
		FarmerName:          farmerName,
		SelfSale:            selfSale,
		SaleDate:            saleDate,
		TotalAmount:         totalAmount.Amount(),
		OutstandingAmount:   totalAmount.Amount(),
	}, nil
}

// TransferDue reduces the stored outstanding when a buyer transfer moves due
// off this sale.
func (s *SaleRecord) TransferDue(amount decimal.Decimal) error {
	if amount.GreaterThan(s.OutstandingAmount) {
		return ErrTransferExceedsOutstanding
	}
	s.OutstandingAmount = s.OutstandingAmount.Sub(amount)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// RestoreDue raises the stored outstanding back when a buyer transfer on this
// sale is reversed. Restoration may not push outstanding above the total.
func (s *SaleRecord) RestoreDue(amount decimal.Decimal) error {
	restored := s.OutstandingAmount.Add(amount)
	if restored.GreaterThan(s.TotalAmount) {
		return shared.NewDomainError("CONSISTENCY_ERROR", "Restoring due would exceed the sale total")
	}
	s.OutstandingAmount = restored
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}
