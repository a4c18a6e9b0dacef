package ledger

import (
	"time"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrExceedsFarmerDue rejects transfers or allocations larger than what the
// farmer actually owes.
var ErrExceedsFarmerDue = shared.NewDomainError("EXCEEDS_FARMER_DUE", "Amount exceeds the farmer's outstanding due")

// FarmerToBuyerTransfer moves a farmer's due onto a buyer. A farmer's due has
// two components: storage receivables and outstanding self-purchases. The
// transfer consumes receivables first; the split is recorded so the entry can
// be audited, but due views always re-derive from the full log.
type FarmerToBuyerTransfer struct {
	EntryBase
	FarmerID           uuid.UUID       `json:"farmer_id"`
	FarmerName         string          `json:"farmer_name"`
	ToBuyerID          uuid.UUID       `json:"to_buyer_id"`
	ToBuyerName        string          `json:"to_buyer_name"`
	ReceivablesPortion decimal.Decimal `json:"receivables_portion"`
	SelfSalesPortion   decimal.Decimal `json:"self_sales_portion"`
}

// NewFarmerToBuyerTransfer creates a farmer-to-buyer due transfer.
// receivablesDue and selfSalesDue are the farmer's two due components at
// validation time; the amount is split receivables-first and may not exceed
// their sum.
func NewFarmerToBuyerTransfer(
	tenantID uuid.UUID,
	txnNumber string,
	farmerID uuid.UUID,
	farmerName string,
	toBuyerID uuid.UUID,
	toBuyerName string,
	amount valueobject.Money,
	receivablesDue valueobject.Money,
	selfSalesDue valueobject.Money,
	occurredAt time.Time,
	remarks string,
) (*FarmerToBuyerTransfer, error) {
	base, err := newEntryBase(tenantID, txnNumber, amount, occurredAt, remarks)
	if err != nil {
		return nil, err
	}
	if farmerID == uuid.Nil || toBuyerID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_COUNTERPARTY", "Both farmer and destination buyer are required")
	}

	receivablesPortion := decimal.Min(amount.Amount(), decimal.Max(receivablesDue.Amount(), decimal.Zero))
	selfSalesPortion := amount.Amount().Sub(receivablesPortion)
	if selfSalesPortion.GreaterThan(selfSalesDue.Amount()) {
		return nil, ErrExceedsFarmerDue
	}

	transfer := &FarmerToBuyerTransfer{
		EntryBase:          base,
		FarmerID:           farmerID,
		FarmerName:         farmerName,
		ToBuyerID:          toBuyerID,
		ToBuyerName:        toBuyerName,
		ReceivablesPortion: receivablesPortion,
		SelfSalesPortion:   selfSalesPortion,
	}
	transfer.AddDomainEvent(NewEntryRecordedEvent(transfer, EntryKindFarmerTransfer))
	return transfer, nil
}

// Kind returns the entry kind.
func (t *FarmerToBuyerTransfer) Kind() EntryKind {
	return EntryKindFarmerTransfer
}

// Reverse marks the transfer as reversed.
func (t *FarmerToBuyerTransfer) Reverse(now time.Time) error {
	if err := t.markReversed(now); err != nil {
		return err
	}
	t.AddDomainEvent(NewEntryReversedEvent(t, EntryKindFarmerTransfer))
	return nil
}
