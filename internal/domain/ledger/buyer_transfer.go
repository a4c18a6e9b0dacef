package ledger

import (
	"time"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ErrExceedsBuyerDue rejects transfers or allocations larger than what the
// source buyer actually owes.
var ErrExceedsBuyerDue = shared.NewDomainError("EXCEEDS_BUYER_DUE", "Amount exceeds the buyer's outstanding due")

// BuyerTransfer moves responsibility for part of a sale's outstanding amount
// from one buyer to another. No money moves; only who owes it changes. The
// transfer is pinned to a specific sale so its outstanding can be re-derived.
type BuyerTransfer struct {
	EntryBase
	SaleID        uuid.UUID `json:"sale_id"`
	SaleNumber    string    `json:"sale_number"`
	FromBuyerID   uuid.UUID `json:"from_buyer_id"`
	FromBuyerName string    `json:"from_buyer_name"`
	ToBuyerID     uuid.UUID `json:"to_buyer_id"`
	ToBuyerName   string    `json:"to_buyer_name"`
}

// NewBuyerTransfer creates a buyer-to-buyer due transfer. saleOutstanding is
// the sale's outstanding amount at validation time; the transfer may not move
// more than is actually owed on that sale.
func NewBuyerTransfer(
	tenantID uuid.UUID,
	txnNumber string,
	saleID uuid.UUID,
	saleNumber string,
	fromBuyerID uuid.UUID,
	fromBuyerName string,
	toBuyerID uuid.UUID,
	toBuyerName string,
	amount valueobject.Money,
	saleOutstanding valueobject.Money,
	occurredAt time.Time,
	remarks string,
) (*BuyerTransfer, error) {
	base, err := newEntryBase(tenantID, txnNumber, amount, occurredAt, remarks)
	if err != nil {
		return nil, err
	}
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_SALE", "Buyer transfers must reference a sale")
	}
	if fromBuyerID == uuid.Nil || toBuyerID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_COUNTERPARTY", "Both source and destination buyers are required")
	}
	if fromBuyerID == toBuyerID {
		return nil, shared.NewDomainError("INVALID_TRANSFER", "Source and destination buyers must differ")
	}
	if amount.Amount().GreaterThan(saleOutstanding.Amount()) {
		return nil, ErrExceedsBuyerDue
	}

	transfer := &BuyerTransfer{
		EntryBase:     base,
		SaleID:        saleID,
		SaleNumber:    saleNumber,
		FromBuyerID:   fromBuyerID,
		FromBuyerName: fromBuyerName,
		ToBuyerID:     toBuyerID,
		ToBuyerName:   toBuyerName,
	}
	transfer.AddDomainEvent(NewEntryRecordedEvent(transfer, EntryKindBuyerTransfer))
	return transfer, nil
}

// Kind returns the entry kind.
func (t *BuyerTransfer) Kind() EntryKind {
	return EntryKindBuyerTransfer
}

// Reverse marks the transfer as reversed.
func (t *BuyerTransfer) Reverse(now time.Time) error {
	if err := t.markReversed(now); err != nil {
		return err
	}
	t.AddDomainEvent(NewEntryReversedEvent(t, EntryKindBuyerTransfer))
	return nil
}
