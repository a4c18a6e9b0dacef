package ledger

import (
	"time"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayerKind classifies who the money came from on a receipt.
type PayerKind string

const (
	PayerColdStorageMerchant PayerKind = "COLD_STORAGE_MERCHANT"
	PayerSalesGoodsBuyer     PayerKind = "SALES_GOODS_BUYER"
	PayerKata                PayerKind = "KATA"
	PayerFarmer              PayerKind = "FARMER"
	PayerOther               PayerKind = "OTHER"
)

// IsValid checks if the payer kind is known
func (p PayerKind) IsValid() bool {
	switch p {
	case PayerColdStorageMerchant, PayerSalesGoodsBuyer, PayerKata, PayerFarmer, PayerOther:
		return true
	}
	return false
}

// String returns the string representation of PayerKind
func (p PayerKind) String() string {
	return string(p)
}

// RequiresCounterparty reports whether a receipt of this payer kind must name
// a counterparty. Kata income is weighbridge revenue with no account behind it.
func (p PayerKind) RequiresCounterparty() bool {
	return p != PayerKata && p != PayerOther
}

// Receipt records money flowing into the business: a buyer or farmer settling
// a due, weighbridge (kata) income, or miscellaneous inflows.
type Receipt struct {
	EntryBase
	PayerKind        PayerKind           `json:"payer_kind"`
	CounterpartyID   uuid.UUID           `json:"counterparty_id,omitempty"`
	CounterpartyName string              `json:"counterparty_name,omitempty"`
	Settlement       PoolReference       `json:"settlement"`
	DueBalanceAfter  decimal.NullDecimal `json:"due_balance_after,omitempty"`
}

// NewReceipt creates a receipt entry, enforcing payer-kind counterparty rules.
func NewReceipt(
	tenantID uuid.UUID,
	txnNumber string,
	payerKind PayerKind,
	counterpartyID uuid.UUID,
	counterpartyName string,
	amount valueobject.Money,
	settlement PoolReference,
	occurredAt time.Time,
	remarks string,
) (*Receipt, error) {
	base, err := newEntryBase(tenantID, txnNumber, amount, occurredAt, remarks)
	if err != nil {
		return nil, err
	}
	if !payerKind.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYER_KIND", "Unknown payer kind: "+string(payerKind))
	}
	if payerKind.RequiresCounterparty() {
		if counterpartyID == uuid.Nil {
			return nil, shared.NewDomainError("MISSING_COUNTERPARTY", "Receipts from "+string(payerKind)+" must name a counterparty")
		}
		if counterpartyName == "" {
			return nil, shared.NewDomainError("MISSING_COUNTERPARTY", "Counterparty name is required")
		}
	}
	if err := settlement.Validate(); err != nil {
		return nil, err
	}

	receipt := &Receipt{
		EntryBase:        base,
		PayerKind:        payerKind,
		CounterpartyID:   counterpartyID,
		CounterpartyName: counterpartyName,
		Settlement:       settlement,
	}
	receipt.AddDomainEvent(NewEntryRecordedEvent(receipt, EntryKindReceipt))
	return receipt, nil
}

// Kind returns the entry kind.
func (r *Receipt) Kind() EntryKind {
	return EntryKindReceipt
}

// SnapshotDueBalance records the counterparty's due balance as it stood after
// this receipt was applied. Audit trail only: due views always recompute from
// the log and never read this field.
func (r *Receipt) SnapshotDueBalance(due valueobject.Money) {
	r.DueBalanceAfter = decimal.NullDecimal{Decimal: due.Amount(), Valid: true}
}

// Reverse marks the receipt as reversed.
func (r *Receipt) Reverse(now time.Time) error {
	if err := r.markReversed(now); err != nil {
		return err
	}
	r.AddDomainEvent(NewEntryReversedEvent(r, EntryKindReceipt))
	return nil
}
