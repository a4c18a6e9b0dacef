package ledger

import (
	"time"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryKind discriminates the six monetary event kinds of the cashbook.
type EntryKind string

const (
	EntryKindReceipt          EntryKind = "RECEIPT"
	EntryKindExpense          EntryKind = "EXPENSE"
	EntryKindInternalTransfer EntryKind = "INTERNAL_TRANSFER"
	EntryKindBuyerTransfer    EntryKind = "BUYER_TRANSFER"
	EntryKindFarmerTransfer   EntryKind = "FARMER_BUYER_TRANSFER"
	EntryKindDiscount         EntryKind = "DISCOUNT"
)

// IsValid checks if the kind is a known EntryKind
func (k EntryKind) IsValid() bool {
	switch k {
	case EntryKindReceipt, EntryKindExpense, EntryKindInternalTransfer,
		EntryKindBuyerTransfer, EntryKindFarmerTransfer, EntryKindDiscount:
		return true
	}
	return false
}

// String returns the string representation of EntryKind
func (k EntryKind) String() string {
	return string(k)
}

// Reversal errors. AlreadyReversed is distinct from NotFound so callers can
// tell "refresh your view" apart from "this id never existed".
var (
	ErrEntryNotFound   = shared.NewDomainError("ENTRY_NOT_FOUND", "Cashbook entry not found in this ledger")
	ErrAlreadyReversed = shared.NewDomainError("ALREADY_REVERSED", "Entry has already been reversed")
)

// Entry is the common contract of all cashbook entry aggregates. Entries are
// immutable after creation except for the one-way reversal transition.
type Entry interface {
	shared.AggregateRoot
	Kind() EntryKind
	Tenant() uuid.UUID
	Number() string
	EntryAmount() decimal.Decimal
	BusinessDate() time.Time
	Reversed() bool
	Reverse(now time.Time) error
}

// EntryBase carries the fields shared by every entry kind.
type EntryBase struct {
	shared.TenantAggregateRoot
	TransactionNumber string          `json:"transaction_number"`
	Amount            decimal.Decimal `json:"amount"`
	OccurredAt        time.Time       `json:"occurred_at"`
	Remarks           string          `json:"remarks"`
	IsReversed        bool            `json:"is_reversed"`
	ReversedAt        *time.Time      `json:"reversed_at,omitempty"`
}

func newEntryBase(tenantID uuid.UUID, txnNumber string, amount valueobject.Money, occurredAt time.Time, remarks string) (EntryBase, error) {
	if txnNumber == "" {
		return EntryBase{}, shared.NewDomainError("INVALID_TRANSACTION_NUMBER", "Transaction number cannot be empty")
	}
	if len(txnNumber) > 50 {
		return EntryBase{}, shared.NewDomainError("INVALID_TRANSACTION_NUMBER", "Transaction number cannot exceed 50 characters")
	}
	if !amount.IsPositive() {
		return EntryBase{}, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if occurredAt.IsZero() {
		return EntryBase{}, shared.NewDomainError("INVALID_DATE", "Business date is required")
	}
	return EntryBase{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TransactionNumber:   txnNumber,
		Amount:              amount.Amount(),
		OccurredAt:          occurredAt,
		Remarks:             remarks,
	}, nil
}

// Tenant returns the owning tenant id.
func (e *EntryBase) Tenant() uuid.UUID {
	return e.TenantID
}

// Number returns the human-readable transaction number.
func (e *EntryBase) Number() string {
	return e.TransactionNumber
}

// EntryAmount returns the entry amount.
func (e *EntryBase) EntryAmount() decimal.Decimal {
	return e.Amount
}

// BusinessDate returns the operator-chosen business date.
func (e *EntryBase) BusinessDate() time.Time {
	return e.OccurredAt
}

// Reversed reports whether the entry has been reversed.
func (e *EntryBase) Reversed() bool {
	return e.IsReversed
}

// markReversed performs the one-way Active -> Reversed transition. There is no
// way back: undoing a reversal means booking a fresh compensating entry.
func (e *EntryBase) markReversed(now time.Time) error {
	if e.IsReversed {
		return ErrAlreadyReversed
	}
	e.IsReversed = true
	e.ReversedAt = &now
	e.UpdatedAt = now
	e.IncrementVersion()
	return nil
}

// GetAmountMoney returns the amount as a Money value object.
func (e *EntryBase) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(e.Amount)
}
