package ledger

import (
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types emitted by cashbook entries.
const (
	EventEntryRecorded = "ledger.entry.recorded"
	EventEntryReversed = "ledger.entry.reversed"
)

// EntryRecordedEvent is emitted when a new entry is appended to the cashbook.
type EntryRecordedEvent struct {
	shared.BaseDomainEvent
	EntryKind         EntryKind       `json:"entry_kind"`
	TransactionNumber string          `json:"transaction_number"`
	Amount            decimal.Decimal `json:"amount"`
}

// NewEntryRecordedEvent creates an EntryRecordedEvent from an entry.
func NewEntryRecordedEvent(entry Entry, kind EntryKind) *EntryRecordedEvent {
	return &EntryRecordedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventEntryRecorded, "CashbookEntry", entry.GetID(), entry.Tenant()),
		EntryKind:         kind,
		TransactionNumber: entry.Number(),
		Amount:            entry.EntryAmount(),
	}
}

// EntryReversedEvent is emitted when an entry is reversed. Consumers holding
// derived views (balance cache, due snapshots) must recompute, not patch.
type EntryReversedEvent struct {
	shared.BaseDomainEvent
	EntryKind         EntryKind       `json:"entry_kind"`
	TransactionNumber string          `json:"transaction_number"`
	Amount            decimal.Decimal `json:"amount"`
}

// NewEntryReversedEvent creates an EntryReversedEvent from an entry.
func NewEntryReversedEvent(entry Entry, kind EntryKind) *EntryReversedEvent {
	return &EntryReversedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventEntryReversed, "CashbookEntry", entry.GetID(), entry.Tenant()),
		EntryKind:         kind,
		TransactionNumber: entry.Number(),
		Amount:            entry.EntryAmount(),
	}
}
