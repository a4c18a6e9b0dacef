package ledger

import (
	"context"
	"time"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryFilter narrows cashbook history queries. Zero values mean "no filter";
// reversed entries are included unless explicitly excluded, because history
// views must show them struck through rather than hide them.
type EntryFilter struct {
	Kind            *EntryKind
	FromDate        *time.Time
	ToDate          *time.Time
	CounterpartyID  *uuid.UUID
	PoolKey         *string
	ExcludeReversed bool
	Search          string
	Page            int
	PageSize        int
}

// EntrySummary is the flattened history row common to all entry kinds.
type EntrySummary struct {
	ID                uuid.UUID           `json:"id"`
	Kind              EntryKind           `json:"kind"`
	TransactionNumber string              `json:"transaction_number"`
	Amount            decimal.Decimal     `json:"amount"`
	OccurredAt        time.Time           `json:"occurred_at"`
	CounterpartyName  string              `json:"counterparty_name,omitempty"`
	PoolKey           string              `json:"pool_key,omitempty"`
	Category          string              `json:"category,omitempty"`
	Remarks           string              `json:"remarks,omitempty"`
	IsReversed        bool                `json:"is_reversed"`
	ReversedAt        *time.Time          `json:"reversed_at,omitempty"`
	DueBalanceAfter   decimal.NullDecimal `json:"due_balance_after,omitempty"`
}

// CashbookRepository persists the append-only entry log. Save methods insert
// new entries; SaveEntry persists the reversal flag of an existing one. There
// is no delete.
type CashbookRepository interface {
	// NextTransactionNumber issues the next date-scoped transaction number
	// for the tenant, e.g. "TXN-20260115-0042". Must be called inside a unit
	// of work: the counter row is locked until commit.
	NextTransactionNumber(ctx context.Context, tenantID uuid.UUID, day time.Time) (string, error)

	SaveReceipt(ctx context.Context, receipt *Receipt) error
	SaveExpense(ctx context.Context, expense *Expense) error
	SaveTransfer(ctx context.Context, transfer *InternalTransfer) error
	SaveBuyerTransfer(ctx context.Context, transfer *BuyerTransfer) error
	SaveFarmerTransfer(ctx context.Context, transfer *FarmerToBuyerTransfer) error
	SaveDiscount(ctx context.Context, discount *Discount) error

	// FindEntry loads one entry as its concrete aggregate, for reversal.
	FindEntry(ctx context.Context, tenantID, entryID uuid.UUID) (Entry, error)
	// SaveEntry persists state changes of a loaded entry, kind-dispatched.
	SaveEntry(ctx context.Context, entry Entry) error

	// LoadLog loads every entry of the tenant within [from, to), reversed
	// included. Derived views fold over this; they never query pieces.
	LoadLog(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*Log, error)

	// ListEntries returns flattened history rows plus the unpaged total.
	ListEntries(ctx context.Context, tenantID uuid.UUID, filter EntryFilter) ([]EntrySummary, int64, error)
	FindSummary(ctx context.Context, tenantID, entryID uuid.UUID) (*EntrySummary, error)

	// LogVersion returns a value that changes whenever the tenant's log
	// changes, used to key derived-view caches.
	LogVersion(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// BankAccountRepository persists bank accounts.
type BankAccountRepository interface {
	shared.TenantRepository[BankAccount]
	FindByFiscalYear(ctx context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear) ([]BankAccount, error)
	// Delete removes an account. Implementations must refuse with
	// ErrAccountInUse while any non-reversed entry references it.
	Delete(ctx context.Context, tenantID, accountID uuid.UUID) error
}

// OpeningBalanceRepository persists per-fiscal-year opening balances.
type OpeningBalanceRepository interface {
	FindByFiscalYear(ctx context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear) (*OpeningBalance, error)
	Save(ctx context.Context, balance *OpeningBalance) error
}
