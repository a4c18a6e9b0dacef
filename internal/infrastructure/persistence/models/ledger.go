package models

import (
	"time"

	"github.com/coldstore/backend/internal/domain/ledger"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashbookEntryModel persists all six entry kinds in one table. The kind
// column discriminates; per-kind fields are nullable and only the columns the
// kind uses are set. A single table keeps the log readable in insertion order
// and makes transaction numbers trivially unique per tenant.
type CashbookEntryModel struct {
	TenantAggregateModel
	Kind              string          `gorm:"type:varchar(30);not null;index:idx_cashbook_tenant_kind"`
	TransactionNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_cashbook_txn,composite:tenant_txn"`
	Amount            decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	OccurredAt        time.Time       `gorm:"not null;index"`
	Remarks           string          `gorm:"type:text"`
	IsReversed        bool            `gorm:"not null;default:false;index"`
	ReversedAt        *time.Time

	// Receipt
	PayerKind        *string    `gorm:"type:varchar(30)"`
	CounterpartyID   *uuid.UUID `gorm:"type:uuid;index"`
	CounterpartyName *string    `gorm:"type:varchar(200)"`
	DueBalanceAfter  decimal.NullDecimal `gorm:"type:numeric(14,2)"`

	// Expense
	Category     *string `gorm:"type:varchar(40)"`
	ReceiverName *string `gorm:"type:varchar(200)"`

	// Money pool of the entry: receipt settlement, expense payment, or the
	// source leg of an internal transfer. ToPool is the destination leg.
	PoolAccountID    *uuid.UUID `gorm:"type:uuid;index"`
	PoolLegacyType   *string    `gorm:"type:varchar(20)"`
	ToPoolAccountID  *uuid.UUID `gorm:"type:uuid;index"`
	ToPoolLegacyType *string    `gorm:"type:varchar(20)"`

	// Buyer transfer
	SaleID        *uuid.UUID `gorm:"type:uuid;index"`
	SaleNumber    *string    `gorm:"type:varchar(50)"`
	FromBuyerID   *uuid.UUID `gorm:"type:uuid;index"`
	FromBuyerName *string    `gorm:"type:varchar(200)"`
	ToBuyerID     *uuid.UUID `gorm:"type:uuid;index"`
	ToBuyerName   *string    `gorm:"type:varchar(200)"`

	// Farmer transfer and discount
	FarmerID           *uuid.UUID          `gorm:"type:uuid;index"`
	FarmerName         *string             `gorm:"type:varchar(200)"`
	ReceivablesPortion decimal.NullDecimal `gorm:"type:numeric(14,2)"`
	SelfSalesPortion   decimal.NullDecimal `gorm:"type:numeric(14,2)"`

	Legs []DiscountAllocationModel `gorm:"foreignKey:EntryID"`
}

// TableName specifies the table name for CashbookEntryModel
func (CashbookEntryModel) TableName() string {
	return "cashbook_entries"
}

// DiscountAllocationModel persists one buyer leg of a discount entry.
type DiscountAllocationModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	EntryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	BuyerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	BuyerName string          `gorm:"type:varchar(200);not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

// TableName specifies the table name for DiscountAllocationModel
func (DiscountAllocationModel) TableName() string {
	return "discount_allocations"
}

// TransactionCounterModel issues date-scoped transaction numbers. The row is
// locked FOR UPDATE while a number is issued, so concurrent writers serialize
// per tenant and day.
type TransactionCounterModel struct {
	TenantID uuid.UUID `gorm:"type:uuid;primary_key"`
	Day      string    `gorm:"type:varchar(8);primary_key"`
	Counter  int       `gorm:"not null;default:0"`
}

// TableName specifies the table name for TransactionCounterModel
func (TransactionCounterModel) TableName() string {
	return "transaction_counters"
}

// BankAccountModel persists bank accounts.
type BankAccountModel struct {
	TenantAggregateModel
	AccountName    string          `gorm:"type:varchar(100);not null"`
	AccountType    string          `gorm:"type:varchar(20);not null"`
	FiscalYear     int             `gorm:"not null;index"`
	OpeningBalance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
}

// TableName specifies the table name for BankAccountModel
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}

// OpeningBalanceModel persists per-fiscal-year opening balances.
type OpeningBalanceModel struct {
	TenantAggregateModel
	FiscalYear    int             `gorm:"not null;uniqueIndex:idx_opening_tenant_year,composite:tenant_year"`
	CashInHand    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	LegacyLimit   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	LegacyCurrent decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
}

// TableName specifies the table name for OpeningBalanceModel
func (OpeningBalanceModel) TableName() string {
	return "opening_balances"
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func uuidPtr(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func uuidVal(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}

// poolColumns flattens a pool reference into the nullable column pair.
func poolColumns(p ledger.PoolReference) (*uuid.UUID, *string) {
	if p.Kind == ledger.PoolKindBank && p.AccountID != uuid.Nil {
		id := p.AccountID
		return &id, nil
	}
	key := p.Key()
	return nil, &key
}

func poolFromColumns(accountID *uuid.UUID, legacyType *string) ledger.PoolReference {
	return ledger.ResolvePool(accountID, strVal(legacyType))
}

// FromDomainEntry flattens any entry kind into the model.
func (m *CashbookEntryModel) FromDomainEntry(entry ledger.Entry) {
	switch e := entry.(type) {
	case *ledger.Receipt:
		m.fromBase(e.EntryBase, ledger.EntryKindReceipt)
		m.PayerKind = strPtr(e.PayerKind.String())
		m.CounterpartyID = uuidPtr(e.CounterpartyID)
		m.CounterpartyName = strPtr(e.CounterpartyName)
		m.PoolAccountID, m.PoolLegacyType = poolColumns(e.Settlement)
		m.DueBalanceAfter = e.DueBalanceAfter
	case *ledger.Expense:
		m.fromBase(e.EntryBase, ledger.EntryKindExpense)
		m.Category = strPtr(e.Category.String())
		m.ReceiverName = strPtr(e.ReceiverName)
		m.PoolAccountID, m.PoolLegacyType = poolColumns(e.Payment)
	case *ledger.InternalTransfer:
		m.fromBase(e.EntryBase, ledger.EntryKindInternalTransfer)
		m.PoolAccountID, m.PoolLegacyType = poolColumns(e.FromPool)
		m.ToPoolAccountID, m.ToPoolLegacyType = poolColumns(e.ToPool)
	case *ledger.BuyerTransfer:
		m.fromBase(e.EntryBase, ledger.EntryKindBuyerTransfer)
		m.SaleID = uuidPtr(e.SaleID)
		m.SaleNumber = strPtr(e.SaleNumber)
		m.FromBuyerID = uuidPtr(e.FromBuyerID)
		m.FromBuyerName = strPtr(e.FromBuyerName)
		m.ToBuyerID = uuidPtr(e.ToBuyerID)
		m.ToBuyerName = strPtr(e.ToBuyerName)
	case *ledger.FarmerToBuyerTransfer:
		m.fromBase(e.EntryBase, ledger.EntryKindFarmerTransfer)
		m.FarmerID = uuidPtr(e.FarmerID)
		m.FarmerName = strPtr(e.FarmerName)
		m.ToBuyerID = uuidPtr(e.ToBuyerID)
		m.ToBuyerName = strPtr(e.ToBuyerName)
		m.ReceivablesPortion = decimal.NullDecimal{Decimal: e.ReceivablesPortion, Valid: true}
		m.SelfSalesPortion = decimal.NullDecimal{Decimal: e.SelfSalesPortion, Valid: true}
	case *ledger.Discount:
		m.fromBase(e.EntryBase, ledger.EntryKindDiscount)
		m.FarmerID = uuidPtr(e.FarmerID)
		m.FarmerName = strPtr(e.FarmerName)
		m.Legs = make([]DiscountAllocationModel, 0, len(e.Legs))
		for _, leg := range e.Legs {
			m.Legs = append(m.Legs, DiscountAllocationModel{
				ID:        leg.ID,
				EntryID:   e.ID,
				BuyerID:   leg.BuyerID,
				BuyerName: leg.BuyerName,
				Amount:    leg.Amount,
			})
		}
	}
}

func (m *CashbookEntryModel) fromBase(base ledger.EntryBase, kind ledger.EntryKind) {
	m.FromDomainTenantAggregateRoot(base.TenantAggregateRoot)
	m.Kind = kind.String()
	m.TransactionNumber = base.TransactionNumber
	m.Amount = base.Amount
	m.OccurredAt = base.OccurredAt
	m.Remarks = base.Remarks
	m.IsReversed = base.IsReversed
	m.ReversedAt = base.ReversedAt
}

func (m *CashbookEntryModel) toBase() ledger.EntryBase {
	return ledger.EntryBase{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		TransactionNumber:   m.TransactionNumber,
		Amount:              m.Amount,
		OccurredAt:          m.OccurredAt,
		Remarks:             m.Remarks,
		IsReversed:          m.IsReversed,
		ReversedAt:          m.ReversedAt,
	}
}

// ToDomainEntry reconstructs the concrete aggregate for the stored kind.
func (m *CashbookEntryModel) ToDomainEntry() ledger.Entry {
	switch ledger.EntryKind(m.Kind) {
	case ledger.EntryKindReceipt:
		return &ledger.Receipt{
			EntryBase:        m.toBase(),
			PayerKind:        ledger.PayerKind(strVal(m.PayerKind)),
			CounterpartyID:   uuidVal(m.CounterpartyID),
			CounterpartyName: strVal(m.CounterpartyName),
			Settlement:       poolFromColumns(m.PoolAccountID, m.PoolLegacyType),
			DueBalanceAfter:  m.DueBalanceAfter,
		}
	case ledger.EntryKindExpense:
		return &ledger.Expense{
			EntryBase:    m.toBase(),
			Category:     ledger.ExpenseCategory(strVal(m.Category)),
			ReceiverName: strVal(m.ReceiverName),
			Payment:      poolFromColumns(m.PoolAccountID, m.PoolLegacyType),
		}
	case ledger.EntryKindInternalTransfer:
		return &ledger.InternalTransfer{
			EntryBase: m.toBase(),
			FromPool:  poolFromColumns(m.PoolAccountID, m.PoolLegacyType),
			ToPool:    poolFromColumns(m.ToPoolAccountID, m.ToPoolLegacyType),
		}
	case ledger.EntryKindBuyerTransfer:
		return &ledger.BuyerTransfer{
			EntryBase:     m.toBase(),
			SaleID:        uuidVal(m.SaleID),
			SaleNumber:    strVal(m.SaleNumber),
			FromBuyerID:   uuidVal(m.FromBuyerID),
			FromBuyerName: strVal(m.FromBuyerName),
			ToBuyerID:     uuidVal(m.ToBuyerID),
			ToBuyerName:   strVal(m.ToBuyerName),
		}
	case ledger.EntryKindFarmerTransfer:
		return &ledger.FarmerToBuyerTransfer{
			EntryBase:          m.toBase(),
			FarmerID:           uuidVal(m.FarmerID),
			FarmerName:         strVal(m.FarmerName),
			ToBuyerID:          uuidVal(m.ToBuyerID),
			ToBuyerName:        strVal(m.ToBuyerName),
			ReceivablesPortion: m.ReceivablesPortion.Decimal,
			SelfSalesPortion:   m.SelfSalesPortion.Decimal,
		}
	case ledger.EntryKindDiscount:
		legs := make([]ledger.DiscountLeg, 0, len(m.Legs))
		for _, leg := range m.Legs {
			legs = append(legs, ledger.DiscountLeg{
				ID:        leg.ID,
				BuyerID:   leg.BuyerID,
				BuyerName: leg.BuyerName,
				Amount:    leg.Amount,
			})
		}
		return &ledger.Discount{
			EntryBase:  m.toBase(),
			FarmerID:   uuidVal(m.FarmerID),
			FarmerName: strVal(m.FarmerName),
			Legs:       legs,
		}
	}
	return nil
}

// ToSummary flattens the model into a history row.
func (m *CashbookEntryModel) ToSummary() ledger.EntrySummary {
	summary := ledger.EntrySummary{
		ID:                m.ID,
		Kind:              ledger.EntryKind(m.Kind),
		TransactionNumber: m.TransactionNumber,
		Amount:            m.Amount,
		OccurredAt:        m.OccurredAt,
		Category:          strVal(m.Category),
		Remarks:           m.Remarks,
		IsReversed:        m.IsReversed,
		ReversedAt:        m.ReversedAt,
		DueBalanceAfter:   m.DueBalanceAfter,
	}
	switch ledger.EntryKind(m.Kind) {
	case ledger.EntryKindReceipt, ledger.EntryKindExpense:
		if m.CounterpartyName != nil {
			summary.CounterpartyName = *m.CounterpartyName
		} else {
			summary.CounterpartyName = strVal(m.ReceiverName)
		}
		summary.PoolKey = poolFromColumns(m.PoolAccountID, m.PoolLegacyType).Key()
	case ledger.EntryKindInternalTransfer:
		summary.PoolKey = poolFromColumns(m.PoolAccountID, m.PoolLegacyType).Key() +
			" -> " + poolFromColumns(m.ToPoolAccountID, m.ToPoolLegacyType).Key()
	case ledger.EntryKindBuyerTransfer:
		summary.CounterpartyName = strVal(m.FromBuyerName) + " -> " + strVal(m.ToBuyerName)
	case ledger.EntryKindFarmerTransfer:
		summary.CounterpartyName = strVal(m.FarmerName) + " -> " + strVal(m.ToBuyerName)
	case ledger.EntryKindDiscount:
		summary.CounterpartyName = strVal(m.FarmerName)
	}
	return summary
}

// FromDomainBankAccount populates the model from the aggregate.
func (m *BankAccountModel) FromDomainBankAccount(a *ledger.BankAccount) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.AccountName = a.AccountName
	m.AccountType = a.AccountType.String()
	m.FiscalYear = int(a.FiscalYear)
	m.OpeningBalance = a.OpeningBalance
}

// ToDomain converts the model back to the aggregate.
func (m *BankAccountModel) ToDomain() *ledger.BankAccount {
	return &ledger.BankAccount{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		AccountName:         m.AccountName,
		AccountType:         ledger.AccountType(m.AccountType),
		FiscalYear:          valueobject.FiscalYear(m.FiscalYear),
		OpeningBalance:      m.OpeningBalance,
	}
}

// FromDomainOpeningBalance populates the model from the aggregate.
func (m *OpeningBalanceModel) FromDomainOpeningBalance(o *ledger.OpeningBalance) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.FiscalYear = int(o.FiscalYear)
	m.CashInHand = o.CashInHand
	m.LegacyLimit = o.LegacyLimit
	m.LegacyCurrent = o.LegacyCurrent
}

// ToDomain converts the model back to the aggregate.
func (m *OpeningBalanceModel) ToDomain() *ledger.OpeningBalance {
	return &ledger.OpeningBalance{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		FiscalYear:          valueobject.FiscalYear(m.FiscalYear),
		CashInHand:          m.CashInHand,
		LegacyLimit:         m.LegacyLimit,
		LegacyCurrent:       m.LegacyCurrent,
	}
}
