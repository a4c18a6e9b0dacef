package ledger

import (
	"testing"
	"time"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

func mustINR(t *testing.T, amount string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyINRFromString(amount)
	require.NoError(t, err)
	return m
}

func newTestReceipt(t *testing.T, tenantID uuid.UUID, amount string, pool PoolReference) *Receipt {
	t.Helper()
	receipt, err := NewReceipt(tenantID, "TXN-20260115-0001", PayerSalesGoodsBuyer,
		uuid.New(), "Ramesh Traders", mustINR(t, amount), pool, testDay, "")
	require.NoError(t, err)
	return receipt
}

func TestNewReceiptValidation(t *testing.T) {
	tenantID := uuid.New()
	buyerID := uuid.New()

	t.Run("valid buyer receipt", func(t *testing.T) {
		receipt, err := NewReceipt(tenantID, "TXN-20260115-0001", PayerSalesGoodsBuyer,
			buyerID, "Ramesh Traders", mustINR(t, "5000"), CashPool(), testDay, "against sale 42")
		require.NoError(t, err)
		assert.Equal(t, EntryKindReceipt, receipt.Kind())
		assert.False(t, receipt.Reversed())
		assert.False(t, receipt.DueBalanceAfter.Valid)
		assert.Len(t, receipt.GetDomainEvents(), 1)
	})

	t.Run("kata receipt needs no counterparty", func(t *testing.T) {
		receipt, err := NewReceipt(tenantID, "TXN-20260115-0002", PayerKata,
			uuid.Nil, "", mustINR(t, "150"), CashPool(), testDay, "weighbridge")
		require.NoError(t, err)
		assert.Equal(t, uuid.Nil, receipt.CounterpartyID)
	})

	t.Run("buyer receipt requires counterparty", func(t *testing.T) {
		_, err := NewReceipt(tenantID, "TXN-20260115-0003", PayerSalesGoodsBuyer,
			uuid.Nil, "", mustINR(t, "5000"), CashPool(), testDay, "")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MISSING_COUNTERPARTY", domainErr.Code)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		_, err := NewReceipt(tenantID, "TXN-20260115-0004", PayerKata,
			uuid.Nil, "", valueobject.ZeroINR(), CashPool(), testDay, "")
		assert.Error(t, err)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := NewReceipt(tenantID, "TXN-20260115-0005", PayerKata,
			uuid.Nil, "", mustINR(t, "-10"), CashPool(), testDay, "")
		assert.Error(t, err)
	})

	t.Run("empty transaction number rejected", func(t *testing.T) {
		_, err := NewReceipt(tenantID, "", PayerKata,
			uuid.Nil, "", mustINR(t, "100"), CashPool(), testDay, "")
		assert.Error(t, err)
	})

	t.Run("unknown payer kind rejected", func(t *testing.T) {
		_, err := NewReceipt(tenantID, "TXN-20260115-0006", PayerKind("BROKER"),
			uuid.Nil, "", mustINR(t, "100"), CashPool(), testDay, "")
		assert.Error(t, err)
	})
}

func TestReversalIsOneWay(t *testing.T) {
	receipt := newTestReceipt(t, uuid.New(), "5000", CashPool())
	versionBefore := receipt.Version

	now := time.Now()
	require.NoError(t, receipt.Reverse(now))
	assert.True(t, receipt.Reversed())
	require.NotNil(t, receipt.ReversedAt)
	assert.Equal(t, now, *receipt.ReversedAt)
	assert.Equal(t, versionBefore+1, receipt.Version)

	err := receipt.Reverse(time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyReversed)
	assert.Equal(t, now, *receipt.ReversedAt)
	assert.Equal(t, versionBefore+1, receipt.Version)
}

func TestSnapshotDueBalanceIsAuditOnly(t *testing.T) {
	receipt := newTestReceipt(t, uuid.New(), "5000", CashPool())
	receipt.SnapshotDueBalance(mustINR(t, "12000"))

	require.True(t, receipt.DueBalanceAfter.Valid)
	assert.Equal(t, "12000", receipt.DueBalanceAfter.Decimal.String())
}

func TestNewExpenseValidation(t *testing.T) {
	tenantID := uuid.New()

	expense, err := NewExpense(tenantID, "TXN-20260115-0010", ExpenseLabour,
		"Loading crew", mustINR(t, "1200"), CashPool(), testDay, "")
	require.NoError(t, err)
	assert.Equal(t, EntryKindExpense, expense.Kind())

	_, err = NewExpense(tenantID, "TXN-20260115-0011", ExpenseCategory("RENT"),
		"", mustINR(t, "1200"), CashPool(), testDay, "")
	assert.Error(t, err)
}

func TestEntryKindIsValid(t *testing.T) {
	for _, kind := range []EntryKind{
		EntryKindReceipt, EntryKindExpense, EntryKindInternalTransfer,
		EntryKindBuyerTransfer, EntryKindFarmerTransfer, EntryKindDiscount,
	} {
		assert.True(t, kind.IsValid(), kind.String())
	}
	assert.False(t, EntryKind("REFUND").IsValid())
}
