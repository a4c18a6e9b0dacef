package ledger

import (
	"testing"
	"time"

	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fy2025 = valueobject.FiscalYear(2025)

func newTestAccount(t *testing.T, tenantID uuid.UUID, name string, opening string) *BankAccount {
	t.Helper()
	account, err := NewBankAccount(tenantID, name, AccountTypeCurrent, fy2025, mustINR(t, opening))
	require.NoError(t, err)
	return account
}

func newTestOpening(t *testing.T, tenantID uuid.UUID, cash, limit, current string) *OpeningBalance {
	t.Helper()
	opening, err := NewOpeningBalance(tenantID, fy2025,
		mustINR(t, cash), mustINR(t, limit), mustINR(t, current))
	require.NoError(t, err)
	return opening
}

func TestComputeBalancesFoldsLogOverOpening(t *testing.T) {
	tenantID := uuid.New()
	opening := newTestOpening(t, tenantID, "10000", "0", "0")
	account := newTestAccount(t, tenantID, "SBI Current", "50000")

	receipt := newTestReceipt(t, tenantID, "5000", CashPool())
	expense, err := NewExpense(tenantID, "TXN-20260115-0020", ExpenseLabour,
		"Loading crew", mustINR(t, "1200"), CashPool(), testDay, "")
	require.NoError(t, err)
	deposit, err := NewInternalTransfer(tenantID, "TXN-20260115-0021",
		CashPool(), account.Pool(), mustINR(t, "3000"), testDay, "bank deposit")
	require.NoError(t, err)

	log := &Log{
		Receipts:  []Receipt{*receipt},
		Expenses:  []Expense{*expense},
		Transfers: []InternalTransfer{*deposit},
	}
	sheet := ComputeBalances(log, opening, []BankAccount{*account})

	// cash: 10000 + 5000 - 1200 - 3000
	assert.True(t, sheet.CashInHand.Equal(decimal.RequireFromString("10800")), sheet.CashInHand.String())
	require.Len(t, sheet.BankPools, 1)
	assert.True(t, sheet.BankPools[0].Amount.Equal(decimal.RequireFromString("53000")))
	assert.Equal(t, "SBI Current", sheet.BankPools[0].AccountName)
	assert.True(t, sheet.TotalReceipts.Equal(decimal.RequireFromString("5000")))
	assert.True(t, sheet.TotalExpenses.Equal(decimal.RequireFromString("1200")))
	assert.True(t, sheet.ExpenseByCategory[ExpenseLabour].Equal(decimal.RequireFromString("1200")))
}

func TestInternalTransferConservesTotal(t *testing.T) {
	tenantID := uuid.New()
	opening := newTestOpening(t, tenantID, "10000", "2000", "0")
	account := newTestAccount(t, tenantID, "SBI Current", "50000")

	before := ComputeBalances(&Log{}, opening, []BankAccount{*account})

	deposit, err := NewInternalTransfer(tenantID, "TXN-20260115-0030",
		CashPool(), account.Pool(), mustINR(t, "7500"), testDay, "")
	require.NoError(t, err)
	after := ComputeBalances(&Log{Transfers: []InternalTransfer{*deposit}}, opening, []BankAccount{*account})

	assert.True(t, before.Total().Equal(after.Total()),
		"transfer changed total: %s -> %s", before.Total(), after.Total())
	assert.True(t, after.CashInHand.Equal(before.CashInHand.Sub(decimal.RequireFromString("7500"))))
}

func TestReversedEntriesContributeNothing(t *testing.T) {
	tenantID := uuid.New()
	opening := newTestOpening(t, tenantID, "10000", "0", "0")

	receipt := newTestReceipt(t, tenantID, "5000", CashPool())
	require.NoError(t, receipt.Reverse(time.Now()))

	sheet := ComputeBalances(&Log{Receipts: []Receipt{*receipt}}, opening, nil)
	assert.True(t, sheet.CashInHand.Equal(decimal.RequireFromString("10000")))
	assert.True(t, sheet.TotalReceipts.IsZero())
}

func TestLegacyPoolsAggregateWithExplicitAccounts(t *testing.T) {
	tenantID := uuid.New()
	opening := newTestOpening(t, tenantID, "0", "20000", "5000")

	// Entry written by the old schema: no account id, only a type string.
	legacyReceipt, err := NewReceipt(tenantID, "TXN-20260115-0040", PayerFarmer,
		uuid.New(), "Mohan Lal", mustINR(t, "4000"), ResolvePool(nil, "limit"), testDay, "")
	require.NoError(t, err)

	sheet := ComputeBalances(&Log{Receipts: []Receipt{*legacyReceipt}}, opening, nil)

	byKey := make(map[string]decimal.Decimal)
	for _, p := range sheet.BankPools {
		byKey[p.Key] = p.Amount
	}
	assert.True(t, byKey["limit"].Equal(decimal.RequireFromString("24000")))
	assert.True(t, byKey["current"].Equal(decimal.RequireFromString("5000")))
}

func TestComputeBalancesTracksUnknownPools(t *testing.T) {
	tenantID := uuid.New()
	opening := newTestOpening(t, tenantID, "0", "0", "0")

	// Receipt into an account that is not in the account list anymore.
	orphanID := uuid.New()
	receipt := newTestReceipt(t, tenantID, "900", BankPool(orphanID))

	sheet := ComputeBalances(&Log{Receipts: []Receipt{*receipt}}, opening, nil)

	found := false
	for _, p := range sheet.BankPools {
		if p.Key == orphanID.String() {
			found = true
			assert.True(t, p.Amount.Equal(decimal.RequireFromString("900")))
		}
	}
	assert.True(t, found, "orphan pool missing from sheet")
}

func TestComputeDayBook(t *testing.T) {
	tenantID := uuid.New()
	otherDay := testDay.AddDate(0, 0, 1)

	receipt := newTestReceipt(t, tenantID, "5000", CashPool())
	bankReceipt := newTestReceipt(t, tenantID, "2000", ResolvePool(nil, "current"))
	expense, err := NewExpense(tenantID, "TXN-20260115-0050", ExpenseSalary,
		"Munshi ji", mustINR(t, "800"), CashPool(), testDay, "")
	require.NoError(t, err)
	withdrawal, err := NewInternalTransfer(tenantID, "TXN-20260115-0051",
		ResolvePool(nil, "current"), CashPool(), mustINR(t, "1000"), testDay, "")
	require.NoError(t, err)
	tomorrow, err := NewExpense(tenantID, "TXN-20260116-0001", ExpenseLabour,
		"", mustINR(t, "999"), CashPool(), otherDay, "")
	require.NoError(t, err)

	log := &Log{
		Receipts:  []Receipt{*receipt, *bankReceipt},
		Expenses:  []Expense{*expense, *tomorrow},
		Transfers: []InternalTransfer{*withdrawal},
	}
	summary := ComputeDayBook(log, testDay)

	assert.True(t, summary.TotalReceipts.Equal(decimal.RequireFromString("7000")))
	assert.True(t, summary.TotalExpenses.Equal(decimal.RequireFromString("800")))
	assert.True(t, summary.CashIn.Equal(decimal.RequireFromString("6000")), summary.CashIn.String())
	assert.True(t, summary.CashOut.Equal(decimal.RequireFromString("800")))
	assert.True(t, summary.NetCash.Equal(decimal.RequireFromString("5200")))
	assert.Equal(t, 4, summary.EntryCount)
}
