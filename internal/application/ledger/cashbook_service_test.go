package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/coldstore/backend/internal/domain/ledger"
	"github.com/coldstore/backend/internal/domain/ledger/acl"
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

type cashbookFixture struct {
	tenantID  uuid.UUID
	repo      *fakeCashbookRepo
	accounts  *fakeAccountRepo
	sales     *fakeSalesBook
	directory *fakeDirectory
	service   *CashbookService
}

func newCashbookFixture() *cashbookFixture {
	repo := &fakeCashbookRepo{}
	accounts := newFakeAccountRepo()
	sales := newFakeSalesBook()
	directory := newFakeDirectory()
	return &cashbookFixture{
		tenantID:  uuid.New(),
		repo:      repo,
		accounts:  accounts,
		sales:     sales,
		directory: directory,
		service:   NewCashbookService(repo, accounts, sales, sales, directory, directory, fakeUnitOfWork{}),
	}
}

func (f *cashbookFixture) addBuyer(name string) uuid.UUID {
	id := uuid.New()
	f.directory.buyers[id] = &acl.PartnerRef{ID: id, Name: name}
	return id
}

func (f *cashbookFixture) addFarmer(name string, receivables string) uuid.UUID {
	id := uuid.New()
	f.directory.farmers[id] = &acl.PartnerRef{ID: id, Name: name}
	f.directory.receivables[id] = decimal.RequireFromString(receivables)
	return id
}

func (f *cashbookFixture) addSale(buyerID, farmerID uuid.UUID, selfSale bool, total, outstanding string) uuid.UUID {
	id := uuid.New()
	f.sales.sales[id] = &acl.SaleRecord{
		ID:                id,
		SaleNumber:        "S-" + id.String()[:8],
		BuyerID:           buyerID,
		BuyerName:         "buyer",
		FarmerID:          farmerID,
		FarmerName:        "farmer",
		SelfSale:          selfSale,
		TotalAmount:       decimal.RequireFromString(total),
		OutstandingAmount: decimal.RequireFromString(outstanding),
	}
	return id
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	return de.Code
}

func TestCreateReceiptFromBuyerSnapshotsDue(t *testing.T) {
	f := newCashbookFixture()
	buyerID := f.addBuyer("Ramesh")
	f.addSale(buyerID, uuid.New(), false, "1000", "1000")

	resp, err := f.service.CreateReceipt(context.Background(), f.tenantID, CreateReceiptRequest{
		PayerKind:      ledger.PayerSalesGoodsBuyer.String(),
		CounterpartyID: &buyerID,
		Amount:         decimal.RequireFromString("400"),
		OccurredAt:     testDay,
	})
	require.NoError(t, err)

	assert.Equal(t, "RECEIPT", resp.Kind)
	assert.Equal(t, "Ramesh", resp.CounterpartyName)
	assert.Equal(t, "cash", resp.PoolKey)
	assert.Equal(t, "TXN-20260115-0001", resp.TransactionNumber)
	require.True(t, resp.DueBalanceAfter.Valid)
	assert.True(t, resp.DueBalanceAfter.Decimal.Equal(decimal.RequireFromString("600")),
		"due after receipt = %s", resp.DueBalanceAfter.Decimal)

	require.Len(t, f.repo.receipts, 1)
}

func TestCreateReceiptKataNeedsNoCounterparty(t *testing.T) {
	f := newCashbookFixture()

	resp, err := f.service.CreateReceipt(context.Background(), f.tenantID, CreateReceiptRequest{
		PayerKind:  ledger.PayerKata.String(),
		Amount:     decimal.RequireFromString("50"),
		OccurredAt: testDay,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.CounterpartyName)
	assert.False(t, resp.DueBalanceAfter.Valid)
}

func TestCreateReceiptMissingCounterparty(t *testing.T) {
	f := newCashbookFixture()

	_, err := f.service.CreateReceipt(context.Background(), f.tenantID, CreateReceiptRequest{
		PayerKind:  ledger.PayerFarmer.String(),
		Amount:     decimal.RequireFromString("50"),
		OccurredAt: testDay,
	})
	assert.Equal(t, "MISSING_COUNTERPARTY", domainCode(t, err))
}

func TestCreateReceiptRejectsUnknownBankAccount(t *testing.T) {
	f := newCashbookFixture()
	accountID := uuid.New()

	_, err := f.service.CreateReceipt(context.Background(), f.tenantID, CreateReceiptRequest{
		PayerKind:  ledger.PayerKata.String(),
		Amount:     decimal.RequireFromString("50"),
		Settlement: PoolRequest{BankAccountID: &accountID},
		OccurredAt: testDay,
	})
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
	assert.Empty(t, f.repo.receipts)
}

func TestCreateExpense(t *testing.T) {
	f := newCashbookFixture()

	resp, err := f.service.CreateExpense(context.Background(), f.tenantID, CreateExpenseRequest{
		Category:     ledger.ExpenseLabour.String(),
		ReceiverName: "Loading gang",
		Amount:       decimal.RequireFromString("1200"),
		OccurredAt:   testDay,
	})
	require.NoError(t, err)
	assert.Equal(t, "EXPENSE", resp.Kind)
	assert.Equal(t, "LABOUR", resp.Category)
	require.Len(t, f.repo.expenses, 1)
}

func TestCreateExpenseUnknownCategory(t *testing.T) {
	f := newCashbookFixture()

	_, err := f.service.CreateExpense(context.Background(), f.tenantID, CreateExpenseRequest{
		Category:   "FESTIVITIES",
		Amount:     decimal.RequireFromString("10"),
		OccurredAt: testDay,
	})
	assert.Equal(t, "INVALID_EXPENSE_CATEGORY", domainCode(t, err))
}

func TestCreateTransferSamePoolRejected(t *testing.T) {
	f := newCashbookFixture()

	_, err := f.service.CreateTransfer(context.Background(), f.tenantID, CreateTransferRequest{
		From:       PoolRequest{PoolType: "cash"},
		To:         PoolRequest{PoolType: "cash"},
		Amount:     decimal.RequireFromString("100"),
		OccurredAt: testDay,
	})
	assert.Equal(t, "SAME_POOL_TRANSFER", domainCode(t, err))
}

func TestCreateTransferBetweenPools(t *testing.T) {
	f := newCashbookFixture()

	resp, err := f.service.CreateTransfer(context.Background(), f.tenantID, CreateTransferRequest{
		From:       PoolRequest{PoolType: "cash"},
		To:         PoolRequest{PoolType: "limit"},
		Amount:     decimal.RequireFromString("500"),
		OccurredAt: testDay,
	})
	require.NoError(t, err)
	assert.Equal(t, "INTERNAL_TRANSFER", resp.Kind)
	assert.Equal(t, "cash -> limit", resp.PoolKey)
}

func TestCreateBuyerTransferRewritesOutstanding(t *testing.T) {
	f := newCashbookFixture()
	fromBuyer := f.addBuyer("Ramesh")
	toBuyer := f.addBuyer("Suresh")
	saleID := f.addSale(fromBuyer, uuid.New(), false, "1000", "1000")

	resp, err := f.service.CreateBuyerTransfer(context.Background(), f.tenantID, CreateBuyerTransferRequest{
		SaleID:     saleID,
		ToBuyerID:  toBuyer,
		Amount:     decimal.RequireFromString("300"),
		OccurredAt: testDay,
	})
	require.NoError(t, err)
	assert.Equal(t, "BUYER_TRANSFER", resp.Kind)

	applied, ok := f.sales.applied[saleID]
	require.True(t, ok, "outstanding projection was not rewritten")
	assert.True(t, applied.Equal(decimal.RequireFromString("700")), "outstanding = %s", applied)
}

func TestCreateBuyerTransferExceedsOutstanding(t *testing.T) {
	f := newCashbookFixture()
	fromBuyer := f.addBuyer("Ramesh")
	toBuyer := f.addBuyer("Suresh")
	saleID := f.addSale(fromBuyer, uuid.New(), false, "1000", "1000")

	_, err := f.service.CreateBuyerTransfer(context.Background(), f.tenantID, CreateBuyerTransferRequest{
		SaleID:     saleID,
		ToBuyerID:  toBuyer,
		Amount:     decimal.RequireFromString("1500"),
		OccurredAt: testDay,
	})
	assert.Equal(t, "EXCEEDS_BUYER_DUE", domainCode(t, err))
	assert.Empty(t, f.repo.buyerTransfers)
}

func TestCreateBuyerTransferDetectsInconsistentProjection(t *testing.T) {
	f := newCashbookFixture()
	fromBuyer := f.addBuyer("Ramesh")
	toBuyer := f.addBuyer("Suresh")
	// Stored outstanding disagrees with the log, which has no transfers.
	saleID := f.addSale(fromBuyer, uuid.New(), false, "1000", "500")

	_, err := f.service.CreateBuyerTransfer(context.Background(), f.tenantID, CreateBuyerTransferRequest{
		SaleID:     saleID,
		ToBuyerID:  toBuyer,
		Amount:     decimal.RequireFromString("100"),
		OccurredAt: testDay,
	})
	assert.Equal(t, "CONSISTENCY_ERROR", domainCode(t, err))
}

func TestCreateFarmerTransferSplitsReceivablesFirst(t *testing.T) {
	f := newCashbookFixture()
	farmerID := f.addFarmer("Mohan", "300")
	toBuyer := f.addBuyer("Suresh")
	f.addSale(uuid.New(), farmerID, true, "200", "200")

	_, err := f.service.CreateFarmerTransfer(context.Background(), f.tenantID, CreateFarmerTransferRequest{
		FarmerID:   farmerID,
		ToBuyerID:  toBuyer,
		Amount:     decimal.RequireFromString("400"),
		OccurredAt: testDay,
	})
	require.NoError(t, err)

	require.Len(t, f.repo.farmerTransfers, 1)
	transfer := f.repo.farmerTransfers[0]
	assert.True(t, transfer.ReceivablesPortion.Equal(decimal.RequireFromString("300")))
	assert.True(t, transfer.SelfSalesPortion.Equal(decimal.RequireFromString("100")))
}

func TestCreateFarmerTransferExceedsDue(t *testing.T) {
	f := newCashbookFixture()
	farmerID := f.addFarmer("Mohan", "300")
	toBuyer := f.addBuyer("Suresh")

	_, err := f.service.CreateFarmerTransfer(context.Background(), f.tenantID, CreateFarmerTransferRequest{
		FarmerID:   farmerID,
		ToBuyerID:  toBuyer,
		Amount:     decimal.RequireFromString("400"),
		OccurredAt: testDay,
	})
	assert.Equal(t, "EXCEEDS_FARMER_DUE", domainCode(t, err))
}

func TestCreateDiscountMovesDueWithinCaps(t *testing.T) {
	f := newCashbookFixture()
	farmerID := f.addFarmer("Mohan", "500")
	buyerID := f.addBuyer("Ramesh")
	f.addSale(buyerID, uuid.New(), false, "400", "400")

	resp, err := f.service.CreateDiscount(context.Background(), f.tenantID, CreateDiscountRequest{
		FarmerID:    farmerID,
		TotalAmount: decimal.RequireFromString("200"),
		Legs: []DiscountLegRequest{
			{BuyerID: buyerID, Amount: decimal.RequireFromString("200")},
		},
		OccurredAt: testDay,
	})
	require.NoError(t, err)
	assert.Equal(t, "DISCOUNT", resp.Kind)
	assert.Equal(t, "Mohan", resp.CounterpartyName)
	require.Len(t, f.repo.discounts, 1)
}

func TestCreateDiscountExceedsFarmerDue(t *testing.T) {
	f := newCashbookFixture()
	farmerID := f.addFarmer("Mohan", "100")
	buyerID := f.addBuyer("Ramesh")
	f.addSale(buyerID, uuid.New(), false, "400", "400")

	_, err := f.service.CreateDiscount(context.Background(), f.tenantID, CreateDiscountRequest{
		FarmerID:    farmerID,
		TotalAmount: decimal.RequireFromString("200"),
		Legs: []DiscountLegRequest{
			{BuyerID: buyerID, Amount: decimal.RequireFromString("200")},
		},
		OccurredAt: testDay,
	})
	assert.Equal(t, "EXCEEDS_FARMER_DUE", domainCode(t, err))
}

func TestCreateDiscountLegMismatch(t *testing.T) {
	f := newCashbookFixture()
	farmerID := f.addFarmer("Mohan", "500")
	buyerID := f.addBuyer("Ramesh")
	f.addSale(buyerID, uuid.New(), false, "400", "400")

	_, err := f.service.CreateDiscount(context.Background(), f.tenantID, CreateDiscountRequest{
		FarmerID:    farmerID,
		TotalAmount: decimal.RequireFromString("200"),
		Legs: []DiscountLegRequest{
			{BuyerID: buyerID, Amount: decimal.RequireFromString("150")},
		},
		OccurredAt: testDay,
	})
	assert.Equal(t, "ALLOCATION_MISMATCH", domainCode(t, err))
}

func TestReverseEntryIsOneWay(t *testing.T) {
	f := newCashbookFixture()

	created, err := f.service.CreateReceipt(context.Background(), f.tenantID, CreateReceiptRequest{
		PayerKind:  ledger.PayerKata.String(),
		Amount:     decimal.RequireFromString("50"),
		OccurredAt: testDay,
	})
	require.NoError(t, err)

	reversed, err := f.service.ReverseEntry(context.Background(), f.tenantID, created.ID)
	require.NoError(t, err)
	assert.True(t, reversed.IsReversed)

	_, err = f.service.ReverseEntry(context.Background(), f.tenantID, created.ID)
	assert.Equal(t, "ALREADY_REVERSED", domainCode(t, err))
}

func TestReverseUnknownEntry(t *testing.T) {
	f := newCashbookFixture()

	_, err := f.service.ReverseEntry(context.Background(), f.tenantID, uuid.New())
	assert.Equal(t, "ENTRY_NOT_FOUND", domainCode(t, err))
}

func TestReverseBuyerTransferRestoresOutstanding(t *testing.T) {
	f := newCashbookFixture()
	fromBuyer := f.addBuyer("Ramesh")
	toBuyer := f.addBuyer("Suresh")
	saleID := f.addSale(fromBuyer, uuid.New(), false, "1000", "1000")

	created, err := f.service.CreateBuyerTransfer(context.Background(), f.tenantID, CreateBuyerTransferRequest{
		SaleID:     saleID,
		ToBuyerID:  toBuyer,
		Amount:     decimal.RequireFromString("300"),
		OccurredAt: testDay,
	})
	require.NoError(t, err)
	require.True(t, f.sales.applied[saleID].Equal(decimal.RequireFromString("700")))

	_, err = f.service.ReverseEntry(context.Background(), f.tenantID, created.ID)
	require.NoError(t, err)
	assert.True(t, f.sales.applied[saleID].Equal(decimal.RequireFromString("1000")),
		"outstanding after reversal = %s", f.sales.applied[saleID])
}

func TestReverseBuyerTransferTwiceReportsAlreadyReversed(t *testing.T) {
	f := newCashbookFixture()
	fromBuyer := f.addBuyer("Ramesh")
	toBuyer := f.addBuyer("Suresh")
	saleID := f.addSale(fromBuyer, uuid.New(), false, "1000", "1000")

	created, err := f.service.CreateBuyerTransfer(context.Background(), f.tenantID, CreateBuyerTransferRequest{
		SaleID:     saleID,
		ToBuyerID:  toBuyer,
		Amount:     decimal.RequireFromString("300"),
		OccurredAt: testDay,
	})
	require.NoError(t, err)

	_, err = f.service.ReverseEntry(context.Background(), f.tenantID, created.ID)
	require.NoError(t, err)

	// The second reversal must be told apart from a consistency failure:
	// the log already excludes the reversed transfer, so the caller gets
	// the state error, not a restore-math error.
	_, err = f.service.ReverseEntry(context.Background(), f.tenantID, created.ID)
	assert.Equal(t, "ALREADY_REVERSED", domainCode(t, err))
	assert.True(t, f.sales.applied[saleID].Equal(decimal.RequireFromString("1000")),
		"outstanding must not move on a failed reversal, got %s", f.sales.applied[saleID])
}

func TestListEntriesNormalizesPaging(t *testing.T) {
	f := newCashbookFixture()

	_, err := f.service.CreateReceipt(context.Background(), f.tenantID, CreateReceiptRequest{
		PayerKind:  ledger.PayerKata.String(),
		Amount:     decimal.RequireFromString("50"),
		OccurredAt: testDay,
	})
	require.NoError(t, err)

	result, err := f.service.ListEntries(context.Background(), f.tenantID, ledger.EntryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 50, result.PageSize)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, ledger.EntryKindReceipt, result.Items[0].Kind)
}
