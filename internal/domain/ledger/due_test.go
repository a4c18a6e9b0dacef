package ledger

import (
	"testing"
	"time"

	"github.com/coldstore/backend/internal/domain/ledger/acl"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSale(id, buyerID, farmerID uuid.UUID, selfSale bool, total string) acl.SaleRecord {
	amount := decimal.RequireFromString(total)
	return acl.SaleRecord{
		ID:                id,
		SaleNumber:        "SALE-001",
		BuyerID:           buyerID,
		FarmerID:          farmerID,
		SelfSale:          selfSale,
		TotalAmount:       amount,
		OutstandingAmount: amount,
	}
}

func TestComputeBuyerDue(t *testing.T) {
	tenantID := uuid.New()
	buyerID := uuid.New()
	otherBuyerID := uuid.New()
	farmerID := uuid.New()
	saleID := uuid.New()

	sale := newSale(saleID, buyerID, farmerID, false, "20000")

	receipt, err := NewReceipt(tenantID, "TXN-20260115-0060", PayerSalesGoodsBuyer,
		buyerID, "Ramesh Traders", mustINR(t, "5000"), CashPool(), testDay, "")
	require.NoError(t, err)

	transferOut, err := NewBuyerTransfer(tenantID, "TXN-20260115-0061",
		saleID, "SALE-001", buyerID, "Ramesh Traders", otherBuyerID, "Suresh & Sons",
		mustINR(t, "3000"), mustINR(t, "20000"), testDay, "")
	require.NoError(t, err)

	log := &Log{
		Receipts:       []Receipt{*receipt},
		BuyerTransfers: []BuyerTransfer{*transferOut},
	}

	// source buyer: 20000 outstanding - 3000 transferred off the sale - 5000 paid
	source := ComputeBuyerDue(buyerID, []acl.SaleRecord{sale}, log)
	assert.True(t, source.Due.Equal(decimal.RequireFromString("12000")), source.Due.String())

	// destination buyer picked up the 3000 without owning any sale
	dest := ComputeBuyerDue(otherBuyerID, nil, log)
	assert.True(t, dest.Due.Equal(decimal.RequireFromString("3000")))

	// total owed across buyers is conserved by the transfer
	total := source.Due.Add(dest.Due)
	assert.True(t, total.Equal(decimal.RequireFromString("15000")))
}

func TestBuyerTransferReversalRestoresBothSides(t *testing.T) {
	tenantID := uuid.New()
	buyerID := uuid.New()
	otherBuyerID := uuid.New()
	saleID := uuid.New()
	sale := newSale(saleID, buyerID, uuid.New(), false, "20000")

	transfer, err := NewBuyerTransfer(tenantID, "TXN-20260115-0070",
		saleID, "SALE-001", buyerID, "Ramesh Traders", otherBuyerID, "Suresh & Sons",
		mustINR(t, "3000"), mustINR(t, "20000"), testDay, "")
	require.NoError(t, err)
	require.NoError(t, transfer.Reverse(time.Now()))

	log := &Log{BuyerTransfers: []BuyerTransfer{*transfer}}

	assert.True(t, ComputeBuyerDue(buyerID, []acl.SaleRecord{sale}, log).Due.
		Equal(decimal.RequireFromString("20000")))
	assert.True(t, ComputeBuyerDue(otherBuyerID, nil, log).Due.IsZero())
	assert.True(t, OutstandingOnSale(sale, log).Equal(decimal.RequireFromString("20000")))
}

func TestComputeFarmerDue(t *testing.T) {
	tenantID := uuid.New()
	farmerID := uuid.New()
	buyerID := uuid.New()
	selfSale := newSale(uuid.New(), farmerID, farmerID, true, "8000")

	receipt, err := NewReceipt(tenantID, "TXN-20260115-0080", PayerFarmer,
		farmerID, "Mohan Lal", mustINR(t, "2000"), CashPool(), testDay, "")
	require.NoError(t, err)

	// 10000 receivables: transfer 12000 consumes all receivables then 2000 of self-sales
	transfer, err := NewFarmerToBuyerTransfer(tenantID, "TXN-20260115-0081",
		farmerID, "Mohan Lal", buyerID, "Ramesh Traders",
		mustINR(t, "12000"), mustINR(t, "10000"), mustINR(t, "8000"), testDay, "")
	require.NoError(t, err)
	assert.True(t, transfer.ReceivablesPortion.Equal(decimal.RequireFromString("10000")))
	assert.True(t, transfer.SelfSalesPortion.Equal(decimal.RequireFromString("2000")))

	log := &Log{
		Receipts:        []Receipt{*receipt},
		FarmerTransfers: []FarmerToBuyerTransfer{*transfer},
	}

	// 10000 receivables + 8000 self-sale - 2000 receipt - 12000 transferred
	farmer := ComputeFarmerDue(farmerID, decimal.RequireFromString("10000"), []acl.SaleRecord{selfSale}, log)
	assert.True(t, farmer.Due.Equal(decimal.RequireFromString("4000")), farmer.Due.String())

	// the buyer picked up the full transfer amount
	buyer := ComputeBuyerDue(buyerID, nil, log)
	assert.True(t, buyer.Due.Equal(decimal.RequireFromString("12000")))
}

func TestFarmerTransferCannotExceedCombinedDue(t *testing.T) {
	tenantID := uuid.New()

	_, err := NewFarmerToBuyerTransfer(tenantID, "TXN-20260115-0090",
		uuid.New(), "Mohan Lal", uuid.New(), "Ramesh Traders",
		mustINR(t, "12001"), mustINR(t, "10000"), mustINR(t, "2000"), testDay, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExceedsFarmerDue)
}

func TestDiscountMovesDueFromFarmerToBuyers(t *testing.T) {
	tenantID := uuid.New()
	farmerID := uuid.New()
	buyerA := uuid.New()
	buyerB := uuid.New()
	saleA := newSale(uuid.New(), buyerA, uuid.New(), false, "10000")
	saleB := newSale(uuid.New(), buyerB, uuid.New(), false, "10000")

	discount, err := NewDiscount(tenantID, "TXN-20260115-0100",
		farmerID, "Mohan Lal", mustINR(t, "1500"),
		[]DiscountLegInput{
			{BuyerID: buyerA, BuyerName: "Ramesh Traders", Amount: mustINR(t, "1000")},
			{BuyerID: buyerB, BuyerName: "Suresh & Sons", Amount: mustINR(t, "500")},
		}, testDay, "season settlement")
	require.NoError(t, err)

	log := &Log{Discounts: []Discount{*discount}}

	farmer := ComputeFarmerDue(farmerID, decimal.RequireFromString("5000"), nil, log)
	assert.True(t, farmer.Due.Equal(decimal.RequireFromString("3500")))

	assert.True(t, ComputeBuyerDue(buyerA, []acl.SaleRecord{saleA}, log).Due.
		Equal(decimal.RequireFromString("9000")))
	assert.True(t, ComputeBuyerDue(buyerB, []acl.SaleRecord{saleB}, log).Due.
		Equal(decimal.RequireFromString("9500")))
}

func TestCheckSaleConsistency(t *testing.T) {
	buyerID := uuid.New()
	saleID := uuid.New()
	sale := newSale(saleID, buyerID, uuid.New(), false, "20000")

	assert.NoError(t, CheckSaleConsistency(sale, &Log{}))

	// stored projection drifted: log says 20000 outstanding, record says 15000
	sale.OutstandingAmount = decimal.RequireFromString("15000")
	err := CheckSaleConsistency(sale, &Log{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInconsistentOutstanding)
}
