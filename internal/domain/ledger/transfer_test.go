package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInternalTransfer(t *testing.T) {
	tenantID := uuid.New()
	accountID := uuid.New()

	t.Run("cash to bank", func(t *testing.T) {
		transfer, err := NewInternalTransfer(tenantID, "TXN-20260115-0130",
			CashPool(), BankPool(accountID), mustINR(t, "5000"), testDay, "deposit")
		require.NoError(t, err)
		assert.Equal(t, EntryKindInternalTransfer, transfer.Kind())
	})

	t.Run("same pool rejected", func(t *testing.T) {
		_, err := NewInternalTransfer(tenantID, "TXN-20260115-0131",
			CashPool(), CashPool(), mustINR(t, "5000"), testDay, "")
		assert.ErrorIs(t, err, ErrSamePoolTransfer)
	})

	t.Run("same pool via legacy alias rejected", func(t *testing.T) {
		_, err := NewInternalTransfer(tenantID, "TXN-20260115-0132",
			ResolvePool(nil, "limit"), ResolvePool(nil, "LIMIT"),
			mustINR(t, "5000"), testDay, "")
		assert.ErrorIs(t, err, ErrSamePoolTransfer)
	})

	t.Run("legacy pools are distinct", func(t *testing.T) {
		_, err := NewInternalTransfer(tenantID, "TXN-20260115-0133",
			ResolvePool(nil, "limit"), ResolvePool(nil, "current"),
			mustINR(t, "5000"), testDay, "")
		assert.NoError(t, err)
	})
}

func TestNewBuyerTransferValidation(t *testing.T) {
	tenantID := uuid.New()
	saleID := uuid.New()
	fromBuyer := uuid.New()
	toBuyer := uuid.New()

	t.Run("amount capped by sale outstanding", func(t *testing.T) {
		_, err := NewBuyerTransfer(tenantID, "TXN-20260115-0140",
			saleID, "SALE-001", fromBuyer, "Ramesh", toBuyer, "Suresh",
			mustINR(t, "3001"), mustINR(t, "3000"), testDay, "")
		assert.ErrorIs(t, err, ErrExceedsBuyerDue)
	})

	t.Run("full outstanding is allowed", func(t *testing.T) {
		_, err := NewBuyerTransfer(tenantID, "TXN-20260115-0141",
			saleID, "SALE-001", fromBuyer, "Ramesh", toBuyer, "Suresh",
			mustINR(t, "3000"), mustINR(t, "3000"), testDay, "")
		assert.NoError(t, err)
	})

	t.Run("self transfer rejected", func(t *testing.T) {
		_, err := NewBuyerTransfer(tenantID, "TXN-20260115-0142",
			saleID, "SALE-001", fromBuyer, "Ramesh", fromBuyer, "Ramesh",
			mustINR(t, "100"), mustINR(t, "3000"), testDay, "")
		assert.Error(t, err)
	})

	t.Run("sale reference required", func(t *testing.T) {
		_, err := NewBuyerTransfer(tenantID, "TXN-20260115-0143",
			uuid.Nil, "", fromBuyer, "Ramesh", toBuyer, "Suresh",
			mustINR(t, "100"), mustINR(t, "3000"), testDay, "")
		assert.Error(t, err)
	})
}

func TestFarmerTransferSplitsReceivablesFirst(t *testing.T) {
	tenantID := uuid.New()

	tests := []struct {
		name            string
		amount          string
		receivables     string
		selfSales       string
		wantReceivables string
		wantSelfSales   string
	}{
		{"fits in receivables", "5000", "10000", "0", "5000", "0"},
		{"spills into self sales", "12000", "10000", "8000", "10000", "2000"},
		{"exactly exhausts both", "18000", "10000", "8000", "10000", "8000"},
		{"no receivables", "3000", "0", "8000", "0", "3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfer, err := NewFarmerToBuyerTransfer(tenantID, "TXN-20260115-0150",
				uuid.New(), "Mohan Lal", uuid.New(), "Ramesh Traders",
				mustINR(t, tt.amount), mustINR(t, tt.receivables), mustINR(t, tt.selfSales),
				testDay, "")
			require.NoError(t, err)
			assert.Equal(t, tt.wantReceivables, transfer.ReceivablesPortion.String())
			assert.Equal(t, tt.wantSelfSales, transfer.SelfSalesPortion.String())
			assert.True(t, transfer.ReceivablesPortion.Add(transfer.SelfSalesPortion).
				Equal(transfer.Amount), "split must cover the full amount")
		})
	}
}
