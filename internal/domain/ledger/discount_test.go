package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discountLegs(t *testing.T, amounts map[uuid.UUID]string) []DiscountLegInput {
	t.Helper()
	legs := make([]DiscountLegInput, 0, len(amounts))
	for buyerID, amount := range amounts {
		legs = append(legs, DiscountLegInput{BuyerID: buyerID, BuyerName: "Buyer", Amount: mustINR(t, amount)})
	}
	return legs
}

func TestNewDiscountAllocation(t *testing.T) {
	tenantID := uuid.New()
	farmerID := uuid.New()
	buyerA := uuid.New()
	buyerB := uuid.New()

	t.Run("legs must sum to total", func(t *testing.T) {
		_, err := NewDiscount(tenantID, "TXN-20260115-0110", farmerID, "Mohan Lal",
			mustINR(t, "1500"),
			discountLegs(t, map[uuid.UUID]string{buyerA: "1000", buyerB: "400"}),
			testDay, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAllocationMismatch)
	})

	t.Run("one paisa drift is tolerated", func(t *testing.T) {
		discount, err := NewDiscount(tenantID, "TXN-20260115-0111", farmerID, "Mohan Lal",
			mustINR(t, "1000"),
			discountLegs(t, map[uuid.UUID]string{buyerA: "333.33", buyerB: "666.66"}),
			testDay, "")
		require.NoError(t, err)
		assert.Len(t, discount.Legs, 2)
	})

	t.Run("two paise drift is not", func(t *testing.T) {
		_, err := NewDiscount(tenantID, "TXN-20260115-0112", farmerID, "Mohan Lal",
			mustINR(t, "1000"),
			discountLegs(t, map[uuid.UUID]string{buyerA: "333.33", buyerB: "666.65"}),
			testDay, "")
		assert.ErrorIs(t, err, ErrAllocationMismatch)
	})

	t.Run("no legs", func(t *testing.T) {
		_, err := NewDiscount(tenantID, "TXN-20260115-0113", farmerID, "Mohan Lal",
			mustINR(t, "1000"), nil, testDay, "")
		assert.ErrorIs(t, err, ErrEmptyAllocation)
	})

	t.Run("all-zero legs count as empty", func(t *testing.T) {
		_, err := NewDiscount(tenantID, "TXN-20260115-0114", farmerID, "Mohan Lal",
			mustINR(t, "0.01"),
			discountLegs(t, map[uuid.UUID]string{buyerA: "0", buyerB: "0"}),
			testDay, "")
		assert.ErrorIs(t, err, ErrEmptyAllocation)
	})

	t.Run("negative leg rejected", func(t *testing.T) {
		_, err := NewDiscount(tenantID, "TXN-20260115-0115", farmerID, "Mohan Lal",
			mustINR(t, "500"),
			discountLegs(t, map[uuid.UUID]string{buyerA: "1000", buyerB: "-500"}),
			testDay, "")
		assert.ErrorIs(t, err, ErrNegativeLeg)
	})

	t.Run("duplicate buyer rejected", func(t *testing.T) {
		_, err := NewDiscount(tenantID, "TXN-20260115-0116", farmerID, "Mohan Lal",
			mustINR(t, "1000"),
			[]DiscountLegInput{
				{BuyerID: buyerA, BuyerName: "Buyer", Amount: mustINR(t, "500")},
				{BuyerID: buyerA, BuyerName: "Buyer", Amount: mustINR(t, "500")},
			}, testDay, "")
		assert.ErrorIs(t, err, ErrDuplicateLegBuyer)
	})
}

func TestValidateDiscountAgainstDues(t *testing.T) {
	buyerA := uuid.New()
	buyerB := uuid.New()
	legs := []DiscountLegInput{
		{BuyerID: buyerA, Amount: mustINR(t, "1000")},
		{BuyerID: buyerB, Amount: mustINR(t, "500")},
	}
	dues := map[uuid.UUID]decimal.Decimal{
		buyerA: decimal.RequireFromString("9000"),
		buyerB: decimal.RequireFromString("9500"),
	}

	t.Run("within dues", func(t *testing.T) {
		err := ValidateDiscountAgainstDues(mustINR(t, "1500"), legs,
			decimal.RequireFromString("5000"), dues)
		assert.NoError(t, err)
	})

	t.Run("exceeds farmer due", func(t *testing.T) {
		err := ValidateDiscountAgainstDues(mustINR(t, "1500"), legs,
			decimal.RequireFromString("1499"), dues)
		assert.ErrorIs(t, err, ErrExceedsFarmerDue)
	})

	t.Run("leg exceeds buyer due", func(t *testing.T) {
		short := map[uuid.UUID]decimal.Decimal{
			buyerA: decimal.RequireFromString("999"),
			buyerB: decimal.RequireFromString("9500"),
		}
		err := ValidateDiscountAgainstDues(mustINR(t, "1500"), legs,
			decimal.RequireFromString("5000"), short)
		assert.ErrorIs(t, err, ErrExceedsBuyerDue)
	})

	t.Run("unknown buyer has zero due", func(t *testing.T) {
		err := ValidateDiscountAgainstDues(mustINR(t, "1500"), legs,
			decimal.RequireFromString("5000"), nil)
		assert.ErrorIs(t, err, ErrExceedsBuyerDue)
	})
}

func TestDiscountReversesWhole(t *testing.T) {
	tenantID := uuid.New()
	farmerID := uuid.New()
	buyerA := uuid.New()
	buyerB := uuid.New()

	discount, err := NewDiscount(tenantID, "TXN-20260115-0120", farmerID, "Mohan Lal",
		mustINR(t, "1500"),
		discountLegs(t, map[uuid.UUID]string{buyerA: "1000", buyerB: "500"}),
		testDay, "")
	require.NoError(t, err)

	require.NoError(t, discount.Reverse(time.Now()))
	assert.True(t, discount.Reversed())
	assert.Len(t, discount.Legs, 2, "legs survive reversal for audit")

	farmer := ComputeFarmerDue(farmerID, decimal.RequireFromString("5000"), nil,
		&Log{Discounts: []Discount{*discount}})
	assert.True(t, farmer.Due.Equal(decimal.RequireFromString("5000")),
		"reversed discount must not move any due")
}
