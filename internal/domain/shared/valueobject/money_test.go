package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(100), INR)
	require.NoError(t, err)
	assert.Equal(t, INR, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))

	_, err = NewMoney(decimal.NewFromInt(100), "")
	assert.Error(t, err)
}

func TestNewMoneyINRFromString(t *testing.T) {
	m, err := NewMoneyINRFromString("1234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", m.StringFixed(2))

	_, err = NewMoneyINRFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyINRFromFloat(100.50)
	b := NewMoneyINRFromFloat(49.50)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "150.00", sum.StringFixed(2))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "51.00", diff.StringFixed(2))

	usd := Zero(USD)
	_, err = a.Add(usd)
	assert.Error(t, err)
	_, err = a.Subtract(usd)
	assert.Error(t, err)

	assert.Equal(t, "-100.50", a.Negate().StringFixed(2))
	assert.Equal(t, "100.50", a.Negate().Abs().StringFixed(2))
}

func TestMoneyComparisons(t *testing.T) {
	a := NewMoneyINRFromFloat(10)
	b := NewMoneyINRFromFloat(20)

	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, gt)

	gte, err := a.GreaterThanOrEqual(a)
	require.NoError(t, err)
	assert.True(t, gte)

	assert.True(t, a.Equals(NewMoneyINRFromFloat(10)))
	assert.False(t, a.Equals(b))

	_, err = a.LessThan(Zero(USD))
	assert.Error(t, err)
}

func TestMoneySigns(t *testing.T) {
	assert.True(t, ZeroINR().IsZero())
	assert.True(t, NewMoneyINRFromFloat(1).IsPositive())
	assert.True(t, NewMoneyINRFromFloat(-1).IsNegative())
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyINRFromFloat(250.75)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"250.75","currency":"INR"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("99.99"))
	assert.Equal(t, "99.99", m.StringFixed(2))
	assert.Equal(t, DefaultCurrency, m.Currency())

	var fromBytes Money
	require.NoError(t, fromBytes.Scan([]byte("12.00")))
	assert.Equal(t, "12.00", fromBytes.StringFixed(2))

	var fromNil Money
	require.NoError(t, fromNil.Scan(nil))
	assert.True(t, fromNil.IsZero())

	var bad Money
	assert.Error(t, bad.Scan(42))
}

func TestSplitProportionally(t *testing.T) {
	total := NewMoneyINRFromFloat(100)

	t.Run("remainder goes to the last share", func(t *testing.T) {
		parts, err := total.SplitProportionally([]decimal.Decimal{
			decimal.NewFromInt(1),
			decimal.NewFromInt(1),
			decimal.NewFromInt(1),
		})
		require.NoError(t, err)
		require.Len(t, parts, 3)
		assert.Equal(t, "33.33", parts[0].StringFixed(2))
		assert.Equal(t, "33.33", parts[1].StringFixed(2))
		assert.Equal(t, "33.34", parts[2].StringFixed(2))

		sum := ZeroINR()
		for _, p := range parts {
			sum = sum.MustAdd(p)
		}
		assert.True(t, sum.Equals(total))
	})

	t.Run("rejects empty and degenerate weights", func(t *testing.T) {
		_, err := total.SplitProportionally(nil)
		assert.Error(t, err)

		_, err = total.SplitProportionally([]decimal.Decimal{decimal.Zero})
		assert.Error(t, err)

		_, err = total.SplitProportionally([]decimal.Decimal{decimal.NewFromInt(-1)})
		assert.Error(t, err)
	})
}
