package cache

import (
	"context"
	"testing"

	"github.com/coldstore/backend/internal/domain/ledger"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMemoryBalanceCache(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	fy := valueobject.FiscalYear(2025)

	sheet := &ledger.BalanceSheet{
		FiscalYear: fy,
		CashInHand: decimal.RequireFromString("10800"),
	}

	t.Run("miss on empty cache", func(t *testing.T) {
		c := NewMemoryBalanceCache()
		_, ok := c.Get(ctx, tenantID, fy, 1)
		assert.False(t, ok)
	})

	t.Run("hit only on matching version", func(t *testing.T) {
		c := NewMemoryBalanceCache()
		c.Put(ctx, tenantID, fy, 3, sheet)

		got, ok := c.Get(ctx, tenantID, fy, 3)
		assert.True(t, ok)
		assert.True(t, got.CashInHand.Equal(sheet.CashInHand))

		_, ok = c.Get(ctx, tenantID, fy, 4)
		assert.False(t, ok, "a log write must make the old sheet unreachable")
	})

	t.Run("put replaces older version", func(t *testing.T) {
		c := NewMemoryBalanceCache()
		c.Put(ctx, tenantID, fy, 3, sheet)

		newer := &ledger.BalanceSheet{
			FiscalYear: fy,
			CashInHand: decimal.RequireFromString("12000"),
		}
		c.Put(ctx, tenantID, fy, 4, newer)

		_, ok := c.Get(ctx, tenantID, fy, 3)
		assert.False(t, ok)
		got, ok := c.Get(ctx, tenantID, fy, 4)
		assert.True(t, ok)
		assert.True(t, got.CashInHand.Equal(newer.CashInHand))
	})

	t.Run("invalidate clears only the tenant", func(t *testing.T) {
		c := NewMemoryBalanceCache()
		otherTenant := uuid.New()
		c.Put(ctx, tenantID, fy, 1, sheet)
		c.Put(ctx, otherTenant, fy, 1, sheet)

		c.Invalidate(ctx, tenantID)

		_, ok := c.Get(ctx, tenantID, fy, 1)
		assert.False(t, ok)
		_, ok = c.Get(ctx, otherTenant, fy, 1)
		assert.True(t, ok)
	})

	t.Run("returned sheet is a copy", func(t *testing.T) {
		c := NewMemoryBalanceCache()
		c.Put(ctx, tenantID, fy, 1, sheet)

		got, ok := c.Get(ctx, tenantID, fy, 1)
		assert.True(t, ok)
		got.CashInHand = decimal.Zero

		again, ok := c.Get(ctx, tenantID, fy, 1)
		assert.True(t, ok)
		assert.True(t, again.CashInHand.Equal(sheet.CashInHand))
	})
}
