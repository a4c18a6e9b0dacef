package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolvePool(t *testing.T) {
	accountID := uuid.New()

	tests := []struct {
		name       string
		accountID  *uuid.UUID
		legacyType string
		wantKey    string
		wantCash   bool
	}{
		{"explicit account wins", &accountID, "limit", accountID.String(), false},
		{"empty falls back to cash", nil, "", "cash", true},
		{"cash string", nil, "cash", "cash", true},
		{"legacy limit", nil, "limit", "limit", false},
		{"legacy current", nil, "current", "current", false},
		{"case and whitespace normalized", nil, "  Limit ", "limit", false},
		{"nil uuid treated as absent", func() *uuid.UUID { id := uuid.Nil; return &id }(), "current", "current", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := ResolvePool(tt.accountID, tt.legacyType)
			assert.Equal(t, tt.wantKey, pool.Key())
			assert.Equal(t, tt.wantCash, pool.IsCash())
			assert.NoError(t, pool.Validate())
		})
	}
}

func TestPoolReferenceEquals(t *testing.T) {
	accountID := uuid.New()

	assert.True(t, CashPool().Equals(ResolvePool(nil, "cash")))
	assert.True(t, BankPool(accountID).Equals(ResolvePool(&accountID, "")))
	assert.True(t, ResolvePool(nil, "limit").Equals(ResolvePool(nil, "LIMIT")))
	assert.False(t, CashPool().Equals(BankPool(accountID)))
	assert.False(t, ResolvePool(nil, "limit").Equals(ResolvePool(nil, "current")))
}

func TestPoolReferenceValidate(t *testing.T) {
	assert.NoError(t, CashPool().Validate())
	assert.NoError(t, BankPool(uuid.New()).Validate())
	assert.Error(t, PoolReference{Kind: PoolKindBank}.Validate())
	assert.Error(t, PoolReference{Kind: "WALLET"}.Validate())
}
