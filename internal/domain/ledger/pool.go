package ledger

import (
	"strings"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PoolKind discriminates where money sits: physical cash or a bank account.
type PoolKind string

const (
	PoolKindCash PoolKind = "CASH"
	PoolKindBank PoolKind = "BANK"
)

// Legacy pool type strings used by ledgers that predate multi-bank-account
// support. Entries carrying these resolve to synthetic bank pools keyed by
// the string itself.
const (
	LegacyPoolCash    = "cash"
	LegacyPoolLimit   = "limit"
	LegacyPoolCurrent = "current"
)

// PoolReference identifies a money pool. It is the canonical form of the two
// parallel schemas in the wild: an explicit bank account reference, or a bare
// legacy type string. Construct via CashPool, BankPool or ResolvePool only.
type PoolReference struct {
	Kind      PoolKind  `json:"kind"`
	AccountID uuid.UUID `json:"account_id,omitempty"`
	LegacyKey string    `json:"legacy_key,omitempty"`
}

// CashPool returns the cash-in-hand pool.
func CashPool() PoolReference {
	return PoolReference{Kind: PoolKindCash}
}

// BankPool returns the pool for an explicit bank account.
func BankPool(accountID uuid.UUID) PoolReference {
	return PoolReference{Kind: PoolKindBank, AccountID: accountID}
}

// ResolvePool translates the stored (accountID, legacyType) pair into a
// canonical PoolReference. This is the single place the legacy fallback rule
// lives: an explicit account reference wins, otherwise the legacy type string
// names the pool. Every aggregate that groups amounts by pool must go through
// here, or totals silently diverge between views.
func ResolvePool(accountID *uuid.UUID, legacyType string) PoolReference {
	if accountID != nil && *accountID != uuid.Nil {
		return BankPool(*accountID)
	}
	switch strings.ToLower(strings.TrimSpace(legacyType)) {
	case "", LegacyPoolCash:
		return CashPool()
	default:
		return PoolReference{Kind: PoolKindBank, LegacyKey: strings.ToLower(strings.TrimSpace(legacyType))}
	}
}

// Key returns the aggregation key for the pool: "cash" for cash-in-hand, the
// account UUID for explicit bank pools, or the legacy type string.
func (p PoolReference) Key() string {
	if p.Kind == PoolKindCash {
		return LegacyPoolCash
	}
	if p.AccountID != uuid.Nil {
		return p.AccountID.String()
	}
	return p.LegacyKey
}

// IsCash reports whether the pool is cash-in-hand.
func (p PoolReference) IsCash() bool {
	return p.Kind == PoolKindCash
}

// IsLegacy reports whether the pool is a legacy bank pool without an account id.
func (p PoolReference) IsLegacy() bool {
	return p.Kind == PoolKindBank && p.AccountID == uuid.Nil
}

// Equals reports whether two references name the same pool.
func (p PoolReference) Equals(other PoolReference) bool {
	return p.Key() == other.Key()
}

// Validate checks structural validity of the reference.
func (p PoolReference) Validate() error {
	switch p.Kind {
	case PoolKindCash:
		return nil
	case PoolKindBank:
		if p.AccountID == uuid.Nil && p.LegacyKey == "" {
			return shared.NewDomainError("INVALID_POOL", "Bank pool requires an account reference or legacy type")
		}
		return nil
	default:
		return shared.NewDomainError("INVALID_POOL", "Unknown pool kind")
	}
}
