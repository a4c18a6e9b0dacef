package ledger

import (
	"time"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpeningBalance seeds a fiscal year's pools before any entries. CashInHand
// seeds the cash pool; LegacyLimit and LegacyCurrent seed the synthetic pools
// that pre-multi-account entries still settle into. One record per tenant per
// fiscal year.
type OpeningBalance struct {
	shared.TenantAggregateRoot
	FiscalYear    valueobject.FiscalYear `json:"fiscal_year"`
	CashInHand    decimal.Decimal        `json:"cash_in_hand"`
	LegacyLimit   decimal.Decimal        `json:"legacy_limit"`
	LegacyCurrent decimal.Decimal        `json:"legacy_current"`
}

// NewOpeningBalance creates the opening balance record for a fiscal year.
func NewOpeningBalance(
	tenantID uuid.UUID,
	fiscalYear valueobject.FiscalYear,
	cashInHand, legacyLimit, legacyCurrent valueobject.Money,
) (*OpeningBalance, error) {
	if !fiscalYear.IsValid() {
		return nil, shared.NewDomainError("INVALID_FISCAL_YEAR", "Fiscal year is out of range")
	}
	return &OpeningBalance{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FiscalYear:          fiscalYear,
		CashInHand:          cashInHand.Amount(),
		LegacyLimit:         legacyLimit.Amount(),
		LegacyCurrent:       legacyCurrent.Amount(),
	}, nil
}

// Update replaces the opening amounts.
func (o *OpeningBalance) Update(cashInHand, legacyLimit, legacyCurrent valueobject.Money) {
	o.CashInHand = cashInHand.Amount()
	o.LegacyLimit = legacyLimit.Amount()
	o.LegacyCurrent = legacyCurrent.Amount()
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// Seed returns the opening amounts keyed by pool, the shape the balance
// calculator consumes.
func (o *OpeningBalance) Seed() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		LegacyPoolCash:    o.CashInHand,
		LegacyPoolLimit:   o.LegacyLimit,
		LegacyPoolCurrent: o.LegacyCurrent,
	}
}

// ZeroOpeningBalance returns an all-zero opening for tenants that have not
// configured one yet.
func ZeroOpeningBalance(tenantID uuid.UUID, fiscalYear valueobject.FiscalYear) *OpeningBalance {
	return &OpeningBalance{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FiscalYear:          fiscalYear,
		CashInHand:          decimal.Zero,
		LegacyLimit:         decimal.Zero,
		LegacyCurrent:       decimal.Zero,
	}
}
