package partner

import (
	"time"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Farmer is a grower who stores goods with the cold storage. Receivables is
// the standing storage-charge balance carried outside the cashbook; it feeds
// the farmer due view as an input, never as a substitute for recomputation.
type Farmer struct {
	shared.TenantAggregateRoot
	Name        string          `json:"name"`
	Village     string          `json:"village,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Receivables decimal.Decimal `json:"receivables"`
}

// NewFarmer creates a farmer.
func NewFarmer(tenantID uuid.UUID, name, village, phone string, receivables decimal.Decimal) (*Farmer, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}
	if receivables.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RECEIVABLES", "Receivables cannot be negative")
	}
	return &Farmer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Village:             village,
		Phone:               phone,
		Receivables:         receivables,
	}, nil
}

// Update changes the farmer's directory details.
func (f *Farmer) Update(name, village, phone string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	f.Name = name
	f.Village = village
	f.Phone = phone
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
	return nil
}

// SetReceivables replaces the standing receivables balance. Used when storage
// charges are assessed outside the cashbook.
func (f *Farmer) SetReceivables(receivables decimal.Decimal) error {
	if receivables.IsNegative() {
		return shared.NewDomainError("INVALID_RECEIVABLES", "Receivables cannot be negative")
	}
	f.Receivables = receivables
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
	return nil
}
