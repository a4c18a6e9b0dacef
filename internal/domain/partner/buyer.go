package partner

import (
	"time"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Buyer is a trader who purchases stored goods on credit. The directory holds
// identity only; what a buyer owes is always derived from the cashbook.
type Buyer struct {
	shared.TenantAggregateRoot
	Name    string `json:"name"`
	Village string `json:"village,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// NewBuyer creates a buyer.
func NewBuyer(tenantID uuid.UUID, name, village, phone string) (*Buyer, error) {
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}
	return &Buyer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Village:             village,
		Phone:               phone,
	}, nil
}

// Update changes the buyer's directory details.
func (b *Buyer) Update(name, village, phone string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}
	b.Name = name
	b.Village = village
	b.Phone = phone
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

func validatePartnerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
