package partner

import (
	"github.com/coldstore/backend/internal/domain/shared"
)

// BuyerRepository persists buyers.
type BuyerRepository interface {
	shared.TenantRepository[Buyer]
}

// FarmerRepository persists farmers.
type FarmerRepository interface {
	shared.TenantRepository[Farmer]
}
