package inventory

import (
	"context"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleRepository persists sale records.
type SaleRepository interface {
	shared.TenantRepository[SaleRecord]
	FindByBuyer(ctx context.Context, tenantID, buyerID uuid.UUID) ([]SaleRecord, error)
	FindSelfSalesByFarmer(ctx context.Context, tenantID, farmerID uuid.UUID) ([]SaleRecord, error)
}
