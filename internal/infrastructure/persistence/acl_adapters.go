package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/coldstore/backend/internal/domain/ledger/acl"
	"github.com/coldstore/backend/internal/domain/partner"
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalesACL adapts the sales book to the ledger's read model and its single
// write path. Implements acl.SaleReader and acl.SaleDueMutator.
type SalesACL struct {
	db *gorm.DB
}

// NewSalesACL creates a new SalesACL
func NewSalesACL(db *gorm.DB) *SalesACL {
	return &SalesACL{db: db}
}

// FindByID loads one sale as the ledger's read model
func (a *SalesACL) FindByID(ctx context.Context, tenantID, saleID uuid.UUID) (*acl.SaleRecord, error) {
	var model models.SaleRecordModel
	if err := dbFor(ctx, a.db).
		Where("tenant_id = ? AND id = ?", tenantID, saleID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	record := toACLSale(&model)
	return &record, nil
}

// ListByBuyer lists the buyer's sales as ledger read models
func (a *SalesACL) ListByBuyer(ctx context.Context, tenantID, buyerID uuid.UUID) ([]acl.SaleRecord, error) {
	var saleModels []models.SaleRecordModel
	if err := dbFor(ctx, a.db).
		Where("tenant_id = ? AND buyer_id = ?", tenantID, buyerID).
		Order("sale_date ASC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}
	return toACLSales(saleModels), nil
}

// ListSelfSalesByFarmer lists the farmer's buy-back sales as ledger read models
func (a *SalesACL) ListSelfSalesByFarmer(ctx context.Context, tenantID, farmerID uuid.UUID) ([]acl.SaleRecord, error) {
	var saleModels []models.SaleRecordModel
	if err := dbFor(ctx, a.db).
		Where("tenant_id = ? AND farmer_id = ? AND self_sale = ?", tenantID, farmerID, true).
		Order("sale_date ASC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}
	return toACLSales(saleModels), nil
}

// ListAll lists every sale of the tenant, for bulk due views
func (a *SalesACL) ListAll(ctx context.Context, tenantID uuid.UUID) ([]acl.SaleRecord, error) {
	var saleModels []models.SaleRecordModel
	if err := dbFor(ctx, a.db).
		Where("tenant_id = ?", tenantID).
		Order("sale_date ASC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}
	return toACLSales(saleModels), nil
}

// ApplyOutstanding writes the sale's stored outstanding projection. The value
// was derived from the log by the caller inside the same transaction.
func (a *SalesACL) ApplyOutstanding(ctx context.Context, tenantID, saleID uuid.UUID, outstanding decimal.Decimal) error {
	result := dbFor(ctx, a.db).Model(&models.SaleRecordModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, saleID).
		Updates(map[string]any{
			"outstanding_amount": outstanding,
			"version":            gorm.Expr("version + 1"),
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toACLSale(m *models.SaleRecordModel) acl.SaleRecord {
	return acl.SaleRecord{
		ID:                m.ID,
		SaleNumber:        m.SaleNumber,
		BuyerID:           m.BuyerID,
		BuyerName:         m.BuyerName,
		FarmerID:          m.FarmerID,
		FarmerName:        m.FarmerName,
		SelfSale:          m.SelfSale,
		TotalAmount:       m.TotalAmount,
		OutstandingAmount: m.OutstandingAmount,
	}
}

func toACLSales(saleModels []models.SaleRecordModel) []acl.SaleRecord {
	sales := make([]acl.SaleRecord, len(saleModels))
	for i := range saleModels {
		sales[i] = toACLSale(&saleModels[i])
	}
	return sales
}

// DirectoryACL adapts the partner directory to the ledger's counterparty
// lookups. Implements acl.DirectoryReader and acl.FarmerReceivablesReader.
type DirectoryACL struct {
	buyers  partner.BuyerRepository
	farmers partner.FarmerRepository
}

// NewDirectoryACL creates a new DirectoryACL
func NewDirectoryACL(buyers partner.BuyerRepository, farmers partner.FarmerRepository) *DirectoryACL {
	return &DirectoryACL{buyers: buyers, farmers: farmers}
}

// BuyerByID resolves a buyer to a partner reference
func (a *DirectoryACL) BuyerByID(ctx context.Context, tenantID, buyerID uuid.UUID) (*acl.PartnerRef, error) {
	buyer, err := a.buyers.FindByIDForTenant(ctx, tenantID, buyerID)
	if err != nil {
		return nil, err
	}
	return &acl.PartnerRef{ID: buyer.ID, Name: buyer.Name, Village: buyer.Village}, nil
}

// FarmerByID resolves a farmer to a partner reference
func (a *DirectoryACL) FarmerByID(ctx context.Context, tenantID, farmerID uuid.UUID) (*acl.PartnerRef, error) {
	farmer, err := a.farmers.FindByIDForTenant(ctx, tenantID, farmerID)
	if err != nil {
		return nil, err
	}
	return &acl.PartnerRef{ID: farmer.ID, Name: farmer.Name, Village: farmer.Village}, nil
}

// StandingReceivables returns the farmer's standing storage receivables
func (a *DirectoryACL) StandingReceivables(ctx context.Context, tenantID, farmerID uuid.UUID) (decimal.Decimal, error) {
	farmer, err := a.farmers.FindByIDForTenant(ctx, tenantID, farmerID)
	if err != nil {
		return decimal.Zero, err
	}
	return farmer.Receivables, nil
}
