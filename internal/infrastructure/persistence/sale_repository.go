package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/coldstore/backend/internal/domain/inventory"
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleRepository implements inventory.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByIDForTenant finds a sale record by ID for a specific tenant
func (r *GormSaleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.SaleRecord, error) {
	var model models.SaleRecordModel
	if err := dbFor(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all sale records for a tenant with filtering
func (r *GormSaleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.SaleRecord, error) {
	var saleModels []models.SaleRecordModel
	query := dbFor(ctx, r.db).Model(&models.SaleRecordModel{}).
		Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(sale_number ILIKE ? OR buyer_name ILIKE ? OR farmer_name ILIKE ?)", pattern, pattern, pattern)
	}

	sortField := ValidateSortField(filter.OrderBy, SaleSortFields, "sale_date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}
	return toDomainSales(saleModels), nil
}

// FindByBuyer finds all sales where the buyer currently owes, newest first
func (r *GormSaleRepository) FindByBuyer(ctx context.Context, tenantID, buyerID uuid.UUID) ([]inventory.SaleRecord, error) {
	var saleModels []models.SaleRecordModel
	if err := dbFor(ctx, r.db).
		Where("tenant_id = ? AND buyer_id = ?", tenantID, buyerID).
		Order("sale_date DESC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}
	return toDomainSales(saleModels), nil
}

// FindSelfSalesByFarmer finds the farmer's own buy-back sales, newest first
func (r *GormSaleRepository) FindSelfSalesByFarmer(ctx context.Context, tenantID, farmerID uuid.UUID) ([]inventory.SaleRecord, error) {
	var saleModels []models.SaleRecordModel
	if err := dbFor(ctx, r.db).
		Where("tenant_id = ? AND farmer_id = ? AND self_sale = ?", tenantID, farmerID, true).
		Order("sale_date DESC").
		Find(&saleModels).Error; err != nil {
		return nil, err
	}
	return toDomainSales(saleModels), nil
}

// Save creates or updates a sale record
func (r *GormSaleRepository) Save(ctx context.Context, sale *inventory.SaleRecord) error {
	var model models.SaleRecordModel
	model.FromDomainSaleRecord(sale)
	return dbFor(ctx, r.db).Save(&model).Error
}

// CountForTenant counts sale records for a tenant
func (r *GormSaleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := dbFor(ctx, r.db).Model(&models.SaleRecordModel{}).
		Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(sale_number ILIKE ? OR buyer_name ILIKE ? OR farmer_name ILIKE ?)", pattern, pattern, pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toDomainSales(saleModels []models.SaleRecordModel) []inventory.SaleRecord {
	sales := make([]inventory.SaleRecord, len(saleModels))
	for i := range saleModels {
		sales[i] = *saleModels[i].ToDomain()
	}
	return sales
}
