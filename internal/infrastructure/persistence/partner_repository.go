package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/coldstore/backend/internal/domain/partner"
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBuyerRepository implements partner.BuyerRepository using GORM
type GormBuyerRepository struct {
	db *gorm.DB
}

// NewGormBuyerRepository creates a new GormBuyerRepository
func NewGormBuyerRepository(db *gorm.DB) *GormBuyerRepository {
	return &GormBuyerRepository{db: db}
}

// FindByIDForTenant finds a buyer by ID for a specific tenant
func (r *GormBuyerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Buyer, error) {
	var model models.BuyerModel
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

// FindAllForTenant finds all buyers for a tenant with filtering
func (r *GormBuyerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Buyer, error) {
	var buyerModels []models.BuyerModel
	query := applyPartnerFilter(dbFor(ctx, r.db).Model(&models.BuyerModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&buyerModels).Error; err != nil {
		return nil, err
	}
	buyers := make([]partner.Buyer, len(buyerModels))
	for i := range buyerModels {
		buyers[i] = *buyerModels[i].ToDomain()
	}
	return buyers, nil
}

// Save creates or updates a buyer
func (r *GormBuyerRepository) Save(ctx context.Context, buyer *partner.Buyer) error {
	var model models.BuyerModel
	model.FromDomainBuyer(buyer)
	return dbFor(ctx, r.db).Save(&model).Error
}

// CountForTenant counts buyers for a tenant
func (r *GormBuyerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := dbFor(ctx, r.db).Model(&models.BuyerModel{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(name ILIKE ? OR village ILIKE ?)", pattern, pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormFarmerRepository implements partner.FarmerRepository using GORM
type GormFarmerRepository struct {
	db *gorm.DB
}

// NewGormFarmerRepository creates a new GormFarmerRepository
func NewGormFarmerRepository(db *gorm.DB) *GormFarmerRepository {
	return &GormFarmerRepository{db: db}
}

// FindByIDForTenant finds a farmer by ID for a specific tenant
func (r *GormFarmerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Farmer, error) {
	var model models.FarmerModel
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

// FindAllForTenant finds all farmers for a tenant with filtering
func (r *GormFarmerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Farmer, error) {
	var farmerModels []models.FarmerModel
	query := applyPartnerFilter(dbFor(ctx, r.db).Model(&models.FarmerModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := query.Find(&farmerModels).Error; err != nil {
		return nil, err
	}
	farmers := make([]partner.Farmer, len(farmerModels))
	for i := range farmerModels {
		farmers[i] = *farmerModels[i].ToDomain()
	}
	return farmers, nil
}

// Save creates or updates a farmer
func (r *GormFarmerRepository) Save(ctx context.Context, farmer *partner.Farmer) error {
	var model models.FarmerModel
	model.FromDomainFarmer(farmer)
	return dbFor(ctx, r.db).Save(&model).Error
}

// CountForTenant counts farmers for a tenant
func (r *GormFarmerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := dbFor(ctx, r.db).Model(&models.FarmerModel{}).Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(name ILIKE ? OR village ILIKE ?)", pattern, pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyPartnerFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(name ILIKE ? OR village ILIKE ?)", pattern, pattern)
	}

	sortField := ValidateSortField(filter.OrderBy, PartnerSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}
	return query
}
