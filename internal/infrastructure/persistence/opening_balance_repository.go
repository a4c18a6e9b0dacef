package persistence

import (
	"context"
	"errors"

	"github.com/coldstore/backend/internal/domain/ledger"
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/coldstore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOpeningBalanceRepository implements ledger.OpeningBalanceRepository using GORM
type GormOpeningBalanceRepository struct {
	db *gorm.DB
}

// NewGormOpeningBalanceRepository creates a new GormOpeningBalanceRepository
func NewGormOpeningBalanceRepository(db *gorm.DB) *GormOpeningBalanceRepository {
	return &GormOpeningBalanceRepository{db: db}
}

// FindByFiscalYear finds the opening balance record for a fiscal year
func (r *GormOpeningBalanceRepository) FindByFiscalYear(ctx context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear) (*ledger.OpeningBalance, error) {
	var model models.OpeningBalanceModel
	if err := dbFor(ctx, r.db).
		Where("tenant_id = ? AND fiscal_year = ?", tenantID, int(fiscalYear)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates the opening balance record
func (r *GormOpeningBalanceRepository) Save(ctx context.Context, balance *ledger.OpeningBalance) error {
	var model models.OpeningBalanceModel
	model.FromDomainOpeningBalance(balance)
	return dbFor(ctx, r.db).Save(&model).Error
}
