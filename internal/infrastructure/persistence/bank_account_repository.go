package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/coldstore/backend/internal/domain/ledger"
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/coldstore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBankAccountRepository implements ledger.BankAccountRepository using GORM
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// FindByIDForTenant finds a bank account by ID for a specific tenant
func (r *GormBankAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.BankAccount, error) {
	var model models.BankAccountModel
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

// FindAllForTenant finds all bank accounts for a tenant with filtering
func (r *GormBankAccountRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ledger.BankAccount, error) {
	var accountModels []models.BankAccountModel
	query := dbFor(ctx, r.db).Model(&models.BankAccountModel{}).
		Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("account_name ILIKE ?", "%"+filter.Search+"%")
	}

	sortField := ValidateSortField(filter.OrderBy, BankAccountSortFields, "account_name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]ledger.BankAccount, len(accountModels))
	for i := range accountModels {
		accounts[i] = *accountModels[i].ToDomain()
	}
	return accounts, nil
}

// FindByFiscalYear finds all bank accounts of a fiscal year, ordered by name
func (r *GormBankAccountRepository) FindByFiscalYear(ctx context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear) ([]ledger.BankAccount, error) {
	var accountModels []models.BankAccountModel
	if err := dbFor(ctx, r.db).
		Where("tenant_id = ? AND fiscal_year = ?", tenantID, int(fiscalYear)).
		Order("account_name ASC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]ledger.BankAccount, len(accountModels))
	for i := range accountModels {
		accounts[i] = *accountModels[i].ToDomain()
	}
	return accounts, nil
}

// Save creates or updates a bank account
func (r *GormBankAccountRepository) Save(ctx context.Context, account *ledger.BankAccount) error {
	var model models.BankAccountModel
	model.FromDomainBankAccount(account)
	return dbFor(ctx, r.db).Save(&model).Error
}

// CountForTenant counts bank accounts for a tenant
func (r *GormBankAccountRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := dbFor(ctx, r.db).Model(&models.BankAccountModel{}).
		Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		query = query.Where("account_name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a bank account. Refuses while any non-reversed cashbook
// entry still settles against the account.
func (r *GormBankAccountRepository) Delete(ctx context.Context, tenantID, accountID uuid.UUID) error {
	db := dbFor(ctx, r.db)

	var references int64
	if err := db.Model(&models.CashbookEntryModel{}).
		Where("tenant_id = ? AND is_reversed = ? AND (pool_account_id = ? OR to_pool_account_id = ?)",
			tenantID, false, accountID, accountID).
		Count(&references).Error; err != nil {
		return err
	}
	if references > 0 {
		return ledger.ErrAccountInUse
	}

	result := db.Delete(&models.BankAccountModel{}, "tenant_id = ? AND id = ?", tenantID, accountID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
