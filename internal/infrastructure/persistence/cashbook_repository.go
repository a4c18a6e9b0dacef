package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coldstore/backend/internal/domain/ledger"
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCashbookRepository implements ledger.CashbookRepository using GORM. All
// entry kinds live in the cashbook_entries table; the kind column dispatches
// reconstruction.
type GormCashbookRepository struct {
	db *gorm.DB
}

// NewGormCashbookRepository creates a new GormCashbookRepository
func NewGormCashbookRepository(db *gorm.DB) *GormCashbookRepository {
	return &GormCashbookRepository{db: db}
}

// NextTransactionNumber issues the next date-scoped number for the tenant.
// The counter row is locked FOR UPDATE, so it must run inside a unit of work;
// concurrent writers for the same tenant and day serialize on the row.
func (r *GormCashbookRepository) NextTransactionNumber(ctx context.Context, tenantID uuid.UUID, day time.Time) (string, error) {
	db := dbFor(ctx, r.db)
	dayKey := day.Format("20060102")

	var counter models.TransactionCounterModel
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND day = ?", tenantID, dayKey).
		First(&counter).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		counter = models.TransactionCounterModel{TenantID: tenantID, Day: dayKey, Counter: 1}
		if err := db.Create(&counter).Error; err != nil {
			return "", fmt.Errorf("failed to create transaction counter: %w", err)
		}
	case err != nil:
		return "", err
	default:
		counter.Counter++
		if err := db.Save(&counter).Error; err != nil {
			return "", fmt.Errorf("failed to advance transaction counter: %w", err)
		}
	}

	return fmt.Sprintf("TXN-%s-%04d", dayKey, counter.Counter), nil
}

// SaveReceipt inserts a receipt entry
func (r *GormCashbookRepository) SaveReceipt(ctx context.Context, receipt *ledger.Receipt) error {
	return r.insertEntry(ctx, receipt)
}

// SaveExpense inserts an expense entry
func (r *GormCashbookRepository) SaveExpense(ctx context.Context, expense *ledger.Expense) error {
	return r.insertEntry(ctx, expense)
}

// SaveTransfer inserts an internal transfer entry
func (r *GormCashbookRepository) SaveTransfer(ctx context.Context, transfer *ledger.InternalTransfer) error {
	return r.insertEntry(ctx, transfer)
}

// SaveBuyerTransfer inserts a buyer-to-buyer due transfer entry
func (r *GormCashbookRepository) SaveBuyerTransfer(ctx context.Context, transfer *ledger.BuyerTransfer) error {
	return r.insertEntry(ctx, transfer)
}

// SaveFarmerTransfer inserts a farmer-to-buyer due transfer entry
func (r *GormCashbookRepository) SaveFarmerTransfer(ctx context.Context, transfer *ledger.FarmerToBuyerTransfer) error {
	return r.insertEntry(ctx, transfer)
}

// SaveDiscount inserts a discount entry together with its buyer legs
func (r *GormCashbookRepository) SaveDiscount(ctx context.Context, discount *ledger.Discount) error {
	return r.insertEntry(ctx, discount)
}

func (r *GormCashbookRepository) insertEntry(ctx context.Context, entry ledger.Entry) error {
	var model models.CashbookEntryModel
	model.FromDomainEntry(entry)
	return dbFor(ctx, r.db).Create(&model).Error
}

// FindEntry loads one entry as its concrete aggregate, legs included.
func (r *GormCashbookRepository) FindEntry(ctx context.Context, tenantID, entryID uuid.UUID) (ledger.Entry, error) {
	var model models.CashbookEntryModel
	if err := dbFor(ctx, r.db).
		Preload("Legs").
		Where("tenant_id = ? AND id = ?", tenantID, entryID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrEntryNotFound
		}
		return nil, err
	}
	entry := model.ToDomainEntry()
	if entry == nil {
		return nil, fmt.Errorf("unknown entry kind %q for entry %s", model.Kind, entryID)
	}
	return entry, nil
}

// SaveEntry persists state changes of a loaded entry with optimistic locking.
// Entries are immutable after creation except reversal and the receipt due
// snapshot, so only those columns are written.
func (r *GormCashbookRepository) SaveEntry(ctx context.Context, entry ledger.Entry) error {
	var model models.CashbookEntryModel
	model.FromDomainEntry(entry)

	expectedVersion := entry.GetVersion() - 1
	result := dbFor(ctx, r.db).Model(&models.CashbookEntryModel{}).
		Where("tenant_id = ? AND id = ? AND version = ?", entry.Tenant(), entry.GetID(), expectedVersion).
		Updates(map[string]any{
			"is_reversed":       model.IsReversed,
			"reversed_at":       model.ReversedAt,
			"due_balance_after": model.DueBalanceAfter,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// LoadLog loads every entry of the tenant within [from, to), reversed
// included, bucketed by kind in log order.
func (r *GormCashbookRepository) LoadLog(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*ledger.Log, error) {
	var entryModels []models.CashbookEntryModel
	if err := dbFor(ctx, r.db).
		Preload("Legs").
		Where("tenant_id = ? AND occurred_at >= ? AND occurred_at < ?", tenantID, from, to).
		Order("occurred_at ASC, transaction_number ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	log := &ledger.Log{}
	for i := range entryModels {
		switch e := entryModels[i].ToDomainEntry().(type) {
		case *ledger.Receipt:
			log.Receipts = append(log.Receipts, *e)
		case *ledger.Expense:
			log.Expenses = append(log.Expenses, *e)
		case *ledger.InternalTransfer:
			log.Transfers = append(log.Transfers, *e)
		case *ledger.BuyerTransfer:
			log.BuyerTransfers = append(log.BuyerTransfers, *e)
		case *ledger.FarmerToBuyerTransfer:
			log.FarmerTransfers = append(log.FarmerTransfers, *e)
		case *ledger.Discount:
			log.Discounts = append(log.Discounts, *e)
		}
	}
	return log, nil
}

// ListEntries returns flattened history rows plus the unpaged total.
func (r *GormCashbookRepository) ListEntries(ctx context.Context, tenantID uuid.UUID, filter ledger.EntryFilter) ([]ledger.EntrySummary, int64, error) {
	db := dbFor(ctx, r.db)

	var total int64
	countQuery := applyEntryFilter(db.Model(&models.CashbookEntryModel{}).Where("tenant_id = ?", tenantID), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := applyEntryFilter(db.Model(&models.CashbookEntryModel{}).Where("tenant_id = ?", tenantID), filter).
		Order("occurred_at DESC, transaction_number DESC")
	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	var entryModels []models.CashbookEntryModel
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	summaries := make([]ledger.EntrySummary, len(entryModels))
	for i := range entryModels {
		summaries[i] = entryModels[i].ToSummary()
	}
	return summaries, total, nil
}

// FindSummary returns one entry as a flattened history row.
func (r *GormCashbookRepository) FindSummary(ctx context.Context, tenantID, entryID uuid.UUID) (*ledger.EntrySummary, error) {
	var model models.CashbookEntryModel
	if err := dbFor(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, entryID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrEntryNotFound
		}
		return nil, err
	}
	summary := model.ToSummary()
	return &summary, nil
}

// LogVersion folds row count and version sum into one value. Inserts grow the
// count, reversals bump a version, so any change to the log changes it.
func (r *GormCashbookRepository) LogVersion(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var result struct {
		Version int64
	}
	if err := dbFor(ctx, r.db).Model(&models.CashbookEntryModel{}).
		Select("COUNT(*) + COALESCE(SUM(version), 0) as version").
		Where("tenant_id = ?", tenantID).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Version, nil
}

func applyEntryFilter(query *gorm.DB, filter ledger.EntryFilter) *gorm.DB {
	if filter.Kind != nil {
		query = query.Where("kind = ?", filter.Kind.String())
	}
	if filter.FromDate != nil {
		query = query.Where("occurred_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("occurred_at < ?", *filter.ToDate)
	}
	if filter.CounterpartyID != nil {
		id := *filter.CounterpartyID
		query = query.Where(
			"(counterparty_id = ? OR from_buyer_id = ? OR to_buyer_id = ? OR farmer_id = ?)",
			id, id, id, id,
		)
	}
	if filter.PoolKey != nil {
		if accountID, err := uuid.Parse(*filter.PoolKey); err == nil {
			query = query.Where("(pool_account_id = ? OR to_pool_account_id = ?)", accountID, accountID)
		} else {
			query = query.Where("(pool_legacy_type = ? OR to_pool_legacy_type = ?)", *filter.PoolKey, *filter.PoolKey)
		}
	}
	if filter.ExcludeReversed {
		query = query.Where("is_reversed = ?", false)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"(transaction_number ILIKE ? OR counterparty_name ILIKE ? OR receiver_name ILIKE ? OR farmer_name ILIKE ? OR remarks ILIKE ?)",
			pattern, pattern, pattern, pattern, pattern,
		)
	}
	return query
}
