package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/coldstore/backend/internal/domain/ledger"
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BalanceCache caches derived balance sheets keyed by (tenant, fiscal year,
// log version). A write to the log bumps the version, so stale sheets are
// simply never looked up again; Invalidate exists for operational flushes.
type BalanceCache interface {
	Get(ctx context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear, version int64) (*ledger.BalanceSheet, bool)
	Put(ctx context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear, version int64, sheet *ledger.BalanceSheet)
	Invalidate(ctx context.Context, tenantID uuid.UUID)
}

// BalanceService is the read side for pool balances and the day book. Every
// answer is a fold over the log; the cache only short-circuits identical
// recomputations.
type BalanceService struct {
	cashbookRepo ledger.CashbookRepository
	accountRepo  ledger.BankAccountRepository
	openingRepo  ledger.OpeningBalanceRepository
	cache        BalanceCache
	startMonth   time.Month
}

// NewBalanceService creates a BalanceService.
func NewBalanceService(
	cashbookRepo ledger.CashbookRepository,
	accountRepo ledger.BankAccountRepository,
	openingRepo ledger.OpeningBalanceRepository,
	cache BalanceCache,
	startMonth time.Month,
) *BalanceService {
	return &BalanceService{
		cashbookRepo: cashbookRepo,
		accountRepo:  accountRepo,
		openingRepo:  openingRepo,
		cache:        cache,
		startMonth:   startMonth,
	}
}

// GetBalances returns the derived balance sheet for a fiscal year.
func (s *BalanceService) GetBalances(ctx context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear) (*ledger.BalanceSheet, error) {
	if !fiscalYear.IsValid() {
		return nil, shared.NewDomainError("INVALID_FISCAL_YEAR", "Fiscal year is out of range")
	}

	version, err := s.cashbookRepo.LogVersion(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if sheet, ok := s.cache.Get(ctx, tenantID, fiscalYear, version); ok {
		return sheet, nil
	}

	sheet, err := s.compute(ctx, tenantID, fiscalYear)
	if err != nil {
		return nil, err
	}
	s.cache.Put(ctx, tenantID, fiscalYear, version, sheet)
	return sheet, nil
}

// GetDayBook returns the day summary for one business date.
func (s *BalanceService) GetDayBook(ctx context.Context, tenantID uuid.UUID, day time.Time) (*ledger.DaySummary, error) {
	fiscalYear := valueobject.FiscalYearOf(day, s.startMonth)
	log, err := s.cashbookRepo.LoadLog(ctx, tenantID,
		fiscalYear.Start(s.startMonth), fiscalYear.End(s.startMonth))
	if err != nil {
		return nil, err
	}
	summary := ledger.ComputeDayBook(log, day)
	return &summary, nil
}

func (s *BalanceService) compute(ctx context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear) (*ledger.BalanceSheet, error) {
	opening, err := s.openingRepo.FindByFiscalYear(ctx, tenantID, fiscalYear)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		opening = ledger.ZeroOpeningBalance(tenantID, fiscalYear)
	}
	accounts, err := s.accountRepo.FindByFiscalYear(ctx, tenantID, fiscalYear)
	if err != nil {
		return nil, err
	}
	log, err := s.cashbookRepo.LoadLog(ctx, tenantID,
		fiscalYear.Start(s.startMonth), fiscalYear.End(s.startMonth))
	if err != nil {
		return nil, err
	}

	sheet := ledger.ComputeBalances(log, opening, accounts)
	return &sheet, nil
}
