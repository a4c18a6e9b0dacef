package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/coldstore/backend/internal/domain/ledger"
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService manages the per-fiscal-year ledger configuration: bank
// accounts and opening balances.
type AccountService struct {
	accountRepo ledger.BankAccountRepository
	openingRepo ledger.OpeningBalanceRepository
}

// NewAccountService creates an AccountService.
func NewAccountService(
	accountRepo ledger.BankAccountRepository,
	openingRepo ledger.OpeningBalanceRepository,
) *AccountService {
	return &AccountService{accountRepo: accountRepo, openingRepo: openingRepo}
}

// CreateBankAccountRequest represents a request to create a bank account
type CreateBankAccountRequest struct {
	AccountName    string          `json:"account_name" binding:"required"`
	AccountType    string          `json:"account_type" binding:"required"`
	FiscalYear     int             `json:"fiscal_year" binding:"required"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// UpdateBankAccountRequest represents a request to update a bank account
type UpdateBankAccountRequest struct {
	AccountName    string          `json:"account_name" binding:"required"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// BankAccountResponse represents a bank account in API responses
type BankAccountResponse struct {
	ID             uuid.UUID       `json:"id"`
	AccountName    string          `json:"account_name"`
	AccountType    string          `json:"account_type"`
	FiscalYear     int             `json:"fiscal_year"`
	FiscalYearName string          `json:"fiscal_year_name"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// OpeningBalanceRequest represents a request to set a year's opening balances
type OpeningBalanceRequest struct {
	CashInHand    decimal.Decimal `json:"cash_in_hand"`
	LegacyLimit   decimal.Decimal `json:"legacy_limit"`
	LegacyCurrent decimal.Decimal `json:"legacy_current"`
}

// OpeningBalanceResponse represents a year's opening balances
type OpeningBalanceResponse struct {
	FiscalYear    int             `json:"fiscal_year"`
	CashInHand    decimal.Decimal `json:"cash_in_hand"`
	LegacyLimit   decimal.Decimal `json:"legacy_limit"`
	LegacyCurrent decimal.Decimal `json:"legacy_current"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func accountToResponse(account *ledger.BankAccount) *BankAccountResponse {
	return &BankAccountResponse{
		ID:             account.ID,
		AccountName:    account.AccountName,
		AccountType:    account.AccountType.String(),
		FiscalYear:     int(account.FiscalYear),
		FiscalYearName: account.FiscalYear.Label(),
		OpeningBalance: account.OpeningBalance,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}
}

// CreateBankAccount creates a bank account for a fiscal year.
func (s *AccountService) CreateBankAccount(ctx context.Context, tenantID uuid.UUID, req CreateBankAccountRequest) (*BankAccountResponse, error) {
	account, err := ledger.NewBankAccount(tenantID, req.AccountName,
		ledger.AccountType(req.AccountType), valueobject.FiscalYear(req.FiscalYear),
		valueobject.NewMoneyINR(req.OpeningBalance))
	if err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return accountToResponse(account), nil
}

// UpdateBankAccount updates an account's name and opening balance.
func (s *AccountService) UpdateBankAccount(ctx context.Context, tenantID, accountID uuid.UUID, req UpdateBankAccountRequest) (*BankAccountResponse, error) {
	account, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	if err := account.Update(req.AccountName, valueobject.NewMoneyINR(req.OpeningBalance)); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return accountToResponse(account), nil
}

// DeleteBankAccount removes an account no entry references.
func (s *AccountService) DeleteBankAccount(ctx context.Context, tenantID, accountID uuid.UUID) error {
	return s.accountRepo.Delete(ctx, tenantID, accountID)
}

// ListBankAccounts lists a fiscal year's accounts.
func (s *AccountService) ListBankAccounts(ctx context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear) ([]BankAccountResponse, error) {
	accounts, err := s.accountRepo.FindByFiscalYear(ctx, tenantID, fiscalYear)
	if err != nil {
		return nil, err
	}
	responses := make([]BankAccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, *accountToResponse(&accounts[i]))
	}
	return responses, nil
}

// GetOpeningBalance returns a year's opening balances, zeros if unset.
func (s *AccountService) GetOpeningBalance(ctx context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear) (*OpeningBalanceResponse, error) {
	opening, err := s.openingRepo.FindByFiscalYear(ctx, tenantID, fiscalYear)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		opening = ledger.ZeroOpeningBalance(tenantID, fiscalYear)
	}
	return &OpeningBalanceResponse{
		FiscalYear:    int(opening.FiscalYear),
		CashInHand:    opening.CashInHand,
		LegacyLimit:   opening.LegacyLimit,
		LegacyCurrent: opening.LegacyCurrent,
		UpdatedAt:     opening.UpdatedAt,
	}, nil
}

// SetOpeningBalance creates or replaces a year's opening balances.
func (s *AccountService) SetOpeningBalance(ctx context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear, req OpeningBalanceRequest) (*OpeningBalanceResponse, error) {
	opening, err := s.openingRepo.FindByFiscalYear(ctx, tenantID, fiscalYear)
	switch {
	case err == nil:
		opening.Update(
			valueobject.NewMoneyINR(req.CashInHand),
			valueobject.NewMoneyINR(req.LegacyLimit),
			valueobject.NewMoneyINR(req.LegacyCurrent))
	case errors.Is(err, shared.ErrNotFound):
		opening, err = ledger.NewOpeningBalance(tenantID, fiscalYear,
			valueobject.NewMoneyINR(req.CashInHand),
			valueobject.NewMoneyINR(req.LegacyLimit),
			valueobject.NewMoneyINR(req.LegacyCurrent))
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.openingRepo.Save(ctx, opening); err != nil {
		return nil, err
	}
	return &OpeningBalanceResponse{
		FiscalYear:    int(opening.FiscalYear),
		CashInHand:    opening.CashInHand,
		LegacyLimit:   opening.LegacyLimit,
		LegacyCurrent: opening.LegacyCurrent,
		UpdatedAt:     opening.UpdatedAt,
	}, nil
}
