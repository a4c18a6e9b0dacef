package ledger

import (
	"time"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType classifies a bank account.
type AccountType string

const (
	AccountTypeCurrent AccountType = "CURRENT"
	AccountTypeLimit   AccountType = "LIMIT"
	AccountTypeSavings AccountType = "SAVINGS"
)

// IsValid checks if the account type is known
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeCurrent, AccountTypeLimit, AccountTypeSavings:
		return true
	}
	return false
}

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// ErrAccountInUse rejects deleting a bank account that non-reversed entries
// still reference. History must stay resolvable.
var ErrAccountInUse = shared.NewDomainError("ACCOUNT_IN_USE", "Bank account is referenced by cashbook entries and cannot be deleted")

// BankAccount is a named bank account scoped to a fiscal year, with its own
// opening balance. Accounts are per-year so a new season starts from the
// balances the operator actually carried over.
type BankAccount struct {
	shared.TenantAggregateRoot
	AccountName    string                 `json:"account_name"`
	AccountType    AccountType            `json:"account_type"`
	FiscalYear     valueobject.FiscalYear `json:"fiscal_year"`
	OpeningBalance decimal.Decimal        `json:"opening_balance"`
}

// NewBankAccount creates a bank account for a fiscal year.
func NewBankAccount(
	tenantID uuid.UUID,
	accountName string,
	accountType AccountType,
	fiscalYear valueobject.FiscalYear,
	openingBalance valueobject.Money,
) (*BankAccount, error) {
	if accountName == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if len(accountName) > 100 {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot exceed 100 characters")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Unknown account type: "+string(accountType))
	}
	if !fiscalYear.IsValid() {
		return nil, shared.NewDomainError("INVALID_FISCAL_YEAR", "Fiscal year is out of range")
	}

	return &BankAccount{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		AccountName:         accountName,
		AccountType:         accountType,
		FiscalYear:          fiscalYear,
		OpeningBalance:      openingBalance.Amount(),
	}, nil
}

// Update changes the account's name and opening balance. The type and fiscal
// year are fixed at creation.
func (a *BankAccount) Update(accountName string, openingBalance valueobject.Money) error {
	if accountName == "" {
		return shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	a.AccountName = accountName
	a.OpeningBalance = openingBalance.Amount()
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Pool returns the pool reference for this account.
func (a *BankAccount) Pool() PoolReference {
	return BankPool(a.ID)
}
