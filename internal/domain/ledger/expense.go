package ledger

import (
	"time"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ExpenseCategory classifies outflows for the day book and balance views.
type ExpenseCategory string

const (
	ExpenseSalary          ExpenseCategory = "SALARY"
	ExpenseLabour          ExpenseCategory = "LABOUR"
	ExpenseGradingCharges  ExpenseCategory = "GRADING_CHARGES"
	ExpenseGeneral         ExpenseCategory = "GENERAL_EXPENSES"
	ExpenseCostOfGoodsSold ExpenseCategory = "COST_OF_GOODS_SOLD"
	ExpenseTDS             ExpenseCategory = "TAX_DEDUCTED_AT_SOURCE"
)

// IsValid checks if the category is known
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseSalary, ExpenseLabour, ExpenseGradingCharges,
		ExpenseGeneral, ExpenseCostOfGoodsSold, ExpenseTDS:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// Expense records money flowing out of the business.
type Expense struct {
	EntryBase
	Category     ExpenseCategory `json:"category"`
	ReceiverName string          `json:"receiver_name,omitempty"`
	Payment      PoolReference   `json:"payment"`
}

// NewExpense creates an expense entry.
func NewExpense(
	tenantID uuid.UUID,
	txnNumber string,
	category ExpenseCategory,
	receiverName string,
	amount valueobject.Money,
	payment PoolReference,
	occurredAt time.Time,
	remarks string,
) (*Expense, error) {
	base, err := newEntryBase(tenantID, txnNumber, amount, occurredAt, remarks)
	if err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_EXPENSE_CATEGORY", "Unknown expense category: "+string(category))
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	expense := &Expense{
		EntryBase:    base,
		Category:     category,
		ReceiverName: receiverName,
		Payment:      payment,
	}
	expense.AddDomainEvent(NewEntryRecordedEvent(expense, EntryKindExpense))
	return expense, nil
}

// Kind returns the entry kind.
func (e *Expense) Kind() EntryKind {
	return EntryKindExpense
}

// Reverse marks the expense as reversed.
func (e *Expense) Reverse(now time.Time) error {
	if err := e.markReversed(now); err != nil {
		return err
	}
	e.AddDomainEvent(NewEntryReversedEvent(e, EntryKindExpense))
	return nil
}
