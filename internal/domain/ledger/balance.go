package ledger

import (
	"sort"
	"time"

	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Log is the in-memory event log for one tenant and fiscal year: every entry
// of every kind, reversed ones included. Balance and due views are pure
// functions over a Log; nothing here touches storage.
type Log struct {
	Receipts        []Receipt
	Expenses        []Expense
	Transfers       []InternalTransfer
	BuyerTransfers  []BuyerTransfer
	FarmerTransfers []FarmerToBuyerTransfer
	Discounts       []Discount
}

// Len returns the total number of entries in the log.
func (l *Log) Len() int {
	return len(l.Receipts) + len(l.Expenses) + len(l.Transfers) +
		len(l.BuyerTransfers) + len(l.FarmerTransfers) + len(l.Discounts)
}

// PoolBalance is one pool's derived balance. AccountID is nil-valued for the
// cash pool and for legacy pools.
type PoolBalance struct {
	Key         string          `json:"key"`
	AccountID   uuid.UUID       `json:"account_id,omitempty"`
	AccountName string          `json:"account_name,omitempty"`
	AccountType AccountType     `json:"account_type,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// BalanceSheet is the derived balance view for a fiscal year. It is never
// stored: any caller holding one is holding a snapshot of a recomputation.
type BalanceSheet struct {
	FiscalYear        valueobject.FiscalYear              `json:"fiscal_year"`
	CashInHand        decimal.Decimal                     `json:"cash_in_hand"`
	BankPools         []PoolBalance                       `json:"bank_pools"`
	TotalReceipts     decimal.Decimal                     `json:"total_receipts"`
	TotalExpenses     decimal.Decimal                     `json:"total_expenses"`
	ExpenseByCategory map[ExpenseCategory]decimal.Decimal `json:"expense_by_category"`
}

// Total returns cash plus every bank pool.
func (b BalanceSheet) Total() decimal.Decimal {
	total := b.CashInHand
	for _, p := range b.BankPools {
		total = total.Add(p.Amount)
	}
	return total
}

// ComputeBalances folds the full log over the opening balances. Reversed
// entries contribute nothing. Receipts add to their settlement pool, expenses
// subtract from their payment pool, internal transfers move between pools; the
// due-shuffling kinds (buyer transfers, farmer transfers, discounts) never
// touch pool balances.
func ComputeBalances(log *Log, opening *OpeningBalance, accounts []BankAccount) BalanceSheet {
	pools := opening.Seed()
	for _, a := range accounts {
		pools[a.Pool().Key()] = pools[a.Pool().Key()].Add(a.OpeningBalance)
	}

	totalReceipts := decimal.Zero
	for _, r := range log.Receipts {
		if r.IsReversed {
			continue
		}
		key := r.Settlement.Key()
		pools[key] = pools[key].Add(r.Amount)
		totalReceipts = totalReceipts.Add(r.Amount)
	}

	totalExpenses := decimal.Zero
	byCategory := make(map[ExpenseCategory]decimal.Decimal)
	for _, e := range log.Expenses {
		if e.IsReversed {
			continue
		}
		key := e.Payment.Key()
		pools[key] = pools[key].Sub(e.Amount)
		totalExpenses = totalExpenses.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}

	for _, t := range log.Transfers {
		if t.IsReversed {
			continue
		}
		fromKey := t.FromPool.Key()
		toKey := t.ToPool.Key()
		pools[fromKey] = pools[fromKey].Sub(t.Amount)
		pools[toKey] = pools[toKey].Add(t.Amount)
	}

	sheet := BalanceSheet{
		FiscalYear:        opening.FiscalYear,
		CashInHand:        pools[LegacyPoolCash],
		TotalReceipts:     totalReceipts,
		TotalExpenses:     totalExpenses,
		ExpenseByCategory: byCategory,
	}
	delete(pools, LegacyPoolCash)

	// Named accounts first, in the order given, then whatever keys remain
	// (legacy pools and references to since-deleted accounts), sorted for a
	// stable view.
	for _, a := range accounts {
		key := a.Pool().Key()
		sheet.BankPools = append(sheet.BankPools, PoolBalance{
			Key:         key,
			AccountID:   a.ID,
			AccountName: a.AccountName,
			AccountType: a.AccountType,
			Amount:      pools[key],
		})
		delete(pools, key)
	}
	rest := make([]string, 0, len(pools))
	for key := range pools {
		rest = append(rest, key)
	}
	sort.Strings(rest)
	for _, key := range rest {
		sheet.BankPools = append(sheet.BankPools, PoolBalance{Key: key, Amount: pools[key]})
	}
	return sheet
}

// DaySummary is the day book: every pool movement on one business date.
type DaySummary struct {
	Date              time.Time                           `json:"date"`
	TotalReceipts     decimal.Decimal                     `json:"total_receipts"`
	TotalExpenses     decimal.Decimal                     `json:"total_expenses"`
	CashIn            decimal.Decimal                     `json:"cash_in"`
	CashOut           decimal.Decimal                     `json:"cash_out"`
	NetCash           decimal.Decimal                     `json:"net_cash"`
	ExpenseByCategory map[ExpenseCategory]decimal.Decimal `json:"expense_by_category"`
	EntryCount        int                                 `json:"entry_count"`
}

func sameBusinessDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ComputeDayBook derives the day summary for one business date. Cash movement
// counts receipts settled in cash, expenses paid in cash, and both legs of
// internal transfers that touch the cash pool.
func ComputeDayBook(log *Log, day time.Time) DaySummary {
	summary := DaySummary{
		Date:              day,
		TotalReceipts:     decimal.Zero,
		TotalExpenses:     decimal.Zero,
		CashIn:            decimal.Zero,
		CashOut:           decimal.Zero,
		ExpenseByCategory: make(map[ExpenseCategory]decimal.Decimal),
	}

	for _, r := range log.Receipts {
		if r.IsReversed || !sameBusinessDay(r.OccurredAt, day) {
			continue
		}
		summary.TotalReceipts = summary.TotalReceipts.Add(r.Amount)
		if r.Settlement.IsCash() {
			summary.CashIn = summary.CashIn.Add(r.Amount)
		}
		summary.EntryCount++
	}
	for _, e := range log.Expenses {
		if e.IsReversed || !sameBusinessDay(e.OccurredAt, day) {
			continue
		}
		summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
		summary.ExpenseByCategory[e.Category] = summary.ExpenseByCategory[e.Category].Add(e.Amount)
		if e.Payment.IsCash() {
			summary.CashOut = summary.CashOut.Add(e.Amount)
		}
		summary.EntryCount++
	}
	for _, t := range log.Transfers {
		if t.IsReversed || !sameBusinessDay(t.OccurredAt, day) {
			continue
		}
		if t.FromPool.IsCash() {
			summary.CashOut = summary.CashOut.Add(t.Amount)
		}
		if t.ToPool.IsCash() {
			summary.CashIn = summary.CashIn.Add(t.Amount)
		}
		summary.EntryCount++
	}
	for _, t := range log.BuyerTransfers {
		if !t.IsReversed && sameBusinessDay(t.OccurredAt, day) {
			summary.EntryCount++
		}
	}
	for _, t := range log.FarmerTransfers {
		if !t.IsReversed && sameBusinessDay(t.OccurredAt, day) {
			summary.EntryCount++
		}
	}
	for _, d := range log.Discounts {
		if !d.IsReversed && sameBusinessDay(d.OccurredAt, day) {
			summary.EntryCount++
		}
	}

	summary.NetCash = summary.CashIn.Sub(summary.CashOut)
	return summary
}
