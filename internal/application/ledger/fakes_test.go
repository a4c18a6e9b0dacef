package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/coldstore/backend/internal/domain/ledger"
	"github.com/coldstore/backend/internal/domain/ledger/acl"
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// In-memory doubles for the service layer. They keep real aggregates, so the
// derived-view math under test is the production code, not a re-statement.

type fakeUnitOfWork struct{}

func (fakeUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCashbookRepo struct {
	counter         int
	receipts        []*ledger.Receipt
	expenses        []*ledger.Expense
	transfers       []*ledger.InternalTransfer
	buyerTransfers  []*ledger.BuyerTransfer
	farmerTransfers []*ledger.FarmerToBuyerTransfer
	discounts       []*ledger.Discount
}

func (r *fakeCashbookRepo) NextTransactionNumber(_ context.Context, _ uuid.UUID, day time.Time) (string, error) {
	r.counter++
	return fmt.Sprintf("TXN-%s-%04d", day.Format("20060102"), r.counter), nil
}

func (r *fakeCashbookRepo) SaveReceipt(_ context.Context, receipt *ledger.Receipt) error {
	r.receipts = append(r.receipts, receipt)
	return nil
}

func (r *fakeCashbookRepo) SaveExpense(_ context.Context, expense *ledger.Expense) error {
	r.expenses = append(r.expenses, expense)
	return nil
}

func (r *fakeCashbookRepo) SaveTransfer(_ context.Context, transfer *ledger.InternalTransfer) error {
	r.transfers = append(r.transfers, transfer)
	return nil
}

func (r *fakeCashbookRepo) SaveBuyerTransfer(_ context.Context, transfer *ledger.BuyerTransfer) error {
	r.buyerTransfers = append(r.buyerTransfers, transfer)
	return nil
}

func (r *fakeCashbookRepo) SaveFarmerTransfer(_ context.Context, transfer *ledger.FarmerToBuyerTransfer) error {
	r.farmerTransfers = append(r.farmerTransfers, transfer)
	return nil
}

func (r *fakeCashbookRepo) SaveDiscount(_ context.Context, discount *ledger.Discount) error {
	r.discounts = append(r.discounts, discount)
	return nil
}

func (r *fakeCashbookRepo) FindEntry(_ context.Context, tenantID, entryID uuid.UUID) (ledger.Entry, error) {
	for _, e := range r.allEntries() {
		if e.GetID() == entryID && e.Tenant() == tenantID {
			return e, nil
		}
	}
	return nil, ledger.ErrEntryNotFound
}

// SaveEntry is a no-op: entries are held by pointer, so reversal mutations are
// already visible.
func (r *fakeCashbookRepo) SaveEntry(_ context.Context, _ ledger.Entry) error {
	return nil
}

func (r *fakeCashbookRepo) LoadLog(_ context.Context, tenantID uuid.UUID, _, _ time.Time) (*ledger.Log, error) {
	log := &ledger.Log{}
	for _, e := range r.receipts {
		if e.Tenant() == tenantID {
			log.Receipts = append(log.Receipts, *e)
		}
	}
	for _, e := range r.expenses {
		if e.Tenant() == tenantID {
			log.Expenses = append(log.Expenses, *e)
		}
	}
	for _, e := range r.transfers {
		if e.Tenant() == tenantID {
			log.Transfers = append(log.Transfers, *e)
		}
	}
	for _, e := range r.buyerTransfers {
		if e.Tenant() == tenantID {
			log.BuyerTransfers = append(log.BuyerTransfers, *e)
		}
	}
	for _, e := range r.farmerTransfers {
		if e.Tenant() == tenantID {
			log.FarmerTransfers = append(log.FarmerTransfers, *e)
		}
	}
	for _, e := range r.discounts {
		if e.Tenant() == tenantID {
			log.Discounts = append(log.Discounts, *e)
		}
	}
	return log, nil
}

func (r *fakeCashbookRepo) ListEntries(_ context.Context, tenantID uuid.UUID, filter ledger.EntryFilter) ([]ledger.EntrySummary, int64, error) {
	summaries := make([]ledger.EntrySummary, 0)
	for _, e := range r.allEntries() {
		if e.Tenant() != tenantID {
			continue
		}
		if filter.Kind != nil && e.Kind() != *filter.Kind {
			continue
		}
		if filter.ExcludeReversed && e.Reversed() {
			continue
		}
		summaries = append(summaries, summarize(e))
	}
	return summaries, int64(len(summaries)), nil
}

func (r *fakeCashbookRepo) FindSummary(_ context.Context, tenantID, entryID uuid.UUID) (*ledger.EntrySummary, error) {
	for _, e := range r.allEntries() {
		if e.GetID() == entryID && e.Tenant() == tenantID {
			s := summarize(e)
			return &s, nil
		}
	}
	return nil, ledger.ErrEntryNotFound
}

func (r *fakeCashbookRepo) LogVersion(_ context.Context, _ uuid.UUID) (int64, error) {
	return int64(len(r.allEntries())), nil
}

func (r *fakeCashbookRepo) allEntries() []ledger.Entry {
	entries := make([]ledger.Entry, 0)
	for _, e := range r.receipts {
		entries = append(entries, e)
	}
	for _, e := range r.expenses {
		entries = append(entries, e)
	}
	for _, e := range r.transfers {
		entries = append(entries, e)
	}
	for _, e := range r.buyerTransfers {
		entries = append(entries, e)
	}
	for _, e := range r.farmerTransfers {
		entries = append(entries, e)
	}
	for _, e := range r.discounts {
		entries = append(entries, e)
	}
	return entries
}

func summarize(e ledger.Entry) ledger.EntrySummary {
	return ledger.EntrySummary{
		ID:                e.GetID(),
		Kind:              e.Kind(),
		TransactionNumber: e.Number(),
		Amount:            e.EntryAmount(),
		OccurredAt:        e.BusinessDate(),
		IsReversed:        e.Reversed(),
	}
}

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*ledger.BankAccount
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*ledger.BankAccount)}
}

func (r *fakeAccountRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*ledger.BankAccount, error) {
	account, ok := r.accounts[id]
	if !ok || account.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return account, nil
}

func (r *fakeAccountRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]ledger.BankAccount, error) {
	accounts := make([]ledger.BankAccount, 0)
	for _, a := range r.accounts {
		if a.TenantID == tenantID {
			accounts = append(accounts, *a)
		}
	}
	return accounts, nil
}

func (r *fakeAccountRepo) Save(_ context.Context, account *ledger.BankAccount) error {
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	for _, a := range r.accounts {
		if a.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

func (r *fakeAccountRepo) FindByFiscalYear(_ context.Context, tenantID uuid.UUID, fiscalYear valueobject.FiscalYear) ([]ledger.BankAccount, error) {
	accounts := make([]ledger.BankAccount, 0)
	for _, a := range r.accounts {
		if a.TenantID == tenantID && a.FiscalYear == fiscalYear {
			accounts = append(accounts, *a)
		}
	}
	return accounts, nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, tenantID, accountID uuid.UUID) error {
	account, ok := r.accounts[accountID]
	if !ok || account.TenantID != tenantID {
		return shared.ErrNotFound
	}
	delete(r.accounts, accountID)
	return nil
}

type fakeSalesBook struct {
	sales   map[uuid.UUID]*acl.SaleRecord
	applied map[uuid.UUID]decimal.Decimal
}

func newFakeSalesBook() *fakeSalesBook {
	return &fakeSalesBook{
		sales:   make(map[uuid.UUID]*acl.SaleRecord),
		applied: make(map[uuid.UUID]decimal.Decimal),
	}
}

func (s *fakeSalesBook) FindByID(_ context.Context, _, saleID uuid.UUID) (*acl.SaleRecord, error) {
	sale, ok := s.sales[saleID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *sale
	return &copied, nil
}

func (s *fakeSalesBook) ListByBuyer(_ context.Context, _, buyerID uuid.UUID) ([]acl.SaleRecord, error) {
	records := make([]acl.SaleRecord, 0)
	for _, sale := range s.sales {
		if sale.BuyerID == buyerID {
			records = append(records, *sale)
		}
	}
	return records, nil
}

func (s *fakeSalesBook) ListSelfSalesByFarmer(_ context.Context, _, farmerID uuid.UUID) ([]acl.SaleRecord, error) {
	records := make([]acl.SaleRecord, 0)
	for _, sale := range s.sales {
		if sale.SelfSale && sale.FarmerID == farmerID {
			records = append(records, *sale)
		}
	}
	return records, nil
}

func (s *fakeSalesBook) ListAll(_ context.Context, _ uuid.UUID) ([]acl.SaleRecord, error) {
	records := make([]acl.SaleRecord, 0, len(s.sales))
	for _, sale := range s.sales {
		records = append(records, *sale)
	}
	return records, nil
}

func (s *fakeSalesBook) ApplyOutstanding(_ context.Context, _, saleID uuid.UUID, outstanding decimal.Decimal) error {
	sale, ok := s.sales[saleID]
	if !ok {
		return shared.ErrNotFound
	}
	sale.OutstandingAmount = outstanding
	s.applied[saleID] = outstanding
	return nil
}

type fakeDirectory struct {
	buyers      map[uuid.UUID]*acl.PartnerRef
	farmers     map[uuid.UUID]*acl.PartnerRef
	receivables map[uuid.UUID]decimal.Decimal
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		buyers:      make(map[uuid.UUID]*acl.PartnerRef),
		farmers:     make(map[uuid.UUID]*acl.PartnerRef),
		receivables: make(map[uuid.UUID]decimal.Decimal),
	}
}

func (d *fakeDirectory) BuyerByID(_ context.Context, _, buyerID uuid.UUID) (*acl.PartnerRef, error) {
	buyer, ok := d.buyers[buyerID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return buyer, nil
}

func (d *fakeDirectory) FarmerByID(_ context.Context, _, farmerID uuid.UUID) (*acl.PartnerRef, error) {
	farmer, ok := d.farmers[farmerID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return farmer, nil
}

func (d *fakeDirectory) StandingReceivables(_ context.Context, _, farmerID uuid.UUID) (decimal.Decimal, error) {
	return d.receivables[farmerID], nil
}
