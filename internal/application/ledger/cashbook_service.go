package ledger

import (
	"context"
	"time"

	"github.com/coldstore/backend/internal/domain/ledger"
	"github.com/coldstore/backend/internal/domain/ledger/acl"
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashbookService is the write side of the ledger: it validates each entry
// against the re-derived state of the world and appends it inside one unit of
// work. Derived views are never updated incrementally here; the one exception
// is the sale outstanding projection, which buyer transfers own.
type CashbookService struct {
	cashbookRepo ledger.CashbookRepository
	accountRepo  ledger.BankAccountRepository
	saleReader   acl.SaleReader
	saleMutator  acl.SaleDueMutator
	directory    acl.DirectoryReader
	dues         *dueProjector
	uow          shared.UnitOfWork
}

// NewCashbookService creates a CashbookService.
func NewCashbookService(
	cashbookRepo ledger.CashbookRepository,
	accountRepo ledger.BankAccountRepository,
	saleReader acl.SaleReader,
	saleMutator acl.SaleDueMutator,
	directory acl.DirectoryReader,
	receivables acl.FarmerReceivablesReader,
	uow shared.UnitOfWork,
) *CashbookService {
	return &CashbookService{
		cashbookRepo: cashbookRepo,
		accountRepo:  accountRepo,
		saleReader:   saleReader,
		saleMutator:  saleMutator,
		directory:    directory,
		dues:         &dueProjector{cashbookRepo: cashbookRepo, saleReader: saleReader, receivables: receivables},
		uow:          uow,
	}
}

// PoolRequest selects a money pool: an explicit bank account, or a legacy
// type string ("cash", "limit", "current"). Absent both, the cash pool.
type PoolRequest struct {
	BankAccountID *uuid.UUID `json:"bank_account_id"`
	PoolType      string     `json:"pool_type"`
}

func (p PoolRequest) resolve() ledger.PoolReference {
	return ledger.ResolvePool(p.BankAccountID, p.PoolType)
}

// CreateReceiptRequest represents a request to record a receipt
type CreateReceiptRequest struct {
	PayerKind      string          `json:"payer_kind" binding:"required"`
	CounterpartyID *uuid.UUID      `json:"counterparty_id"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	Settlement     PoolRequest     `json:"settlement"`
	OccurredAt     time.Time       `json:"occurred_at" binding:"required"`
	Remarks        string          `json:"remarks"`
}

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Category     string          `json:"category" binding:"required"`
	ReceiverName string          `json:"receiver_name"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Payment      PoolRequest     `json:"payment"`
	OccurredAt   time.Time       `json:"occurred_at" binding:"required"`
	Remarks      string          `json:"remarks"`
}

// CreateTransferRequest represents a request to move money between pools
type CreateTransferRequest struct {
	From       PoolRequest     `json:"from"`
	To         PoolRequest     `json:"to"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	OccurredAt time.Time       `json:"occurred_at" binding:"required"`
	Remarks    string          `json:"remarks"`
}

// CreateBuyerTransferRequest represents a request to move due between buyers
type CreateBuyerTransferRequest struct {
	SaleID     uuid.UUID       `json:"sale_id" binding:"required"`
	ToBuyerID  uuid.UUID       `json:"to_buyer_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	OccurredAt time.Time       `json:"occurred_at" binding:"required"`
	Remarks    string          `json:"remarks"`
}

// CreateFarmerTransferRequest represents a request to move a farmer's due
// onto a buyer
type CreateFarmerTransferRequest struct {
	FarmerID   uuid.UUID       `json:"farmer_id" binding:"required"`
	ToBuyerID  uuid.UUID       `json:"to_buyer_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	OccurredAt time.Time       `json:"occurred_at" binding:"required"`
	Remarks    string          `json:"remarks"`
}

// DiscountLegRequest is one buyer's share of a discount
type DiscountLegRequest struct {
	BuyerID uuid.UUID       `json:"buyer_id" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
}

// CreateDiscountRequest represents a request to record a discount
type CreateDiscountRequest struct {
	FarmerID    uuid.UUID            `json:"farmer_id" binding:"required"`
	TotalAmount decimal.Decimal      `json:"total_amount" binding:"required"`
	Legs        []DiscountLegRequest `json:"legs" binding:"required"`
	OccurredAt  time.Time            `json:"occurred_at" binding:"required"`
	Remarks     string               `json:"remarks"`
}

// EntryResponse represents a cashbook entry in API responses
type EntryResponse struct {
	ID                uuid.UUID           `json:"id"`
	Kind              string              `json:"kind"`
	TransactionNumber string              `json:"transaction_number"`
	Amount            decimal.Decimal     `json:"amount"`
	OccurredAt        time.Time           `json:"occurred_at"`
	CounterpartyName  string              `json:"counterparty_name,omitempty"`
	PoolKey           string              `json:"pool_key,omitempty"`
	Category          string              `json:"category,omitempty"`
	Remarks           string              `json:"remarks,omitempty"`
	IsReversed        bool                `json:"is_reversed"`
	ReversedAt        *time.Time          `json:"reversed_at,omitempty"`
	DueBalanceAfter   decimal.NullDecimal `json:"due_balance_after,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
}

func summaryToResponse(s ledger.EntrySummary, createdAt time.Time) *EntryResponse {
	return &EntryResponse{
		ID:                s.ID,
		Kind:              s.Kind.String(),
		TransactionNumber: s.TransactionNumber,
		Amount:            s.Amount,
		OccurredAt:        s.OccurredAt,
		CounterpartyName:  s.CounterpartyName,
		PoolKey:           s.PoolKey,
		Category:          s.Category,
		Remarks:           s.Remarks,
		IsReversed:        s.IsReversed,
		ReversedAt:        s.ReversedAt,
		DueBalanceAfter:   s.DueBalanceAfter,
		CreatedAt:         createdAt,
	}
}

// CreateReceipt validates and appends a receipt entry.
func (s *CashbookService) CreateReceipt(ctx context.Context, tenantID uuid.UUID, req CreateReceiptRequest) (*EntryResponse, error) {
	payerKind := ledger.PayerKind(req.PayerKind)
	settlement := req.Settlement.resolve()
	if err := s.ensureAccountExists(ctx, tenantID, settlement); err != nil {
		return nil, err
	}

	var response *EntryResponse
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		counterpartyID := uuid.Nil
		counterpartyName := ""
		if req.CounterpartyID != nil {
			counterpartyID = *req.CounterpartyID
		}
		if payerKind.RequiresCounterparty() {
			ref, err := s.lookupCounterparty(ctx, tenantID, payerKind, counterpartyID)
			if err != nil {
				return err
			}
			counterpartyName = ref.Name
		}

		txnNumber, err := s.cashbookRepo.NextTransactionNumber(ctx, tenantID, req.OccurredAt)
		if err != nil {
			return err
		}
		receipt, err := ledger.NewReceipt(tenantID, txnNumber, payerKind,
			counterpartyID, counterpartyName,
			valueobject.NewMoneyINR(req.Amount), settlement, req.OccurredAt, req.Remarks)
		if err != nil {
			return err
		}
		if err := s.cashbookRepo.SaveReceipt(ctx, receipt); err != nil {
			return err
		}

		// Snapshot the counterparty's due after this receipt, for the printed
		// voucher. Audit only: due views always recompute.
		switch payerKind {
		case ledger.PayerSalesGoodsBuyer, ledger.PayerColdStorageMerchant:
			due, err := s.dues.buyerDue(ctx, tenantID, counterpartyID)
			if err != nil {
				return err
			}
			receipt.SnapshotDueBalance(valueobject.NewMoneyINR(due.Due))
		case ledger.PayerFarmer:
			due, err := s.dues.farmerDue(ctx, tenantID, counterpartyID)
			if err != nil {
				return err
			}
			receipt.SnapshotDueBalance(valueobject.NewMoneyINR(due.Due))
		}
		if receipt.DueBalanceAfter.Valid {
			if err := s.cashbookRepo.SaveEntry(ctx, receipt); err != nil {
				return err
			}
		}

		response = entryToResponse(receipt, counterpartyName, settlement.Key(), "")
		response.Remarks = receipt.Remarks
		response.DueBalanceAfter = receipt.DueBalanceAfter
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// CreateExpense validates and appends an expense entry.
func (s *CashbookService) CreateExpense(ctx context.Context, tenantID uuid.UUID, req CreateExpenseRequest) (*EntryResponse, error) {
	payment := req.Payment.resolve()
	if err := s.ensureAccountExists(ctx, tenantID, payment); err != nil {
		return nil, err
	}

	var response *EntryResponse
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		txnNumber, err := s.cashbookRepo.NextTransactionNumber(ctx, tenantID, req.OccurredAt)
		if err != nil {
			return err
		}
		expense, err := ledger.NewExpense(tenantID, txnNumber,
			ledger.ExpenseCategory(req.Category), req.ReceiverName,
			valueobject.NewMoneyINR(req.Amount), payment, req.OccurredAt, req.Remarks)
		if err != nil {
			return err
		}
		if err := s.cashbookRepo.SaveExpense(ctx, expense); err != nil {
			return err
		}
		response = entryToResponse(expense, req.ReceiverName, payment.Key(), expense.Category.String())
		response.Remarks = expense.Remarks
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// CreateTransfer validates and appends an internal pool-to-pool transfer.
func (s *CashbookService) CreateTransfer(ctx context.Context, tenantID uuid.UUID, req CreateTransferRequest) (*EntryResponse, error) {
	fromPool := req.From.resolve()
	toPool := req.To.resolve()
	if err := s.ensureAccountExists(ctx, tenantID, fromPool); err != nil {
		return nil, err
	}
	if err := s.ensureAccountExists(ctx, tenantID, toPool); err != nil {
		return nil, err
	}

	var response *EntryResponse
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		txnNumber, err := s.cashbookRepo.NextTransactionNumber(ctx, tenantID, req.OccurredAt)
		if err != nil {
			return err
		}
		transfer, err := ledger.NewInternalTransfer(tenantID, txnNumber,
			fromPool, toPool, valueobject.NewMoneyINR(req.Amount), req.OccurredAt, req.Remarks)
		if err != nil {
			return err
		}
		if err := s.cashbookRepo.SaveTransfer(ctx, transfer); err != nil {
			return err
		}
		response = entryToResponse(transfer, "", fromPool.Key()+" -> "+toPool.Key(), "")
		response.Remarks = transfer.Remarks
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// CreateBuyerTransfer moves due off a sale onto another buyer. The sale's
// stored outstanding is re-derived from the log before the cap is checked,
// and the projection is rewritten from the derived value rather than
// decremented in place.
func (s *CashbookService) CreateBuyerTransfer(ctx context.Context, tenantID uuid.UUID, req CreateBuyerTransferRequest) (*EntryResponse, error) {
	var response *EntryResponse
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		sale, err := s.saleReader.FindByID(ctx, tenantID, req.SaleID)
		if err != nil {
			return err
		}
		toBuyer, err := s.directory.BuyerByID(ctx, tenantID, req.ToBuyerID)
		if err != nil {
			return err
		}
		log, err := s.dues.fullLog(ctx, tenantID)
		if err != nil {
			return err
		}
		if err := ledger.CheckSaleConsistency(*sale, log); err != nil {
			return err
		}
		outstanding := ledger.OutstandingOnSale(*sale, log)

		txnNumber, err := s.cashbookRepo.NextTransactionNumber(ctx, tenantID, req.OccurredAt)
		if err != nil {
			return err
		}
		transfer, err := ledger.NewBuyerTransfer(tenantID, txnNumber,
			sale.ID, sale.SaleNumber,
			sale.BuyerID, sale.BuyerName,
			toBuyer.ID, toBuyer.Name,
			valueobject.NewMoneyINR(req.Amount), valueobject.NewMoneyINR(outstanding),
			req.OccurredAt, req.Remarks)
		if err != nil {
			return err
		}
		if err := s.cashbookRepo.SaveBuyerTransfer(ctx, transfer); err != nil {
			return err
		}
		if err := s.saleMutator.ApplyOutstanding(ctx, tenantID, sale.ID, outstanding.Sub(req.Amount)); err != nil {
			return err
		}
		response = entryToResponse(transfer, sale.BuyerName+" -> "+toBuyer.Name, "", "")
		response.Remarks = transfer.Remarks
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// CreateFarmerTransfer moves part of a farmer's due onto a buyer,
// receivables first.
func (s *CashbookService) CreateFarmerTransfer(ctx context.Context, tenantID uuid.UUID, req CreateFarmerTransferRequest) (*EntryResponse, error) {
	var response *EntryResponse
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		farmer, err := s.directory.FarmerByID(ctx, tenantID, req.FarmerID)
		if err != nil {
			return err
		}
		toBuyer, err := s.directory.BuyerByID(ctx, tenantID, req.ToBuyerID)
		if err != nil {
			return err
		}
		position, err := s.dues.farmerDue(ctx, tenantID, req.FarmerID)
		if err != nil {
			return err
		}
		// Receipts, discounts and earlier transfers consume receivables
		// before self-sales, so the remaining receivables component is the
		// total due minus whatever the self-sales still carry.
		receivablesDue := position.Due.Sub(position.SelfSalesOutstanding)
		if receivablesDue.IsNegative() {
			receivablesDue = decimal.Zero
		}
		selfSalesDue := position.Due.Sub(receivablesDue)

		txnNumber, err := s.cashbookRepo.NextTransactionNumber(ctx, tenantID, req.OccurredAt)
		if err != nil {
			return err
		}
		transfer, err := ledger.NewFarmerToBuyerTransfer(tenantID, txnNumber,
			farmer.ID, farmer.Name, toBuyer.ID, toBuyer.Name,
			valueobject.NewMoneyINR(req.Amount),
			valueobject.NewMoneyINR(receivablesDue),
			valueobject.NewMoneyINR(selfSalesDue),
			req.OccurredAt, req.Remarks)
		if err != nil {
			return err
		}
		if err := s.cashbookRepo.SaveFarmerTransfer(ctx, transfer); err != nil {
			return err
		}
		response = entryToResponse(transfer, farmer.Name+" -> "+toBuyer.Name, "", "")
		response.Remarks = transfer.Remarks
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// CreateDiscount forgives part of a farmer's due and spreads it across
// buyers. Every due involved is re-derived before the caps are checked.
func (s *CashbookService) CreateDiscount(ctx context.Context, tenantID uuid.UUID, req CreateDiscountRequest) (*EntryResponse, error) {
	var response *EntryResponse
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		farmer, err := s.directory.FarmerByID(ctx, tenantID, req.FarmerID)
		if err != nil {
			return err
		}

		legs := make([]ledger.DiscountLegInput, 0, len(req.Legs))
		buyerDues := make(map[uuid.UUID]decimal.Decimal, len(req.Legs))
		for _, leg := range req.Legs {
			buyer, err := s.directory.BuyerByID(ctx, tenantID, leg.BuyerID)
			if err != nil {
				return err
			}
			legs = append(legs, ledger.DiscountLegInput{
				BuyerID:   buyer.ID,
				BuyerName: buyer.Name,
				Amount:    valueobject.NewMoneyINR(leg.Amount),
			})
			due, err := s.dues.buyerDue(ctx, tenantID, buyer.ID)
			if err != nil {
				return err
			}
			buyerDues[buyer.ID] = due.Due
		}
		farmerPosition, err := s.dues.farmerDue(ctx, tenantID, req.FarmerID)
		if err != nil {
			return err
		}

		total := valueobject.NewMoneyINR(req.TotalAmount)
		if err := ledger.ValidateDiscountAgainstDues(total, legs, farmerPosition.Due, buyerDues); err != nil {
			return err
		}

		txnNumber, err := s.cashbookRepo.NextTransactionNumber(ctx, tenantID, req.OccurredAt)
		if err != nil {
			return err
		}
		discount, err := ledger.NewDiscount(tenantID, txnNumber,
			farmer.ID, farmer.Name, total, legs, req.OccurredAt, req.Remarks)
		if err != nil {
			return err
		}
		if err := s.cashbookRepo.SaveDiscount(ctx, discount); err != nil {
			return err
		}
		response = entryToResponse(discount, farmer.Name, "", "")
		response.Remarks = discount.Remarks
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ReverseEntry flips an entry to reversed. Every derived view then recomputes
// without it; the only stored projection touched is the sale outstanding when
// the entry is a buyer transfer.
func (s *CashbookService) ReverseEntry(ctx context.Context, tenantID, entryID uuid.UUID) (*EntryResponse, error) {
	var response *EntryResponse
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.cashbookRepo.FindEntry(ctx, tenantID, entryID)
		if err != nil {
			return err
		}
		// Reversal state is checked before the sale restoration: the log
		// already excludes a reversed transfer, so re-running the restore
		// math for one would misreport ALREADY_REVERSED as a consistency
		// failure.
		if entry.Reversed() {
			return ledger.ErrAlreadyReversed
		}

		if transfer, ok := entry.(*ledger.BuyerTransfer); ok {
			sale, err := s.saleReader.FindByID(ctx, tenantID, transfer.SaleID)
			if err != nil {
				return err
			}
			log, err := s.dues.fullLog(ctx, tenantID)
			if err != nil {
				return err
			}
			restored := ledger.OutstandingOnSale(*sale, log).Add(transfer.Amount)
			if restored.GreaterThan(sale.TotalAmount) {
				return ledger.ErrInconsistentOutstanding
			}
			if err := s.saleMutator.ApplyOutstanding(ctx, tenantID, sale.ID, restored); err != nil {
				return err
			}
		}

		if err := entry.Reverse(time.Now()); err != nil {
			return err
		}
		if err := s.cashbookRepo.SaveEntry(ctx, entry); err != nil {
			return err
		}

		summary, err := s.cashbookRepo.FindSummary(ctx, tenantID, entryID)
		if err != nil {
			return err
		}
		response = summaryToResponse(*summary, entry.GetCreatedAt())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// ListEntries returns cashbook history, reversed entries included.
func (s *CashbookService) ListEntries(ctx context.Context, tenantID uuid.UUID, filter ledger.EntryFilter) (*shared.Paginated[ledger.EntrySummary], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 200 {
		filter.PageSize = 50
	}
	entries, total, err := s.cashbookRepo.ListEntries(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(entries, total, filter.Page, filter.PageSize)
	return &result, nil
}

// GetEntry returns one cashbook entry as a history row.
func (s *CashbookService) GetEntry(ctx context.Context, tenantID, entryID uuid.UUID) (*ledger.EntrySummary, error) {
	return s.cashbookRepo.FindSummary(ctx, tenantID, entryID)
}

func (s *CashbookService) lookupCounterparty(ctx context.Context, tenantID uuid.UUID, payerKind ledger.PayerKind, counterpartyID uuid.UUID) (*acl.PartnerRef, error) {
	if counterpartyID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_COUNTERPARTY", "Receipts from "+payerKind.String()+" must name a counterparty")
	}
	if payerKind == ledger.PayerFarmer {
		return s.directory.FarmerByID(ctx, tenantID, counterpartyID)
	}
	return s.directory.BuyerByID(ctx, tenantID, counterpartyID)
}

// ensureAccountExists rejects entries referencing a bank account the tenant
// does not have. Legacy pools pass through untouched.
func (s *CashbookService) ensureAccountExists(ctx context.Context, tenantID uuid.UUID, pool ledger.PoolReference) error {
	if pool.Kind != ledger.PoolKindBank || pool.AccountID == uuid.Nil {
		return nil
	}
	_, err := s.accountRepo.FindByIDForTenant(ctx, tenantID, pool.AccountID)
	return err
}

func entryToResponse(entry ledger.Entry, counterpartyName, poolKey, category string) *EntryResponse {
	return &EntryResponse{
		ID:                entry.GetID(),
		Kind:              entry.Kind().String(),
		TransactionNumber: entry.Number(),
		Amount:            entry.EntryAmount(),
		OccurredAt:        entry.BusinessDate(),
		CounterpartyName:  counterpartyName,
		PoolKey:           poolKey,
		Category:          category,
		IsReversed:        entry.Reversed(),
		CreatedAt:         entry.GetCreatedAt(),
	}
}
