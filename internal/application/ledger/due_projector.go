package ledger

import (
	"context"
	"time"

	"github.com/coldstore/backend/internal/domain/ledger"
	"github.com/coldstore/backend/internal/domain/ledger/acl"
	"github.com/google/uuid"
)

// Dues accumulate across fiscal years, so due projections always fold over
// the tenant's entire log.
var logEpochEnd = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// dueProjector re-derives due positions from the log. It is the one code path
// for due math on the write and read sides both, so a receipt validated here
// and a due screen rendered later can never disagree.
type dueProjector struct {
	cashbookRepo ledger.CashbookRepository
	saleReader   acl.SaleReader
	receivables  acl.FarmerReceivablesReader
}

func (p *dueProjector) fullLog(ctx context.Context, tenantID uuid.UUID) (*ledger.Log, error) {
	return p.cashbookRepo.LoadLog(ctx, tenantID, time.Time{}, logEpochEnd)
}

func (p *dueProjector) buyerDue(ctx context.Context, tenantID, buyerID uuid.UUID) (ledger.BuyerDueBreakdown, error) {
	log, err := p.fullLog(ctx, tenantID)
	if err != nil {
		return ledger.BuyerDueBreakdown{}, err
	}
	sales, err := p.saleReader.ListByBuyer(ctx, tenantID, buyerID)
	if err != nil {
		return ledger.BuyerDueBreakdown{}, err
	}
	return ledger.ComputeBuyerDue(buyerID, sales, log), nil
}

func (p *dueProjector) farmerDue(ctx context.Context, tenantID, farmerID uuid.UUID) (ledger.FarmerDueBreakdown, error) {
	log, err := p.fullLog(ctx, tenantID)
	if err != nil {
		return ledger.FarmerDueBreakdown{}, err
	}
	receivables, err := p.receivables.StandingReceivables(ctx, tenantID, farmerID)
	if err != nil {
		return ledger.FarmerDueBreakdown{}, err
	}
	selfSales, err := p.saleReader.ListSelfSalesByFarmer(ctx, tenantID, farmerID)
	if err != nil {
		return ledger.FarmerDueBreakdown{}, err
	}
	return ledger.ComputeFarmerDue(farmerID, receivables, selfSales, log), nil
}
