package ledger

import (
	"github.com/coldstore/backend/internal/domain/ledger/acl"
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInconsistentOutstanding reports that a sale's stored outstanding
// projection disagrees with the value re-derived from the log. This means a
// past write bypassed the ledger; the view refuses to paper over it.
var ErrInconsistentOutstanding = shared.NewDomainError("CONSISTENCY_ERROR", "Stored sale outstanding disagrees with the cashbook log")

// OutstandingOnSale re-derives a sale's outstanding amount from the log:
// the sale total minus every non-reversed buyer transfer booked against it.
// Receipts do not reduce a specific sale; they reduce the buyer's overall due.
func OutstandingOnSale(sale acl.SaleRecord, log *Log) decimal.Decimal {
	outstanding := sale.TotalAmount
	for _, t := range log.BuyerTransfers {
		if t.IsReversed || t.SaleID != sale.ID {
			continue
		}
		outstanding = outstanding.Sub(t.Amount)
	}
	return outstanding
}

// CheckSaleConsistency compares the stored outstanding projection against the
// re-derived value.
func CheckSaleConsistency(sale acl.SaleRecord, log *Log) error {
	derived := OutstandingOnSale(sale, log)
	if sale.OutstandingAmount.Sub(derived).Abs().GreaterThan(AllocationTolerance) {
		return ErrInconsistentOutstanding
	}
	return nil
}

// BuyerDueBreakdown is the derived due position of one buyer, with the
// components that produced it.
type BuyerDueBreakdown struct {
	BuyerID          uuid.UUID       `json:"buyer_id"`
	SalesOutstanding decimal.Decimal `json:"sales_outstanding"`
	ReceiptsApplied  decimal.Decimal `json:"receipts_applied"`
	DiscountsApplied decimal.Decimal `json:"discounts_applied"`
	TransfersIn      decimal.Decimal `json:"transfers_in"`
	Due              decimal.Decimal `json:"due"`
}

// ComputeBuyerDue re-derives a buyer's due from the log and the buyer's
// sales. Outstanding sale amounts raise the due; receipts and discount legs
// lower it; transfers landing on this buyer raise it. Transfers away from the
// buyer are already reflected in the per-sale outstanding and are not
// subtracted again.
func ComputeBuyerDue(buyerID uuid.UUID, sales []acl.SaleRecord, log *Log) BuyerDueBreakdown {
	b := BuyerDueBreakdown{
		BuyerID:          buyerID,
		SalesOutstanding: decimal.Zero,
		ReceiptsApplied:  decimal.Zero,
		DiscountsApplied: decimal.Zero,
		TransfersIn:      decimal.Zero,
	}

	for _, sale := range sales {
		if sale.BuyerID != buyerID {
			continue
		}
		b.SalesOutstanding = b.SalesOutstanding.Add(OutstandingOnSale(sale, log))
	}
	for _, r := range log.Receipts {
		if r.IsReversed || r.CounterpartyID != buyerID {
			continue
		}
		b.ReceiptsApplied = b.ReceiptsApplied.Add(r.Amount)
	}
	for _, d := range log.Discounts {
		if d.IsReversed {
			continue
		}
		if leg, ok := d.LegFor(buyerID); ok {
			b.DiscountsApplied = b.DiscountsApplied.Add(leg.Amount)
		}
	}
	for _, t := range log.BuyerTransfers {
		if t.IsReversed || t.ToBuyerID != buyerID {
			continue
		}
		b.TransfersIn = b.TransfersIn.Add(t.Amount)
	}
	for _, t := range log.FarmerTransfers {
		if t.IsReversed || t.ToBuyerID != buyerID {
			continue
		}
		b.TransfersIn = b.TransfersIn.Add(t.Amount)
	}

	b.Due = b.SalesOutstanding.
		Sub(b.ReceiptsApplied).
		Sub(b.DiscountsApplied).
		Add(b.TransfersIn)
	return b
}

// FarmerDueBreakdown is the derived due position of one farmer.
type FarmerDueBreakdown struct {
	FarmerID             uuid.UUID       `json:"farmer_id"`
	Receivables          decimal.Decimal `json:"receivables"`
	SelfSalesOutstanding decimal.Decimal `json:"self_sales_outstanding"`
	ReceiptsApplied      decimal.Decimal `json:"receipts_applied"`
	DiscountsApplied     decimal.Decimal `json:"discounts_applied"`
	TransfersOut         decimal.Decimal `json:"transfers_out"`
	Due                  decimal.Decimal `json:"due"`
}

// ComputeFarmerDue re-derives a farmer's due. receivables is the standing
// storage-charge component from outside the cashbook; selfSales are the
// farmer's own purchases of their stored goods. Receipts, discounts and
// transfers onto buyers all lower the due.
func ComputeFarmerDue(farmerID uuid.UUID, receivables decimal.Decimal, selfSales []acl.SaleRecord, log *Log) FarmerDueBreakdown {
	f := FarmerDueBreakdown{
		FarmerID:             farmerID,
		Receivables:          receivables,
		SelfSalesOutstanding: decimal.Zero,
		ReceiptsApplied:      decimal.Zero,
		DiscountsApplied:     decimal.Zero,
		TransfersOut:         decimal.Zero,
	}

	for _, sale := range selfSales {
		if sale.FarmerID != farmerID || !sale.SelfSale {
			continue
		}
		f.SelfSalesOutstanding = f.SelfSalesOutstanding.Add(OutstandingOnSale(sale, log))
	}
	for _, r := range log.Receipts {
		if r.IsReversed || r.CounterpartyID != farmerID {
			continue
		}
		f.ReceiptsApplied = f.ReceiptsApplied.Add(r.Amount)
	}
	for _, d := range log.Discounts {
		if d.IsReversed || d.FarmerID != farmerID {
			continue
		}
		f.DiscountsApplied = f.DiscountsApplied.Add(d.Amount)
	}
	for _, t := range log.FarmerTransfers {
		if t.IsReversed || t.FarmerID != farmerID {
			continue
		}
		f.TransfersOut = f.TransfersOut.Add(t.Amount)
	}

	f.Due = f.Receivables.
		Add(f.SelfSalesOutstanding).
		Sub(f.ReceiptsApplied).
		Sub(f.DiscountsApplied).
		Sub(f.TransfersOut)
	return f
}
