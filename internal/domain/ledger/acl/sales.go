// Package acl holds the ledger's anti-corruption layer: read models and
// narrow interfaces over the partner directory and the sales book, so the
// ledger never depends on those aggregates directly.
package acl

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRecord is the ledger's read model of a sale. OutstandingAmount is the
// stored projection; due views re-derive it from the cashbook log and treat a
// disagreement as a consistency error.
type SaleRecord struct {
	ID                uuid.UUID
	SaleNumber        string
	BuyerID           uuid.UUID
	BuyerName         string
	FarmerID          uuid.UUID
	FarmerName        string
	SelfSale          bool
	TotalAmount       decimal.Decimal
	OutstandingAmount decimal.Decimal
}

// SaleReader exposes the sales book to the ledger, read-only.
type SaleReader interface {
	FindByID(ctx context.Context, tenantID, saleID uuid.UUID) (*SaleRecord, error)
	ListByBuyer(ctx context.Context, tenantID, buyerID uuid.UUID) ([]SaleRecord, error)
	ListSelfSalesByFarmer(ctx context.Context, tenantID, farmerID uuid.UUID) ([]SaleRecord, error)
	ListAll(ctx context.Context, tenantID uuid.UUID) ([]SaleRecord, error)
}

// SaleDueMutator is the single write path from the ledger into the sales
// book: committing or reversing a buyer transfer updates the referenced
// sale's stored outstanding projection.
type SaleDueMutator interface {
	ApplyOutstanding(ctx context.Context, tenantID, saleID uuid.UUID, outstanding decimal.Decimal) error
}

// FarmerReceivablesReader exposes a farmer's standing storage receivables,
// the non-ledger component of the farmer's due.
type FarmerReceivablesReader interface {
	StandingReceivables(ctx context.Context, tenantID, farmerID uuid.UUID) (decimal.Decimal, error)
}
