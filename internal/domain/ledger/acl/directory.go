package acl

import (
	"context"

	"github.com/google/uuid"
)

// PartnerRef is the ledger's view of a buyer or farmer: just enough to
// validate a counterparty and denormalize its name onto entries.
type PartnerRef struct {
	ID      uuid.UUID
	Name    string
	Village string
}

// DirectoryReader exposes the partner directory to the ledger, read-only.
type DirectoryReader interface {
	BuyerByID(ctx context.Context, tenantID, buyerID uuid.UUID) (*PartnerRef, error)
	FarmerByID(ctx context.Context, tenantID, farmerID uuid.UUID) (*PartnerRef, error)
}
