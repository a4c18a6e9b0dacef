package ledger

import (
	"time"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationTolerance is the maximum absolute difference allowed between a
// discount's total and the sum of its buyer legs. One paisa, to absorb
// rounding when operators split a total across buyers.
var AllocationTolerance = decimal.RequireFromString("0.01")

// Allocation errors.
var (
	ErrEmptyAllocation    = shared.NewDomainError("EMPTY_ALLOCATION", "Discount must allocate a positive amount to at least one buyer")
	ErrAllocationMismatch = shared.NewDomainError("ALLOCATION_MISMATCH", "Buyer leg amounts must sum to the discount total")
	ErrNegativeLeg        = shared.NewDomainError("VALIDATION_FAILED", "Buyer leg amounts cannot be negative")
	ErrDuplicateLegBuyer  = shared.NewDomainError("VALIDATION_FAILED", "A buyer may appear in at most one discount leg")
)

// DiscountLeg is one buyer's share of a discount. Legs are value objects owned
// by the discount; they are never addressed outside it.
type DiscountLeg struct {
	ID        uuid.UUID       `json:"id"`
	BuyerID   uuid.UUID       `json:"buyer_id"`
	BuyerName string          `json:"buyer_name"`
	Amount    decimal.Decimal `json:"amount"`
}

// DiscountLegInput is the request shape for one leg of a discount.
type DiscountLegInput struct {
	BuyerID   uuid.UUID
	BuyerName string
	Amount    valueobject.Money
}

// Discount forgives part of a farmer's due and redistributes the forgiven
// amount across one or more buyers' dues. The farmer's due drops by the total;
// each named buyer's due drops by their leg.
type Discount struct {
	EntryBase
	FarmerID   uuid.UUID     `json:"farmer_id"`
	FarmerName string        `json:"farmer_name"`
	Legs       []DiscountLeg `json:"legs"`
}

// NewDiscount creates a discount entry. Structural validation only: the legs
// must be non-empty, non-negative, and sum to the total within
// AllocationTolerance. Due sufficiency is checked separately via
// ValidateDiscountAgainstDues before the entry is committed.
func NewDiscount(
	tenantID uuid.UUID,
	txnNumber string,
	farmerID uuid.UUID,
	farmerName string,
	totalAmount valueobject.Money,
	legs []DiscountLegInput,
	occurredAt time.Time,
	remarks string,
) (*Discount, error) {
	base, err := newEntryBase(tenantID, txnNumber, totalAmount, occurredAt, remarks)
	if err != nil {
		return nil, err
	}
	if farmerID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_COUNTERPARTY", "Discounts must name the farmer whose due is reduced")
	}

	seen := make(map[uuid.UUID]struct{}, len(legs))
	legSum := decimal.Zero
	positive := 0
	built := make([]DiscountLeg, 0, len(legs))
	for _, leg := range legs {
		if leg.BuyerID == uuid.Nil {
			return nil, shared.NewDomainError("MISSING_COUNTERPARTY", "Every discount leg must name a buyer")
		}
		if _, dup := seen[leg.BuyerID]; dup {
			return nil, ErrDuplicateLegBuyer
		}
		seen[leg.BuyerID] = struct{}{}
		if leg.Amount.IsNegative() {
			return nil, ErrNegativeLeg
		}
		if leg.Amount.IsPositive() {
			positive++
		}
		legSum = legSum.Add(leg.Amount.Amount())
		built = append(built, DiscountLeg{
			ID:        uuid.New(),
			BuyerID:   leg.BuyerID,
			BuyerName: leg.BuyerName,
			Amount:    leg.Amount.Amount(),
		})
	}
	if positive == 0 {
		return nil, ErrEmptyAllocation
	}
	if legSum.Sub(totalAmount.Amount()).Abs().GreaterThan(AllocationTolerance) {
		return nil, ErrAllocationMismatch
	}

	discount := &Discount{
		EntryBase:  base,
		FarmerID:   farmerID,
		FarmerName: farmerName,
		Legs:       built,
	}
	discount.AddDomainEvent(NewEntryRecordedEvent(discount, EntryKindDiscount))
	return discount, nil
}

// Kind returns the entry kind.
func (d *Discount) Kind() EntryKind {
	return EntryKindDiscount
}

// LegFor returns the leg allocated to the given buyer, if any.
func (d *Discount) LegFor(buyerID uuid.UUID) (DiscountLeg, bool) {
	for _, leg := range d.Legs {
		if leg.BuyerID == buyerID {
			return leg, true
		}
	}
	return DiscountLeg{}, false
}

// Reverse marks the discount as reversed. All legs come back with it; a
// discount is reversed whole or not at all.
func (d *Discount) Reverse(now time.Time) error {
	if err := d.markReversed(now); err != nil {
		return err
	}
	d.AddDomainEvent(NewEntryReversedEvent(d, EntryKindDiscount))
	return nil
}

// ValidateDiscountAgainstDues checks that a discount would not push any due
// negative: the total may not exceed the farmer's current due, and no leg may
// exceed its buyer's current due. Dues are the re-derived values as of
// validation time.
func ValidateDiscountAgainstDues(
	totalAmount valueobject.Money,
	legs []DiscountLegInput,
	farmerDue decimal.Decimal,
	buyerDues map[uuid.UUID]decimal.Decimal,
) error {
	if totalAmount.Amount().GreaterThan(farmerDue) {
		return ErrExceedsFarmerDue
	}
	for _, leg := range legs {
		if leg.Amount.Amount().GreaterThan(buyerDues[leg.BuyerID]) {
			return ErrExceedsBuyerDue
		}
	}
	return nil
}
