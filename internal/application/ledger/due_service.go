package ledger

import (
	"context"

	"github.com/coldstore/backend/internal/domain/ledger"
	"github.com/coldstore/backend/internal/domain/ledger/acl"
	"github.com/coldstore/backend/internal/domain/partner"
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BuyerDueResponse represents one buyer's derived due position
type BuyerDueResponse struct {
	BuyerID uuid.UUID `json:"buyer_id"`
	Name    string    `json:"name"`
	Village string    `json:"village,omitempty"`
	ledger.BuyerDueBreakdown
}

// FarmerDueResponse represents one farmer's derived due position
type FarmerDueResponse struct {
	FarmerID uuid.UUID `json:"farmer_id"`
	Name     string    `json:"name"`
	Village  string    `json:"village,omitempty"`
	ledger.FarmerDueBreakdown
}

// DueService is the read side for due positions. Single lookups and list
// views both fold over the full log; the list views load the log and the
// sales book once and reuse them across every partner.
type DueService struct {
	buyerRepo  partner.BuyerRepository
	farmerRepo partner.FarmerRepository
	saleReader acl.SaleReader
	dues       *dueProjector
}

// NewDueService creates a DueService.
func NewDueService(
	cashbookRepo ledger.CashbookRepository,
	buyerRepo partner.BuyerRepository,
	farmerRepo partner.FarmerRepository,
	saleReader acl.SaleReader,
	receivables acl.FarmerReceivablesReader,
) *DueService {
	return &DueService{
		buyerRepo:  buyerRepo,
		farmerRepo: farmerRepo,
		saleReader: saleReader,
		dues:       &dueProjector{cashbookRepo: cashbookRepo, saleReader: saleReader, receivables: receivables},
	}
}

// GetBuyerDue returns one buyer's due position.
func (s *DueService) GetBuyerDue(ctx context.Context, tenantID, buyerID uuid.UUID) (*BuyerDueResponse, error) {
	buyer, err := s.buyerRepo.FindByIDForTenant(ctx, tenantID, buyerID)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.dues.buyerDue(ctx, tenantID, buyerID)
	if err != nil {
		return nil, err
	}
	return &BuyerDueResponse{
		BuyerID:           buyer.ID,
		Name:              buyer.Name,
		Village:           buyer.Village,
		BuyerDueBreakdown: breakdown,
	}, nil
}

// GetFarmerDue returns one farmer's due position.
func (s *DueService) GetFarmerDue(ctx context.Context, tenantID, farmerID uuid.UUID) (*FarmerDueResponse, error) {
	farmer, err := s.farmerRepo.FindByIDForTenant(ctx, tenantID, farmerID)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.dues.farmerDue(ctx, tenantID, farmerID)
	if err != nil {
		return nil, err
	}
	return &FarmerDueResponse{
		FarmerID:           farmer.ID,
		Name:               farmer.Name,
		Village:            farmer.Village,
		FarmerDueBreakdown: breakdown,
	}, nil
}

// ListBuyerDues returns every buyer's due position.
func (s *DueService) ListBuyerDues(ctx context.Context, tenantID uuid.UUID) ([]BuyerDueResponse, error) {
	buyers, err := s.buyerRepo.FindAllForTenant(ctx, tenantID, allPartnersFilter())
	if err != nil {
		return nil, err
	}
	log, err := s.dues.fullLog(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleReader.ListAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]BuyerDueResponse, 0, len(buyers))
	for _, buyer := range buyers {
		responses = append(responses, BuyerDueResponse{
			BuyerID:           buyer.ID,
			Name:              buyer.Name,
			Village:           buyer.Village,
			BuyerDueBreakdown: ledger.ComputeBuyerDue(buyer.ID, sales, log),
		})
	}
	return responses, nil
}

// ListFarmerDues returns every farmer's due position.
func (s *DueService) ListFarmerDues(ctx context.Context, tenantID uuid.UUID) ([]FarmerDueResponse, error) {
	farmers, err := s.farmerRepo.FindAllForTenant(ctx, tenantID, allPartnersFilter())
	if err != nil {
		return nil, err
	}
	log, err := s.dues.fullLog(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleReader.ListAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]FarmerDueResponse, 0, len(farmers))
	for _, farmer := range farmers {
		selfSales := make([]acl.SaleRecord, 0)
		for _, sale := range sales {
			if sale.SelfSale && sale.FarmerID == farmer.ID {
				selfSales = append(selfSales, sale)
			}
		}
		responses = append(responses, FarmerDueResponse{
			FarmerID:           farmer.ID,
			Name:               farmer.Name,
			Village:            farmer.Village,
			FarmerDueBreakdown: ledger.ComputeFarmerDue(farmer.ID, farmer.Receivables, selfSales, log),
		})
	}
	return responses, nil
}

func allPartnersFilter() shared.Filter {
	filter := shared.DefaultFilter()
	filter.PageSize = 10000
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	return filter
}
