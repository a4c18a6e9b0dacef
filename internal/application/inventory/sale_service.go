package inventory

import (
	"context"
	"time"

	"github.com/coldstore/backend/internal/domain/inventory"
	"github.com/coldstore/backend/internal/domain/ledger/acl"
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleService manages the sales book: credit sales of stored goods whose
// outstanding amounts feed the due views.
type SaleService struct {
	saleRepo  inventory.SaleRepository
	directory acl.DirectoryReader
}

// NewSaleService creates a SaleService.
func NewSaleService(saleRepo inventory.SaleRepository, directory acl.DirectoryReader) *SaleService {
	return &SaleService{saleRepo: saleRepo, directory: directory}
}

// CreateSaleRequest represents a request to record a credit sale
type CreateSaleRequest struct {
	SaleNumber  string          `json:"sale_number" binding:"required"`
	BuyerID     *uuid.UUID      `json:"buyer_id"`
	FarmerID    uuid.UUID       `json:"farmer_id" binding:"required"`
	SelfSale    bool            `json:"self_sale"`
	SaleDate    time.Time       `json:"sale_date" binding:"required"`
	TotalAmount decimal.Decimal `json:"total_amount" binding:"required"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID                uuid.UUID       `json:"id"`
	SaleNumber        string          `json:"sale_number"`
	BuyerID           uuid.UUID       `json:"buyer_id"`
	BuyerName         string          `json:"buyer_name"`
	FarmerID          uuid.UUID       `json:"farmer_id"`
	FarmerName        string          `json:"farmer_name"`
	SelfSale          bool            `json:"self_sale"`
	SaleDate          time.Time       `json:"sale_date"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	CreatedAt         time.Time       `json:"created_at"`
}

func saleToResponse(sale *inventory.SaleRecord) *SaleResponse {
	return &SaleResponse{
		ID:                sale.ID,
		SaleNumber:        sale.SaleNumber,
		BuyerID:           sale.BuyerID,
		BuyerName:         sale.BuyerName,
		FarmerID:          sale.FarmerID,
		FarmerName:        sale.FarmerName,
		SelfSale:          sale.SelfSale,
		SaleDate:          sale.SaleDate,
		TotalAmount:       sale.TotalAmount,
		OutstandingAmount: sale.OutstandingAmount,
		CreatedAt:         sale.CreatedAt,
	}
}

// CreateSale records a credit sale. A self-sale is the farmer buying back
// their own goods; the buyer slot then carries the farmer.
func (s *SaleService) CreateSale(ctx context.Context, tenantID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	farmer, err := s.directory.FarmerByID(ctx, tenantID, req.FarmerID)
	if err != nil {
		return nil, err
	}

	buyerID := farmer.ID
	buyerName := farmer.Name
	if !req.SelfSale {
		if req.BuyerID == nil {
			return nil, shared.NewDomainError("MISSING_COUNTERPARTY", "Sales must name a buyer unless marked as self-sale")
		}
		buyer, err := s.directory.BuyerByID(ctx, tenantID, *req.BuyerID)
		if err != nil {
			return nil, err
		}
		buyerID = buyer.ID
		buyerName = buyer.Name
	}

	sale, err := inventory.NewSaleRecord(tenantID, req.SaleNumber,
		buyerID, buyerName, farmer.ID, farmer.Name, req.SelfSale,
		req.SaleDate, valueobject.NewMoneyINR(req.TotalAmount))
	if err != nil {
		return nil, err
	}
	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}
	return saleToResponse(sale), nil
}

// GetSale returns one sale.
func (s *SaleService) GetSale(ctx context.Context, tenantID, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForTenant(ctx, tenantID, saleID)
	if err != nil {
		return nil, err
	}
	return saleToResponse(sale), nil
}

// ListSales lists sales with paging.
func (s *SaleService) ListSales(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[SaleResponse], error) {
	sales, err := s.saleRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.saleRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		responses = append(responses, *saleToResponse(&sales[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}
