package partner

import (
	"context"
	"time"

	"github.com/coldstore/backend/internal/domain/partner"
	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartnerService manages the buyer and farmer directory.
type PartnerService struct {
	buyerRepo  partner.BuyerRepository
	farmerRepo partner.FarmerRepository
}

// NewPartnerService creates a PartnerService.
func NewPartnerService(buyerRepo partner.BuyerRepository, farmerRepo partner.FarmerRepository) *PartnerService {
	return &PartnerService{buyerRepo: buyerRepo, farmerRepo: farmerRepo}
}

// CreateBuyerRequest represents a request to register a buyer
type CreateBuyerRequest struct {
	Name    string `json:"name" binding:"required"`
	Village string `json:"village"`
	Phone   string `json:"phone"`
}

// BuyerResponse represents a buyer in API responses
type BuyerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Village   string    `json:"village,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateFarmerRequest represents a request to register a farmer
type CreateFarmerRequest struct {
	Name        string          `json:"name" binding:"required"`
	Village     string          `json:"village"`
	Phone       string          `json:"phone"`
	Receivables decimal.Decimal `json:"receivables"`
}

// UpdateFarmerReceivablesRequest replaces a farmer's standing receivables
type UpdateFarmerReceivablesRequest struct {
	Receivables decimal.Decimal `json:"receivables" binding:"required"`
}

// UpdatePartnerRequest represents a directory detail update
type UpdatePartnerRequest struct {
	Name    string `json:"name" binding:"required"`
	Village string `json:"village"`
	Phone   string `json:"phone"`
}

// FarmerResponse represents a farmer in API responses
type FarmerResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Village     string          `json:"village,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Receivables decimal.Decimal `json:"receivables"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func buyerToResponse(b *partner.Buyer) *BuyerResponse {
	return &BuyerResponse{
		ID:        b.ID,
		Name:      b.Name,
		Village:   b.Village,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func farmerToResponse(f *partner.Farmer) *FarmerResponse {
	return &FarmerResponse{
		ID:          f.ID,
		Name:        f.Name,
		Village:     f.Village,
		Phone:       f.Phone,
		Receivables: f.Receivables,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// CreateBuyer registers a buyer.
func (s *PartnerService) CreateBuyer(ctx context.Context, tenantID uuid.UUID, req CreateBuyerRequest) (*BuyerResponse, error) {
	buyer, err := partner.NewBuyer(tenantID, req.Name, req.Village, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.buyerRepo.Save(ctx, buyer); err != nil {
		return nil, err
	}
	return buyerToResponse(buyer), nil
}

// GetBuyer returns one buyer.
func (s *PartnerService) GetBuyer(ctx context.Context, tenantID, buyerID uuid.UUID) (*BuyerResponse, error) {
	buyer, err := s.buyerRepo.FindByIDForTenant(ctx, tenantID, buyerID)
	if err != nil {
		return nil, err
	}
	return buyerToResponse(buyer), nil
}

// ListBuyers lists buyers with paging and name search.
func (s *PartnerService) ListBuyers(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[BuyerResponse], error) {
	buyers, err := s.buyerRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.buyerRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]BuyerResponse, 0, len(buyers))
	for i := range buyers {
		responses = append(responses, *buyerToResponse(&buyers[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateBuyer changes a buyer's directory details. Entries keep the name they
// were booked with; only the directory row changes.
func (s *PartnerService) UpdateBuyer(ctx context.Context, tenantID, buyerID uuid.UUID, req UpdatePartnerRequest) (*BuyerResponse, error) {
	buyer, err := s.buyerRepo.FindByIDForTenant(ctx, tenantID, buyerID)
	if err != nil {
		return nil, err
	}
	if err := buyer.Update(req.Name, req.Village, req.Phone); err != nil {
		return nil, err
	}
	if err := s.buyerRepo.Save(ctx, buyer); err != nil {
		return nil, err
	}
	return buyerToResponse(buyer), nil
}

// CreateFarmer registers a farmer.
func (s *PartnerService) CreateFarmer(ctx context.Context, tenantID uuid.UUID, req CreateFarmerRequest) (*FarmerResponse, error) {
	farmer, err := partner.NewFarmer(tenantID, req.Name, req.Village, req.Phone, req.Receivables)
	if err != nil {
		return nil, err
	}
	if err := s.farmerRepo.Save(ctx, farmer); err != nil {
		return nil, err
	}
	return farmerToResponse(farmer), nil
}

// GetFarmer returns one farmer.
func (s *PartnerService) GetFarmer(ctx context.Context, tenantID, farmerID uuid.UUID) (*FarmerResponse, error) {
	farmer, err := s.farmerRepo.FindByIDForTenant(ctx, tenantID, farmerID)
	if err != nil {
		return nil, err
	}
	return farmerToResponse(farmer), nil
}

// ListFarmers lists farmers with paging and name search.
func (s *PartnerService) ListFarmers(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[FarmerResponse], error) {
	farmers, err := s.farmerRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.farmerRepo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]FarmerResponse, 0, len(farmers))
	for i := range farmers {
		responses = append(responses, *farmerToResponse(&farmers[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateFarmer changes a farmer's directory details.
func (s *PartnerService) UpdateFarmer(ctx context.Context, tenantID, farmerID uuid.UUID, req UpdatePartnerRequest) (*FarmerResponse, error) {
	farmer, err := s.farmerRepo.FindByIDForTenant(ctx, tenantID, farmerID)
	if err != nil {
		return nil, err
	}
	if err := farmer.Update(req.Name, req.Village, req.Phone); err != nil {
		return nil, err
	}
	if err := s.farmerRepo.Save(ctx, farmer); err != nil {
		return nil, err
	}
	return farmerToResponse(farmer), nil
}

// SetFarmerReceivables replaces a farmer's standing receivables balance.
func (s *PartnerService) SetFarmerReceivables(ctx context.Context, tenantID, farmerID uuid.UUID, req UpdateFarmerReceivablesRequest) (*FarmerResponse, error) {
	farmer, err := s.farmerRepo.FindByIDForTenant(ctx, tenantID, farmerID)
	if err != nil {
		return nil, err
	}
	if err := farmer.SetReceivables(req.Receivables); err != nil {
		return nil, err
	}
	if err := s.farmerRepo.Save(ctx, farmer); err != nil {
		return nil, err
	}
	return farmerToResponse(farmer), nil
}
