package models

import (
	"time"

	"github.com/coldstore/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRecordModel persists credit sales.
type SaleRecordModel struct {
	TenantAggregateModel
	SaleNumber        string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_sale_number,composite:tenant_sale"`
	BuyerID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	BuyerName         string          `gorm:"type:varchar(200);not null"`
	FarmerID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	FarmerName        string          `gorm:"type:varchar(200);not null"`
	SelfSale          bool            `gorm:"not null;default:false"`
	SaleDate          time.Time       `gorm:"not null;index"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	OutstandingAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

// TableName specifies the table name for SaleRecordModel
func (SaleRecordModel) TableName() string {
	return "sale_records"
}

// FromDomainSaleRecord populates the model from the aggregate.
func (m *SaleRecordModel) FromDomainSaleRecord(s *inventory.SaleRecord) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.SaleNumber = s.SaleNumber
	m.BuyerID = s.BuyerID
	m.BuyerName = s.BuyerName
	m.FarmerID = s.FarmerID
	m.FarmerName = s.FarmerName
	m.SelfSale = s.SelfSale
	m.SaleDate = s.SaleDate
	m.TotalAmount = s.TotalAmount
	m.OutstandingAmount = s.OutstandingAmount
}

// ToDomain converts the model back to the aggregate.
func (m *SaleRecordModel) ToDomain() *inventory.SaleRecord {
	return &inventory.SaleRecord{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		SaleNumber:          m.SaleNumber,
		BuyerID:             m.BuyerID,
		BuyerName:           m.BuyerName,
		FarmerID:            m.FarmerID,
		FarmerName:          m.FarmerName,
		SelfSale:            m.SelfSale,
		SaleDate:            m.SaleDate,
		TotalAmount:         m.TotalAmount,
		OutstandingAmount:   m.OutstandingAmount,
	}
}
