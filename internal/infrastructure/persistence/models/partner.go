package models

import (
	"github.com/coldstore/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// BuyerModel persists buyers.
type BuyerModel struct {
	TenantAggregateModel
	Name    string `gorm:"type:varchar(200);not null;index"`
	Village string `gorm:"type:varchar(200)"`
	Phone   string `gorm:"type:varchar(20)"`
}

// TableName specifies the table name for BuyerModel
func (BuyerModel) TableName() string {
	return "buyers"
}

// FromDomainBuyer populates the model from the aggregate.
func (m *BuyerModel) FromDomainBuyer(b *partner.Buyer) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.Name = b.Name
	m.Village = b.Village
	m.Phone = b.Phone
}

// ToDomain converts the model back to the aggregate.
func (m *BuyerModel) ToDomain() *partner.Buyer {
	return &partner.Buyer{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Village:             m.Village,
		Phone:               m.Phone,
	}
}

// FarmerModel persists farmers with their standing receivables balance.
type FarmerModel struct {
	TenantAggregateModel
	Name        string          `gorm:"type:varchar(200);not null;index"`
	Village     string          `gorm:"type:varchar(200)"`
	Phone       string          `gorm:"type:varchar(20)"`
	Receivables decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
}

// TableName specifies the table name for FarmerModel
func (FarmerModel) TableName() string {
	return "farmers"
}

// FromDomainFarmer populates the model from the aggregate.
func (m *FarmerModel) FromDomainFarmer(f *partner.Farmer) {
	m.FromDomainTenantAggregateRoot(f.TenantAggregateRoot)
	m.Name = f.Name
	m.Village = f.Village
	m.Phone = f.Phone
	m.Receivables = f.Receivables
}

// ToDomain converts the model back to the aggregate.
func (m *FarmerModel) ToDomain() *partner.Farmer {
	return &partner.Farmer{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Village:             m.Village,
		Phone:               m.Phone,
		Receivables:         m.Receivables,
	}
}
