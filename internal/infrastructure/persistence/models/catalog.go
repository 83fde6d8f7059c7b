package models

import (
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	StoreAggregateModel
	SKU            string                `gorm:"type:varchar(64);not null;index"`
	Name           string                `gorm:"type:varchar(200);not null"`
	Description    string                `gorm:"type:text"`
	Category       string                `gorm:"type:varchar(100);index"`
	Price          int64                 `gorm:"not null;default:0"`
	TaxRatePercent decimal.Decimal       `gorm:"type:decimal(9,4);not null;default:0"`
	ImageURL       string                `gorm:"type:varchar(500)"`
	Status         catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		SKU:            m.SKU,
		Name:           m.Name,
		Description:    m.Description,
		Category:       m.Category,
		Price:          m.Price,
		TaxRatePercent: m.TaxRatePercent,
		ImageURL:       m.ImageURL,
		Status:         m.Status,
	}
	m.PopulateStoreAggregateRoot(&p.StoreAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainStoreAggregateRoot(p.StoreAggregateRoot)
	m.SKU = p.SKU
	m.Name = p.Name
	m.Description = p.Description
	m.Category = p.Category
	m.Price = p.Price
	m.TaxRatePercent = p.TaxRatePercent
	m.ImageURL = p.ImageURL
	m.Status = p.Status
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
