package models

import (
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/settings"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// StoreSettingsModel is the persistence model for per-store settings.
// The PWA block is stored as a JSON document.
type StoreSettingsModel struct {
	StoreAggregateModel
	BusinessName   string               `gorm:"type:varchar(200);not null"`
	Currency       valueobject.Currency `gorm:"type:char(3);not null"`
	DefaultTaxRate decimal.Decimal      `gorm:"type:decimal(9,4);not null;default:0"`
	InvoicePrefix  string               `gorm:"type:varchar(20);not null"`
	BillPrefix     string               `gorm:"type:varchar(20);not null"`
	PWA            settings.PWAConfig   `gorm:"serializer:json;type:jsonb"`
}

// TableName returns the table name for GORM
func (StoreSettingsModel) TableName() string {
	return "store_settings"
}

// ToDomain converts the persistence model to domain StoreSettings
func (m *StoreSettingsModel) ToDomain() *settings.StoreSettings {
	s := &settings.StoreSettings{
		BusinessName:   m.BusinessName,
		Currency:       m.Currency,
		DefaultTaxRate: m.DefaultTaxRate,
		InvoicePrefix:  m.InvoicePrefix,
		BillPrefix:     m.BillPrefix,
		PWA:            m.PWA,
	}
	m.PopulateStoreAggregateRoot(&s.StoreAggregateRoot)
	return s
}

// FromDomain populates the persistence model from domain StoreSettings
func (m *StoreSettingsModel) FromDomain(s *settings.StoreSettings) {
	m.FromDomainStoreAggregateRoot(s.StoreAggregateRoot)
	m.BusinessName = s.BusinessName
	m.Currency = s.Currency
	m.DefaultTaxRate = s.DefaultTaxRate
	m.InvoicePrefix = s.InvoicePrefix
	m.BillPrefix = s.BillPrefix
	m.PWA = s.PWA
}

// StoreSettingsModelFromDomain creates a new persistence model from domain StoreSettings
func StoreSettingsModelFromDomain(s *settings.StoreSettings) *StoreSettingsModel {
	m := &StoreSettingsModel{}
	m.FromDomain(s)
	return m
}
