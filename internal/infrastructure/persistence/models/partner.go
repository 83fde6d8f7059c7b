package models

import (
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/partner"
)

// ContactModel is the persistence model for customers and vendors
type ContactModel struct {
	StoreAggregateModel
	Kind    partner.ContactKind `gorm:"type:varchar(20);not null;index"`
	Name    string              `gorm:"type:varchar(200);not null"`
	Email   string              `gorm:"type:varchar(200)"`
	Phone   string              `gorm:"type:varchar(50)"`
	Address string              `gorm:"type:text"`
	TaxID   string              `gorm:"type:varchar(50)"`
	Notes   string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact
func (m *ContactModel) ToDomain() *partner.Contact {
	c := &partner.Contact{
		Kind:    m.Kind,
		Name:    m.Name,
		Email:   m.Email,
		Phone:   m.Phone,
		Address: m.Address,
		TaxID:   m.TaxID,
		Notes:   m.Notes,
	}
	m.PopulateStoreAggregateRoot(&c.StoreAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Contact
func (m *ContactModel) FromDomain(c *partner.Contact) {
	m.FromDomainStoreAggregateRoot(c.StoreAggregateRoot)
	m.Kind = c.Kind
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.TaxID = c.TaxID
	m.Notes = c.Notes
}

// ContactModelFromDomain creates a new persistence model from a domain Contact
func ContactModelFromDomain(c *partner.Contact) *ContactModel {
	m := &ContactModel{}
	m.FromDomain(c)
	return m
}
