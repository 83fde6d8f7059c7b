package models

import (
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for ledger accounts.
// The display code is derived from Category and Number and never stored.
type AccountModel struct {
	StoreAggregateModel
	Number         uint64                  `gorm:"not null;index"`
	Name           string                  `gorm:"type:varchar(200);not null"`
	Category       finance.AccountCategory `gorm:"type:varchar(20);not null;index"`
	ParentID       *uuid.UUID              `gorm:"type:uuid;index"`
	Description    string                  `gorm:"type:text"`
	OpeningBalance int64                   `gorm:"not null;default:0"`
	IsActive       bool                    `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account
func (m *AccountModel) ToDomain() *finance.Account {
	a := &finance.Account{
		Number:         m.Number,
		Name:           m.Name,
		Category:       m.Category,
		ParentID:       m.ParentID,
		Description:    m.Description,
		OpeningBalance: m.OpeningBalance,
		IsActive:       m.IsActive,
	}
	m.PopulateStoreAggregateRoot(&a.StoreAggregateRoot)
	return a
}

// FromDomain populates the persistence model from a domain Account
func (m *AccountModel) FromDomain(a *finance.Account) {
	m.FromDomainStoreAggregateRoot(a.StoreAggregateRoot)
	m.Number = a.Number
	m.Name = a.Name
	m.Category = a.Category
	m.ParentID = a.ParentID
	m.Description = a.Description
	m.OpeningBalance = a.OpeningBalance
	m.IsActive = a.IsActive
}

// AccountModelFromDomain creates a new persistence model from a domain Account
func AccountModelFromDomain(a *finance.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// TransactionModel is the persistence model for income and expense postings
type TransactionModel struct {
	StoreAggregateModel
	AccountID   uuid.UUID               `gorm:"type:uuid;not null;index"`
	Type        finance.TransactionType `gorm:"type:varchar(20);not null"`
	Amount      int64                   `gorm:"not null"`
	Date        time.Time               `gorm:"not null;index"`
	Description string                  `gorm:"type:varchar(500)"`
	Reference   string                  `gorm:"type:varchar(100)"`
	ContactID   *uuid.UUID              `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction
func (m *TransactionModel) ToDomain() *finance.Transaction {
	t := &finance.Transaction{
		AccountID:   m.AccountID,
		Type:        m.Type,
		Amount:      m.Amount,
		Date:        m.Date,
		Description: m.Description,
		Reference:   m.Reference,
		ContactID:   m.ContactID,
	}
	m.PopulateStoreAggregateRoot(&t.StoreAggregateRoot)
	return t
}

// FromDomain populates the persistence model from a domain Transaction
func (m *TransactionModel) FromDomain(t *finance.Transaction) {
	m.FromDomainStoreAggregateRoot(t.StoreAggregateRoot)
	m.AccountID = t.AccountID
	m.Type = t.Type
	m.Amount = t.Amount
	m.Date = t.Date
	m.Description = t.Description
	m.Reference = t.Reference
	m.ContactID = t.ContactID
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction
func TransactionModelFromDomain(t *finance.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}

// DocumentModel is the persistence model for invoices and bills
type DocumentModel struct {
	StoreAggregateModel
	Kind            finance.DocumentKind   `gorm:"type:varchar(20);not null;index"`
	Number          string                 `gorm:"type:varchar(50);not null"`
	ContactID       uuid.UUID              `gorm:"type:uuid;not null;index"`
	IssueDate       time.Time              `gorm:"not null"`
	DueDate         *time.Time             `gorm:"index"`
	Currency        valueobject.Currency   `gorm:"type:char(3);not null"`
	TransportCost   int64                  `gorm:"not null;default:0"`
	PaymentReceived int64                  `gorm:"not null;default:0"`
	Status          finance.DocumentStatus `gorm:"type:varchar(20);not null;index"`
	Notes           string                 `gorm:"type:text"`
	Subtotal        int64                  `gorm:"not null;default:0"`
	TaxAmount       int64                  `gorm:"not null;default:0"`
	TotalAmount     int64                  `gorm:"not null;default:0"`
	SubmittedAt     *time.Time
	PaidAt          *time.Time
	Items           []DocumentItemModel `gorm:"foreignKey:DocumentID;references:ID"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document.
// Items come back in their stored position order.
func (m *DocumentModel) ToDomain() *finance.Document {
	d := &finance.Document{
		Kind:            m.Kind,
		Number:          m.Number,
		ContactID:       m.ContactID,
		IssueDate:       m.IssueDate,
		DueDate:         m.DueDate,
		Currency:        m.Currency,
		TransportCost:   m.TransportCost,
		PaymentReceived: m.PaymentReceived,
		Status:          m.Status,
		Notes:           m.Notes,
		Subtotal:        m.Subtotal,
		TaxAmount:       m.TaxAmount,
		TotalAmount:     m.TotalAmount,
		SubmittedAt:     m.SubmittedAt,
		PaidAt:          m.PaidAt,
		Items:           make([]finance.LineItem, len(m.Items)),
	}
	m.PopulateStoreAggregateRoot(&d.StoreAggregateRoot)
	for i := range m.Items {
		d.Items[i] = m.Items[i].ToDomain()
	}
	return d
}

// FromDomain populates the persistence model from a domain Document
func (m *DocumentModel) FromDomain(d *finance.Document) {
	m.FromDomainStoreAggregateRoot(d.StoreAggregateRoot)
	m.Kind = d.Kind
	m.Number = d.Number
	m.ContactID = d.ContactID
	m.IssueDate = d.IssueDate
	m.DueDate = d.DueDate
	m.Currency = d.Currency
	m.TransportCost = d.TransportCost
	m.PaymentReceived = d.PaymentReceived
	m.Status = d.Status
	m.Notes = d.Notes
	m.Subtotal = d.Subtotal
	m.TaxAmount = d.TaxAmount
	m.TotalAmount = d.TotalAmount
	m.SubmittedAt = d.SubmittedAt
	m.PaidAt = d.PaidAt
	m.Items = make([]DocumentItemModel, len(d.Items))
	for i := range d.Items {
		m.Items[i].FromDomain(d.ID, i, d.Items[i])
	}
}

// DocumentModelFromDomain creates a new persistence model from a domain Document
func DocumentModelFromDomain(d *finance.Document) *DocumentModel {
	m := &DocumentModel{}
	m.FromDomain(d)
	return m
}

// DocumentItemModel is one line item row of a document
type DocumentItemModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	DocumentID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position        int             `gorm:"not null"`
	ProductID       *uuid.UUID      `gorm:"type:uuid;index"`
	Description     string          `gorm:"type:varchar(500)"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice       int64           `gorm:"not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	TaxRatePercent  decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	Amount          int64           `gorm:"not null"`
	TaxAmount       int64           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DocumentItemModel) TableName() string {
	return "document_items"
}

// ToDomain converts the row to a domain LineItem
func (m *DocumentItemModel) ToDomain() finance.LineItem {
	return finance.LineItem{
		ID:              m.ID,
		ProductID:       m.ProductID,
		Description:     m.Description,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		DiscountPercent: m.DiscountPercent,
		TaxRatePercent:  m.TaxRatePercent,
		Amount:          m.Amount,
		TaxAmount:       m.TaxAmount,
	}
}

// FromDomain populates the row from a domain LineItem at the given position
func (m *DocumentItemModel) FromDomain(documentID uuid.UUID, position int, li finance.LineItem) {
	m.ID = li.ID
	m.DocumentID = documentID
	m.Position = position
	m.ProductID = li.ProductID
	m.Description = li.Description
	m.Quantity = li.Quantity
	m.UnitPrice = li.UnitPrice
	m.DiscountPercent = li.DiscountPercent
	m.TaxRatePercent = li.TaxRatePercent
	m.Amount = li.Amount
	m.TaxAmount = li.TaxAmount
}

// SequenceModel is a per-store named counter used for account numbers and
// document numbers
type SequenceModel struct {
	StoreID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(50);primaryKey"`
	LastValue uint64    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (SequenceModel) TableName() string {
	return "store_sequences"
}
