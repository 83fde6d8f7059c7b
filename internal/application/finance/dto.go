package finance

import (
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance/editor"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ===================== Accounts =====================

// CreateAccountRequest represents a request to create an account
type CreateAccountRequest struct {
	Name           string     `json:"name" binding:"required,min=1,max=100"`
	Category       string     `json:"category" binding:"required,oneof=asset liability equity income expense"`
	ParentID       *uuid.UUID `json:"parent_id"`
	Description    string     `json:"description" binding:"max=1000"`
	OpeningBalance int64      `json:"opening_balance"`
}

// UpdateAccountRequest represents a request to update an account
type UpdateAccountRequest struct {
	Name           *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Description    *string    `json:"description" binding:"omitempty,max=1000"`
	ParentID       *uuid.UUID `json:"parent_id"`
	ClearParent    bool       `json:"clear_parent"`
	OpeningBalance *int64     `json:"opening_balance"`
	Active         *bool      `json:"active"`
}

// AccountListFilter represents filter options for the account list
type AccountListFilter struct {
	Search     string `form:"search"`
	Category   string `form:"category" binding:"omitempty,oneof=asset liability equity income expense"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID             uuid.UUID  `json:"id"`
	Number         uint64     `json:"number"`
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	CategoryLabel  string     `json:"category_label"`
	ParentID       *uuid.UUID `json:"parent_id,omitempty"`
	Description    string     `json:"description"`
	OpeningBalance int64      `json:"opening_balance"`
	Balance        int64      `json:"balance"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Version        int        `json:"version"`
}

// ToAccountResponse converts a domain Account; balance is supplied by the caller
func ToAccountResponse(a *finance.Account, balance int64) AccountResponse {
	return AccountResponse{
		ID:             a.ID,
		Number:         a.Number,
		Code:           a.Code(),
		Name:           a.Name,
		Category:       string(a.Category),
		CategoryLabel:  a.Category.Label(),
		ParentID:       a.ParentID,
		Description:    a.Description,
		OpeningBalance: a.OpeningBalance,
		Balance:        balance,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
		Version:        a.Version,
	}
}

// ChartRequest selects which chart rows are expanded
type ChartRequest struct {
	Expanded  []string `form:"expanded"`
	ExpandAll bool     `form:"expand_all"`
}

// ChartResponse is the visible part of the chart of accounts
type ChartResponse struct {
	Rows     []finance.ChartRow `json:"rows"`
	Expanded []string           `json:"expanded"`
}

// AccountCodeResponse is a display code preview
type AccountCodeResponse struct {
	Category string `json:"category"`
	ID       uint64 `json:"id"`
	Code     string `json:"code"`
}

// ===================== Transactions =====================

// CreateTransactionRequest represents a request to record a transaction
type CreateTransactionRequest struct {
	AccountID   uuid.UUID  `json:"account_id" binding:"required"`
	Type        string     `json:"type" binding:"required,oneof=income expense"`
	Amount      int64      `json:"amount" binding:"required,gt=0"`
	Date        time.Time  `json:"date" binding:"required"`
	Description string     `json:"description" binding:"max=500"`
	Reference   string     `json:"reference" binding:"max=100"`
	ContactID   *uuid.UUID `json:"contact_id"`
}

// UpdateTransactionRequest represents a request to update a transaction
type UpdateTransactionRequest struct {
	AccountID   *uuid.UUID `json:"account_id"`
	Type        *string    `json:"type" binding:"omitempty,oneof=income expense"`
	Amount      *int64     `json:"amount" binding:"omitempty,gt=0"`
	Date        *time.Time `json:"date"`
	Description *string    `json:"description" binding:"omitempty,max=500"`
	Reference   *string    `json:"reference" binding:"omitempty,max=100"`
	ContactID   *uuid.UUID `json:"contact_id"`
}

// TransactionListFilter represents filter options for the transaction list
type TransactionListFilter struct {
	Search    string     `form:"search"`
	AccountID *uuid.UUID `form:"account_id"`
	Type      string     `form:"type" binding:"omitempty,oneof=income expense"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          uuid.UUID  `json:"id"`
	AccountID   uuid.UUID  `json:"account_id"`
	Type        string     `json:"type"`
	Amount      int64      `json:"amount"`
	Date        time.Time  `json:"date"`
	Description string     `json:"description"`
	Reference   string     `json:"reference"`
	ContactID   *uuid.UUID `json:"contact_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
}

// ToTransactionResponse converts a domain Transaction
func ToTransactionResponse(t *finance.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Type:        string(t.Type),
		Amount:      t.Amount,
		Date:        t.Date,
		Description: t.Description,
		Reference:   t.Reference,
		ContactID:   t.ContactID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Version:     t.Version,
	}
}

// ===================== Invoices and bills =====================

// LineItemRequest is a line item as submitted by clients. A missing tax
// rate falls back to the product's rate, then to the store default.
type LineItemRequest struct {
	ProductID       *uuid.UUID       `json:"product_id"`
	Description     string           `json:"description" binding:"max=500"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       int64            `json:"unit_price" binding:"min=0"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	TaxRatePercent  *decimal.Decimal `json:"tax_rate_percent"`
}

// CreateDocumentRequest represents a request to create an invoice or bill
type CreateDocumentRequest struct {
	Number        string            `json:"number" binding:"max=50"`
	ContactID     uuid.UUID         `json:"contact_id" binding:"required"`
	IssueDate     time.Time         `json:"issue_date" binding:"required"`
	DueDate       *time.Time        `json:"due_date"`
	Currency      string            `json:"currency" binding:"omitempty,len=3,uppercase"`
	Notes         string            `json:"notes" binding:"max=2000"`
	Items         []LineItemRequest `json:"items" binding:"dive"`
	TransportCost int64             `json:"transport_cost" binding:"min=0"`
}

// AdjustmentRequest sets the transport cost of a document
type AdjustmentRequest struct {
	TransportCost int64 `json:"transport_cost" binding:"min=0"`
}

// PaymentRequest records a payment against a document
type PaymentRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// StatusRequest changes a document status by hand
type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft sent paid overdue cancelled"`
}

// DocumentListFilter represents filter options for the document list
type DocumentListFilter struct {
	Search    string     `form:"search"`
	Status    string     `form:"status" binding:"omitempty,oneof=draft sent paid overdue cancelled"`
	ContactID *uuid.UUID `form:"contact_id"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// DocumentResponse represents an invoice or bill in API responses
type DocumentResponse struct {
	ID              uuid.UUID          `json:"id"`
	Kind            string             `json:"kind"`
	Number          string             `json:"number"`
	ContactID       uuid.UUID          `json:"contact_id"`
	IssueDate       time.Time          `json:"issue_date"`
	DueDate         *time.Time         `json:"due_date,omitempty"`
	Currency        string             `json:"currency"`
	Items           []finance.LineItem `json:"items"`
	Subtotal        int64              `json:"subtotal"`
	TaxAmount       int64              `json:"tax_amount"`
	TransportCost   int64              `json:"transport_cost"`
	TotalAmount     int64              `json:"total_amount"`
	PaymentReceived int64              `json:"payment_received"`
	BalanceDue      int64              `json:"balance_due"`
	Status          string             `json:"status"`
	Notes           string             `json:"notes"`
	SubmittedAt     *time.Time         `json:"submitted_at,omitempty"`
	PaidAt          *time.Time         `json:"paid_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Version         int                `json:"version"`
}

// DocumentListItem is the compact list representation
type DocumentListItem struct {
	ID              uuid.UUID  `json:"id"`
	Number          string     `json:"number"`
	ContactID       uuid.UUID  `json:"contact_id"`
	IssueDate       time.Time  `json:"issue_date"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	TotalAmount     int64      `json:"total_amount"`
	PaymentReceived int64      `json:"payment_received"`
	Status          string     `json:"status"`
}

// ToDocumentResponse converts a domain Document
func ToDocumentResponse(d *finance.Document) DocumentResponse {
	items := d.Items
	if items == nil {
		items = []finance.LineItem{}
	}
	return DocumentResponse{
		ID:              d.ID,
		Kind:            string(d.Kind),
		Number:          d.Number,
		ContactID:       d.ContactID,
		IssueDate:       d.IssueDate,
		DueDate:         d.DueDate,
		Currency:        string(d.Currency),
		Items:           items,
		Subtotal:        d.Subtotal,
		TaxAmount:       d.TaxAmount,
		TransportCost:   d.TransportCost,
		TotalAmount:     d.TotalAmount,
		PaymentReceived: d.PaymentReceived,
		BalanceDue:      d.BalanceDue(),
		Status:          string(d.Status),
		Notes:           d.Notes,
		SubmittedAt:     d.SubmittedAt,
		PaidAt:          d.PaidAt,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		Version:         d.Version,
	}
}

// ToDocumentListItem converts a domain Document to its list form
func ToDocumentListItem(d *finance.Document) DocumentListItem {
	return DocumentListItem{
		ID:              d.ID,
		Number:          d.Number,
		ContactID:       d.ContactID,
		IssueDate:       d.IssueDate,
		DueDate:         d.DueDate,
		TotalAmount:     d.TotalAmount,
		PaymentReceived: d.PaymentReceived,
		Status:          string(d.Status),
	}
}

// ===================== Calculator =====================

// EditorEventDTO is one editor event in a calculate request
type EditorEventDTO struct {
	Type   string            `json:"type" binding:"required,oneof=add_line update_line remove_line set_adjustment set_payment_received set_status"`
	Key    string            `json:"key"`
	Line   *editor.LineDraft `json:"line"`
	Value  string            `json:"value"`
	Status string            `json:"status"`
}

// CalculateRequest replays editor events from an empty document
type CalculateRequest struct {
	Kind   string           `json:"kind" binding:"required,oneof=invoice bill"`
	Status string           `json:"status" binding:"omitempty,oneof=draft sent paid overdue cancelled"`
	Events []EditorEventDTO `json:"events" binding:"dive"`
}

// CalculateResponse is the resulting editor state
type CalculateResponse struct {
	editor.State
	Errors    finance.ValidationErrors `json:"errors,omitempty"`
	CanSubmit bool                     `json:"can_submit"`
}

// ConvertResponse shows how an amount string is read
type ConvertResponse struct {
	Input      string `json:"input"`
	Valid      bool   `json:"valid"`
	MinorUnits int64  `json:"minor_units"`
	Decimal    string `json:"decimal"`
	Display    string `json:"display"`
}
