package finance

import (
	"fmt"
	"strings"
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// DocumentKind distinguishes invoices (money owed to the store) from bills
// (money the store owes)
type DocumentKind string

const (
	KindInvoice DocumentKind = "invoice"
	KindBill    DocumentKind = "bill"
)

// IsValid checks if the kind is valid
func (k DocumentKind) IsValid() bool {
	return k == KindInvoice || k == KindBill
}

// String returns the string representation of DocumentKind
func (k DocumentKind) String() string {
	return string(k)
}

// AggregateType returns the aggregate name used in events
func (k DocumentKind) AggregateType() string {
	if k == KindBill {
		return "Bill"
	}
	return "Invoice"
}

// Document is an invoice or bill aggregate root. Totals are derived from the
// items and the transport cost on every mutation.
type Document struct {
	shared.StoreAggregateRoot
	Kind            DocumentKind         `json:"kind"`
	Number          string               `json:"number"`
	ContactID       uuid.UUID            `json:"contact_id"`
	IssueDate       time.Time            `json:"issue_date"`
	DueDate         *time.Time           `json:"due_date,omitempty"`
	Currency        valueobject.Currency `json:"currency"`
	Items           []LineItem           `json:"items"`
	TransportCost   int64                `json:"transport_cost"`
	PaymentReceived int64                `json:"payment_received"`
	Status          DocumentStatus       `json:"status"`
	Notes           string               `json:"notes"`
	Subtotal        int64                `json:"subtotal"`
	TaxAmount       int64                `json:"tax_amount"`
	TotalAmount     int64                `json:"total_amount"`
	SubmittedAt     *time.Time           `json:"submitted_at,omitempty"`
	PaidAt          *time.Time           `json:"paid_at,omitempty"`
}

// NewDocument creates a draft invoice or bill with no items
func NewDocument(storeID uuid.UUID, kind DocumentKind, number string, contactID uuid.UUID, issueDate time.Time, dueDate *time.Time, currency valueobject.Currency) (*Document, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", fmt.Sprintf("Unknown document kind %q", kind))
	}
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot exceed 50 characters")
	}
	if contactID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Contact ID cannot be empty")
	}
	if issueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Issue date is required")
	}
	if dueDate != nil && dueDate.Before(issueDate) {
		return nil, shared.NewDomainError("INVALID_DATE", "Due date cannot be before issue date")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("Invalid currency %q", currency))
	}

	doc := &Document{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Kind:               kind,
		Number:             number,
		ContactID:          contactID,
		IssueDate:          issueDate,
		DueDate:            dueDate,
		Currency:           currency,
		Items:              make([]LineItem, 0),
		Status:             StatusDraft,
	}
	doc.AddDomainEvent(NewDocumentCreatedEvent(doc))
	return doc, nil
}

// Totals returns the current derived totals
func (d *Document) Totals() DocumentTotals {
	return DocumentTotals{
		Subtotal:    d.Subtotal,
		TaxAmount:   d.TaxAmount,
		Adjustment:  d.TransportCost,
		TotalAmount: d.TotalAmount,
	}
}

// BalanceDue returns the unpaid part of the total, never negative
func (d *Document) BalanceDue() int64 {
	if d.PaymentReceived >= d.TotalAmount {
		return 0
	}
	return d.TotalAmount - d.PaymentReceived
}

// AddItem appends a line item and recalculates totals
func (d *Document) AddItem(input LineItemInput) (*LineItem, error) {
	if err := d.checkItemsEditable(); err != nil {
		return nil, err
	}
	item, err := NewLineItem(input)
	if err != nil {
		return nil, err
	}
	items := append(append(make([]LineItem, 0, len(d.Items)+1), d.Items...), *item)
	if err := d.setTotals(items, d.TransportCost); err != nil {
		return nil, err
	}
	d.IncrementVersion()
	return item, nil
}

// UpdateItem replaces the inputs of an existing line item
func (d *Document) UpdateItem(itemID uuid.UUID, input LineItemInput) error {
	if err := d.checkItemsEditable(); err != nil {
		return err
	}
	idx := d.itemIndex(itemID)
	if idx < 0 {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Line item not found")
	}
	items := append(make([]LineItem, 0, len(d.Items)), d.Items...)
	if err := items[idx].apply(input); err != nil {
		return err
	}
	if err := d.setTotals(items, d.TransportCost); err != nil {
		return err
	}
	d.IncrementVersion()
	return nil
}

// RemoveItem deletes a line item; its contribution leaves the totals
func (d *Document) RemoveItem(itemID uuid.UUID) error {
	if err := d.checkItemsEditable(); err != nil {
		return err
	}
	idx := d.itemIndex(itemID)
	if idx < 0 {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Line item not found")
	}
	items := append(append(make([]LineItem, 0, len(d.Items)-1), d.Items[:idx]...), d.Items[idx+1:]...)
	if err := d.setTotals(items, d.TransportCost); err != nil {
		return err
	}
	d.IncrementVersion()
	return nil
}

// SetTransportCost sets the flat adjustment added after tax
func (d *Document) SetTransportCost(cents int64) error {
	if err := d.checkItemsEditable(); err != nil {
		return err
	}
	if cents < 0 {
		return shared.NewDomainError("INVALID_TRANSPORT_COST", "Transport cost cannot be negative")
	}
	if err := d.setTotals(d.Items, cents); err != nil {
		return err
	}
	d.IncrementVersion()
	return nil
}

// SetPaymentReceived replaces the payment received and re-derives the status
func (d *Document) SetPaymentReceived(cents int64) error {
	if d.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot record payment on a cancelled document")
	}
	if cents < 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment received cannot be negative")
	}
	d.PaymentReceived = cents
	d.applyInferredStatus()
	d.IncrementVersion()
	return nil
}

// RecordPayment adds a payment to the amount already received
func (d *Document) RecordPayment(cents int64) error {
	if cents <= 0 {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	total, err := valueobject.AddMinorUnits(d.PaymentReceived, cents)
	if err != nil {
		return shared.NewDomainError(CodeAmountRange, "Payment received would exceed the supported amount")
	}
	return d.SetPaymentReceived(total)
}

// ChangeStatus sets the status by hand. Any valid status may be chosen; the
// next payment change re-derives it.
func (d *Document) ChangeStatus(status DocumentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown status %q", status))
	}
	if status == d.Status {
		return nil
	}
	d.setStatus(status)
	d.IncrementVersion()
	return nil
}

// Submit issues a draft (draft becomes sent) and stamps SubmittedAt.
// Documents already past draft may be re-submitted; their status is kept.
func (d *Document) Submit() error {
	if d.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot submit a cancelled document")
	}
	if len(d.Items) == 0 {
		return shared.NewDomainError("EMPTY_DOCUMENT", "Document must have at least one line item")
	}
	if d.Status == StatusDraft {
		d.setStatus(StatusSent)
	}
	now := time.Now()
	d.SubmittedAt = &now
	d.IncrementVersion()
	d.AddDomainEvent(NewDocumentSubmittedEvent(d))
	return nil
}

// MarkOverdue moves a sent document past its due date to overdue.
// Returns true when the status changed.
func (d *Document) MarkOverdue(now time.Time) bool {
	if d.Status != StatusSent || d.DueDate == nil || !now.After(*d.DueDate) {
		return false
	}
	d.setStatus(StatusOverdue)
	d.IncrementVersion()
	return true
}

// Recalculate re-derives totals; used after loading from storage
func (d *Document) Recalculate() {
	for i := range d.Items {
		d.Items[i].Recalculate()
	}
	totals := ComputeDocumentTotals(d.Items, d.TransportCost)
	d.Subtotal = totals.Subtotal
	d.TaxAmount = totals.TaxAmount
	d.TotalAmount = totals.TotalAmount
}

// setTotals installs items and transport cost when their totals fit in cents
func (d *Document) setTotals(items []LineItem, transportCost int64) error {
	totals, err := ComputeDocumentTotalsChecked(items, transportCost)
	if err != nil {
		return ValidationErrors{NewValidationError("total_amount", CodeAmountRange, "Document total is too large")}
	}
	for i := range items {
		items[i].Recalculate()
	}
	d.Items = items
	d.TransportCost = transportCost
	d.Subtotal = totals.Subtotal
	d.TaxAmount = totals.TaxAmount
	d.TotalAmount = totals.TotalAmount
	return nil
}

func (d *Document) applyInferredStatus() {
	next := InferStatus(d.Status, d.TotalAmount, d.PaymentReceived)
	if next != d.Status {
		d.setStatus(next)
	}
}

func (d *Document) setStatus(status DocumentStatus) {
	d.Status = status
	if status == StatusPaid {
		now := time.Now()
		d.PaidAt = &now
		d.AddDomainEvent(NewDocumentPaidEvent(d))
		return
	}
	d.PaidAt = nil
}

func (d *Document) checkItemsEditable() error {
	if !d.Status.AllowsItemChanges() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot modify items of a %s document", d.Status))
	}
	return nil
}

func (d *Document) itemIndex(itemID uuid.UUID) int {
	for i := range d.Items {
		if d.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}
