package finance

import (
	"time"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
	"github.com/google/uuid"
)

// Event type names
const (
	EventTypeDocumentCreated   = "DocumentCreated"
	EventTypeDocumentSubmitted = "DocumentSubmitted"
	EventTypeDocumentPaid      = "DocumentPaid"
)

// DocumentCreatedEvent is raised when an invoice or bill is created
type DocumentCreatedEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID    `json:"document_id"`
	Kind       DocumentKind `json:"kind"`
	Number     string       `json:"number"`
	ContactID  uuid.UUID    `json:"contact_id"`
}

// NewDocumentCreatedEvent creates a new DocumentCreatedEvent
func NewDocumentCreatedEvent(d *Document) *DocumentCreatedEvent {
	return &DocumentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentCreated, d.Kind.AggregateType(), d.ID, d.StoreID),
		DocumentID:      d.ID,
		Kind:            d.Kind,
		Number:          d.Number,
		ContactID:       d.ContactID,
	}
}

// DocumentSubmittedEvent is raised when a document is submitted; it carries
// the full integer-cents payload for downstream consumers.
type DocumentSubmittedEvent struct {
	shared.BaseDomainEvent
	DocumentID      uuid.UUID      `json:"document_id"`
	Kind            DocumentKind   `json:"kind"`
	Number          string         `json:"number"`
	ContactID       uuid.UUID      `json:"contact_id"`
	Status          DocumentStatus `json:"status"`
	Items           []LineItem     `json:"items"`
	Totals          DocumentTotals `json:"totals"`
	PaymentReceived int64          `json:"payment_received"`
	SubmittedAt     time.Time      `json:"submitted_at"`
}

// NewDocumentSubmittedEvent creates a new DocumentSubmittedEvent
func NewDocumentSubmittedEvent(d *Document) *DocumentSubmittedEvent {
	submittedAt := time.Now()
	if d.SubmittedAt != nil {
		submittedAt = *d.SubmittedAt
	}
	items := make([]LineItem, len(d.Items))
	copy(items, d.Items)
	return &DocumentSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentSubmitted, d.Kind.AggregateType(), d.ID, d.StoreID),
		DocumentID:      d.ID,
		Kind:            d.Kind,
		Number:          d.Number,
		ContactID:       d.ContactID,
		Status:          d.Status,
		Items:           items,
		Totals:          d.Totals(),
		PaymentReceived: d.PaymentReceived,
		SubmittedAt:     submittedAt,
	}
}

// DocumentPaidEvent is raised when inference or a manual change marks a
// document paid
type DocumentPaidEvent struct {
	shared.BaseDomainEvent
	DocumentID      uuid.UUID    `json:"document_id"`
	Kind            DocumentKind `json:"kind"`
	Number          string       `json:"number"`
	TotalAmount     int64        `json:"total_amount"`
	PaymentReceived int64        `json:"payment_received"`
}

// NewDocumentPaidEvent creates a new DocumentPaidEvent
func NewDocumentPaidEvent(d *Document) *DocumentPaidEvent {
	return &DocumentPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentPaid, d.Kind.AggregateType(), d.ID, d.StoreID),
		DocumentID:      d.ID,
		Kind:            d.Kind,
		Number:          d.Number,
		TotalAmount:     d.TotalAmount,
		PaymentReceived: d.PaymentReceived,
	}
}
