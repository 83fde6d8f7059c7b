// Package editor holds the in-memory state of an invoice or bill being
// edited, and the pure update function that keeps its totals and status
// consistent with every change.
package editor

import (
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Phase of the document under edit
type Phase string

const (
	// PhaseEditingItems is the transient phase while a mutation is applied
	PhaseEditingItems Phase = "editing-items"
	// PhaseTotalsConsistent means Totals reflect the committed lines
	PhaseTotalsConsistent Phase = "totals-consistent"
)

// LineDraft is a line exactly as typed. Prices are major-unit text ("10.00").
type LineDraft struct {
	ProductID       string `json:"product_id"`
	Description     string `json:"description"`
	Quantity        string `json:"quantity"`
	UnitPrice       string `json:"unit_price"`
	DiscountPercent string `json:"discount_percent"`
	TaxRatePercent  string `json:"tax_rate_percent"`
}

// Line pairs a draft with the last valid values parsed from it. Committed is
// nil until the draft has been valid at least once.
type Line struct {
	Key       string                   `json:"key"`
	Draft     LineDraft                `json:"draft"`
	Committed *finance.LineItem        `json:"committed,omitempty"`
	Errors    finance.ValidationErrors `json:"errors,omitempty"`
}

// Valid reports whether the current draft parsed cleanly
func (l Line) Valid() bool {
	return len(l.Errors) == 0 && l.Committed != nil
}

// State is an immutable snapshot of a document under edit. Reduce never
// modifies its argument.
type State struct {
	Kind            finance.DocumentKind     `json:"kind"`
	Status          finance.DocumentStatus   `json:"status"`
	Lines           []Line                   `json:"lines"`
	AdjustmentDraft string                   `json:"adjustment_draft"`
	Adjustment      int64                    `json:"adjustment"`
	PaymentDraft    string                   `json:"payment_draft"`
	PaymentReceived int64                    `json:"payment_received"`
	Totals          finance.DocumentTotals   `json:"totals"`
	Phase           Phase                    `json:"phase"`
	FieldErrors     finance.ValidationErrors `json:"field_errors,omitempty"`

	products map[uuid.UUID]struct{}
}

// Option configures a new State
type Option func(*State)

// WithKnownProducts enables product reference checks; without it any
// well-formed product ID is accepted.
func WithKnownProducts(ids ...uuid.UUID) Option {
	return func(s *State) {
		s.products = make(map[uuid.UUID]struct{}, len(ids))
		for _, id := range ids {
			s.products[id] = struct{}{}
		}
	}
}

// WithStatus sets the starting status
func WithStatus(status finance.DocumentStatus) Option {
	return func(s *State) {
		s.Status = status
	}
}

// New returns an empty draft document of the given kind
func New(kind finance.DocumentKind, opts ...Option) State {
	s := State{
		Kind:            kind,
		Status:          finance.StatusDraft,
		Lines:           []Line{},
		AdjustmentDraft: "0.00",
		PaymentDraft:    "0.00",
		Phase:           PhaseTotalsConsistent,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// FromDocument loads a persisted document into an editable state
func FromDocument(doc *finance.Document, opts ...Option) State {
	s := New(doc.Kind, append([]Option{WithStatus(doc.Status)}, opts...)...)
	for _, item := range doc.Items {
		committed := item
		s.Lines = append(s.Lines, Line{
			Key:       item.ID.String(),
			Draft:     DraftFromItem(item),
			Committed: &committed,
		})
	}
	s.Adjustment = doc.TransportCost
	s.AdjustmentDraft = valueobject.FormatMinorUnits(doc.TransportCost)
	s.PaymentReceived = doc.PaymentReceived
	s.PaymentDraft = valueobject.FormatMinorUnits(doc.PaymentReceived)
	return Recompute(s)
}

// DraftFromItem renders committed values back into draft text
func DraftFromItem(item finance.LineItem) LineDraft {
	draft := LineDraft{
		Description:     item.Description,
		Quantity:        item.Quantity.String(),
		UnitPrice:       valueobject.FormatMinorUnits(item.UnitPrice),
		DiscountPercent: item.DiscountPercent.String(),
		TaxRatePercent:  item.TaxRatePercent.String(),
	}
	if item.ProductID != nil {
		draft.ProductID = item.ProductID.String()
	}
	return draft
}

// CommittedItems returns the last valid values of every line that has any
func (s State) CommittedItems() []finance.LineItem {
	items := make([]finance.LineItem, 0, len(s.Lines))
	for _, l := range s.Lines {
		if l.Committed != nil {
			items = append(items, *l.Committed)
		}
	}
	return items
}

// Errors returns every field error, line errors qualified by line key
func (s State) Errors() finance.ValidationErrors {
	var all finance.ValidationErrors
	for _, l := range s.Lines {
		if len(l.Errors) > 0 {
			all = append(all, l.Errors.WithPrefix("lines["+l.Key+"]")...)
		}
	}
	return append(all, s.FieldErrors...)
}

// CanSubmit reports whether Submission would succeed
func (s State) CanSubmit() bool {
	_, err := s.Commit()
	return err == nil
}

func (s State) lineIndex(key string) int {
	for i := range s.Lines {
		if s.Lines[i].Key == key {
			return i
		}
	}
	return -1
}

func (s State) clone() State {
	next := s
	next.Lines = make([]Line, len(s.Lines))
	copy(next.Lines, s.Lines)
	next.FieldErrors = append(finance.ValidationErrors(nil), s.FieldErrors...)
	return next
}
