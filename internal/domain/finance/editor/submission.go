package editor

import (
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared"
)

// Submission is the payload assembled from a consistent, valid state.
// Every monetary field is an integer number of cents.
type Submission struct {
	Kind            finance.DocumentKind   `json:"kind"`
	Status          finance.DocumentStatus `json:"status"`
	Items           []finance.LineItem     `json:"items"`
	TransportCost   int64                  `json:"transport_cost"`
	PaymentReceived int64                  `json:"payment_received"`
	Totals          finance.DocumentTotals `json:"totals"`
}

// ErrNoLines is returned when submitting a document without lines
var ErrNoLines = shared.NewDomainError("EMPTY_DOCUMENT", "Document must have at least one line item")

// Commit assembles the submission payload. Any field error blocks it and is
// returned as finance.ValidationErrors.
func (s State) Commit() (Submission, error) {
	if errs := s.Errors(); len(errs) > 0 {
		return Submission{}, errs
	}
	if len(s.Lines) == 0 {
		return Submission{}, ErrNoLines
	}
	consistent := Recompute(s)
	return Submission{
		Kind:            consistent.Kind,
		Status:          consistent.Status,
		Items:           consistent.CommittedItems(),
		TransportCost:   consistent.Adjustment,
		PaymentReceived: consistent.PaymentReceived,
		Totals:          consistent.Totals,
	}, nil
}
