package finance

// DocumentStatus is the payment lifecycle status of an invoice or bill
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"     // Being prepared, not yet sent
	StatusSent      DocumentStatus = "sent"      // Issued, awaiting (full) payment
	StatusPaid      DocumentStatus = "paid"      // Payment received covers the total
	StatusOverdue   DocumentStatus = "overdue"   // Past due date without full payment
	StatusCancelled DocumentStatus = "cancelled" // Voided by hand
)

// IsValid checks if the status is a valid DocumentStatus
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of DocumentStatus
func (s DocumentStatus) String() string {
	return string(s)
}

// AllowsItemChanges reports whether line items may still be edited
func (s DocumentStatus) AllowsItemChanges() bool {
	return s == StatusDraft || s == StatusSent || s == StatusOverdue
}

// InferStatus derives the status after the payment received changes.
//
//   - no payment (<= 0): status unchanged, never reset to draft
//   - cancelled: unchanged
//   - payment >= total: paid
//   - partial payment: sent, except an overdue document stays overdue
//
// It is evaluated only when the payment changes, so a status chosen by hand
// afterwards is kept until the next payment change.
func InferStatus(current DocumentStatus, totalAmount, paymentReceived int64) DocumentStatus {
	if paymentReceived <= 0 || current == StatusCancelled {
		return current
	}
	if paymentReceived >= totalAmount {
		return StatusPaid
	}
	if current == StatusOverdue {
		return StatusOverdue
	}
	return StatusSent
}
