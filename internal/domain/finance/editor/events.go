package editor

import "github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"

// Event is a change made to the document under edit
type Event interface {
	eventName() string
}

// AddLine appends a line. An empty Key is replaced by a generated one.
type AddLine struct {
	Key   string
	Draft LineDraft
}

// UpdateLine replaces the draft of an existing line
type UpdateLine struct {
	Key   string
	Draft LineDraft
}

// RemoveLine deletes a line
type RemoveLine struct {
	Key string
}

// SetAdjustment changes the flat transport cost (major-unit text)
type SetAdjustment struct {
	Value string
}

// SetPaymentReceived changes the amount received (major-unit text)
type SetPaymentReceived struct {
	Value string
}

// SetStatus chooses a status by hand
type SetStatus struct {
	Status finance.DocumentStatus
}

func (AddLine) eventName() string            { return "add_line" }
func (UpdateLine) eventName() string         { return "update_line" }
func (RemoveLine) eventName() string         { return "remove_line" }
func (SetAdjustment) eventName() string      { return "set_adjustment" }
func (SetPaymentReceived) eventName() string { return "set_payment_received" }
func (SetStatus) eventName() string          { return "set_status" }

// EventName returns the wire name of an event
func EventName(e Event) string {
	return e.eventName()
}
