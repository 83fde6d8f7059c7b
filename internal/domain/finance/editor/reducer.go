package editor

import (
	"fmt"
	"strings"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/finance"
	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reduce applies event to state and returns the new, totals-consistent state
func Reduce(state State, event Event) State {
	return Recompute(Apply(state, event))
}

// ReduceAll folds events over state in order
func ReduceAll(state State, events ...Event) State {
	for _, e := range events {
		state = Reduce(state, e)
	}
	return state
}

// Apply performs the mutation without recomputing totals. Item and
// adjustment changes leave the state in PhaseEditingItems.
func Apply(state State, event Event) State {
	next := state.clone()
	switch e := event.(type) {
	case AddLine:
		key := e.Key
		if key == "" || next.lineIndex(key) >= 0 {
			key = uuid.NewString()
		}
		next.Lines = append(next.Lines, parseLine(Line{Key: key}, e.Draft, next.products))
		next.Phase = PhaseEditingItems
	case UpdateLine:
		idx := next.lineIndex(e.Key)
		if idx < 0 {
			return next
		}
		next.Lines[idx] = parseLine(next.Lines[idx], e.Draft, next.products)
		next.Phase = PhaseEditingItems
	case RemoveLine:
		idx := next.lineIndex(e.Key)
		if idx < 0 {
			return next
		}
		next.Lines = append(next.Lines[:idx], next.Lines[idx+1:]...)
		next.Phase = PhaseEditingItems
	case SetAdjustment:
		next.AdjustmentDraft = e.Value
		next.FieldErrors = withoutField(next.FieldErrors, "adjustment")
		cents, err := parseNonNegativeAmount(e.Value, "adjustment", "Transport cost")
		if err != nil {
			next.FieldErrors = append(next.FieldErrors, err)
		} else {
			next.Adjustment = cents
		}
		next.Phase = PhaseEditingItems
	case SetPaymentReceived:
		next.PaymentDraft = e.Value
		next.FieldErrors = withoutField(next.FieldErrors, "payment_received")
		cents, err := parseNonNegativeAmount(e.Value, "payment_received", "Payment received")
		if err != nil {
			next.FieldErrors = append(next.FieldErrors, err)
			return next
		}
		next.PaymentReceived = cents
		next.Status = finance.InferStatus(next.Status, next.Totals.TotalAmount, cents)
	case SetStatus:
		next.FieldErrors = withoutField(next.FieldErrors, "status")
		if !e.Status.IsValid() {
			next.FieldErrors = append(next.FieldErrors, finance.NewValidationError("status", "INVALID_STATUS", fmt.Sprintf("Unknown status %q", e.Status)))
			return next
		}
		next.Status = e.Status
	}
	return next
}

// Recompute derives totals from the committed lines and the adjustment.
// Totals that do not fit in cents saturate and leave a "totals" field error.
func Recompute(state State) State {
	items := state.CommittedItems()
	state.FieldErrors = withoutField(state.FieldErrors, "totals")
	if _, err := finance.ComputeDocumentTotalsChecked(items, state.Adjustment); err != nil {
		state.FieldErrors = append(state.FieldErrors, finance.NewValidationError("totals", finance.CodeAmountRange, "Document total is too large"))
	}
	state.Totals = finance.ComputeDocumentTotals(items, state.Adjustment)
	state.Phase = PhaseTotalsConsistent
	return state
}

// parseLine validates draft. On success the draft becomes the committed
// value; on failure the previous committed value is kept.
func parseLine(line Line, draft LineDraft, products map[uuid.UUID]struct{}) Line {
	line.Draft = draft
	item, errs := parseDraft(draft, products)
	line.Errors = errs
	if len(errs) > 0 {
		return line
	}
	if line.Committed != nil {
		item.ID = line.Committed.ID
	}
	line.Committed = &item
	return line
}

func parseDraft(draft LineDraft, products map[uuid.UUID]struct{}) (finance.LineItem, finance.ValidationErrors) {
	var errs finance.ValidationErrors
	item := finance.LineItem{
		ID:          uuid.New(),
		Description: strings.TrimSpace(draft.Description),
	}

	if ref := strings.TrimSpace(draft.ProductID); ref != "" {
		id, err := uuid.Parse(ref)
		switch {
		case err != nil:
			errs = append(errs, finance.NewValidationError("product_id", finance.CodeUnknownProduct, "Product reference is not a valid ID"))
		case products != nil:
			if _, ok := products[id]; !ok {
				errs = append(errs, finance.NewValidationError("product_id", finance.CodeUnknownProduct, "Unknown product"))
			}
		}
		if err == nil {
			item.ProductID = &id
		}
	}

	quantity, err := parsePercentOrQuantity(draft.Quantity, false)
	if err != nil {
		errs = append(errs, finance.NewValidationError("quantity", finance.CodeInvalidQuantity, "Quantity must be a number"))
	}
	item.Quantity = quantity

	if strings.TrimSpace(draft.UnitPrice) == "" {
		errs = append(errs, finance.NewValidationError("unit_price", finance.CodeRequired, "Unit price is required"))
	} else if price, err := valueobject.ParseMinorUnits(draft.UnitPrice); err != nil {
		errs = append(errs, finance.NewValidationError("unit_price", finance.CodeInvalidPrice, "Unit price must be an amount"))
	} else {
		item.UnitPrice = price
	}

	discount, err := parsePercentOrQuantity(draft.DiscountPercent, true)
	if err != nil {
		errs = append(errs, finance.NewValidationError("discount_percent", finance.CodeInvalidDiscount, "Discount must be a number"))
	}
	item.DiscountPercent = discount

	taxRate, err := parsePercentOrQuantity(draft.TaxRatePercent, true)
	if err != nil {
		errs = append(errs, finance.NewValidationError("tax_rate_percent", finance.CodeInvalidTaxRate, "Tax rate must be a number"))
	}
	item.TaxRatePercent = taxRate

	if len(errs) > 0 {
		return item, errs
	}
	if rangeErrs := item.Validate(); len(rangeErrs) > 0 {
		return item, rangeErrs
	}
	item.Recalculate()
	return item, nil
}

// parsePercentOrQuantity reads a plain decimal. Empty text is zero when
// emptyIsZero is set and an error otherwise.
func parsePercentOrQuantity(text string, emptyIsZero bool) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		if emptyIsZero {
			return decimal.Zero, nil
		}
		return decimal.Zero, valueobject.ErrInvalidAmount
	}
	s = strings.TrimSuffix(s, "%")
	s = strings.Replace(s, ",", ".", 1)
	for i, r := range s {
		if (r < '0' || r > '9') && r != '.' && !(r == '-' && i == 0) {
			return decimal.Zero, valueobject.ErrInvalidAmount
		}
	}
	return decimal.NewFromString(s)
}

func parseNonNegativeAmount(text, field, label string) (int64, *finance.ValidationError) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	cents, err := valueobject.ParseMinorUnits(text)
	if err != nil {
		return 0, finance.NewValidationError(field, finance.CodeInvalidAmount, label+" must be an amount")
	}
	if cents < 0 {
		return 0, finance.NewValidationError(field, finance.CodeInvalidAmount, label+" cannot be negative")
	}
	return cents, nil
}

func withoutField(errs finance.ValidationErrors, field string) finance.ValidationErrors {
	out := errs[:0:0]
	for _, e := range errs {
		if e.Field != field {
			out = append(out, e)
		}
	}
	return out
}
