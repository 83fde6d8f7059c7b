package finance

import (
	"strings"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
)

// LineItem is one priced row of an invoice or bill. Amount and TaxAmount are
// derived from the other fields and recomputed on every change.
type LineItem struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       *uuid.UUID      `json:"product_id,omitempty"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       int64           `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRatePercent  decimal.Decimal `json:"tax_rate_percent"`
	Amount          int64           `json:"amount"`
	TaxAmount       int64           `json:"tax_amount"`
}

// LineItemInput carries the caller-supplied fields of a line item
type LineItemInput struct {
	ProductID       *uuid.UUID
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       int64
	DiscountPercent decimal.Decimal
	TaxRatePercent  decimal.Decimal
}

// NewLineItem validates input and returns a line item with derived amounts
func NewLineItem(input LineItemInput) (*LineItem, error) {
	item := &LineItem{ID: uuid.New()}
	if err := item.apply(input); err != nil {
		return nil, err
	}
	return item, nil
}

func (li *LineItem) apply(input LineItemInput) error {
	candidate := LineItem{
		ID:              li.ID,
		ProductID:       input.ProductID,
		Description:     strings.TrimSpace(input.Description),
		Quantity:        input.Quantity,
		UnitPrice:       input.UnitPrice,
		DiscountPercent: input.DiscountPercent,
		TaxRatePercent:  input.TaxRatePercent,
	}
	if errs := candidate.Validate(); len(errs) > 0 {
		return errs
	}
	candidate.Recalculate()
	*li = candidate
	return nil
}

// Validate checks the line's own constraints. Product existence is checked by
// the application layer, which knows the catalog.
func (li LineItem) Validate() ValidationErrors {
	var errs ValidationErrors
	if !li.Quantity.IsPositive() {
		errs = append(errs, NewValidationError("quantity", CodeInvalidQuantity, "Quantity must be greater than zero"))
	}
	if li.UnitPrice < 0 {
		errs = append(errs, NewValidationError("unit_price", CodeInvalidPrice, "Unit price cannot be negative"))
	}
	if li.DiscountPercent.IsNegative() || li.DiscountPercent.GreaterThan(hundred) {
		errs = append(errs, NewValidationError("discount_percent", CodeInvalidDiscount, "Discount must be between 0 and 100"))
	}
	if li.TaxRatePercent.IsNegative() {
		errs = append(errs, NewValidationError("tax_rate_percent", CodeInvalidTaxRate, "Tax rate cannot be negative"))
	}
	if len(errs) == 0 {
		if _, _, err := li.computeChecked(); err != nil {
			errs = append(errs, NewValidationError("amount", CodeAmountRange, "Line amount is too large"))
		}
	}
	return errs
}

func (li LineItem) computeChecked() (amount, tax int64, err error) {
	amount, err = valueobject.RoundToMinorUnitsChecked(lineNet(li.Quantity, li.UnitPrice, li.DiscountPercent))
	if err != nil {
		return 0, 0, err
	}
	tax, err = valueobject.RoundToMinorUnitsChecked(lineTax(amount, li.TaxRatePercent))
	if err != nil {
		return 0, 0, err
	}
	return amount, tax, nil
}

// Recalculate refreshes Amount and TaxAmount from the line's inputs
func (li *LineItem) Recalculate() {
	li.Amount = ComputeLineAmount(li.Quantity, li.UnitPrice, li.DiscountPercent)
	li.TaxAmount = ComputeLineTax(li.Amount, li.TaxRatePercent)
}

// Input returns the caller-supplied fields of the line
func (li LineItem) Input() LineItemInput {
	return LineItemInput{
		ProductID:       li.ProductID,
		Description:     li.Description,
		Quantity:        li.Quantity,
		UnitPrice:       li.UnitPrice,
		DiscountPercent: li.DiscountPercent,
		TaxRatePercent:  li.TaxRatePercent,
	}
}

// ComputeLineAmount returns round(quantity × unitPrice × (1 − discount/100))
// in cents, rounding half away from zero. Results beyond the int64 range
// saturate; Validate rejects such lines.
func ComputeLineAmount(quantity decimal.Decimal, unitPrice int64, discountPercent decimal.Decimal) int64 {
	return valueobject.RoundToMinorUnits(lineNet(quantity, unitPrice, discountPercent))
}

// ComputeLineTax returns round(amount × taxRate/100) in cents
func ComputeLineTax(amount int64, taxRatePercent decimal.Decimal) int64 {
	return valueobject.RoundToMinorUnits(lineTax(amount, taxRatePercent))
}

func lineNet(quantity decimal.Decimal, unitPrice int64, discountPercent decimal.Decimal) decimal.Decimal {
	gross := quantity.Mul(decimal.NewFromInt(unitPrice))
	return gross.Mul(hundred.Sub(discountPercent)).Div(hundred)
}

func lineTax(amount int64, taxRatePercent decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(amount).Mul(taxRatePercent).Div(hundred)
}
