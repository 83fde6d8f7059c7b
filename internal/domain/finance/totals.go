package finance

import (
	"math"

	"github.com/ceodigitcare/fastflow01-sub002/internal/domain/shared/valueobject"
)

// DocumentTotals is the derived subtotal/tax/total of a document, in cents
type DocumentTotals struct {
	Subtotal    int64 `json:"subtotal"`
	TaxAmount   int64 `json:"tax_amount"`
	Adjustment  int64 `json:"adjustment"`
	TotalAmount int64 `json:"total_amount"`
}

// ComputeDocumentTotals aggregates items into totals. Each line's amount and
// tax are recomputed from its inputs and rounded to the cent before summing;
// adjustment (transport cost and similar flat charges) is added last.
// The stored Amount/TaxAmount fields of items are not read, so the result
// depends only on the line inputs. Sums beyond the int64 range saturate;
// use ComputeDocumentTotalsChecked to detect that.
func ComputeDocumentTotals(items []LineItem, adjustment int64) DocumentTotals {
	var totals DocumentTotals
	for _, item := range items {
		amount := ComputeLineAmount(item.Quantity, item.UnitPrice, item.DiscountPercent)
		totals.Subtotal = saturatingAdd(totals.Subtotal, amount)
		totals.TaxAmount = saturatingAdd(totals.TaxAmount, ComputeLineTax(amount, item.TaxRatePercent))
	}
	totals.Adjustment = adjustment
	totals.TotalAmount = saturatingAdd(saturatingAdd(totals.Subtotal, totals.TaxAmount), adjustment)
	return totals
}

// ComputeDocumentTotalsChecked is ComputeDocumentTotals failing with
// valueobject.ErrAmountOutOfRange when a line or a sum does not fit in cents
func ComputeDocumentTotalsChecked(items []LineItem, adjustment int64) (DocumentTotals, error) {
	var totals DocumentTotals
	for _, item := range items {
		amount, tax, err := item.computeChecked()
		if err != nil {
			return DocumentTotals{}, err
		}
		if totals.Subtotal, err = valueobject.AddMinorUnits(totals.Subtotal, amount); err != nil {
			return DocumentTotals{}, err
		}
		if totals.TaxAmount, err = valueobject.AddMinorUnits(totals.TaxAmount, tax); err != nil {
			return DocumentTotals{}, err
		}
	}
	total, err := valueobject.AddMinorUnits(totals.Subtotal, totals.TaxAmount)
	if err != nil {
		return DocumentTotals{}, err
	}
	if totals.TotalAmount, err = valueobject.AddMinorUnits(total, adjustment); err != nil {
		return DocumentTotals{}, err
	}
	totals.Adjustment = adjustment
	return totals, nil
}

func saturatingAdd(a, b int64) int64 {
	sum, err := valueobject.AddMinorUnits(a, b)
	if err != nil {
		if b < 0 {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return sum
}
