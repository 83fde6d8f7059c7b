package valueobject

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when text cannot be read as a monetary amount
var ErrInvalidAmount = errors.New("invalid amount")

// ErrAmountOutOfRange is returned when a number of cents does not fit in an int64
var ErrAmountOutOfRange = fmt.Errorf("%w: out of range", ErrInvalidAmount)

var (
	hundred     = decimal.NewFromInt(100)
	maxMinor    = decimal.NewFromInt(math.MaxInt64)
	minMinor    = decimal.NewFromInt(math.MinInt64)
	centsPlaces = int32(2)
)

// ParseMinorUnits reads a decimal currency string such as "12.34", "-0.5",
// " 7 " or "3,25" and returns the amount in cents, rounded half away from
// zero. Anything else fails with ErrInvalidAmount.
func ParseMinorUnits(input string) (int64, error) {
	d, err := parseDecimalAmount(input)
	if err != nil {
		return 0, err
	}
	return minorUnitsChecked(d, input)
}

// MinorUnitsOrZero is the lenient form of ParseMinorUnits used for values
// that are still being typed: unparseable input yields 0.
func MinorUnitsOrZero(input string) int64 {
	cents, err := ParseMinorUnits(input)
	if err != nil {
		return 0
	}
	return cents
}

// MinorUnitsFromDecimal converts a major-unit decimal to cents, saturating
// at the int64 bounds
func MinorUnitsFromDecimal(d decimal.Decimal) int64 {
	return RoundToMinorUnits(d.Mul(hundred))
}

// MinorUnitsFromDecimalChecked converts a major-unit decimal to cents and
// fails with ErrAmountOutOfRange when the result does not fit in an int64
func MinorUnitsFromDecimalChecked(d decimal.Decimal) (int64, error) {
	return RoundToMinorUnitsChecked(d.Mul(hundred))
}

// MinorUnitsFromFloat converts a major-unit float to cents. NaN and
// infinities yield 0.
func MinorUnitsFromFloat(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return MinorUnitsFromDecimal(decimal.NewFromFloat(v))
}

// FormatMinorUnits renders cents as a major-unit string with exactly two
// decimals: 1234 -> "12.34", -5 -> "-0.05".
func FormatMinorUnits(cents int64) string {
	return decimal.New(cents, -centsPlaces).StringFixed(centsPlaces)
}

// DecimalFromMinorUnits converts cents to a major-unit decimal
func DecimalFromMinorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -centsPlaces)
}

// RoundToMinorUnits rounds a decimal number of cents half away from zero.
// Results beyond the int64 range saturate at math.MaxInt64 or math.MinInt64.
func RoundToMinorUnits(cents decimal.Decimal) int64 {
	n, err := RoundToMinorUnitsChecked(cents)
	if err != nil {
		if cents.IsNegative() {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return n
}

// RoundToMinorUnitsChecked rounds a decimal number of cents half away from
// zero and fails with ErrAmountOutOfRange when the result does not fit
func RoundToMinorUnitsChecked(cents decimal.Decimal) (int64, error) {
	r := cents.Round(0)
	if r.GreaterThan(maxMinor) || r.LessThan(minMinor) {
		return 0, fmt.Errorf("%w: %s cents", ErrAmountOutOfRange, r.String())
	}
	return r.IntPart(), nil
}

// AddMinorUnits returns a+b, failing with ErrAmountOutOfRange on overflow
func AddMinorUnits(a, b int64) (int64, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, fmt.Errorf("%w: %d + %d", ErrAmountOutOfRange, a, b)
	}
	return sum, nil
}

func parseDecimalAmount(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty input", ErrInvalidAmount)
	}
	// A lone comma is a decimal separator; combined with a dot it is ambiguous.
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") || strings.Count(s, ",") > 1 {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
		}
		s = strings.Replace(s, ",", ".", 1)
	}
	s = strings.TrimPrefix(s, "+")
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
		case r == '-' && i == 0:
		default:
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}
	return d, nil
}

func minorUnitsChecked(d decimal.Decimal, input string) (int64, error) {
	cents, err := MinorUnitsFromDecimalChecked(d)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrAmountOutOfRange, input)
	}
	return cents, nil
}
