package valueobject

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatDisplay renders cents for people: currency symbol, grouping and the
// currency's own number of decimals, in the conventions of tag.
// Unknown currency codes fall back to FormatMinorUnits plus the code.
func FormatDisplay(cents int64, code Currency, tag language.Tag) string {
	unit, err := currency.ParseISO(string(code))
	if err != nil {
		return FormatMinorUnits(cents) + " " + string(code)
	}
	amount, _ := DecimalFromMinorUnits(cents).Float64()
	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}
