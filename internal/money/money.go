// Package money renders wallet amounts for display.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// displayTag selects Spanish grouping: '.' for thousands, ',' for decimals.
var displayTag = language.Spanish

// Format renders d as a peso amount, e.g. 125000 as "$125.000" and 1234.5 as
// "$1.234,5". At most two fraction digits are shown.
func Format(d decimal.Decimal) string {
	p := message.NewPrinter(displayTag)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + "$" + p.Sprintf("%v", number.Decimal(d.Round(2).InexactFloat64(), number.MaxFractionDigits(2)))
}
