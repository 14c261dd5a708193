// Package format renders prices, distances and dates for presentation.
package format

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency renders amount as a localized currency string for tag, e.g.
// "$150.50" for USD in English. The number of fraction digits follows the
// currency's standard rounding. Codes that are not ISO 4217 currencies fall
// back to "<amount> <CODE>".
func Currency(amount decimal.Decimal, code string, tag language.Tag) string {
	code = strings.ToUpper(strings.TrimSpace(code))

	unit, err := currency.ParseISO(code)
	if err != nil {
		return amount.StringFixed(2) + " " + code
	}

	scale, _ := currency.Standard.Rounding(unit)
	rounded := amount.Round(int32(scale))
	value, _ := rounded.Float64()

	p := message.NewPrinter(tag)
	symbol := p.Sprint(currency.Symbol(unit))
	number := p.Sprintf(fmt.Sprintf("%%.%df", scale), value)

	if rounded.IsNegative() {
		return "-" + symbol + strings.TrimPrefix(number, "-")
	}
	return symbol + number
}
