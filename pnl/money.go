package pnl

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatMoney prints v with two decimals and thousands separators.
func FormatMoney(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// FormatSignedMoney prints v as signed currency, e.g. "+$1,234.50".
func FormatSignedMoney(v float64) string {
	sign := "+"
	if v < 0 {
		sign = "-"
	}
	return sign + "$" + FormatMoney(math.Abs(v))
}
