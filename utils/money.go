package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// FormatUSD formats an amount as a string like "$1,234.50".
func FormatUSD(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	if rounded.IsNegative() {
		return "-$" + usd.Sprintf("%.2f", rounded.Neg().InexactFloat64())
	}
	return "$" + usd.Sprintf("%.2f", rounded.InexactFloat64())
}
