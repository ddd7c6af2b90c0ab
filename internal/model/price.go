package model

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatPrice renders a price with thousands separators and the dong sign, e.g. "10,000 đ".
// Fraction digits are never rounded away.
func FormatPrice(price float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v đ", number.Decimal(price, number.MaxFractionDigits(-1)))
}
