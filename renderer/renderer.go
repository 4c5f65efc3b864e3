// Package renderer turns the engine's reports into markdown, ready to be
// printed through a terminal markdown renderer.
package renderer

import (
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
)

// Amount formats a value in the quote currency. Fiat quotes use their ISO
// formatting rules; crypto quotes fall back to a fixed-point form with the
// quote appended.
func Amount(v float64, quote string) string {
	code := strings.ToUpper(quote)
	if cur := money.GetCurrency(code); cur != nil {
		minor := int64(math.Round(v * math.Pow(10, float64(cur.Fraction))))
		return cur.Formatter().Format(minor)
	}
	return strconv.FormatFloat(v, 'f', 8, 64) + " " + strings.ToLower(quote)
}

// Percent formats a fraction as a percentage.
func Percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 2, 64) + "%"
}

// number formats a raw figure with enough digits for crypto prices.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
