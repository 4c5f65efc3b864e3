package renderer

import (
	"fmt"
	"strings"

	"github.com/tviana/cryptofolio"
)

// HoldingMarkdown renders the current valuation: per-asset price, value and
// share of the portfolio, sorted by descending value.
func HoldingMarkdown(v *cryptofolio.Valuation) (string, error) {
	values, err := v.Values()
	if err != nil {
		return "", err
	}
	prices, err := v.Prices()
	if err != nil {
		return "", err
	}
	percentages, err := v.Percentages()
	if err != nil {
		return "", err
	}
	holdings := v.Holdings()

	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio (%s)\n\n", strings.ToUpper(v.Quote()))
	fmt.Fprintln(&b, "| Asset | Amount | Price | Value | Share |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")

	for _, f := range values {
		price, _ := prices.Get(f.Asset)
		share, _ := percentages.Get(f.Asset)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			f.Asset,
			number(holdings[f.Asset]),
			Amount(price, v.Quote()),
			Amount(f.Figure, v.Quote()),
			Percent(share),
		)
	}

	fmt.Fprintf(&b, "\nTotal: **%s**\n", Amount(values.Sum(), v.Quote()))
	return b.String(), nil
}
