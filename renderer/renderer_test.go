package renderer

import (
	"strings"
	"testing"

	"github.com/tviana/cryptofolio"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		value float64
		quote string
		want  string
	}{
		{1234.5, "usd", "$1,234.50"},
		{0, "eur", "€0.00"},
		{0.5, "zzz", "0.50000000 zzz"},
	}
	for _, tt := range tests {
		if got := Amount(tt.value, tt.quote); got != tt.want {
			t.Errorf("Amount(%v, %q) = %q, want %q", tt.value, tt.quote, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.0909); got != "9.09%" {
		t.Errorf("Percent(0.0909) = %q, want %q", got, "9.09%")
	}
	if got := Percent(1); got != "100.00%" {
		t.Errorf("Percent(1) = %q, want %q", got, "100.00%")
	}
}

func TestHoldingMarkdown(t *testing.T) {
	holdings, err := cryptofolio.NewHoldings(map[string]float64{"bitcoin": 1, "ethereum": 10})
	if err != nil {
		t.Fatal(err)
	}
	v := cryptofolio.NewValuation(holdings, "usd")
	if err := v.SetPrices(cryptofolio.PriceSnapshot{"bitcoin": 100, "ethereum": 5}); err != nil {
		t.Fatal(err)
	}

	got, err := HoldingMarkdown(v)
	if err != nil {
		t.Fatal(err)
	}
	// bitcoin carries the larger value and must come first.
	if strings.Index(got, "bitcoin") > strings.Index(got, "ethereum") {
		t.Errorf("assets not sorted by descending value:\n%s", got)
	}
	for _, want := range []string{"# Portfolio (USD)", "$100.00", "$50.00", "Total: **$150.00**"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestBacktestMarkdown(t *testing.T) {
	r := &cryptofolio.Result{
		Strategy: "hold",
		Totals:   []float64{100, 125},
	}
	got := BacktestMarkdown(r, "usd")
	// Performance() already is a relative gain; +25% must render as such.
	for _, want := range []string{"Performance: 25.00%", "Initial total: $100.00", "Final total: $125.00", "Trades: none"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestCompareMarkdown(t *testing.T) {
	best := &cryptofolio.Result{Strategy: "rebalance", Totals: []float64{100, 125}}
	worst := &cryptofolio.Result{Strategy: "hold", Totals: []float64{100, 100}}
	got := CompareMarkdown([]*cryptofolio.Result{worst, best}, "usd")

	if strings.Index(got, "rebalance") > strings.Index(got, "hold") {
		t.Errorf("strategies not ranked by final total:\n%s", got)
	}
	// The best row has nothing to compare against; the others report the
	// gap to it as a percentage.
	for _, want := range []string{"| rebalance | $125.00 | 25.00% | — |", "| hold | $100.00 | 0.00% | -20.00% |"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestConditionsMarkdown(t *testing.T) {
	holdings, err := cryptofolio.NewHoldings(map[string]float64{"bitcoin": 1})
	if err != nil {
		t.Fatal(err)
	}
	v := cryptofolio.NewValuation(holdings, "usd")
	if err := v.SetPrices(cryptofolio.PriceSnapshot{"bitcoin": 100}); err != nil {
		t.Fatal(err)
	}

	m := cryptofolio.NewMonitor(v)
	err = m.AddCondition(cryptofolio.Condition{
		Asset:     "bitcoin",
		Metric:    cryptofolio.MetricPrice,
		Side:      cryptofolio.Max,
		Threshold: 50,
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := ConditionsMarkdown(m, v)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"bitcoin", "price", "> $50.00", "$100.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}
