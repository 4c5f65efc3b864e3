package cryptofolio

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestDecodeGoals(t *testing.T) {
	g, err := DecodeGoals(strings.NewReader("bitcoin: 50%\nethereum: 30%\ntether: rest\n"))
	if err != nil {
		t.Fatal(err)
	}
	entries := g.Entries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	// Entries come back sorted by asset id.
	if entries[0].Asset != "bitcoin" || entries[0].Percent != 50 {
		t.Errorf("entries[0] = %+v, want bitcoin 50%%", entries[0])
	}
	if entries[1].Asset != "ethereum" || entries[1].Percent != 30 {
		t.Errorf("entries[1] = %+v, want ethereum 30%%", entries[1])
	}
	if entries[2].Asset != "tether" || !entries[2].Rest {
		t.Errorf("entries[2] = %+v, want tether rest", entries[2])
	}
}

func TestDecodeGoals_literalAmount(t *testing.T) {
	g, err := DecodeGoals(strings.NewReader("bitcoin: 1.5\n"))
	if err != nil {
		t.Fatal(err)
	}
	e := g.Entries()[0]
	if e.Amount != 1.5 || e.Percent != 0 || e.Rest {
		t.Errorf("entry = %+v, want literal amount 1.5", e)
	}
}

func TestDecodeGoals_overAllocation(t *testing.T) {
	_, err := DecodeGoals(strings.NewReader("bitcoin: 70%\nethereum: 40%\n"))
	var overErr *OverAllocationError
	if !errors.As(err, &overErr) {
		t.Fatalf("DecodeGoals() error = %v, want OverAllocationError", err)
	}
	if overErr.Declared != 110 {
		t.Errorf("OverAllocationError.Declared = %v, want 110", overErr.Declared)
	}
}

func TestDecodeGoals_rejectsNegative(t *testing.T) {
	if _, err := DecodeGoals(strings.NewReader("bitcoin: -10%\n")); err == nil {
		t.Error("negative percentage accepted")
	}
	if _, err := DecodeGoals(strings.NewReader("bitcoin: -1\n")); err == nil {
		t.Error("negative amount accepted")
	}
}

func TestGoals_Resolve(t *testing.T) {
	g, err := DecodeGoals(strings.NewReader("bitcoin: 60%\nethereum: rest\ntether: rest\n"))
	if err != nil {
		t.Fatal(err)
	}

	prices := PriceSnapshot{"bitcoin": 100, "ethereum": 10, "tether": 1}
	target, err := g.Resolve(1000, prices)
	if err != nil {
		t.Fatal(err)
	}
	// 60% of 1000 in bitcoin at 100, the remaining 40% split evenly.
	if got := target["bitcoin"]; math.Abs(got-6) > 1e-12 {
		t.Errorf("bitcoin target = %v, want 6", got)
	}
	if got := target["ethereum"]; math.Abs(got-20) > 1e-12 {
		t.Errorf("ethereum target = %v, want 20", got)
	}
	if got := target["tether"]; math.Abs(got-200) > 1e-12 {
		t.Errorf("tether target = %v, want 200", got)
	}
}

func TestGoals_ResolveLiteralReservesFirst(t *testing.T) {
	g, err := DecodeGoals(strings.NewReader("bitcoin: 2\nethereum: rest\n"))
	if err != nil {
		t.Fatal(err)
	}

	prices := PriceSnapshot{"bitcoin": 100, "ethereum": 10}
	target, err := g.Resolve(1000, prices)
	if err != nil {
		t.Fatal(err)
	}
	if got := target["bitcoin"]; got != 2 {
		t.Errorf("bitcoin target = %v, want the literal 2", got)
	}
	// 1000 minus the 200 reserved for bitcoin, all of it to the rest entry.
	if got := target["ethereum"]; math.Abs(got-80) > 1e-12 {
		t.Errorf("ethereum target = %v, want 80", got)
	}

	// Literals worth more than the total cannot resolve.
	if _, err := g.Resolve(100, prices); err == nil {
		t.Error("Resolve() succeeded with literals exceeding the total")
	}
}

func TestGoals_ResolveMissingPrice(t *testing.T) {
	g, err := DecodeGoals(strings.NewReader("bitcoin: 100%\n"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = g.Resolve(1000, PriceSnapshot{})
	var missErr *MissingPriceError
	if !errors.As(err, &missErr) {
		t.Fatalf("Resolve() error = %v, want MissingPriceError", err)
	}
}

func TestGoals_DriftConditions(t *testing.T) {
	g, err := DecodeGoals(strings.NewReader("bitcoin: 60%\ntether: rest\n"))
	if err != nil {
		t.Fatal(err)
	}

	prices := PriceSnapshot{"bitcoin": 100, "tether": 1}
	conditions, err := g.DriftConditions(1000, prices, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	if len(conditions) != 4 {
		t.Fatalf("got %d conditions, want 4 (min and max per asset)", len(conditions))
	}

	// bitcoin targets a 60% share, the band sits 5 points around it.
	want := []Condition{
		{Asset: "bitcoin", Metric: MetricPercentage, Side: Min, Threshold: 0.55},
		{Asset: "bitcoin", Metric: MetricPercentage, Side: Max, Threshold: 0.65},
	}
	for i, w := range want {
		got := conditions[i]
		if got.Asset != w.Asset || got.Metric != w.Metric || got.Side != w.Side {
			t.Errorf("conditions[%d] = %+v, want %+v", i, got, w)
		}
		if math.Abs(got.Threshold-w.Threshold) > 1e-12 {
			t.Errorf("conditions[%d].Threshold = %v, want %v", i, got.Threshold, w.Threshold)
		}
	}

	if _, err := g.DriftConditions(0, prices, 0.05); err == nil {
		t.Error("DriftConditions accepted a zero total")
	}
}
