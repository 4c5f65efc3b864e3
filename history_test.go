package cryptofolio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tviana/cryptofolio/timeseries"
)

func TestWindowSize(t *testing.T) {
	tests := []struct {
		days int
		want time.Duration
	}{
		{1, 5 * time.Minute},
		{2, time.Hour},
		{90, time.Hour},
		{91, 24 * time.Hour},
		{365, 24 * time.Hour},
	}
	for _, tt := range tests {
		if got := WindowSize(tt.days); got != tt.want {
			t.Errorf("WindowSize(%d) = %v, want %v", tt.days, got, tt.want)
		}
	}
}

func sampled(t *testing.T, start time.Time, step time.Duration, prices ...float64) timeseries.Series {
	t.Helper()
	var s timeseries.Series
	for i, p := range prices {
		s.Append(start.Add(time.Duration(i)*step), p)
	}
	return s
}

func TestBuildTable(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	now := start.Add(4 * time.Hour)
	samples := map[string]timeseries.Series{
		"aaa": sampled(t, start, time.Hour, 1, 2, 3, 4),
		"bbb": sampled(t, start, time.Hour, 10, 20, 30, 40),
	}

	table, err := BuildTable(samples, time.Hour, now)
	if err != nil {
		t.Fatal(err)
	}
	if got := table.Len(); got != 4 {
		t.Fatalf("table has %d rows, want 4", got)
	}

	rows := table.Rows()
	for i := 1; i < len(rows); i++ {
		if !rows[i-1].Time.Before(rows[i].Time) {
			t.Errorf("row times not strictly increasing at %d: %v then %v", i, rows[i-1].Time, rows[i].Time)
		}
	}
	if rows[2].Prices["aaa"] != 3 || rows[2].Prices["bbb"] != 30 {
		t.Errorf("row 2 prices = %v, want aaa=3 bbb=30", rows[2].Prices)
	}
}

func TestBuildTable_dropsIncompleteWindows(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	now := start.Add(4 * time.Hour)
	samples := map[string]timeseries.Series{
		// aaa covers four hours, bbb stops after two: the trailing windows
		// have no bbb match and are dropped, not interpolated.
		"aaa": sampled(t, start, time.Hour, 1, 2, 3, 4),
		"bbb": sampled(t, start, time.Hour, 10, 20),
	}

	table, err := BuildTable(samples, time.Hour, now)
	if err != nil {
		t.Fatal(err)
	}
	if got := table.Len(); got != 2 {
		t.Fatalf("table has %d rows, want 2", got)
	}
	for _, row := range table.Rows() {
		if _, ok := row.Prices["bbb"]; !ok {
			t.Errorf("row %v misses bbb", row.Time)
		}
	}
}

func TestBuildTable_insufficientHistory(t *testing.T) {
	var histErr *InsufficientHistoryError

	_, err := BuildTable(nil, time.Hour, time.Now())
	if !errors.As(err, &histErr) {
		t.Errorf("BuildTable(nil) error = %v, want InsufficientHistoryError", err)
	}

	_, err = BuildTable(map[string]timeseries.Series{"aaa": {}}, time.Hour, time.Now())
	if !errors.As(err, &histErr) {
		t.Errorf("BuildTable(empty series) error = %v, want InsufficientHistoryError", err)
	}
}

func TestTable_NormalizeRoundTrip(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	samples := map[string]timeseries.Series{
		"aaa": sampled(t, start, time.Hour, 4, 8, 2),
	}
	table, err := BuildTable(samples, time.Hour, start.Add(3*time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	normalized := table.Normalize()
	if !normalized.Normalized() {
		t.Fatal("Normalize() did not mark the table normalized")
	}
	// Every column starts at its anchor, so the first row is 1.0.
	if got := normalized.Rows()[0].Prices["aaa"]; got != 1 {
		t.Errorf("normalized first row = %v, want 1", got)
	}
	if got := normalized.Rows()[1].Prices["aaa"]; got != 2 {
		t.Errorf("normalized second row = %v, want 2", got)
	}
	// The receiver stays untouched.
	if table.Normalized() {
		t.Error("Normalize() mutated the receiver")
	}

	back := normalized.Denormalize()
	for i, row := range back.Rows() {
		want := table.Rows()[i].Prices["aaa"]
		if got := row.Prices["aaa"]; math.Abs(got-want) > 1e-12 {
			t.Errorf("round trip row %d = %v, want %v", i, got, want)
		}
	}
}

func TestTable_Totals(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	samples := map[string]timeseries.Series{
		"aaa": sampled(t, start, time.Hour, 1, 2),
		"bbb": sampled(t, start, time.Hour, 10, 10),
	}
	table, err := BuildTable(samples, time.Hour, start.Add(2*time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	holdings, err := NewHoldings(map[string]float64{"aaa": 3, "bbb": 1})
	if err != nil {
		t.Fatal(err)
	}
	totals := table.Totals(holdings)
	want := []float64{13, 16}
	if len(totals) != len(want) {
		t.Fatalf("totals = %v, want %v", totals, want)
	}
	for i := range want {
		if totals[i] != want[i] {
			t.Errorf("totals[%d] = %v, want %v", i, totals[i], want[i])
		}
	}
}

func TestTable_ValuesAndPercentages(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	samples := map[string]timeseries.Series{
		"aaa": sampled(t, start, time.Hour, 1, 2),
		"bbb": sampled(t, start, time.Hour, 10, 10),
	}
	table, err := BuildTable(samples, time.Hour, start.Add(2*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	holdings, err := NewHoldings(map[string]float64{"aaa": 3, "bbb": 1})
	if err != nil {
		t.Fatal(err)
	}

	values := table.Values(holdings)
	if got := values.Rows()[1].Prices["aaa"]; got != 6 {
		t.Errorf("values row 1 aaa = %v, want 6", got)
	}
	// The receiver keeps raw prices.
	if got := table.Rows()[1].Prices["aaa"]; got != 2 {
		t.Errorf("receiver mutated: row 1 aaa = %v, want 2", got)
	}

	percentages := table.Percentages(holdings)
	row := percentages.Rows()[0].Prices
	if got := row["aaa"] + row["bbb"]; math.Abs(got-1) > 1e-12 {
		t.Errorf("percentages row 0 sums to %v, want 1", got)
	}
	if got := row["aaa"]; math.Abs(got-3.0/13) > 1e-12 {
		t.Errorf("percentages row 0 aaa = %v, want %v", got, 3.0/13)
	}
}
