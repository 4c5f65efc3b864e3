package cryptofolio

import (
	"sort"
	"time"

	"github.com/tviana/cryptofolio/timeseries"
)

// WindowSize returns the sampling interval matching what market data
// providers serve for a given day range:
//
//	days == 1        => 5 minute windows
//	1 < days <= 90   => hourly windows
//	days > 90        => daily windows
func WindowSize(days int) time.Duration {
	switch {
	case days <= 1:
		return 5 * time.Minute
	case days <= 90:
		return time.Hour
	default:
		return 24 * time.Hour
	}
}

// Row is one complete per-asset price vector at one instant.
type Row struct {
	Time   time.Time
	Prices PriceSnapshot
}

// Table is a uniform, time-windowed view over irregular per-asset price
// samples. Rows are strictly increasing in time and each row prices every
// asset of the table.
type Table struct {
	assets     []string
	rows       []Row
	anchors    PriceSnapshot // first sample per asset, the normalization anchor
	normalized bool
}

// BuildTable aligns irregular per-asset samples into a windowed table.
//
// Starting at the earliest sample across all assets, it steps forward by
// 'window' until 'now'. For each window start it picks, per asset, the first
// sample at or after the window start; a window missing a match for any asset
// is dropped entirely rather than interpolated.
func BuildTable(samples map[string]timeseries.Series, window time.Duration, now time.Time) (*Table, error) {
	if len(samples) == 0 {
		return nil, &InsufficientHistoryError{Reason: "no assets"}
	}

	assets := make([]string, 0, len(samples))
	for asset := range samples {
		assets = append(assets, asset)
	}
	sort.Strings(assets)

	anchors := make(PriceSnapshot, len(assets))
	var start time.Time
	for _, asset := range assets {
		s := samples[asset]
		if s.Len() == 0 {
			return nil, &InsufficientHistoryError{Reason: "no samples for " + asset}
		}
		first, price := s.First()
		anchors[asset] = price
		if start.IsZero() || first.Before(start) {
			start = first
		}
	}

	t := &Table{assets: assets, anchors: anchors}
	for ; start.Before(now); start = start.Add(window) {
		prices := make(PriceSnapshot, len(assets))
		complete := true
		for _, asset := range assets {
			s := samples[asset]
			price, ok := s.OnOrAfter(start)
			if !ok {
				complete = false
				break
			}
			prices[asset] = price
		}
		if !complete {
			continue
		}
		t.rows = append(t.rows, Row{Time: start, Prices: prices})
	}

	if len(t.rows) == 0 {
		return nil, &InsufficientHistoryError{Reason: "no complete window"}
	}
	return t, nil
}

// Assets returns the assets priced by every row, in lexical order.
func (t *Table) Assets() []string { return t.assets }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns the table rows in chronological order.
func (t *Table) Rows() []Row { return t.rows }

// Anchors returns the first sample per asset, the price every normalized
// column starts from.
func (t *Table) Anchors() PriceSnapshot { return t.anchors.Clone() }

// Normalized reports whether the table prices are ratios to their anchor.
func (t *Table) Normalized() bool { return t.normalized }

// Normalize returns a table whose columns are expressed as a ratio to their
// anchor price, so every column starts near 1.0. The receiver is unchanged.
func (t *Table) Normalize() *Table {
	if t.normalized {
		return t
	}
	return t.scale(func(asset string, price float64) float64 {
		return price / t.anchors[asset]
	}, true)
}

// Denormalize multiplies normalized columns back by their anchor price,
// recovering raw prices. The receiver is unchanged.
func (t *Table) Denormalize() *Table {
	if !t.normalized {
		return t
	}
	return t.scale(func(asset string, price float64) float64 {
		return price * t.anchors[asset]
	}, false)
}

func (t *Table) scale(f func(asset string, price float64) float64, normalized bool) *Table {
	s := &Table{assets: t.assets, anchors: t.anchors, normalized: normalized}
	s.rows = make([]Row, len(t.rows))
	for i, row := range t.rows {
		prices := make(PriceSnapshot, len(row.Prices))
		for asset, price := range row.Prices {
			prices[asset] = f(asset, price)
		}
		s.rows[i] = Row{Time: row.Time, Prices: prices}
	}
	return s
}

// Values returns a table whose cells are asset values (price times held
// amount) instead of prices. The receiver is unchanged.
func (t *Table) Values(h Holdings) *Table {
	return t.scale(func(asset string, price float64) float64 {
		return price * h[asset]
	}, t.normalized)
}

// Percentages returns a table whose cells are each asset's share of its row's
// portfolio total, zero when the row total is zero. The receiver is unchanged.
func (t *Table) Percentages(h Holdings) *Table {
	values := t.Values(h)
	for i, row := range values.rows {
		var total float64
		for _, v := range row.Prices {
			total += v
		}
		for asset, v := range row.Prices {
			if total == 0 {
				values.rows[i].Prices[asset] = 0
				continue
			}
			values.rows[i].Prices[asset] = v / total
		}
	}
	return values
}

// Totals returns the portfolio total per row for a fixed set of holdings.
func (t *Table) Totals(h Holdings) []float64 {
	totals := make([]float64, len(t.rows))
	for i, row := range t.rows {
		var total float64
		for asset, amount := range h {
			total += row.Prices[asset] * amount
		}
		totals[i] = total
	}
	return totals
}
