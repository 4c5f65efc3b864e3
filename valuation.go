package cryptofolio

import (
	"fmt"
	"sort"
)

// AssetFigure is one asset's entry in a Ranking.
type AssetFigure struct {
	Asset  string
	Figure float64
}

// Ranking is a per-asset figure (price, value or percentage) ordered by
// descending figure. Go maps are unordered, so the sorted views the engine
// hands out are slices with map-style access.
type Ranking []AssetFigure

// Get returns the figure for an asset and whether the asset is ranked.
func (r Ranking) Get(asset string) (float64, bool) {
	for _, f := range r {
		if f.Asset == asset {
			return f.Figure, true
		}
	}
	return 0, false
}

// Sum returns the sum of all figures in the ranking.
func (r Ranking) Sum() float64 {
	var total float64
	for _, f := range r {
		total += f.Figure
	}
	return total
}

// rank sorts figures by descending value, ties broken by asset id so the
// order is deterministic.
func rank(figures map[string]float64) Ranking {
	r := make(Ranking, 0, len(figures))
	for asset, figure := range figures {
		r = append(r, AssetFigure{Asset: asset, Figure: figure})
	}
	sort.Slice(r, func(i, j int) bool {
		if r[i].Figure != r[j].Figure {
			return r[i].Figure > r[j].Figure
		}
		return r[i].Asset < r[j].Asset
	})
	return r
}

// Valuation derives prices, values and percentages of a set of holdings from
// the active price snapshot.
//
// Derived views are computed lazily and cached. Every mutator (SetPrices,
// SetQuote, setHoldings) drops the whole cache before returning, so a stale
// view can never be observed.
type Valuation struct {
	holdings Holdings
	quote    string

	snapshot PriceSnapshot

	// caches, nil when dirty
	cachedPrices      Ranking
	cachedValues      Ranking
	cachedPercentages Ranking
}

// NewValuation returns a valuation for the given holdings, quoted in the
// given currency. No price snapshot is active until SetPrices is called.
func NewValuation(holdings Holdings, quote string) *Valuation {
	return &Valuation{holdings: holdings, quote: quote}
}

// Quote returns the active quote currency.
func (v *Valuation) Quote() string { return v.quote }

// Holdings returns a copy of the holdings under valuation.
func (v *Valuation) Holdings() Holdings { return v.holdings.Clone() }

// Snapshot returns a copy of the active price snapshot, or nil if none is set.
func (v *Valuation) Snapshot() PriceSnapshot { return v.snapshot.Clone() }

// invalidate drops all derived caches.
func (v *Valuation) invalidate() {
	v.cachedPrices, v.cachedValues, v.cachedPercentages = nil, nil, nil
}

// SetPrices replaces the active price snapshot and invalidates all derived
// caches. It fails with MissingPriceError if any held asset is absent from
// the snapshot, leaving the previous snapshot active.
func (v *Valuation) SetPrices(snapshot PriceSnapshot) error {
	if missing, ok := snapshot.Covers(v.holdings); !ok {
		return &MissingPriceError{Asset: missing, Quote: v.quote}
	}
	v.invalidate()
	v.snapshot = snapshot.Clone()
	return nil
}

// SetQuote changes the quote currency. The active snapshot is dropped since
// its prices are denominated in the previous quote.
func (v *Valuation) SetQuote(quote string) {
	v.invalidate()
	v.snapshot = nil
	v.quote = quote
}

// setHoldings replaces the holdings under valuation, invalidating derived
// caches. It is reserved for the backtest simulator; the valuation never
// mutates holdings on its own.
func (v *Valuation) setHoldings(h Holdings) {
	v.invalidate()
	v.holdings = h
}

// Prices returns the active per-asset prices sorted by descending price.
func (v *Valuation) Prices() (Ranking, error) {
	if v.snapshot == nil {
		return nil, fmt.Errorf("no active price snapshot: call SetPrices first")
	}
	// Holdings may have changed since the snapshot was set.
	if missing, ok := v.snapshot.Covers(v.holdings); !ok {
		return nil, &MissingPriceError{Asset: missing, Quote: v.quote}
	}
	if v.cachedPrices == nil {
		prices := make(map[string]float64, len(v.holdings))
		for asset := range v.holdings {
			prices[asset] = v.snapshot[asset]
		}
		v.cachedPrices = rank(prices)
	}
	return v.cachedPrices, nil
}

// Values returns price times held amount per asset, sorted by descending
// value.
func (v *Valuation) Values() (Ranking, error) {
	if _, err := v.Prices(); err != nil {
		return nil, err
	}
	if v.cachedValues == nil {
		values := make(map[string]float64, len(v.holdings))
		for asset, amount := range v.holdings {
			values[asset] = v.snapshot[asset] * amount
		}
		v.cachedValues = rank(values)
	}
	return v.cachedValues, nil
}

// Total returns the sum of all asset values.
func (v *Valuation) Total() (float64, error) {
	values, err := v.Values()
	if err != nil {
		return 0, err
	}
	return values.Sum(), nil
}

// Percentages returns each asset's share of the portfolio total, sorted by
// descending share. It fails with DivisionByZeroError when the total is zero
// while some asset is still held: a percentage is undefined then and must
// not silently become NaN.
func (v *Valuation) Percentages() (Ranking, error) {
	values, err := v.Values()
	if err != nil {
		return nil, err
	}
	if v.cachedPercentages == nil {
		total := values.Sum()
		percentages := make(map[string]float64, len(values))
		if total == 0 {
			for asset, amount := range v.holdings {
				if amount != 0 {
					return nil, &DivisionByZeroError{Asset: asset}
				}
				percentages[asset] = 0
			}
		} else {
			for _, f := range values {
				percentages[f.Asset] = f.Figure / total
			}
		}
		v.cachedPercentages = rank(percentages)
	}
	return v.cachedPercentages, nil
}

// metricState returns the current figure of one metric for one asset.
func (v *Valuation) metricState(asset string, metric Metric) (float64, error) {
	var ranking Ranking
	var err error
	switch metric {
	case MetricPrice:
		ranking, err = v.Prices()
	case MetricValue:
		ranking, err = v.Values()
	case MetricPercentage:
		ranking, err = v.Percentages()
	default:
		return 0, &InvalidMetricError{Metric: metric.String()}
	}
	if err != nil {
		return 0, err
	}
	state, ok := ranking.Get(asset)
	if !ok {
		return 0, fmt.Errorf("asset %q is not part of the portfolio", asset)
	}
	return state, nil
}
