package cryptofolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Holdings maps an asset id to the amount held.
//
// A portfolio owns its holdings exclusively: the backtest simulator is the
// only component that mutates them, and it restores them when a run ends.
type Holdings map[string]float64

// NewHoldings validates and returns a holdings map. Asset ids must be
// non-empty and amounts non-negative.
func NewHoldings(amounts map[string]float64) (Holdings, error) {
	h := make(Holdings, len(amounts))
	for asset, amount := range amounts {
		if asset == "" {
			return nil, fmt.Errorf("holdings: empty asset id")
		}
		if amount < 0 {
			return nil, fmt.Errorf("holdings: negative amount %v for %q", amount, asset)
		}
		h[asset] = amount
	}
	return h, nil
}

// Assets returns the held asset ids in lexical order.
func (h Holdings) Assets() []string {
	assets := make([]string, 0, len(h))
	for asset := range h {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	return assets
}

// Clone returns an independent copy of the holdings.
func (h Holdings) Clone() Holdings {
	c := make(Holdings, len(h))
	for asset, amount := range h {
		c[asset] = amount
	}
	return c
}

// Equal reports whether two holdings hold the same amounts of the same assets.
func (h Holdings) Equal(o Holdings) bool {
	if len(h) != len(o) {
		return false
	}
	for asset, amount := range h {
		if o[asset] != amount {
			return false
		}
	}
	return true
}

// DecodeHoldings reads holdings from a CSV stream with an "asset,amount"
// header row. Amounts are parsed exactly, duplicate assets and negative
// amounts are rejected.
func DecodeHoldings(r io.Reader) (Holdings, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read holdings: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("could not read holdings: empty file")
	}

	// Tolerate a missing header row: the first row is a header only when its
	// second column is not a number.
	start := 0
	if _, err := decimal.NewFromString(strings.TrimSpace(records[0][len(records[0])-1])); err != nil {
		start = 1
	}

	h := make(Holdings)
	for _, record := range records[start:] {
		if len(record) != 2 {
			return nil, fmt.Errorf("could not read holdings: want 2 columns, got %d in %q", len(record), strings.Join(record, ","))
		}
		asset := strings.TrimSpace(record[0])
		amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("could not parse amount for %q: %w", asset, err)
		}
		if asset == "" {
			return nil, fmt.Errorf("could not read holdings: empty asset id")
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("could not read holdings: negative amount %s for %q", amount, asset)
		}
		if _, dup := h[asset]; dup {
			return nil, fmt.Errorf("could not read holdings: duplicate asset %q", asset)
		}
		h[asset] = amount.InexactFloat64()
	}
	return h, nil
}

// ReadHoldingsFile reads holdings from a CSV file.
func ReadHoldingsFile(name string) (Holdings, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open holdings file %q: %w", name, err)
	}
	defer f.Close()
	return DecodeHoldings(f)
}

// PriceSnapshot maps an asset id to its price in a quote currency, valid at
// one instant.
type PriceSnapshot map[string]float64

// Clone returns an independent copy of the snapshot. A nil snapshot stays nil.
func (p PriceSnapshot) Clone() PriceSnapshot {
	if p == nil {
		return nil
	}
	c := make(PriceSnapshot, len(p))
	for asset, price := range p {
		c[asset] = price
	}
	return c
}

// Covers returns the first held asset missing from the snapshot, if any.
func (p PriceSnapshot) Covers(h Holdings) (missing string, ok bool) {
	for _, asset := range h.Assets() {
		if _, ok := p[asset]; !ok {
			return asset, false
		}
	}
	return "", true
}
