package cryptofolio

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Condition is a one-sided boundary on a metric of one asset.
type Condition struct {
	Asset     string
	Metric    Metric
	Side      Side
	Threshold float64
}

// cell identifies one condition slot: an asset can carry at most one
// threshold per (metric, side) pair.
type cell struct {
	asset  string
	metric Metric
	side   Side
}

// Monitor tracks boundary conditions on portfolio assets and whether the
// current valuation has triggered them.
//
// A cell without a threshold does not exist in the monitor and is never
// evaluated. Once set, a cell moves freely between triggered and
// not-triggered on each Evaluate call; the triggered state is a pure function
// of holdings, prices and conditions and is recomputed from scratch each time.
type Monitor struct {
	valuation  *Valuation
	thresholds map[cell]float64
	triggered  map[cell]bool
}

// NewMonitor returns a monitor reading its state from the given valuation.
func NewMonitor(v *Valuation) *Monitor {
	return &Monitor{
		valuation:  v,
		thresholds: make(map[cell]float64),
		triggered:  make(map[cell]bool),
	}
}

// AddCondition sets the threshold of one cell, overwriting any prior
// threshold for the same (asset, metric, side). It fails with
// InvalidBoundaryError if the resulting min/max pair for that asset and
// metric is inverted.
func (m *Monitor) AddCondition(c Condition) error {
	key := cell{asset: c.Asset, metric: c.Metric, side: c.Side}
	other := cell{asset: c.Asset, metric: c.Metric, side: otherSide(c.Side)}
	if boundary, ok := m.thresholds[other]; ok {
		min, max := c.Threshold, boundary
		if c.Side == Max {
			min, max = boundary, c.Threshold
		}
		if min > max {
			return &InvalidBoundaryError{Asset: c.Asset, Metric: c.Metric, Min: min, Max: max}
		}
	}
	m.thresholds[key] = c.Threshold
	return nil
}

// AddConditions sets several conditions, stopping at the first invalid one.
func (m *Monitor) AddConditions(conditions ...Condition) error {
	for _, c := range conditions {
		if err := m.AddCondition(c); err != nil {
			return err
		}
	}
	return nil
}

func otherSide(s Side) Side {
	if s == Min {
		return Max
	}
	return Min
}

// Evaluate recomputes the triggered state of every set condition against the
// valuation's current snapshot.
//
// A min condition triggers iff state < threshold, a max condition iff
// threshold < state; both comparisons are strict, equality never triggers.
// Calling Evaluate twice with no intervening price or holdings change yields
// the same triggered set.
func (m *Monitor) Evaluate() error {
	for _, key := range m.cells() {
		state, err := m.valuation.metricState(key.asset, key.metric)
		if err != nil {
			return err
		}
		threshold := m.thresholds[key]
		switch key.side {
		case Min:
			m.triggered[key] = state < threshold
		case Max:
			m.triggered[key] = threshold < state
		}
	}
	return nil
}

// cells returns the set cells in deterministic order: by asset, then metric,
// then side.
func (m *Monitor) cells() []cell {
	keys := make([]cell, 0, len(m.thresholds))
	for key := range m.thresholds {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.asset != b.asset {
			return a.asset < b.asset
		}
		if a.metric != b.metric {
			return a.metric < b.metric
		}
		return a.side < b.side
	})
	return keys
}

// ActiveConditions returns every set condition.
func (m *Monitor) ActiveConditions() []Condition {
	conditions := make([]Condition, 0, len(m.thresholds))
	for _, key := range m.cells() {
		conditions = append(conditions, Condition{
			Asset:     key.asset,
			Metric:    key.metric,
			Side:      key.side,
			Threshold: m.thresholds[key],
		})
	}
	return conditions
}

// TriggeredConditions returns the subset of set conditions whose boundary the
// last Evaluate call found crossed.
func (m *Monitor) TriggeredConditions() []Condition {
	conditions := make([]Condition, 0)
	for _, key := range m.cells() {
		if !m.triggered[key] {
			continue
		}
		conditions = append(conditions, Condition{
			Asset:     key.asset,
			Metric:    key.metric,
			Side:      key.side,
			Threshold: m.thresholds[key],
		})
	}
	return conditions
}

// State returns the current figure the condition compares its threshold to.
func (m *Monitor) State(c Condition) (float64, error) {
	return m.valuation.metricState(c.Asset, c.Metric)
}

// DecodeConditions reads conditions from a YAML list of entries like
//
//	- asset: bitcoin
//	  metric: price
//	  side: max
//	  threshold: 100000
func DecodeConditions(r io.Reader) ([]Condition, error) {
	var raw []struct {
		Asset     string  `yaml:"asset"`
		Metric    string  `yaml:"metric"`
		Side      string  `yaml:"side"`
		Threshold float64 `yaml:"threshold"`
	}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("could not parse conditions: %w", err)
	}

	conditions := make([]Condition, 0, len(raw))
	for _, e := range raw {
		if e.Asset == "" {
			return nil, fmt.Errorf("could not parse conditions: empty asset id")
		}
		metric, err := ParseMetric(e.Metric)
		if err != nil {
			return nil, fmt.Errorf("condition on %q: %w", e.Asset, err)
		}
		side, err := ParseSide(e.Side)
		if err != nil {
			return nil, fmt.Errorf("condition on %q: %w", e.Asset, err)
		}
		conditions = append(conditions, Condition{
			Asset:     e.Asset,
			Metric:    metric,
			Side:      side,
			Threshold: e.Threshold,
		})
	}
	return conditions, nil
}

// ReadConditionsFile reads conditions from a YAML file.
func ReadConditionsFile(name string) ([]Condition, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open conditions file %q: %w", name, err)
	}
	defer f.Close()
	return DecodeConditions(f)
}
