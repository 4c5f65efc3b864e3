package cryptofolio

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RestSentinel marks a goal entry that takes an even split of whatever
// percentage the explicit entries leave unclaimed.
const RestSentinel = "rest"

// Goal is one target-allocation entry. Exactly one of Amount, Percent or
// Rest is meaningful.
type Goal struct {
	Asset   string
	Amount  float64 // literal target amount, in asset units
	Percent float64 // percentage of the mutable total, 0..100
	Rest    bool

	kind goalKind
}

type goalKind int

const (
	goalAmount goalKind = iota
	goalPercent
	goalRest
)

// Goals is a parsed target allocation.
type Goals struct {
	entries []Goal
}

// Entries returns the parsed goals, sorted by asset id.
func (g *Goals) Entries() []Goal { return g.entries }

// DecodeGoals reads a target allocation from YAML mapping asset ids to either
// a literal amount ("1.5"), a percentage of the mutable total ("35%"), or the
// sentinel "rest". It fails with OverAllocationError when the declared
// percentages, excluding the sentinel, exceed 100%.
func DecodeGoals(r io.Reader) (*Goals, error) {
	raw := make(map[string]string)
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("could not parse goals: %w", err)
	}

	g := &Goals{}
	var declared float64
	for asset, entry := range raw {
		entry = strings.TrimSpace(entry)
		switch {
		case entry == RestSentinel:
			g.entries = append(g.entries, Goal{Asset: asset, Rest: true, kind: goalRest})
		case strings.HasSuffix(entry, "%"):
			pct, err := decimal.NewFromString(strings.TrimSuffix(entry, "%"))
			if err != nil {
				return nil, fmt.Errorf("could not parse goal percentage for %q: %w", asset, err)
			}
			if pct.IsNegative() {
				return nil, fmt.Errorf("goal percentage for %q is negative", asset)
			}
			declared += pct.InexactFloat64()
			g.entries = append(g.entries, Goal{Asset: asset, Percent: pct.InexactFloat64(), kind: goalPercent})
		default:
			amount, err := decimal.NewFromString(entry)
			if err != nil {
				return nil, fmt.Errorf("could not parse goal amount for %q: %w", asset, err)
			}
			if amount.IsNegative() {
				return nil, fmt.Errorf("goal amount for %q is negative", asset)
			}
			g.entries = append(g.entries, Goal{Asset: asset, Amount: amount.InexactFloat64(), kind: goalAmount})
		}
	}

	if declared > 100 {
		return nil, &OverAllocationError{Declared: declared}
	}

	// YAML maps iterate in random order; sort by asset for determinism.
	sort.Slice(g.entries, func(i, j int) bool { return g.entries[i].Asset < g.entries[j].Asset })
	return g, nil
}

// ReadGoalsFile reads a target allocation from a YAML file.
func ReadGoalsFile(name string) (*Goals, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open goals file %q: %w", name, err)
	}
	defer f.Close()
	return DecodeGoals(f)
}

// DriftConditions derives boundary conditions from the allocation: one min
// and one max percentage condition per entry, margin share points around the
// entry's resolved share of the total. Together they trigger whenever an
// asset drifts away from its target share.
func (g *Goals) DriftConditions(total float64, prices PriceSnapshot, margin float64) ([]Condition, error) {
	if total <= 0 {
		return nil, fmt.Errorf("cannot derive drift conditions from a total of %v", total)
	}
	target, err := g.Resolve(total, prices)
	if err != nil {
		return nil, err
	}

	conditions := make([]Condition, 0, 2*len(target))
	for _, asset := range target.Assets() {
		share := target[asset] * prices[asset] / total
		conditions = append(conditions,
			Condition{Asset: asset, Metric: MetricPercentage, Side: Min, Threshold: share - margin},
			Condition{Asset: asset, Metric: MetricPercentage, Side: Max, Threshold: share + margin},
		)
	}
	return conditions, nil
}

// Resolve turns the allocation into target holdings for a given total value
// and price snapshot.
//
// Literal entries reserve their value first; the remaining "mutable" total is
// distributed to percentage entries, and what their percentages leave
// unclaimed is split evenly among the rest entries.
func (g *Goals) Resolve(total float64, prices PriceSnapshot) (Holdings, error) {
	target := make(Holdings, len(g.entries))

	mutable := total
	var declared float64
	var rest int
	for _, e := range g.entries {
		switch e.kind {
		case goalAmount:
			price, ok := prices[e.Asset]
			if !ok {
				return nil, &MissingPriceError{Asset: e.Asset}
			}
			target[e.Asset] = e.Amount
			mutable -= e.Amount * price
		case goalPercent:
			declared += e.Percent
		case goalRest:
			rest++
		}
	}
	if mutable < 0 {
		return nil, fmt.Errorf("literal goal amounts are worth more than the portfolio total %v", total)
	}

	restShare := 0.0
	if rest > 0 {
		restShare = (100 - declared) / float64(rest)
	}

	for _, e := range g.entries {
		if e.kind == goalAmount {
			continue
		}
		price, ok := prices[e.Asset]
		if !ok {
			return nil, &MissingPriceError{Asset: e.Asset}
		}
		if price == 0 {
			return nil, fmt.Errorf("cannot resolve goal for %q: price is zero", e.Asset)
		}
		share := e.Percent
		if e.kind == goalRest {
			share = restShare
		}
		target[e.Asset] = mutable * share / 100 / price
	}
	return target, nil
}
