package cryptofolio

import (
	"fmt"
	"time"
)

// TradeAction is the decision a strategy reports for one backtest step.
type TradeAction int

const (
	// ActionNone leaves the holdings untouched.
	ActionNone TradeAction = iota
	// ActionBuy grows the position the strategy focuses on.
	ActionBuy
	// ActionSell shrinks it.
	ActionSell
)

// String formats the action in its standard form.
func (a TradeAction) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionBuy:
		return "buy"
	case ActionSell:
		return "sell"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// StateView is the read-only view of the portfolio a strategy decides upon.
// All fields are copies: a strategy cannot reach the simulator's live state
// through it.
type StateView struct {
	Step        int
	Time        time.Time
	Quote       string
	Holdings    Holdings
	Prices      Ranking
	Values      Ranking
	Percentages Ranking
	Total       float64
	// Budget is the total value left to redistribute after the transaction
	// fee, i.e. Total times (1 - fee rate). A strategy replacing the holdings
	// must size them from Budget, not Total.
	Budget float64
}

// Strategy decides, once per historical step, whether and how to reallocate
// the portfolio. Decide returns the action taken and the replacement
// holdings, or nil to keep the current ones.
type Strategy interface {
	Name() string
	Decide(view StateView) (TradeAction, Holdings, error)
}

// StepRecord is one entry of the backtest action log.
type StepRecord struct {
	Time   time.Time
	Action TradeAction
}

// Result collects what a backtest run produced: the per-step valuation before
// the strategy acted, and the action the strategy took.
type Result struct {
	Strategy string
	Values   []Row          // per-step asset values (not prices)
	Totals   []float64      // per-step portfolio totals
	Actions  []StepRecord   // one per step
	Final    Holdings       // holdings as the strategy left them
}

// InitialTotal returns the portfolio total at the first step.
func (r *Result) InitialTotal() float64 {
	if len(r.Totals) == 0 {
		return 0
	}
	return r.Totals[0]
}

// FinalTotal returns the portfolio total at the last step.
func (r *Result) FinalTotal() float64 {
	if len(r.Totals) == 0 {
		return 0
	}
	return r.Totals[len(r.Totals)-1]
}

// Performance returns the relative gain of the run, e.g. 0.25 for +25%.
func (r *Result) Performance() float64 {
	initial := r.InitialTotal()
	if initial == 0 {
		return 0
	}
	return r.FinalTotal()/initial - 1
}

// Compare returns how much better this run ended than another, as a relative
// gain of final totals.
func (r *Result) Compare(other *Result) float64 {
	if other == nil || other.FinalTotal() == 0 {
		return 0
	}
	return r.FinalTotal()/other.FinalTotal() - 1
}

// Simulator replays a windowed price table through a strategy, mutating the
// valuation's holdings step by step and restoring them afterwards.
//
// One Run is strictly sequential; the simulator holds no state across runs.
type Simulator struct {
	Valuation *Valuation
	// Monitor, when set, is re-evaluated after each step's snapshot applies.
	Monitor *Monitor
	// FeeRate is the fractional transaction fee disclosed to strategies,
	// e.g. 0.001 for 0.1%.
	FeeRate float64
	// Validate makes the run fail with StrategyInvariantError when a step's
	// post-fee total exceeds its pre-step total.
	Validate bool
}

// Run replays the table in chronological order. For each row it applies the
// row as the active price snapshot, records the valuation, re-evaluates the
// monitor, and lets the strategy reallocate the holdings against the post-fee
// budget.
//
// Whatever happens — completion, a strategy error, an invariant violation —
// the valuation's original holdings and price snapshot are restored before
// Run returns; the original error, if any, is returned unchanged.
func (s *Simulator) Run(strategy Strategy, table *Table) (*Result, error) {
	if table == nil || table.Len() == 0 {
		return nil, &InsufficientHistoryError{Reason: "empty price table"}
	}
	if s.FeeRate < 0 || s.FeeRate >= 1 {
		return nil, fmt.Errorf("fee rate %v out of range [0, 1)", s.FeeRate)
	}

	original := s.Valuation.Holdings()
	originalSnapshot := s.Valuation.Snapshot()
	defer func() {
		s.Valuation.setHoldings(original)
		s.Valuation.snapshot = originalSnapshot
		s.Valuation.invalidate()
	}()

	result := &Result{Strategy: strategy.Name()}
	for step, row := range table.Rows() {
		if err := s.Valuation.SetPrices(row.Prices); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", step, row.Time.Format(time.RFC3339), err)
		}

		values, err := s.Valuation.Values()
		if err != nil {
			return nil, err
		}
		percentages, err := s.Valuation.Percentages()
		if err != nil {
			return nil, err
		}
		prices, err := s.Valuation.Prices()
		if err != nil {
			return nil, err
		}
		total := values.Sum()

		valueRow := make(PriceSnapshot, len(values))
		for _, f := range values {
			valueRow[f.Asset] = f.Figure
		}
		result.Values = append(result.Values, Row{Time: row.Time, Prices: valueRow})
		result.Totals = append(result.Totals, total)

		if s.Monitor != nil {
			if err := s.Monitor.Evaluate(); err != nil {
				return nil, err
			}
		}

		view := StateView{
			Step:        step,
			Time:        row.Time,
			Quote:       s.Valuation.Quote(),
			Holdings:    s.Valuation.Holdings(),
			Prices:      prices,
			Values:      values,
			Percentages: percentages,
			Total:       total,
			Budget:      total * (1 - s.FeeRate),
		}

		action, next, err := strategy.Decide(view)
		if err != nil {
			return nil, fmt.Errorf("strategy %q failed at step %d: %w", strategy.Name(), step, err)
		}
		if next != nil {
			s.Valuation.setHoldings(next.Clone())
			if s.Validate {
				after, err := s.Valuation.Total()
				if err != nil {
					return nil, err
				}
				// Allow for float round-off on the fee arithmetic.
				if after > total*(1+1e-12) {
					return nil, &StrategyInvariantError{Step: step, Before: total, After: after}
				}
			}
		}
		result.Actions = append(result.Actions, StepRecord{Time: row.Time, Action: action})
	}

	result.Final = s.Valuation.Holdings()
	return result, nil
}
