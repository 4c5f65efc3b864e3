package cryptofolio

import "fmt"

// This file defines the error types surfaced by the valuation, monitoring and
// backtesting engines. All of them are returned immediately to the caller;
// none is silently recovered from or retried.

// MissingPriceError reports a held asset absent from a price snapshot.
type MissingPriceError struct {
	Asset string
	Quote string
}

func (e *MissingPriceError) Error() string {
	if e.Quote == "" {
		return fmt.Sprintf("no price for asset %q", e.Asset)
	}
	return fmt.Sprintf("no %s price for asset %q", e.Quote, e.Asset)
}

// InvalidMetricError reports an unknown portfolio metric.
type InvalidMetricError struct {
	Metric string
}

func (e *InvalidMetricError) Error() string {
	return fmt.Sprintf("invalid metric %q: want price, value or percentage", e.Metric)
}

// InvalidBoundaryError reports a malformed threshold pair, where the lower
// boundary of a condition exceeds its upper boundary.
type InvalidBoundaryError struct {
	Asset  string
	Metric Metric
	Min    float64
	Max    float64
}

func (e *InvalidBoundaryError) Error() string {
	return fmt.Sprintf("invalid boundaries for %s %s: min %v exceeds max %v", e.Asset, e.Metric, e.Min, e.Max)
}

// DivisionByZeroError reports a percentage computation over a portfolio whose
// total value is zero while some holdings are not.
type DivisionByZeroError struct {
	Asset string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("cannot compute percentages: total value is zero but %q is held", e.Asset)
}

// InsufficientHistoryError reports a backtest attempted over an empty or
// missing historical table.
type InsufficientHistoryError struct {
	Reason string
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history: %s", e.Reason)
}

// StrategyInvariantError reports a strategy step that created value out of
// thin air: the total after the step (fee included) exceeds the total before.
type StrategyInvariantError struct {
	Step   int
	Before float64
	After  float64
}

func (e *StrategyInvariantError) Error() string {
	return fmt.Sprintf("strategy invariant violated at step %d: total %v after reallocation exceeds %v before", e.Step, e.After, e.Before)
}

// OverAllocationError reports goal percentages that together exceed 100%.
type OverAllocationError struct {
	Declared float64
}

func (e *OverAllocationError) Error() string {
	return fmt.Sprintf("goal percentages add up to %.2f%%, exceeding 100%%", e.Declared)
}
