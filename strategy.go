package cryptofolio

import (
	"fmt"
	"math/rand"
)

// HoldStrategy goes all-in on one asset at the first step and never trades
// again. It is the baseline other strategies are compared against.
type HoldStrategy struct {
	// Asset is the asset the whole budget is moved into.
	Asset string
}

func (s *HoldStrategy) Name() string { return "hold " + s.Asset }

func (s *HoldStrategy) Decide(view StateView) (TradeAction, Holdings, error) {
	if view.Step != 0 {
		return ActionNone, nil, nil
	}
	price, ok := view.Prices.Get(s.Asset)
	if !ok {
		return ActionNone, nil, fmt.Errorf("cannot hold %q: not part of the portfolio", s.Asset)
	}
	if price == 0 {
		return ActionNone, nil, fmt.Errorf("cannot hold %q: price is zero", s.Asset)
	}
	next := make(Holdings, len(view.Holdings))
	for asset := range view.Holdings {
		next[asset] = 0
	}
	next[s.Asset] = view.Budget / price
	return ActionBuy, next, nil
}

// ThresholdRebalanceStrategy trades one asset against a reserve asset when
// the asset's share of the portfolio leaves a band.
//
// When the share drops strictly below BuyBelow, the portfolio is rebalanced
// to BuyTarget of the budget in Asset and the rest in Reserve; when it rises
// strictly above SellAbove, to SellTarget in Asset and the rest in Reserve.
// Inside the band nothing happens.
type ThresholdRebalanceStrategy struct {
	Asset   string
	Reserve string

	BuyBelow   float64 // share below which the strategy buys
	SellAbove  float64 // share above which it sells
	BuyTarget  float64 // share of budget held in Asset after a buy
	SellTarget float64 // share of budget held in Asset after a sell
}

func (s *ThresholdRebalanceStrategy) Name() string {
	return fmt.Sprintf("rebalance %s/%s [%.2f, %.2f]", s.Asset, s.Reserve, s.BuyBelow, s.SellAbove)
}

func (s *ThresholdRebalanceStrategy) Decide(view StateView) (TradeAction, Holdings, error) {
	share, ok := view.Percentages.Get(s.Asset)
	if !ok {
		return ActionNone, nil, fmt.Errorf("cannot rebalance %q: not part of the portfolio", s.Asset)
	}

	var action TradeAction
	var target float64
	switch {
	case share < s.BuyBelow:
		action, target = ActionBuy, s.BuyTarget
	case s.SellAbove < share:
		action, target = ActionSell, s.SellTarget
	default:
		return ActionNone, nil, nil
	}

	next, err := s.split(view, target)
	if err != nil {
		return ActionNone, nil, err
	}
	return action, next, nil
}

// split allocates 'target' of the budget to Asset and the remainder to
// Reserve.
func (s *ThresholdRebalanceStrategy) split(view StateView, target float64) (Holdings, error) {
	assetPrice, ok := view.Prices.Get(s.Asset)
	if !ok || assetPrice == 0 {
		return nil, fmt.Errorf("cannot rebalance: no usable price for %q", s.Asset)
	}
	reservePrice, ok := view.Prices.Get(s.Reserve)
	if !ok || reservePrice == 0 {
		return nil, fmt.Errorf("cannot rebalance: no usable price for %q", s.Reserve)
	}
	next := view.Holdings.Clone()
	next[s.Asset] = view.Budget * target / assetPrice
	next[s.Reserve] = view.Budget * (1 - target) / reservePrice
	return next, nil
}

// RandomizedStrategy draws fresh band and target parameters for an underlying
// ThresholdRebalanceStrategy at the first step of each run. It exists to
// explore the parameter space against the hold baseline.
type RandomizedStrategy struct {
	Asset   string
	Reserve string
	// Rand is the parameter source; it stays deterministic under a fixed seed.
	Rand *rand.Rand

	inner ThresholdRebalanceStrategy
}

func (s *RandomizedStrategy) Name() string {
	return fmt.Sprintf("randomized %s/%s", s.Asset, s.Reserve)
}

func (s *RandomizedStrategy) Decide(view StateView) (TradeAction, Holdings, error) {
	if view.Step == 0 {
		s.inner = ThresholdRebalanceStrategy{
			Asset:      s.Asset,
			Reserve:    s.Reserve,
			BuyBelow:   s.Rand.Float64() / 2,
			SellAbove:  1 - s.Rand.Float64()/2,
			BuyTarget:  1 - s.Rand.Float64()/2,
			SellTarget: s.Rand.Float64() / 2,
		}
	}
	return s.inner.Decide(view)
}

// Parameters returns the band drawn for the current run.
func (s *RandomizedStrategy) Parameters() ThresholdRebalanceStrategy { return s.inner }

// GoalStrategy rebalances the whole portfolio back to a goal allocation
// whenever any asset drifts from its target share by more than Margin.
type GoalStrategy struct {
	Goals *Goals
	// Margin is the drift, in share points, tolerated before rebalancing.
	Margin float64
}

func (s *GoalStrategy) Name() string { return "goal rebalance" }

func (s *GoalStrategy) Decide(view StateView) (TradeAction, Holdings, error) {
	prices := make(PriceSnapshot, len(view.Prices))
	for _, f := range view.Prices {
		prices[f.Asset] = f.Figure
	}
	target, err := s.Goals.Resolve(view.Budget, prices)
	if err != nil {
		return ActionNone, nil, err
	}

	// Only trade when some asset drifted beyond the margin.
	drifted := false
	for asset, amount := range target {
		price := prices[asset]
		current, _ := view.Percentages.Get(asset)
		want := 0.0
		if view.Budget != 0 {
			want = amount * price / view.Budget
		}
		if diff := current - want; diff > s.Margin || diff < -s.Margin {
			drifted = true
			break
		}
	}
	if !drifted {
		return ActionNone, nil, nil
	}

	next := view.Holdings.Clone()
	for asset := range next {
		next[asset] = 0
	}
	for asset, amount := range target {
		next[asset] = amount
	}
	return ActionBuy, next, nil
}
