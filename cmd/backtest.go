package cmd

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/tviana/cryptofolio"
	"github.com/tviana/cryptofolio/renderer"
)

// backtestCmd holds the flags for the 'backtest' subcommand.
type backtestCmd struct {
	days       int
	fee        float64
	strategies string
	asset      string
	reserve    string
	runs       int
	seed       int64
}

func (*backtestCmd) Name() string     { return "backtest" }
func (*backtestCmd) Synopsis() string { return "replay trading strategies over historical prices" }
func (*backtestCmd) Usage() string {
	return `cfol backtest [-d <days>] [-fee <rate>] [-s <strategies>] [-a <asset>] [-r <reserve>]

  Fetches the price history of the held assets and replays each strategy
  over it, starting from the current holdings. Strategies trade one asset
  against a reserve asset and pay the transaction fee on every reallocation.
  The run never touches the real portfolio file.

  Strategies (comma separated): hold, rebalance, random, goal.

Usage Examples:
# Compare holding bitcoin against rebalancing it over the last 90 days.
$ cfol backtest -d 90 -a bitcoin -r tether -s hold,rebalance
`
}

func (c *backtestCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "d", 90, "Number of days of history to replay")
	f.Float64Var(&c.fee, "fee", 0.001, "Transaction fee rate paid on each reallocation")
	f.StringVar(&c.strategies, "s", "hold,rebalance", "Comma separated strategies to compare")
	f.StringVar(&c.asset, "a", "bitcoin", "Asset the strategies trade")
	f.StringVar(&c.reserve, "r", "tether", "Reserve asset the strategies trade against")
	f.IntVar(&c.runs, "runs", 10, "Number of runs for the random strategy")
	f.Int64Var(&c.seed, "seed", 0, "Seed for the random strategy, 0 for time-based")
}

func (c *backtestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	holdings, err := DecodeHoldings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	table, err := newClient().HistoricalTable(holdings.Assets(), *quote, c.days, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching history: %v\n", err)
		return subcommands.ExitFailure
	}

	strategies, err := c.buildStrategies()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	v := cryptofolio.NewValuation(holdings, *quote)
	s := &cryptofolio.Simulator{Valuation: v, FeeRate: c.fee, Validate: true}

	var results []*cryptofolio.Result
	for _, strategy := range strategies {
		result, err := s.Run(strategy, table)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running strategy %q: %v\n", strategy.Name(), err)
			return subcommands.ExitFailure
		}
		results = append(results, result)
	}

	if len(results) == 1 {
		printMarkdown(renderer.BacktestMarkdown(results[0], *quote))
	} else {
		printMarkdown(renderer.CompareMarkdown(results, *quote))
	}

	return subcommands.ExitSuccess
}

// buildStrategies turns the -s flag into strategy instances.
func (c *backtestCmd) buildStrategies() ([]cryptofolio.Strategy, error) {
	seed := c.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var strategies []cryptofolio.Strategy
	for _, name := range strings.Split(c.strategies, ",") {
		switch strings.TrimSpace(name) {
		case "hold":
			strategies = append(strategies, &cryptofolio.HoldStrategy{Asset: c.asset})
		case "rebalance":
			strategies = append(strategies, &cryptofolio.ThresholdRebalanceStrategy{
				Asset:     c.asset,
				Reserve:   c.reserve,
				BuyBelow:  0.3,
				SellAbove: 0.7,
				BuyTarget: 0.7, SellTarget: 0.3,
			})
		case "random":
			for i := 0; i < c.runs; i++ {
				strategies = append(strategies, &cryptofolio.RandomizedStrategy{
					Asset:   c.asset,
					Reserve: c.reserve,
					Rand:    rng,
				})
			}
		case "goal":
			goals, err := DecodeGoals()
			if err != nil {
				return nil, fmt.Errorf("strategy goal needs a goals file: %w", err)
			}
			strategies = append(strategies, &cryptofolio.GoalStrategy{Goals: goals, Margin: 0.05})
		default:
			return nil, fmt.Errorf("unknown strategy %q, want hold, rebalance, random or goal", name)
		}
	}
	if len(strategies) == 0 {
		return nil, fmt.Errorf("no strategy selected")
	}
	return strategies, nil
}
