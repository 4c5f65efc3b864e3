package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/tviana/cryptofolio"
	"github.com/tviana/cryptofolio/renderer"
)

// monitorCmd holds the flags for the 'monitor' subcommand.
type monitorCmd struct {
	watch     bool
	interval  time.Duration
	fromGoals bool
	margin    float64
}

func (*monitorCmd) Name() string     { return "monitor" }
func (*monitorCmd) Synopsis() string { return "evaluate alert conditions against current prices" }
func (*monitorCmd) Usage() string {
	return `cfol monitor [-w] [-i <interval>] [-goals] [-margin <share>]

  Loads the conditions file, prices the portfolio and reports which
  conditions the current market state triggers. With -w the evaluation
  repeats until interrupted. With -goals, drift conditions derived from
  the target allocation are watched as well.
`
}

func (c *monitorCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.watch, "w", false, "keep re-evaluating instead of exiting after one pass")
	f.DurationVar(&c.interval, "i", 5*time.Minute, "delay between evaluations in watch mode")
	f.BoolVar(&c.fromGoals, "goals", false, "also watch drift from the target allocation")
	f.Float64Var(&c.margin, "margin", 0.05, "drift in share points tolerated before a goal condition triggers")
}

func (c *monitorCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	conditions, err := DecodeConditions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading conditions: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.fromGoals {
		drift, status := c.goalConditions()
		if status != subcommands.ExitSuccess {
			return status
		}
		conditions = append(conditions, drift...)
	}

	for {
		if status := c.pass(conditions); status != subcommands.ExitSuccess {
			return status
		}
		if !c.watch {
			return subcommands.ExitSuccess
		}
		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case <-time.After(c.interval):
		}
	}
}

// goalConditions derives drift conditions from the goals file at current
// prices.
func (c *monitorCmd) goalConditions() ([]cryptofolio.Condition, subcommands.ExitStatus) {
	goals, err := DecodeGoals()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading goals: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	v, err := DecodeValuation()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	total, err := v.Total()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error valuing portfolio: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	conditions, err := goals.DriftConditions(total, v.Snapshot(), c.margin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error deriving goal conditions: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return conditions, subcommands.ExitSuccess
}

// pass prices the portfolio once and renders the condition report.
func (c *monitorCmd) pass(conditions []cryptofolio.Condition) subcommands.ExitStatus {
	v, err := DecodeValuation()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	m := cryptofolio.NewMonitor(v)
	if err := m.AddConditions(conditions...); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting conditions: %v\n", err)
		return subcommands.ExitFailure
	}

	md, err := renderer.ConditionsMarkdown(m, v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating conditions: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
