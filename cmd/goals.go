package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/tviana/cryptofolio/renderer"
)

// goalsCmd holds the flags for the 'goals' subcommand.
type goalsCmd struct{}

func (*goalsCmd) Name() string     { return "goals" }
func (*goalsCmd) Synopsis() string { return "show how far the portfolio is from its target allocation" }
func (*goalsCmd) Usage() string {
	return `cfol goals

  Resolves the target allocation against the current portfolio total and
  shows, per asset, the held amount and the amount the goals call for.
`
}

func (c *goalsCmd) SetFlags(f *flag.FlagSet) {}

func (c *goalsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	goals, err := DecodeGoals()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading goals: %v\n", err)
		return subcommands.ExitFailure
	}

	v, err := DecodeValuation()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	total, err := v.Total()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error valuing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	target, err := goals.Resolve(total, v.Snapshot())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving goals: %v\n", err)
		return subcommands.ExitFailure
	}

	holdings := v.Holdings()
	snapshot := v.Snapshot()

	var b strings.Builder
	fmt.Fprintf(&b, "# Goals (total %s)\n\n", renderer.Amount(total, v.Quote()))
	fmt.Fprintln(&b, "| Asset | Held | Target | Drift |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, asset := range target.Assets() {
		drift := (holdings[asset] - target[asset]) * snapshot[asset]
		fmt.Fprintf(&b, "| %s | %v | %v | %s |\n",
			asset, holdings[asset], target[asset],
			renderer.Amount(drift, v.Quote()),
		)
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
