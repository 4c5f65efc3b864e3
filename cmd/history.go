package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/tviana/cryptofolio/renderer"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	days      int
	normalize bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display historical prices for the held assets" }
func (*historyCmd) Usage() string {
	return `cfol history [-d <days>] [-n]

  Fetches the price history of every held asset over the last days and
  aligns it into a windowed table. The sampling window follows the range:
  5 minutes for one day, hourly up to 90 days, daily beyond. With -n the
  prices are normalized to each asset's first sample.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "d", 30, "Number of days of history to fetch")
	f.BoolVar(&c.normalize, "n", false, "normalize prices to each asset's first sample")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if c.normalize {
		table = table.Normalize()
	}

	printMarkdown(renderer.HistoryMarkdown(table, *quote))

	return subcommands.ExitSuccess
}
