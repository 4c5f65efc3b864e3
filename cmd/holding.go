package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tviana/cryptofolio/renderer"
)

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct{}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the portfolio valued at current prices" }
func (*holdingCmd) Usage() string {
	return `cfol holding

  Fetches current prices for every held asset and displays the portfolio:
  per-asset price, value and share of the total, sorted by descending value.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	v, err := DecodeValuation()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	md, err := renderer.HoldingMarkdown(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error valuing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)

	return subcommands.ExitSuccess
}
