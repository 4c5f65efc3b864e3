package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// infoCmd holds the flags for the 'info' subcommand.
type infoCmd struct{}

func (*infoCmd) Name() string     { return "info" }
func (*infoCmd) Synopsis() string { return "show descriptive information about assets" }
func (*infoCmd) Usage() string {
	return `cfol info [asset...]

  Shows name, symbol and market cap rank for the given assets, or for every
  held asset when none is given.
`
}

func (c *infoCmd) SetFlags(f *flag.FlagSet) {}

func (c *infoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	assets := f.Args()
	if len(assets) == 0 {
		holdings, err := DecodeHoldings()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
			return subcommands.ExitFailure
		}
		assets = holdings.Assets()
	}

	client := newClient()

	var b strings.Builder
	fmt.Fprintln(&b, "| Asset | Symbol | Name | Rank |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|")
	for _, asset := range assets {
		info, err := client.CoinInfo(asset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching info for %q: %v\n", asset, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %d |\n", info.ID, strings.ToUpper(info.Symbol), info.Name, info.MarketRank)
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
