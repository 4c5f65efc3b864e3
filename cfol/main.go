// Command cfol tracks, monitors and backtests a crypto portfolio.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/tviana/cryptofolio/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()

	// Unknown subcommands may be external cfol-<name> binaries.
	if args := flag.Args(); len(args) > 0 && !knows(commander, args[0]) {
		if found, code := cmd.RunExtension(args[0], args[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

// knows reports whether the commander has a registered subcommand by that name.
func knows(commander *subcommands.Commander, name string) bool {
	known := false
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if c.Name() == name {
			known = true
		}
	})
	return known
}

// completion declares the shell completion tree. Complete exits the process
// when invoked by the shell completion machinery, and returns otherwise.
func completion() {
	fileFlags := map[string]complete.Predictor{
		"portfolio-file":  predict.Files("*.csv"),
		"goals-file":      predict.Files("*.yaml"),
		"conditions-file": predict.Files("*.yaml"),
		"quote":           predict.Set{"usd", "eur", "btc"},
	}
	cfol := &complete.Command{
		Flags: fileFlags,
		Sub: map[string]*complete.Command{
			"holding": {Flags: fileFlags},
			"monitor": {Flags: fileFlags},
			"goals":   {Flags: fileFlags},
			"history": {},
			"info":    {},
			"backtest": {Flags: map[string]complete.Predictor{
				"s": predict.Set{"hold", "rebalance", "random", "goal"},
			}},
			"topic":  {Args: predict.Set{"holding", "monitor", "history", "backtest", "goals", "readme"}},
			"assist": {},
		},
	}
	cfol.Complete("cfol")
}
