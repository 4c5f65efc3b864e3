// Package cmd implements the CLI application to track and backtest a crypto
// portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/tviana/cryptofolio"
	"github.com/tviana/cryptofolio/coingecko"
)

// Register the subcommands.
// A main package calls Register() to declare the subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&holdingCmd{}, "portfolio")
	c.Register(&monitorCmd{}, "portfolio")
	c.Register(&goalsCmd{}, "portfolio")

	c.Register(&historyCmd{}, "market")
	c.Register(&backtestCmd{}, "market")
	c.Register(&infoCmd{}, "market")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use
// global variables.

// Load .env before the flag defaults below read the environment.
var _ = godotenv.Load()

var portfolioFile = flag.String("portfolio-file", envOr(EnvPortfolioFile, "portfolio.csv"), "Path to the holdings file (CSV, asset,amount)")
var goalsFile = flag.String("goals-file", envOr(EnvGoalsFile, "goals.yaml"), "Path to the target-allocation file (YAML)")
var conditionsFile = flag.String("conditions-file", envOr(EnvConditionsFile, "conditions.yaml"), "Path to the alert conditions file (YAML)")
var quote = flag.String("quote", envOr(EnvQuote, "usd"), "Quote currency for all valuations")

// envOr returns the environment value when set, the fallback otherwise.
func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// newClient returns the market data client, authenticated when an API key is
// available in the environment.
func newClient() *coingecko.Client {
	return &coingecko.Client{APIKey: os.Getenv(EnvAPIKey)}
}

// DecodeHoldings reads the holdings from the app portfolio file.
func DecodeHoldings() (cryptofolio.Holdings, error) {
	return cryptofolio.ReadHoldingsFile(*portfolioFile)
}

// DecodeValuation reads the holdings and prices them with current market data.
func DecodeValuation() (*cryptofolio.Valuation, error) {
	holdings, err := DecodeHoldings()
	if err != nil {
		return nil, err
	}
	v := cryptofolio.NewValuation(holdings, *quote)

	snapshot, err := newClient().CurrentPrices(holdings.Assets(), *quote)
	if err != nil {
		return nil, fmt.Errorf("could not fetch current prices: %w", err)
	}
	if err := v.SetPrices(snapshot); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeGoals reads the target allocation from the app goals file.
func DecodeGoals() (*cryptofolio.Goals, error) {
	return cryptofolio.ReadGoalsFile(*goalsFile)
}

// DecodeConditions reads the alert conditions from the app conditions file.
func DecodeConditions() ([]cryptofolio.Condition, error) {
	return cryptofolio.ReadConditionsFile(*conditionsFile)
}
