package renderer

import (
	"fmt"
	"strings"

	"github.com/tviana/cryptofolio"
)

// BacktestMarkdown renders a simulation result: performance over the
// replayed window, trade activity and the final allocation.
func BacktestMarkdown(r *cryptofolio.Result, quote string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Backtest: %s\n\n", r.Strategy)
	fmt.Fprintf(&b, "- Steps: %d\n", len(r.Totals))
	fmt.Fprintf(&b, "- Initial total: %s\n", Amount(r.InitialTotal(), quote))
	fmt.Fprintf(&b, "- Final total: %s\n", Amount(r.FinalTotal(), quote))
	fmt.Fprintf(&b, "- Performance: %s\n", Percent(r.Performance()))

	if n := trades(r); n > 0 {
		fmt.Fprintf(&b, "- Trades: %d\n", n)
	} else {
		fmt.Fprintln(&b, "- Trades: none")
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "## Final allocation")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "| Asset | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, asset := range r.Final.Assets() {
		fmt.Fprintf(&b, "| %s | %s |\n", asset, number(r.Final[asset]))
	}
	return b.String()
}

// CompareMarkdown renders several results side by side, ranked by final
// total. The last column reports each strategy's gap to the best run; the
// best run itself carries a dash.
func CompareMarkdown(results []*cryptofolio.Result, quote string) string {
	ranked := make([]*cryptofolio.Result, len(results))
	copy(ranked, results)
	for i := range ranked {
		for j := i + 1; j < len(ranked); j++ {
			if ranked[j].FinalTotal() > ranked[i].FinalTotal() {
				ranked[i], ranked[j] = ranked[j], ranked[i]
			}
		}
	}

	var b strings.Builder
	fmt.Fprintln(&b, "# Strategy comparison")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "| Strategy | Final | Performance | vs best |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for i, r := range ranked {
		vsBest := "—"
		if i > 0 {
			vsBest = Percent(r.Compare(ranked[0]))
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			r.Strategy,
			Amount(r.FinalTotal(), quote),
			Percent(r.Performance()),
			vsBest,
		)
	}
	return b.String()
}

func trades(r *cryptofolio.Result) int {
	n := 0
	for _, step := range r.Actions {
		if step.Action != cryptofolio.ActionNone {
			n++
		}
	}
	return n
}
