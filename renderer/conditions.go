package renderer

import (
	"fmt"
	"strings"

	"github.com/tviana/cryptofolio"
)

// ConditionsMarkdown renders the monitor's condition grid. Triggered
// conditions are listed first with the observed figure next to the
// threshold it crossed.
func ConditionsMarkdown(m *cryptofolio.Monitor, v *cryptofolio.Valuation) (string, error) {
	if err := m.Evaluate(); err != nil {
		return "", err
	}
	triggered := m.TriggeredConditions()

	var b strings.Builder
	fmt.Fprintln(&b, "# Conditions")
	fmt.Fprintln(&b)

	if len(triggered) == 0 {
		fmt.Fprintln(&b, "No condition triggered.")
	} else {
		fmt.Fprintln(&b, "| Asset | Metric | Current | Threshold |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|")
		for _, c := range triggered {
			current, err := currentFigure(v, c)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s %s |\n",
				c.Asset, c.Metric,
				figure(current, c.Metric, v.Quote()),
				operator(c.Side),
				figure(c.Threshold, c.Metric, v.Quote()),
			)
		}
	}

	active := m.ActiveConditions()
	if len(active) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "## Watching")
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "| Asset | Metric | Threshold |")
		fmt.Fprintln(&b, "|:---|:---|---:|")
		for _, c := range active {
			fmt.Fprintf(&b, "| %s | %s | %s %s |\n",
				c.Asset, c.Metric,
				operator(c.Side),
				figure(c.Threshold, c.Metric, v.Quote()),
			)
		}
	}
	return b.String(), nil
}

func currentFigure(v *cryptofolio.Valuation, c cryptofolio.Condition) (float64, error) {
	var ranking cryptofolio.Ranking
	var err error
	switch c.Metric {
	case cryptofolio.MetricPrice:
		ranking, err = v.Prices()
	case cryptofolio.MetricValue:
		ranking, err = v.Values()
	case cryptofolio.MetricPercentage:
		ranking, err = v.Percentages()
	default:
		return 0, &cryptofolio.InvalidMetricError{Metric: c.Metric.String()}
	}
	if err != nil {
		return 0, err
	}
	f, _ := ranking.Get(c.Asset)
	return f, nil
}

func figure(f float64, m cryptofolio.Metric, quote string) string {
	if m == cryptofolio.MetricPercentage {
		return Percent(f)
	}
	return Amount(f, quote)
}

func operator(s cryptofolio.Side) string {
	if s == cryptofolio.Min {
		return "<"
	}
	return ">"
}
