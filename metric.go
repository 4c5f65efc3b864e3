package cryptofolio

import "fmt"

// Metric identifies which per-asset figure a condition watches.
type Metric int

const (
	// MetricPrice is the price of one unit of the asset in the quote currency.
	MetricPrice Metric = iota
	// MetricValue is price times the held amount.
	MetricValue
	// MetricPercentage is the asset's value as a fraction of the portfolio total.
	MetricPercentage
)

// String formats the metric in its standard form.
func (m Metric) String() string {
	switch m {
	case MetricPrice:
		return "price"
	case MetricValue:
		return "value"
	case MetricPercentage:
		return "percentage"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// ParseMetric parses a metric from its standard form.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "price":
		return MetricPrice, nil
	case "value":
		return MetricValue, nil
	case "percentage":
		return MetricPercentage, nil
	default:
		return 0, &InvalidMetricError{Metric: s}
	}
}

// Side identifies which boundary of a condition the threshold describes.
type Side int

const (
	// Min triggers when the metric falls strictly below the threshold.
	Min Side = iota
	// Max triggers when the metric rises strictly above the threshold.
	Max
)

// String formats the side in its standard form.
func (s Side) String() string {
	switch s {
	case Min:
		return "min"
	case Max:
		return "max"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// ParseSide parses a side from its standard form.
func ParseSide(str string) (Side, error) {
	switch str {
	case "min":
		return Min, nil
	case "max":
		return Max, nil
	default:
		return 0, fmt.Errorf("invalid side %q: want min or max", str)
	}
}
