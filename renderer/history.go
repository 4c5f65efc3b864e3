package renderer

import (
	"fmt"
	"strings"

	"github.com/tviana/cryptofolio"
)

// maxHistoryRows bounds the table output; longer windows show the head
// and tail with an ellipsis row in between.
const maxHistoryRows = 20

// HistoryMarkdown renders a sampled price table, one row per window.
func HistoryMarkdown(t *cryptofolio.Table, quote string) string {
	assets := t.Assets()
	rows := t.Rows()

	var b strings.Builder
	fmt.Fprintf(&b, "# History (%d windows)\n\n", len(rows))
	fmt.Fprint(&b, "| Date |")
	for _, asset := range assets {
		fmt.Fprintf(&b, " %s |", asset)
	}
	fmt.Fprintln(&b)
	fmt.Fprint(&b, "|:---|")
	for range assets {
		fmt.Fprint(&b, "---:|")
	}
	fmt.Fprintln(&b)

	skip := len(rows) > maxHistoryRows
	for i, row := range rows {
		if skip && i == maxHistoryRows/2 {
			fmt.Fprintf(&b, "| … |%s\n", strings.Repeat(" … |", len(assets)))
			continue
		}
		if skip && i > maxHistoryRows/2 && i < len(rows)-maxHistoryRows/2 {
			continue
		}
		fmt.Fprintf(&b, "| %s |", row.Time.Format("2006-01-02 15:04"))
		for _, asset := range assets {
			fmt.Fprintf(&b, " %s |", Amount(row.Prices[asset], quote))
		}
		fmt.Fprintln(&b)
	}
	return b.String()
}
