// Package renderer turns gsutax reports into markdown strings.
package renderer

import (
	"fmt"
	"strings"

	"github.com/mforster/gsutax"
)

// GainsMarkdown renders the per-year realized gains report to markdown.
//
// Each event lists its deliveries with the conversion rate applied at their
// own date, then the settlement and the resulting profit. Rates are printed
// with 4 decimals, matching what tax forms usually ask for.
func GainsMarkdown(report *gsutax.GainsReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Capital Gains Report (%s)\n\n", report.Currency)
	if len(report.Years) == 0 {
		fmt.Fprint(&b, "No tax events.\n")
		return b.String()
	}

	for _, year := range report.Years {
		fmt.Fprintf(&b, "## %d\n\n", year.Year)

		for _, event := range year.Events {
			fmt.Fprintf(&b, "### Sale of %s shares on %s\n\n", event.SaleShares, event.SaleDate)

			fmt.Fprintf(&b, "| Delivery | Shares | Amount | Rate | Cost (%s) |\n", report.Currency)
			fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
			for _, line := range event.Deliveries {
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
					line.Date,
					line.Shares,
					line.Amount,
					line.Rate.StringFixed(4),
					line.Cost,
				)
			}
			fmt.Fprintf(&b, "| **Total cost** | | | | **%s** |\n\n", event.Cost)

			fmt.Fprintf(&b, "Settled for %s, profit **%s**.\n\n",
				event.Settlement, event.Profit.SignedString())
		}

		fmt.Fprintf(&b, "Total %d: **%s**\n\n", year.Year, year.Total.SignedString())
	}

	return b.String()
}
