package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mforster/gsutax"
	"github.com/mforster/gsutax/renderer"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	year int
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "per-year realized capital gains report" }
func (*gainsCmd) Usage() string {
	return `gsutax gains [-year <year>]

  Computes the realized capital gain of every tax event, converted into the
  home currency at historical rates, and reports them grouped by tax year.

Usage Examples:
# Report all years.
$ gsutax gains

# Report a single tax year.
$ gsutax gains -year 2021

`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "Report only this tax year (default: all years).")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	events, err := gsutax.BuildEvents(ledger, *homeCurrency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	table, err := DecodeRateTable()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	report, err := gsutax.NewGainsReport(events, table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing gains: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.year != 0 {
		years := report.Years
		report.Years = nil
		for _, y := range years {
			if y.Year == c.year {
				report.Years = append(report.Years, y)
			}
		}
	}

	printMarkdown(renderer.GainsMarkdown(report))
	return subcommands.ExitSuccess
}
