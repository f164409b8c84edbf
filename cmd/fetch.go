package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mforster/gsutax/ecb"
)

// fetchCmd downloads the historical rates the ledger needs.
type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download the historical exchange rates the ledger needs" }
func (*fetchCmd) Usage() string {
	return `gsutax fetch

  Derives the currencies and the date range from the ledger, downloads the
  matching ECB reference rates, and merges them into the rates file.
`
}

func (*fetchCmd) SetFlags(f *flag.FlagSet) {}

func (*fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if ledger.Len() == 0 {
		fmt.Fprintln(os.Stderr, "Ledger is empty, nothing to fetch.")
		return subcommands.ExitSuccess
	}

	from, to := ledger.Range()
	fetched, err := ecb.Fetcher{}.Rates(*homeCurrency, ledger.Currencies(), from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching rates: %v\n", err)
		return subcommands.ExitFailure
	}

	table, err := DecodeRateTable()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	table.Merge(fetched)

	if err := EncodeRateTable(table); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Fetched %d rates into %s\n", fetched.Len(), *ratesFile)
	return subcommands.ExitSuccess
}
