package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mforster/gsutax"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `gsutax fmt

  Validates and formats the ledger file. This command reads all transactions,
  validates them, sorts them by date, and writes them back in a canonical
  JSONL format.

Usage Examples:
# Rewrites the default ledger file in-place.
$ gsutax fmt

`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// The global filters must not apply here: fmt rewrites the whole file.
	file, err := os.Open(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	ledger, err := gsutax.DecodeLedger(file)
	file.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	if err := ledger.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error validating ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()
	if err := gsutax.EncodeLedger(out, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Successfully formatted %s.\n", *ledgerFile)
	return subcommands.ExitSuccess
}
