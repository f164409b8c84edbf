// Package cmd implements the CLI application to compute capital-gains tax
// events from a transaction ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/mforster/gsutax"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&deliveryCmd{}, "transactions")
	c.Register(&saleCmd{}, "transactions")
	c.Register(&transferCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")
	c.Register(&fmtCmd{}, "transactions")

	c.Register(&eventsCmd{}, "reports")
	c.Register(&gainsCmd{}, "reports")

	c.Register(&fetchCmd{}, "rates")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file containing transactions (JSONL format)")
var ratesFile = flag.String("rates-file", "rates.jsonl", "Path to the historical exchange rates file (JSONL format)")
var homeCurrency = flag.String("currency", "EUR", "Home currency profits are computed in")
var accounts = flag.String("accounts", "", "Comma-separated list of accounts to include (default: all)")
var notBefore = flag.String("not-before", "", "Ignore transactions before this date (YYYY-MM-DD)")

// DecodeLedger loads the app ledger file and applies the account and date
// filters from the global flags.
func DecodeLedger() (*gsutax.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, using an empty ledger instead")
		return gsutax.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()

	ledger, err := gsutax.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", *ledgerFile, err)
	}

	var opts gsutax.FilterOptions
	if *accounts != "" {
		for _, a := range strings.Split(*accounts, ",") {
			opts.Accounts = append(opts.Accounts, strings.TrimSpace(a))
		}
	}
	if *notBefore != "" {
		opts.NotBefore, err = gsutax.ParseDate(*notBefore)
		if err != nil {
			return nil, fmt.Errorf("invalid -not-before date: %w", err)
		}
	}
	return ledger.Filter(opts), nil
}

// DecodeRateTable loads the app rates file into a rate table for the home
// currency.
func DecodeRateTable() (*gsutax.RateTable, error) {
	f, err := os.Open(*ratesFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, rates file does not exist, using an empty rate table instead")
		return gsutax.NewRateTable(*homeCurrency), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open rates file %q: %w", *ratesFile, err)
	}
	defer f.Close()

	table, err := gsutax.DecodeRates(f, *homeCurrency)
	if err != nil {
		return nil, fmt.Errorf("could not decode rates file %q: %w", *ratesFile, err)
	}
	return table, nil
}

// EncodeRateTable rewrites the app rates file in canonical order.
func EncodeRateTable(table *gsutax.RateTable) error {
	f, err := os.Create(*ratesFile)
	if err != nil {
		return fmt.Errorf("could not write rates file %q: %w", *ratesFile, err)
	}
	defer f.Close()
	return gsutax.EncodeRates(f, table)
}

// EncodeTransaction appends a single transaction into the app default ledger file.
func EncodeTransaction(tx gsutax.Transaction) subcommands.ExitStatus {
	if err := tx.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid transaction: %v\n", err)
		return subcommands.ExitUsageError
	}

	filename := *ledgerFile
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := gsutax.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", filename)
	return subcommands.ExitSuccess
}
