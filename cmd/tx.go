package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mforster/gsutax"
	"github.com/mforster/gsutax/renderer"
	"github.com/shopspring/decimal"
)

// recordFlags are the flags shared by all transaction-recording commands.
type recordFlags struct {
	date     string
	account  string
	amount   string
	currency string
}

func (r *recordFlags) register(f *flag.FlagSet) {
	f.StringVar(&r.date, "d", gsutax.Today().String(), "Date of the transaction (YYYY-MM-DD).")
	f.StringVar(&r.account, "account", "", "Account the transaction belongs to.")
	f.StringVar(&r.amount, "a", "", "Monetary amount of the transaction.")
	f.StringVar(&r.currency, "c", "", "Currency code of the amount (e.g. USD).")
}

// money parses the date and amount flags into their domain values.
func (r *recordFlags) money() (gsutax.Date, gsutax.Money, error) {
	day, err := gsutax.ParseDate(r.date)
	if err != nil {
		return gsutax.Date{}, gsutax.Money{}, fmt.Errorf("invalid -d date: %w", err)
	}
	value, err := decimal.NewFromString(r.amount)
	if err != nil {
		return gsutax.Date{}, gsutax.Money{}, fmt.Errorf("invalid -a amount %q: %w", r.amount, err)
	}
	return day, gsutax.M(value, r.currency), nil
}

// deliveryCmd records a share delivery in the ledger.
type deliveryCmd struct {
	recordFlags
	shares string
}

func (*deliveryCmd) Name() string     { return "delivery" }
func (*deliveryCmd) Synopsis() string { return "record a share delivery (vesting) in the ledger" }
func (*deliveryCmd) Usage() string {
	return `gsutax delivery -d <date> -q <shares> -a <amount> -c <currency> [-account <name>]

  Records shares delivered into the brokerage account, valued at their
  fair market value on the delivery date.

Usage Examples:
$ gsutax delivery -d 2021-03-15 -q 50 -a 5000 -c USD -account "Morgan Stanley"

`
}

func (c *deliveryCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.StringVar(&c.shares, "q", "", "Number of shares delivered (fractions allowed).")
}

func (c *deliveryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, amount, err := c.money()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	shares, err := gsutax.ParseShares(c.shares)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -q shares: %v\n", err)
		return subcommands.ExitUsageError
	}
	return EncodeTransaction(gsutax.NewDelivery(day, c.account, amount, shares))
}

// saleCmd records a share sale in the ledger.
type saleCmd struct {
	recordFlags
	shares string
}

func (*saleCmd) Name() string     { return "sale" }
func (*saleCmd) Synopsis() string { return "record a share sale in the ledger" }
func (*saleCmd) Usage() string {
	return `gsutax sale -d <date> -q <shares> -a <amount> -c <currency> [-account <name>]

  Records a sale of previously delivered shares for the given proceeds.

Usage Examples:
$ gsutax sale -d 2021-06-02 -q 100 -a 12000 -c USD -account "Morgan Stanley"

`
}

func (c *saleCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.StringVar(&c.shares, "q", "", "Number of shares sold (fractions allowed).")
}

func (c *saleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, amount, err := c.money()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	shares, err := gsutax.ParseShares(c.shares)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -q shares: %v\n", err)
		return subcommands.ExitUsageError
	}
	return EncodeTransaction(gsutax.NewSale(day, c.account, amount, shares))
}

// transferCmd records the cash transfer settling a foreign-currency sale.
type transferCmd struct {
	recordFlags
}

func (*transferCmd) Name() string { return "transfer" }
func (*transferCmd) Synopsis() string {
	return "record the cash transfer that settles a foreign-currency sale"
}
func (*transferCmd) Usage() string {
	return `gsutax transfer -d <date> -a <amount> -c <currency> [-account <name>]

  Records the arrival of the sale proceeds on a cash account, converted
  into the receiving account's currency.

Usage Examples:
$ gsutax transfer -d 2021-06-04 -a 10800 -c EUR -account "OFX"

`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, amount, err := c.money()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return EncodeTransaction(gsutax.NewTransfer(day, c.account, amount))
}

// txCmd lists the ledger transactions.
type txCmd struct{}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list all transactions in the ledger" }
func (*txCmd) Usage() string {
	return `gsutax tx

  Lists the ledger transactions in chronological order, after applying the
  global account and date filters.
`
}

func (*txCmd) SetFlags(f *flag.FlagSet) {}

func (*txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TransactionsMarkdown(ledger))
	return subcommands.ExitSuccess
}
