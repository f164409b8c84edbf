package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/mforster/gsutax"
)

// eventsCmd groups the ledger into validated tax events and lists them.
type eventsCmd struct{}

func (*eventsCmd) Name() string     { return "events" }
func (*eventsCmd) Synopsis() string { return "group the ledger into validated tax events" }
func (*eventsCmd) Usage() string {
	return `gsutax events

  Groups the ledger's transactions into tax events (deliveries, one sale,
  and the settling transfer) and lists them. Fails on the first invariant
  violation, pointing at the offending transactions.
`
}

func (*eventsCmd) SetFlags(f *flag.FlagSet) {}

func (*eventsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var b strings.Builder
	fmt.Fprintf(&b, "# Tax Events\n\n")
	for i, e := range events {
		fmt.Fprintf(&b, "## Event %d (%d)\n\n", i+1, e.Year())
		fmt.Fprintf(&b, "```\n%s```\n\n", e)
	}
	if len(events) == 0 {
		fmt.Fprint(&b, "No tax events.\n")
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
