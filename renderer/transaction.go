package renderer

import (
	"fmt"
	"strings"

	"github.com/mforster/gsutax"
)

// Transaction renders a transaction to a string.
func Transaction(tx gsutax.Transaction) string {
	switch v := tx.(type) {
	case gsutax.Delivery:
		return fmt.Sprintf("Delivered %s shares worth %s", v.Shares, v.Amount)
	case gsutax.Sale:
		return fmt.Sprintf("Sold %s shares for %s", v.Shares, v.Amount)
	case gsutax.Transfer:
		return fmt.Sprintf("Transferred %s", v.Amount)
	default:
		return string(tx.What())
	}
}

// TransactionsMarkdown renders the ledger's transactions as a markdown list,
// one line per transaction in chronological order.
func TransactionsMarkdown(ledger *gsutax.Ledger) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Transactions\n\n")
	for tx := range ledger.Transactions() {
		fmt.Fprintf(&b, "- %s: %s\n", tx.When(), Transaction(tx))
	}
	return b.String()
}
