package gsutax

import (
	"fmt"
	"iter"
	"slices"
	"sort"
)

// Ledger represents a list of transactions.
//
// In a Ledger transactions are always in chronological order. Within one day
// the original insertion order is preserved, which keeps sale-then-transfer
// sequences intact.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append adds transactions to the ledger, keeping it chronologically sorted.
func (l *Ledger) Append(txs ...Transaction) *Ledger {
	l.transactions = append(l.transactions, txs...)
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
	return l
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns an iterator over all transactions in chronological order.
func (l *Ledger) Transactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// Currencies returns the sorted set of currencies appearing in the ledger.
func (l *Ledger) Currencies() []string {
	set := make(map[string]bool)
	for _, tx := range l.transactions {
		set[tx.Money().Currency()] = true
	}
	currencies := make([]string, 0, len(set))
	for cur := range set {
		currencies = append(currencies, cur)
	}
	slices.Sort(currencies)
	return currencies
}

// Range returns the first and last transaction dates of the ledger.
// Both are zero on an empty ledger.
func (l *Ledger) Range() (from, to Date) {
	if len(l.transactions) == 0 {
		return Date{}, Date{}
	}
	return l.transactions[0].When(), l.transactions[len(l.transactions)-1].When()
}

// FilterOptions selects the slice of the ledger that feeds the tax engine.
//
// Account selection and the date cutoff are deliberately configuration of the
// loading side: the event builder itself only ever sees the filtered stream.
type FilterOptions struct {
	Accounts  []string // Accounts to keep; empty keeps all.
	NotBefore Date     // Drop transactions strictly before this date; zero keeps all.
}

// Filter returns a new ledger restricted to the given options.
func (l *Ledger) Filter(opts FilterOptions) *Ledger {
	filtered := NewLedger()
	for _, tx := range l.transactions {
		if !opts.NotBefore.IsZero() && tx.When().Before(opts.NotBefore) {
			continue
		}
		if len(opts.Accounts) > 0 && !slices.Contains(opts.Accounts, account(tx)) {
			continue
		}
		filtered.transactions = append(filtered.transactions, tx)
	}
	return filtered
}

// account extracts the account label from any of the three transaction kinds.
func account(tx Transaction) string {
	switch v := tx.(type) {
	case Delivery:
		return v.Account
	case Sale:
		return v.Account
	case Transfer:
		return v.Account
	}
	return ""
}

// Validate checks every transaction of the ledger for well-formedness.
func (l *Ledger) Validate() error {
	for _, tx := range l.transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("invalid %s on %s: %w", tx.What(), tx.When(), err)
		}
	}
	return nil
}
