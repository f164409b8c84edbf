package gsutax

import (
	"fmt"
	"strings"
)

// eventBuilder is the accumulator of one grouping pass: the pending
// deliveries, at most one pending sale, and at most one pending transfer.
// It is private to one call of BuildEvents and discarded afterwards.
type eventBuilder struct {
	home       string
	deliveries []Delivery
	sale       *Sale
	transfer   *Transfer
}

// absorb folds one transaction into the pending state.
func (b *eventBuilder) absorb(tx Transaction) error {
	switch v := tx.(type) {
	case Delivery:
		b.deliveries = append(b.deliveries, v)
	case Sale:
		if b.sale != nil {
			return fmt.Errorf("%w: sale on %s arrives before the sale on %s is settled\n%s",
				ErrDuplicateSale, v.When(), b.sale.When(), b.pending())
		}
		b.sale = &v
	case Transfer:
		b.transfer = &v
	default:
		return fmt.Errorf("unknown transaction kind %q on %s", tx.What(), tx.When())
	}
	return nil
}

// closeable reports whether the pending state forms a complete event: a
// transfer has arrived, or the pending sale needs no settling leg because it
// is already in the home currency.
func (b *eventBuilder) closeable() bool {
	return b.transfer != nil || (b.sale != nil && b.sale.Amount.Currency() == b.home)
}

// flush validates the pending state into a TaxEvent and resets the accumulator.
func (b *eventBuilder) flush() (TaxEvent, error) {
	if b.sale == nil {
		return TaxEvent{}, fmt.Errorf("%w: transfer on %s settles no sale\n%s",
			ErrInconsistentSettlement, b.transfer.When(), b.pending())
	}
	event, err := NewTaxEvent(b.deliveries, *b.sale, b.transfer, b.home)
	if err != nil {
		return TaxEvent{}, err
	}
	b.deliveries = nil
	b.sale = nil
	b.transfer = nil
	return event, nil
}

// empty reports whether the accumulator carries no pending state.
func (b *eventBuilder) empty() bool {
	return len(b.deliveries) == 0 && b.sale == nil && b.transfer == nil
}

// pending renders the accumulator contents for diagnostics.
func (b *eventBuilder) pending() string {
	var s strings.Builder
	for _, d := range b.deliveries {
		fmt.Fprintf(&s, "%s %s %s %s\n", d.When(), d.What(), d.Amount, d.Shares)
	}
	if b.sale != nil {
		fmt.Fprintf(&s, "%s %s %s %s\n", b.sale.When(), b.sale.What(), b.sale.Amount, b.sale.Shares)
	}
	if b.transfer != nil {
		fmt.Fprintf(&s, "%s %s %s\n", b.transfer.When(), b.transfer.What(), b.transfer.Amount)
	}
	return s.String()
}

// BuildEvents partitions the ledger's chronologically sorted transactions
// into tax events, with no gaps and no overlaps.
//
// The single linear pass relies on the brokerage workflow invariant that each
// sale settles before the next begins: deliveries accumulate, one sale closes
// them, and a cash transfer (or the sale itself, when already denominated in
// the home currency) terminates the event. Processing stops at the first
// violation; there is no partial-success mode.
func BuildEvents(ledger *Ledger, home string) ([]TaxEvent, error) {
	if err := ValidateCurrency(home); err != nil {
		return nil, fmt.Errorf("invalid home currency: %w", err)
	}

	b := &eventBuilder{home: home}
	var events []TaxEvent

	for tx := range ledger.Transactions() {
		if err := b.absorb(tx); err != nil {
			return nil, err
		}
		if b.closeable() {
			event, err := b.flush()
			if err != nil {
				return nil, err
			}
			events = append(events, event)
		}
	}

	if !b.empty() {
		return nil, fmt.Errorf("%w: input ends with pending transactions\n%s", ErrUnterminatedEvent, b.pending())
	}
	return events, nil
}
