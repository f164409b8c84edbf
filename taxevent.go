package gsutax

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validation failures raised while grouping transactions into tax events.
// All of them are fatal: a violated invariant means the ledger or its account
// mapping is wrong, and a silently wrong tax figure is worse than no figure.
var (
	// ErrDuplicateSale reports a second sale arriving before the previous
	// sale's event has been closed.
	ErrDuplicateSale = errors.New("duplicate sale")
	// ErrUnmatchedShares reports a sale whose share count does not equal the
	// sum of its accumulated deliveries.
	ErrUnmatchedShares = errors.New("unmatched shares")
	// ErrMissingDeliveries reports an event closing with no deliveries.
	ErrMissingDeliveries = errors.New("missing deliveries")
	// ErrInconsistentSettlement reports a transfer attached to a home-currency
	// sale, or a foreign-currency sale closing without one.
	ErrInconsistentSettlement = errors.New("inconsistent settlement")
	// ErrUnterminatedEvent reports input ending with pending transactions not
	// yet flushed into an event.
	ErrUnterminatedEvent = errors.New("unterminated event")
)

// TaxEvent is one matched group of deliveries, one sale and an optional
// settling transfer: the atomic unit for capital-gain computation.
//
// A TaxEvent is immutable once constructed; all invariants are checked by
// NewTaxEvent and hold for its whole lifetime.
type TaxEvent struct {
	deliveries []Delivery
	sale       Sale
	transfer   *Transfer // nil when the sale is already in the home currency
	home       string
}

// NewTaxEvent validates and constructs a tax event in the given home currency.
//
// Invariants: deliveries is non-empty, the delivered share counts sum exactly
// to the sale's share count, and a transfer is present if and only if the
// sale is not denominated in the home currency.
func NewTaxEvent(deliveries []Delivery, sale Sale, transfer *Transfer, home string) (TaxEvent, error) {
	e := TaxEvent{
		deliveries: slices.Clone(deliveries),
		sale:       sale,
		transfer:   transfer,
		home:       home,
	}

	if len(deliveries) == 0 {
		return TaxEvent{}, fmt.Errorf("%w: no deliveries for sale\n%s", ErrMissingDeliveries, e)
	}
	var delivered Shares
	for _, d := range deliveries {
		delivered = delivered.Add(d.Shares)
	}
	if delivered != sale.Shares {
		return TaxEvent{}, fmt.Errorf("%w: sale of %s shares backed by %s delivered shares\n%s",
			ErrUnmatchedShares, sale.Shares, delivered, e)
	}
	if sale.Amount.Currency() == home && transfer != nil {
		return TaxEvent{}, fmt.Errorf("%w: transfer settling a %s sale\n%s", ErrInconsistentSettlement, home, e)
	}
	if sale.Amount.Currency() != home && transfer == nil {
		return TaxEvent{}, fmt.Errorf("%w: no transfer settling a %s sale\n%s",
			ErrInconsistentSettlement, sale.Amount.Currency(), e)
	}
	return e, nil
}

// Deliveries returns the event's deliveries in chronological order.
func (e TaxEvent) Deliveries() []Delivery { return slices.Clone(e.deliveries) }

// Sale returns the event's sale.
func (e TaxEvent) Sale() Sale { return e.sale }

// Transfer returns the settling transfer and whether one exists. There is
// none exactly when the sale is already in the home currency.
func (e TaxEvent) Transfer() (Transfer, bool) {
	if e.transfer == nil {
		return Transfer{}, false
	}
	return *e.transfer, true
}

// settlement returns the transaction bearing the event's realized value: the
// transfer when present, the sale otherwise.
func (e TaxEvent) settlement() Transaction {
	if e.transfer != nil {
		return *e.transfer
	}
	return e.sale
}

// SettlementAmount returns the realized value of the event, in the transfer's
// currency when one exists, in the sale's currency otherwise.
func (e TaxEvent) SettlementAmount() Money { return e.settlement().Money() }

// SettlementDate returns the date the event's value was realized.
func (e TaxEvent) SettlementDate() Date { return e.settlement().When() }

// Year returns the tax year the event falls into: the year of its settlement.
func (e TaxEvent) Year() int { return e.SettlementDate().Year() }

// Transactions returns all transactions of the event in chronological order:
// the partition law guarantees that concatenating these across events
// reproduces the builder's input exactly.
func (e TaxEvent) Transactions() []Transaction {
	txs := make([]Transaction, 0, len(e.deliveries)+2)
	for _, d := range e.deliveries {
		txs = append(txs, d)
	}
	txs = append(txs, e.sale)
	if e.transfer != nil {
		txs = append(txs, *e.transfer)
	}
	return txs
}

// TotalDeliveryCost returns the cost basis of the event: the sum of each
// delivery converted into the home currency at its own date's rate.
//
// Deliveries are converted one by one, never aggregated first: conversion is
// not distributive over a running total when rates differ per date.
func (e TaxEvent) TotalDeliveryCost(converter CurrencyConverter) (Money, error) {
	total := M(0, converter.Currency())
	for _, d := range e.deliveries {
		cost, err := converter.Convert(d.When(), d.Amount)
		if err != nil {
			return Money{}, fmt.Errorf("cost of delivery on %s: %w", d.When(), err)
		}
		total = total.Add(cost)
	}
	return total, nil
}

// Profit returns the realized gain (or loss) of the event in the home
// currency: the settlement converted at the settlement date, minus the total
// delivery cost. The settlement leg is always routed through the converter,
// even when it is already in the home currency.
func (e TaxEvent) Profit(converter CurrencyConverter) (Money, error) {
	proceeds, err := converter.Convert(e.SettlementDate(), e.SettlementAmount())
	if err != nil {
		return Money{}, fmt.Errorf("settlement on %s: %w", e.SettlementDate(), err)
	}
	cost, err := e.TotalDeliveryCost(converter)
	if err != nil {
		return Money{}, err
	}
	return proceeds.Sub(cost), nil
}

// String renders the event's transactions one per line, for diagnostics.
func (e TaxEvent) String() string {
	var b strings.Builder
	for _, d := range e.deliveries {
		fmt.Fprintf(&b, "%s %s %s %s\n", d.When(), d.What(), d.Amount, d.Shares)
	}
	fmt.Fprintf(&b, "%s %s %s %s\n", e.sale.When(), e.sale.What(), e.sale.Amount, e.sale.Shares)
	if e.transfer != nil {
		fmt.Fprintf(&b, "%s %s %s\n", e.transfer.When(), e.transfer.What(), e.transfer.Amount)
	}
	return b.String()
}
