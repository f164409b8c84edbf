package gsutax

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Rhymond/go-money"
)

// Kind is a typed string identifying the three transaction kinds of the ledger.
type Kind string

// Transaction kinds used for identifying ledger lines.
const (
	KindDelivery Kind = "delivery" // inbound delivery of equity units (e.g. vested shares)
	KindSale     Kind = "sale"     // outbound disposal of equity units
	KindTransfer Kind = "transfer" // cash movement settling a sale's proceeds
)

// currencyCodeRegex checks for the format: 3 uppercase letters.
var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateCurrency checks that a currency code is a well-formed, known ISO 4217 code.
func ValidateCurrency(code string) error {
	if !currencyCodeRegex.MatchString(code) {
		return fmt.Errorf("invalid currency code %q: must be 3 uppercase letters", code)
	}
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}

// Transaction defines the common interface for the three kinds of financial
// movements the ledger records.
type Transaction interface {
	What() Kind    // What returns the kind of the transaction.
	When() Date    // When returns the date on which the transaction occurred.
	Money() Money  // Money returns the monetary amount of the transaction.
	Equal(Transaction) bool
	Validate() error
}

type baseTx struct {
	Kind    Kind   `json:"kind"`              // Kind identifies the transaction (delivery, sale, transfer).
	Date    Date   `json:"date"`              // Date is the day the transaction took place.
	Account string `json:"account,omitempty"` // Account is the source account label, used only for filtering.
}

// What returns the kind of the transaction.
func (t baseTx) What() Kind { return t.Kind }

// When returns the date of the transaction.
func (t baseTx) When() Date { return t.Date }

// MarshalJSON implements the json.Marshaler interface for baseTx.
func (t baseTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", t.Kind)
	w.Append("date", t.Date)
	w.Optional("account", t.Account)
	return w.MarshalJSON()
}

// Validate checks the base transaction fields.
func (t baseTx) Validate() error {
	if t.Date.IsZero() {
		return errors.New("transaction date is missing")
	}
	return nil
}

// Delivery represents an inbound transfer of equity units into the brokerage
// holding, priced in its own currency on its own date.
type Delivery struct {
	baseTx
	Amount Money  // Amount is the value of the delivered units on the delivery date.
	Shares Shares // Shares is the 1e8-scaled count of delivered units.
}

// NewDelivery creates a new Delivery transaction.
func NewDelivery(day Date, account string, amount Money, shares Shares) Delivery {
	return Delivery{
		baseTx: baseTx{Kind: KindDelivery, Date: day, Account: account},
		Amount: amount,
		Shares: shares,
	}
}

// Money returns the delivery's monetary amount.
func (t Delivery) Money() Money { return t.Amount }

// MarshalJSON implements the json.Marshaler interface for Delivery.
func (t Delivery) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.EmbedFrom(t.Amount)
	w.Append("shares", t.Shares)
	return w.MarshalJSON()
}

func (t Delivery) Equal(other Transaction) bool {
	o, ok := other.(Delivery)
	return ok && t.baseTx == o.baseTx && t.Amount.Equal(o.Amount) && t.Shares == o.Shares
}

// Validate checks the Delivery transaction's fields. The amount must be
// positive and the share count non-zero: a delivery of nothing cannot back a
// sale.
func (t Delivery) Validate() error {
	if err := t.baseTx.Validate(); err != nil {
		return err
	}
	if err := ValidateCurrency(t.Amount.Currency()); err != nil {
		return fmt.Errorf("invalid currency for delivery: %w", err)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("delivery amount must be positive, got %s", t.Amount)
	}
	if t.Shares <= 0 {
		return fmt.Errorf("delivery share count must be positive, got %s", t.Shares)
	}
	return nil
}

// Sale represents an outbound disposal of equity units, realizing a price in
// some currency.
type Sale struct {
	baseTx
	Amount Money  // Amount is the proceeds of the sale.
	Shares Shares // Shares is the 1e8-scaled count of sold units.
}

// NewSale creates a new Sale transaction.
func NewSale(day Date, account string, amount Money, shares Shares) Sale {
	return Sale{
		baseTx: baseTx{Kind: KindSale, Date: day, Account: account},
		Amount: amount,
		Shares: shares,
	}
}

// Money returns the sale's proceeds.
func (t Sale) Money() Money { return t.Amount }

// MarshalJSON implements the json.Marshaler interface for Sale.
func (t Sale) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.EmbedFrom(t.Amount)
	w.Append("shares", t.Shares)
	return w.MarshalJSON()
}

func (t Sale) Equal(other Transaction) bool {
	o, ok := other.(Sale)
	return ok && t.baseTx == o.baseTx && t.Amount.Equal(o.Amount) && t.Shares == o.Shares
}

// Validate checks the Sale transaction's fields.
func (t Sale) Validate() error {
	if err := t.baseTx.Validate(); err != nil {
		return err
	}
	if err := ValidateCurrency(t.Amount.Currency()); err != nil {
		return fmt.Errorf("invalid currency for sale: %w", err)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("sale amount must be positive, got %s", t.Amount)
	}
	if t.Shares <= 0 {
		return fmt.Errorf("sale share count must be positive, got %s", t.Shares)
	}
	return nil
}

// Transfer represents a cash movement settling a sale's proceeds into the
// home-currency account. It carries no share count.
type Transfer struct {
	baseTx
	Amount Money // Amount is the settled cash value.
}

// NewTransfer creates a new Transfer transaction.
func NewTransfer(day Date, account string, amount Money) Transfer {
	return Transfer{
		baseTx: baseTx{Kind: KindTransfer, Date: day, Account: account},
		Amount: amount,
	}
}

// Money returns the transfer's settled amount.
func (t Transfer) Money() Money { return t.Amount }

// MarshalJSON implements the json.Marshaler interface for Transfer.
func (t Transfer) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

func (t Transfer) Equal(other Transaction) bool {
	o, ok := other.(Transfer)
	return ok && t.baseTx == o.baseTx && t.Amount.Equal(o.Amount)
}

// Validate checks the Transfer transaction's fields.
func (t Transfer) Validate() error {
	if err := t.baseTx.Validate(); err != nil {
		return err
	}
	if err := ValidateCurrency(t.Amount.Currency()); err != nil {
		return fmt.Errorf("invalid currency for transfer: %w", err)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("transfer amount must be positive, got %s", t.Amount)
	}
	return nil
}
