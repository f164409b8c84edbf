package gsutax

import (
	"errors"
	"testing"
	"time"
)

func TestNewTaxEventInvariants(t *testing.T) {
	d1 := NewDelivery(on(2021, time.March, 15), "", USD(5000), S(50))
	d2 := NewDelivery(on(2021, time.April, 15), "", USD(5500), S(50))
	sale := NewSale(on(2021, time.June, 2), "", USD(12000), S(100))
	transfer := NewTransfer(on(2021, time.June, 4), "", EUR(10800))

	tests := []struct {
		name       string
		deliveries []Delivery
		sale       Sale
		transfer   *Transfer
		wantErr    error
	}{
		{
			name:       "valid foreign event",
			deliveries: []Delivery{d1, d2},
			sale:       sale,
			transfer:   &transfer,
		},
		{
			name:       "valid home event",
			deliveries: []Delivery{NewDelivery(on(2021, time.March, 15), "", EUR(5000), S(100))},
			sale:       NewSale(on(2021, time.June, 2), "", EUR(12000), S(100)),
		},
		{
			name:     "no deliveries",
			sale:     sale,
			transfer: &transfer,
			wantErr:  ErrMissingDeliveries,
		},
		{
			name:       "unmatched shares",
			deliveries: []Delivery{d1},
			sale:       sale,
			transfer:   &transfer,
			wantErr:    ErrUnmatchedShares,
		},
		{
			name:       "foreign sale without transfer",
			deliveries: []Delivery{d1, d2},
			sale:       sale,
			wantErr:    ErrInconsistentSettlement,
		},
		{
			name:       "home sale with transfer",
			deliveries: []Delivery{NewDelivery(on(2021, time.March, 15), "", EUR(5000), S(100))},
			sale:       NewSale(on(2021, time.June, 2), "", EUR(12000), S(100)),
			transfer:   &transfer,
			wantErr:    ErrInconsistentSettlement,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTaxEvent(tc.deliveries, tc.sale, tc.transfer, "EUR")
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("NewTaxEvent() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("NewTaxEvent() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestTaxEventSettlement(t *testing.T) {
	d := NewDelivery(on(2021, time.March, 15), "", USD(5000), S(100))
	sale := NewSale(on(2021, time.June, 2), "", USD(12000), S(100))
	transfer := NewTransfer(on(2021, time.June, 4), "", EUR(10800))

	foreign, err := NewTaxEvent([]Delivery{d}, sale, &transfer, "EUR")
	if err != nil {
		t.Fatalf("NewTaxEvent() error: %v", err)
	}
	if got := foreign.SettlementAmount(); !got.Equal(EUR(10800)) {
		t.Errorf("SettlementAmount() = %v, want the transfer amount", got)
	}
	if got := foreign.SettlementDate(); got != on(2021, time.June, 4) {
		t.Errorf("SettlementDate() = %v, want the transfer date", got)
	}
	if foreign.Year() != 2021 {
		t.Errorf("Year() = %d, want 2021", foreign.Year())
	}
	if _, ok := foreign.Transfer(); !ok {
		t.Errorf("Transfer() reports no transfer on a foreign event")
	}

	home, err := NewTaxEvent(
		[]Delivery{NewDelivery(on(2021, time.March, 15), "", EUR(5000), S(100))},
		NewSale(on(2022, time.January, 10), "", EUR(12000), S(100)),
		nil, "EUR")
	if err != nil {
		t.Fatalf("NewTaxEvent() error: %v", err)
	}
	if got := home.SettlementAmount(); !got.Equal(EUR(12000)) {
		t.Errorf("SettlementAmount() = %v, want the sale amount", got)
	}
	if got := home.SettlementDate(); got != on(2022, time.January, 10) {
		t.Errorf("SettlementDate() = %v, want the sale date", got)
	}
	if home.Year() != 2022 {
		t.Errorf("Year() = %d, want the sale year 2022", home.Year())
	}
	if _, ok := home.Transfer(); ok {
		t.Errorf("Transfer() reports a transfer on a home-currency event")
	}
}

func TestTaxEventTotalDeliveryCost(t *testing.T) {
	// Two deliveries under different rate regimes: 5000 USD at 0.80 and
	// 5500 USD at 0.90. Each converts at its own date.
	d1 := NewDelivery(on(2021, time.March, 15), "", USD(5000), S(50))
	d2 := NewDelivery(on(2021, time.June, 2), "", USD(5500), S(50))
	sale := NewSale(on(2021, time.June, 2), "", USD(12000), S(100))
	transfer := NewTransfer(on(2021, time.June, 4), "", EUR(10800))

	event, err := NewTaxEvent([]Delivery{d1, d2}, sale, &transfer, "EUR")
	if err != nil {
		t.Fatalf("NewTaxEvent() error: %v", err)
	}

	cost, err := event.TotalDeliveryCost(testTable())
	if err != nil {
		t.Fatalf("TotalDeliveryCost() error: %v", err)
	}
	if want := EUR(8950); !cost.Equal(want) {
		t.Errorf("TotalDeliveryCost() = %v, want %v", cost, want)
	}
}

func TestTaxEventProfit(t *testing.T) {
	d1 := NewDelivery(on(2021, time.March, 15), "", USD(5000), S(50))
	d2 := NewDelivery(on(2021, time.June, 2), "", USD(5500), S(50))
	sale := NewSale(on(2021, time.June, 2), "", USD(12000), S(100))
	transfer := NewTransfer(on(2021, time.June, 4), "", EUR(10800))

	event, err := NewTaxEvent([]Delivery{d1, d2}, sale, &transfer, "EUR")
	if err != nil {
		t.Fatalf("NewTaxEvent() error: %v", err)
	}

	// Proceeds 10800 EUR (the transfer, identity rate), cost 4000 + 4950.
	profit, err := event.Profit(testTable())
	if err != nil {
		t.Fatalf("Profit() error: %v", err)
	}
	if want := EUR(1850); !profit.Equal(want) {
		t.Errorf("Profit() = %v, want %v", profit, want)
	}

	// The same inputs always produce the same figure.
	again, err := event.Profit(testTable())
	if err != nil {
		t.Fatalf("Profit() error: %v", err)
	}
	if !again.Equal(profit) {
		t.Errorf("Profit() is not deterministic: %v then %v", profit, again)
	}
}

func TestTaxEventProfitHomeCurrency(t *testing.T) {
	event, err := NewTaxEvent(
		[]Delivery{NewDelivery(on(2021, time.March, 15), "", EUR(5000), S(100))},
		NewSale(on(2021, time.June, 2), "", EUR(12000), S(100)),
		nil, "EUR")
	if err != nil {
		t.Fatalf("NewTaxEvent() error: %v", err)
	}

	profit, err := event.Profit(testTable())
	if err != nil {
		t.Fatalf("Profit() error: %v", err)
	}
	if want := EUR(7000); !profit.Equal(want) {
		t.Errorf("Profit() = %v, want %v", profit, want)
	}
}

func TestTaxEventProfitUnavailableRate(t *testing.T) {
	// The delivery predates the first known USD rate.
	transfer := NewTransfer(on(2021, time.June, 4), "", EUR(10800))
	event, err := NewTaxEvent(
		[]Delivery{NewDelivery(on(2020, time.March, 15), "", USD(5000), S(100))},
		NewSale(on(2021, time.June, 2), "", USD(12000), S(100)),
		&transfer, "EUR")
	if err != nil {
		t.Fatalf("NewTaxEvent() error: %v", err)
	}

	if _, err := event.Profit(testTable()); !errors.Is(err, ErrConversionUnavailable) {
		t.Errorf("Profit() error = %v, want ErrConversionUnavailable", err)
	}
}

func TestTaxEventTransactions(t *testing.T) {
	d1 := NewDelivery(on(2021, time.March, 15), "", USD(5000), S(50))
	d2 := NewDelivery(on(2021, time.April, 15), "", USD(5500), S(50))
	sale := NewSale(on(2021, time.June, 2), "", USD(12000), S(100))
	transfer := NewTransfer(on(2021, time.June, 4), "", EUR(10800))

	event, err := NewTaxEvent([]Delivery{d1, d2}, sale, &transfer, "EUR")
	if err != nil {
		t.Fatalf("NewTaxEvent() error: %v", err)
	}

	want := []Transaction{d1, d2, sale, transfer}
	got := event.Transactions()
	if len(got) != len(want) {
		t.Fatalf("Transactions() returned %d transactions, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("Transactions()[%d] = %#v, want %#v", i, got[i], want[i])
		}
	}
}
