package gsutax

import (
	"strings"
	"testing"
)

func TestMoneyArithmetic(t *testing.T) {
	a := EUR(100.50)
	b := EUR(49.50)

	if got, want := a.Add(b), EUR(150); !got.Equal(want) {
		t.Errorf("Add() = %v, want %v", got, want)
	}
	if got, want := a.Sub(b), EUR(51); !got.Equal(want) {
		t.Errorf("Sub() = %v, want %v", got, want)
	}
	if got, want := b.Sub(a), EUR(-51); !got.Equal(want) {
		t.Errorf("Sub() = %v, want %v", got, want)
	}
	if got, want := a.Neg(), EUR(-100.50); !got.Equal(want) {
		t.Errorf("Neg() = %v, want %v", got, want)
	}
}

func TestMoneyWeakCurrency(t *testing.T) {
	// The "" currency is weak: it adopts the other operand's currency.
	if got := M(0, "").Add(USD(10)); got.Currency() != "USD" {
		t.Errorf("weak currency Add() currency = %q, want USD", got.Currency())
	}

	defer func() {
		if recover() == nil {
			t.Errorf("adding EUR and USD should panic")
		}
	}()
	EUR(1).Add(USD(1))
}

func TestMoneyComparisons(t *testing.T) {
	if !EUR(1).LessThan(EUR(2)) {
		t.Errorf("1 EUR should be less than 2 EUR")
	}
	if !EUR(2).GreaterThan(EUR(1)) {
		t.Errorf("2 EUR should be greater than 1 EUR")
	}
	if !EUR(0).IsZero() || EUR(1).IsZero() {
		t.Errorf("IsZero() misreports")
	}
	if !EUR(1).IsPositive() || !EUR(-1).IsNegative() {
		t.Errorf("sign predicates misreport")
	}
	if EUR(1).Equal(USD(1)) {
		t.Errorf("equal values in different currencies must not be Equal")
	}
}

func TestMoneySignedString(t *testing.T) {
	if got := EUR(0).SignedString(); got != "-" {
		t.Errorf("SignedString() of zero = %q, want \"-\"", got)
	}
	if got := EUR(12.34).SignedString(); !strings.HasPrefix(got, "+") {
		t.Errorf("SignedString() of a gain = %q, want a + prefix", got)
	}
	if got := EUR(-12.34).SignedString(); strings.HasPrefix(got, "+") {
		t.Errorf("SignedString() of a loss = %q, must not have a + prefix", got)
	}
}

func TestMoneyMarshalJSON(t *testing.T) {
	data, err := USD(1234.5).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	if want := `{"currency":"USD","amount":1234.5}`; string(data) != want {
		t.Errorf("MarshalJSON() = %s, want %s", data, want)
	}

	// The "" currency is omitted.
	data, err = M(1, "").MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	if want := `{"amount":1}`; string(data) != want {
		t.Errorf("MarshalJSON() = %s, want %s", data, want)
	}
}
