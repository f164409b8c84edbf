package gsutax

import (
	"time"

	"github.com/shopspring/decimal"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// on is a short helper for test dates.
func on(year int, month time.Month, day int) Date { return NewDate(year, month, day) }

// rate is a short helper for decimal rates from const.
func rate(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// testTable builds a EUR rate table with a few USD rates used across tests.
func testTable() *RateTable {
	t := NewRateTable("EUR")
	t.Add(on(2021, time.March, 1), "USD", rate(0.80))
	t.Add(on(2021, time.June, 1), "USD", rate(0.90))
	t.Add(on(2021, time.September, 1), "USD", rate(0.85))
	return t
}
