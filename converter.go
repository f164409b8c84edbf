package gsutax

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrConversionUnavailable reports that no historical rate exists for a
// requested date and currency pair. It is fatal: a missing rate means the
// rate table is incomplete, never that the amount should pass unconverted.
var ErrConversionUnavailable = errors.New("conversion unavailable")

// CurrencyConverter converts dated monetary amounts into the home currency
// using historical exchange rates.
//
// Implementations must be idempotent for a fixed date/currency pair: the same
// table queried repeatedly within one run yields the same rate.
type CurrencyConverter interface {
	// Currency returns the home currency all conversions resolve to.
	Currency() string
	// Convert returns the equivalent of amount in the home currency, using
	// the historical rate for the given date. Converting an amount already in
	// the home currency is the identity.
	Convert(on Date, amount Money) (Money, error)
	// Rate returns the value of 1 unit of the given currency in the home
	// currency on the given date.
	Rate(on Date, currency string) (decimal.Decimal, error)
}

// rateSeries is a chronological series of rates for one currency.
type rateSeries struct {
	days  []Date
	rates []decimal.Decimal
}

// set records a rate, overwriting an existing point on the same day.
func (s *rateSeries) set(on Date, rate decimal.Decimal) {
	if i := slices.Index(s.days, on); i >= 0 {
		s.rates[i] = rate
		return
	}
	s.days, s.rates = append(s.days, on), append(s.rates, rate)
	sort.Sort(chronological{s})
}

// chronological is a private implementation to keep a series sorted.
type chronological struct{ *rateSeries }

func (s chronological) Len() int           { return len(s.days) }
func (s chronological) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }
func (s chronological) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.rates[i], s.rates[j] = s.rates[j], s.rates[i]
}

// at returns the latest rate at or before the given day.
// Reference rates are not published on non-trading days, so the last known
// rate carries over.
func (s *rateSeries) at(on Date) (decimal.Decimal, bool) {
	i := sort.Search(len(s.days), func(i int) bool { return s.days[i].After(on) })
	if i == 0 {
		return decimal.Decimal{}, false
	}
	return s.rates[i-1], true
}

// RateTable is a CurrencyConverter backed by per-currency historical rate
// series, keyed by day.
type RateTable struct {
	home   string
	series map[string]*rateSeries
}

// NewRateTable creates an empty rate table converting into the given home currency.
func NewRateTable(home string) *RateTable {
	return &RateTable{home: home, series: make(map[string]*rateSeries)}
}

// Currency returns the home currency of the table.
func (t *RateTable) Currency() string { return t.home }

// Add records the value of 1 unit of currency in the home currency on the given day.
func (t *RateTable) Add(on Date, currency string, rate decimal.Decimal) {
	s, ok := t.series[currency]
	if !ok {
		s = &rateSeries{}
		t.series[currency] = s
	}
	s.set(on, rate)
}

// Merge folds every rate point of other into the table. Points sharing a day
// overwrite existing ones: freshly fetched rates win over stale entries.
func (t *RateTable) Merge(other *RateTable) {
	for currency, s := range other.series {
		for i, day := range s.days {
			t.Add(day, currency, s.rates[i])
		}
	}
}

// Len returns the total number of rate points in the table.
func (t *RateTable) Len() int {
	n := 0
	for _, s := range t.series {
		n += len(s.days)
	}
	return n
}

// Rate returns the value of 1 unit of the given currency in the home currency
// on the given date. The home currency itself always rates 1.
func (t *RateTable) Rate(on Date, currency string) (decimal.Decimal, error) {
	if currency == t.home {
		return decimal.NewFromInt(1), nil
	}
	s, ok := t.series[currency]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: no rates for %s", ErrConversionUnavailable, currency)
	}
	rate, ok := s.at(on)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: no %s rate on or before %s", ErrConversionUnavailable, currency, on)
	}
	return rate, nil
}

// Convert returns the equivalent of amount in the home currency on the given date.
func (t *RateTable) Convert(on Date, amount Money) (Money, error) {
	rate, err := t.Rate(on, amount.Currency())
	if err != nil {
		return Money{}, err
	}
	return M(amount.value.Mul(rate), t.home), nil
}

var _ CurrencyConverter = (*RateTable)(nil)

// ratePoint is the JSONL line format of one rate table entry.
type ratePoint struct {
	Date     Date            `json:"date"`
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
}

// DecodeRates reads a JSONL stream of rate points into a rate table for the
// given home currency.
func DecodeRates(r io.Reader, home string) (*RateTable, error) {
	table := NewRateTable(home)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var p ratePoint
		if err := json.Unmarshal(lineBytes, &p); err != nil {
			return nil, fmt.Errorf("could not decode rate line %q: %w", string(lineBytes), err)
		}
		table.Add(p.Date, p.Currency, p.Rate)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading rates: %w", err)
	}
	return table, nil
}

// EncodeRates writes the rate table as JSONL, currencies in sorted order,
// days in chronological order, so the output is canonical.
func EncodeRates(w io.Writer, table *RateTable) error {
	currencies := make([]string, 0, len(table.series))
	for cur := range table.series {
		currencies = append(currencies, cur)
	}
	slices.Sort(currencies)

	for _, cur := range currencies {
		s := table.series[cur]
		for i, day := range s.days {
			var jw jsonObjectWriter
			jw.Append("date", day)
			jw.Append("currency", cur)
			jw.Append("rate", s.rates[i])
			data, err := jw.MarshalJSON()
			if err != nil {
				return err
			}
			if _, err := w.Write(append(data, '\n')); err != nil {
				return err
			}
		}
	}
	return nil
}
