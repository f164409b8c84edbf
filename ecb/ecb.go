// Package ecb downloads historical currency reference rates as published by
// the European Central Bank, through the frankfurter.app JSON API.
//
// Responses are cached on disk with a daily expiry, so repeated runs over the
// same ledger do not hammer the service.
package ecb

import (
	"fmt"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/mforster/gsutax"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public frankfurter.app endpoint serving the ECB
// reference rates.
const DefaultBaseURL = "https://api.frankfurter.app"

// Fetcher downloads historical reference rates into a gsutax.RateTable.
//
// The zero value is ready to use: it queries DefaultBaseURL with a daily
// caching client.
type Fetcher struct {
	BaseURL string       // defaults to DefaultBaseURL
	Client  *http.Client // defaults to a daily disk-caching client
}

func (f Fetcher) baseURL() string {
	if f.BaseURL != "" {
		return f.BaseURL
	}
	return DefaultBaseURL
}

func (f Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return newDailyCachingClient()
}

// Rates fetches, for every given foreign currency, the daily value of one
// unit in the home currency over the from..to range, and collects them into
// a rate table.
//
// The home currency itself is skipped: it always converts at identity.
func (f Fetcher) Rates(home string, currencies []string, from, to gsutax.Date) (*gsutax.RateTable, error) {
	table := gsutax.NewRateTable(home)
	for _, currency := range currencies {
		if currency == home {
			continue
		}
		if err := f.fetch(table, currency, from, to); err != nil {
			return nil, fmt.Errorf("fetching %s rates: %w", currency, err)
		}
	}
	return table, nil
}

// fetch queries one timeseries and folds it into the table.
func (f Fetcher) fetch(table *gsutax.RateTable, currency string, from, to gsutax.Date) error {
	// https://api.frankfurter.app/2021-03-01..2021-06-30?base=USD&symbols=EUR
	// {
	//   "amount": 1.0,
	//   "base": "USD",
	//   "start_date": "2021-03-01",
	//   "end_date": "2021-06-30",
	//   "rates": {
	//     "2021-03-01": { "EUR": 0.829 },
	//     "2021-03-02": { "EUR": 0.8296 }
	//   }
	// }
	addr := fmt.Sprintf("%s/%s..%s?base=%s&symbols=%s", f.baseURL(), from, to, currency, table.Currency())

	var jobj any
	if err := jwget(f.client(), addr, &jobj); err != nil {
		return err
	}

	// The rates object is keyed by date, so it cannot decode into a struct.
	jval, err := jsonpath.Get("$.rates", jobj)
	if err != nil {
		return fmt.Errorf("no rates in response: %w", err)
	}
	days, ok := jval.(map[string]any)
	if !ok {
		return fmt.Errorf("rates is not an object: %v", jval)
	}

	for day, jrates := range days {
		on, err := gsutax.ParseDate(day)
		if err != nil {
			return fmt.Errorf("invalid date %q in response: %w", day, err)
		}
		rates, ok := jrates.(map[string]any)
		if !ok {
			return fmt.Errorf("rates for %s is not an object: %v", day, jrates)
		}
		val, ok := rates[table.Currency()].(float64)
		if !ok {
			return fmt.Errorf("no %s rate for %s in response", table.Currency(), day)
		}
		table.Add(on, currency, decimal.NewFromFloat(val))
	}
	return nil
}
