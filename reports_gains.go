package gsutax

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// DeliveryLine is one delivery of an event report, with the cost of the
// delivery converted at its own date's rate.
type DeliveryLine struct {
	Date   Date            // the delivery date
	Shares Shares          // delivered share count
	Amount Money           // the delivery value in its source currency
	Rate   decimal.Decimal // home-currency value of 1 unit of the source currency on Date
	Cost   Money           // Amount converted into the home currency at Rate
}

// EventReport is one tax event with its computed figures.
type EventReport struct {
	Deliveries []DeliveryLine
	SaleDate   Date
	SaleShares Shares
	Settlement Money // the realized value, in its original currency
	Cost       Money // total delivery cost in the home currency
	Profit     Money // realized gain or loss in the home currency
}

// YearReport groups the events settled in one tax year.
type YearReport struct {
	Year   int
	Events []EventReport
	Total  Money // sum of the year's event profits, in the home currency
}

// GainsReport is the full per-year realized gains report.
type GainsReport struct {
	Currency string // the home currency all figures are expressed in
	Years    []YearReport
}

// NewGainsReport computes cost basis and profit for every event and groups
// them by settlement year, years ascending, events in input order.
//
// Every profit is converted before it is summed: per-year totals are
// home-currency folds over already-converted figures, never the other way
// around.
func NewGainsReport(events []TaxEvent, converter CurrencyConverter) (*GainsReport, error) {
	home := converter.Currency()
	byYear := make(map[int]*YearReport)

	for _, e := range events {
		report, err := newEventReport(e, converter)
		if err != nil {
			return nil, err
		}

		year := e.Year()
		yr, ok := byYear[year]
		if !ok {
			yr = &YearReport{Year: year, Total: M(0, home)}
			byYear[year] = yr
		}
		yr.Events = append(yr.Events, report)
		yr.Total = yr.Total.Add(report.Profit)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	slices.Sort(years)

	gains := &GainsReport{Currency: home}
	for _, y := range years {
		gains.Years = append(gains.Years, *byYear[y])
	}
	return gains, nil
}

func newEventReport(e TaxEvent, converter CurrencyConverter) (EventReport, error) {
	report := EventReport{
		SaleDate:   e.Sale().When(),
		SaleShares: e.Sale().Shares,
		Settlement: e.SettlementAmount(),
	}

	for _, d := range e.Deliveries() {
		rate, err := converter.Rate(d.When(), d.Amount.Currency())
		if err != nil {
			return EventReport{}, fmt.Errorf("delivery on %s: %w", d.When(), err)
		}
		cost, err := converter.Convert(d.When(), d.Amount)
		if err != nil {
			return EventReport{}, fmt.Errorf("delivery on %s: %w", d.When(), err)
		}
		report.Deliveries = append(report.Deliveries, DeliveryLine{
			Date:   d.When(),
			Shares: d.Shares,
			Amount: d.Amount,
			Rate:   rate,
			Cost:   cost,
		})
	}

	cost, err := e.TotalDeliveryCost(converter)
	if err != nil {
		return EventReport{}, err
	}
	profit, err := e.Profit(converter)
	if err != nil {
		return EventReport{}, err
	}
	report.Cost = cost
	report.Profit = profit
	return report, nil
}
