// Package gsutax reconstructs discrete taxable capital-gain events from a
// brokerage transaction ledger and computes each event's realized profit or
// loss in a single home currency using historical exchange rates.
//
// The core functionalities include:
//   - Transaction Model: Deliveries of equity units, sales, and cash
//     transfers, recorded in a chronological, human-readable JSONL ledger.
//   - Event Building: A single-pass state machine that groups the sorted
//     transaction stream into validated tax events, enforcing that each
//     sale's shares are fully backed by prior deliveries and that every
//     foreign-currency sale is settled by exactly one home-currency transfer.
//   - Profit Computation: Cost basis as the sum of deliveries converted at
//     their own dates' historical rates, profit as the converted settlement
//     minus that cost, grouped per tax year.
//   - Rate Tables: Day-indexed historical exchange rates, persisted as JSONL
//     and refreshed from ECB reference data by the ecb subpackage.
//
// This package serves as the foundational logic for the `gsutax` command-line
// tool.
package gsutax
