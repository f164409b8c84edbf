package gsutax

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// amountTx is a specialized struct to read a ledger amount in two fields.
type amountTx struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a amountTx) Money() Money {
	return M(a.Amount, a.Currency)
}

// DecodeLedger decodes transactions from a stream of JSONL data from an io.Reader,
// decodes each line into the appropriate transaction struct, and returns a sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Kind Kind `json:"kind"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify kind in line %q: %w", string(lineBytes), err)
		}

		var decodedTx Transaction

		switch identifier.Kind {
		case KindDelivery:
			var temp struct {
				baseTx
				amountTx
				Shares Shares `json:"shares"`
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			decodedTx = Delivery{
				baseTx: temp.baseTx,
				Amount: temp.Money(),
				Shares: temp.Shares,
			}
		case KindSale:
			var temp struct {
				baseTx
				amountTx
				Shares Shares `json:"shares"`
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			decodedTx = Sale{
				baseTx: temp.baseTx,
				Amount: temp.Money(),
				Shares: temp.Shares,
			}
		case KindTransfer:
			var temp struct {
				baseTx
				amountTx
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			decodedTx = Transfer{
				baseTx: temp.baseTx,
				Amount: temp.Money(),
			}
		default:
			return nil, fmt.Errorf("unknown transaction kind: %q", identifier.Kind)
		}

		ledger.Append(decodedTx)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	return ledger, nil
}

// EncodeTransaction writes a single transaction as one JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("could not marshal %s transaction: %w", tx.What(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// EncodeLedger writes all transactions of the ledger in canonical JSONL form.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for tx := range ledger.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
