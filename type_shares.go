package gsutax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// shareScale is the number of scaled units in one share.
//
// Brokerage ledgers record share counts as integers scaled by 1e8, so
// fractional vesting deliveries stay exact.
const shareScale = 8

// Shares is an integer count of 1e8-scaled equity units.
//
// It is meaningful only on deliveries and sales; transfers carry none.
type Shares int64

// S returns the Shares value for a whole number of shares.
func S(shares int64) Shares {
	return Shares(decimal.New(shares, shareScale).IntPart())
}

// ParseShares parses a possibly fractional share count, e.g. "50" or "12.5".
func ParseShares(str string) (Shares, error) {
	d, err := decimal.NewFromString(str)
	if err != nil {
		return 0, fmt.Errorf("invalid share count %q: %w", str, err)
	}
	return Shares(d.Shift(shareScale).IntPart()), nil
}

func (s Shares) Add(o Shares) Shares { return s + o }
func (s Shares) IsZero() bool        { return s == 0 }

// String renders the share count in whole shares, e.g. "50" or "12.5".
func (s Shares) String() string {
	return decimal.New(int64(s), -shareScale).String()
}
