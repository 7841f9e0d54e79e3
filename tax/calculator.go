// Package tax converts between tax-inclusive and tax-exclusive yen amounts
// for the consumption tax codes the registers know about.
package tax

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Tax codes stamped on transaction lines.
const (
	Reduced  = "08" // reduced rate, 8%
	Standard = "10" // standard rate, 10%
)

var (
	ErrInvalidTaxCode = errors.New("invalid tax code")
	ErrNegativeAmount = errors.New("amount must not be negative")
)

var rates = map[string]decimal.Decimal{
	Reduced:  decimal.RequireFromString("0.08"),
	Standard: decimal.RequireFromString("0.10"),
}

var one = decimal.NewFromInt(1)

// Breakdown is the result of splitting or building up a taxed amount.
// ExclusiveAmount + TaxAmount always equals InclusiveAmount.
type Breakdown struct {
	ExclusiveAmount int64 `json:"tax_exclusive_amount"`
	TaxAmount       int64 `json:"tax_amount"`
	InclusiveAmount int64 `json:"tax_inclusive_amount"`
}

// RateFor returns the rate for a tax code.
func RateFor(code string) (decimal.Decimal, error) {
	rate, ok := rates[code]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidTaxCode, code)
	}
	return rate, nil
}

// Codes lists the recognized tax codes in ascending order.
func Codes() []string {
	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Decompose splits a tax-inclusive amount. The exclusive part is
// inclusive / (1 + rate) truncated to a whole yen; the tax is whatever
// remains.
func Decompose(inclusive int64, code string) (Breakdown, error) {
	rate, err := RateFor(code)
	if err != nil {
		return Breakdown{}, err
	}
	if inclusive < 0 {
		return Breakdown{}, fmt.Errorf("%w: %d", ErrNegativeAmount, inclusive)
	}

	// QuoRem at precision 0 yields the exact truncated quotient.
	quotient, _ := decimal.NewFromInt(inclusive).QuoRem(one.Add(rate), 0)
	exclusive := quotient.IntPart()

	return Breakdown{
		ExclusiveAmount: exclusive,
		TaxAmount:       inclusive - exclusive,
		InclusiveAmount: inclusive,
	}, nil
}

// Compose adds tax to a tax-exclusive amount, truncating the tax to a
// whole yen.
func Compose(exclusive int64, code string) (Breakdown, error) {
	rate, err := RateFor(code)
	if err != nil {
		return Breakdown{}, err
	}
	if exclusive < 0 {
		return Breakdown{}, fmt.Errorf("%w: %d", ErrNegativeAmount, exclusive)
	}

	taxAmount := decimal.NewFromInt(exclusive).Mul(rate).Truncate(0).IntPart()

	return Breakdown{
		ExclusiveAmount: exclusive,
		TaxAmount:       taxAmount,
		InclusiveAmount: exclusive + taxAmount,
	}, nil
}
