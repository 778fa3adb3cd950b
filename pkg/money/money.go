// Package money renders currency amounts on the wire.
package money

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places of every amount on the wire.
const Scale = 2

// Fixed is a decimal that marshals to a JSON string with exactly Scale
// decimals, e.g. "100.00". Decoding accepts anything decimal accepts.
type Fixed decimal.Decimal

// Of returns d as a Fixed.
func Of(d decimal.Decimal) Fixed { return Fixed(d) }

// OfPtr returns d as a *Fixed, keeping nil.
func OfPtr(d *decimal.Decimal) *Fixed { return (*Fixed)(d) }

func (f Fixed) String() string { return decimal.Decimal(f).StringFixed(Scale) }

func (f Fixed) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(f.String())), nil
}

func (f *Fixed) UnmarshalJSON(b []byte) error {
	return (*decimal.Decimal)(f).UnmarshalJSON(b)
}
