package pos

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/pkg/money"
)

// DefaultTaxRate is the GST rate applied to every sale.
var DefaultTaxRate = decimal.RequireFromString("0.18")

// Totals are rounded to currency precision. Discount is the amount actually
// applied, which never exceeds Subtotal + Tax.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Subtotal money.Fixed `json:"subtotal"`
		Tax      money.Fixed `json:"tax"`
		Discount money.Fixed `json:"discount"`
		Total    money.Fixed `json:"total"`
	}{
		Subtotal: money.Of(t.Subtotal),
		Tax:      money.Of(t.Tax),
		Discount: money.Of(t.Discount),
		Total:    money.Of(t.Total),
	})
}

// ComputeTotals sums line totals, applies tax and subtracts the discount.
// A negative discount is ignored.
func ComputeTotals(lines []Line, taxRate, discount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total)
	}
	subtotal = subtotal.Round(2)

	tax := subtotal.Mul(taxRate).Round(2)
	gross := subtotal.Add(tax)

	applied := decimal.Max(discount, decimal.Zero).Round(2)
	if applied.GreaterThan(gross) {
		applied = gross
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: applied,
		Total:    gross.Sub(applied).Round(2),
	}
}
