package pos_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/bizsuite/internal/pos"
)

func TestComputeTotals(t *testing.T) {
	lines := []pos.Line{
		{ProductID: 1, Quantity: 2, UnitPrice: dec("10.25"), Total: dec("20.50")},
		{ProductID: 2, Quantity: 1, UnitPrice: dec("3.33"), Total: dec("3.33")},
	}

	t.Run("Should hold total equals subtotal plus tax minus discount", func(t *testing.T) {
		for cents := int64(0); cents < 2812; cents += 37 {
			discount := decimal.New(cents, -2)

			got := pos.ComputeTotals(lines, pos.DefaultTaxRate, discount)

			want := got.Subtotal.Add(got.Tax).Sub(discount).Round(2)
			assert.True(t, want.Equal(got.Total), "discount %s: %s != %s", discount, want, got.Total)
			assert.True(t, discount.Equal(got.Discount))
		}
	})

	t.Run("Should round tax to currency precision", func(t *testing.T) {
		got := pos.ComputeTotals(lines, pos.DefaultTaxRate, decimal.Zero)

		assert.True(t, dec("23.83").Equal(got.Subtotal), got.Subtotal.String())
		assert.True(t, dec("4.29").Equal(got.Tax), got.Tax.String())
		assert.True(t, dec("28.12").Equal(got.Total), got.Total.String())
	})

	t.Run("Should clamp a discount larger than the gross amount", func(t *testing.T) {
		got := pos.ComputeTotals(lines, pos.DefaultTaxRate, dec("1000"))

		assert.True(t, got.Total.IsZero())
		assert.True(t, dec("28.12").Equal(got.Discount))
	})

	t.Run("Should ignore a negative discount", func(t *testing.T) {
		got := pos.ComputeTotals(lines, pos.DefaultTaxRate, dec("-5"))

		assert.True(t, got.Discount.IsZero())
	})

	t.Run("Should return zero totals for no lines", func(t *testing.T) {
		got := pos.ComputeTotals(nil, pos.DefaultTaxRate, dec("3"))

		assert.True(t, got.Subtotal.IsZero())
		assert.True(t, got.Total.IsZero())
	})
}

func TestCartJSON(t *testing.T) {
	var cart pos.Cart
	require.NoError(t, cart.AddItem(product(1, "100", 10), 3))
	require.NoError(t, cart.SetDiscount(dec("10")))

	t.Run("Should write totals with two decimals", func(t *testing.T) {
		b, err := json.Marshal(cart.Totals(pos.DefaultTaxRate))
		require.NoError(t, err)
		assert.JSONEq(t, `{"subtotal":"300.00","tax":"54.00","discount":"10.00","total":"344.00"}`, string(b))
	})

	t.Run("Should write cart amounts with two decimals", func(t *testing.T) {
		b, err := json.Marshal(cart)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"lines":[{"product_id":1,"name":"Product","sku":"SKU","unit_price":"100.00","quantity":3,"total":"300.00"}],
			"discount":"10.00"
		}`, string(b))
	})

	t.Run("Should read back a stored cart", func(t *testing.T) {
		b, err := json.Marshal(cart)
		require.NoError(t, err)

		var got pos.Cart
		require.NoError(t, json.Unmarshal(b, &got))
		require.Len(t, got.Lines, 1)
		assert.True(t, dec("300").Equal(got.Lines[0].Total))
		assert.True(t, dec("10").Equal(got.Discount))
	})
}
