package pos_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/pos"
	"github.com/tuanvumaihuynh/bizsuite/pkg/ptr"
)

func TestNewDraft(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("Should fail on an empty cart", func(t *testing.T) {
		_, err := pos.NewDraft(pos.Cart{}, pos.DraftParams{PaymentMethod: model.PaymentMethodCash})

		assert.ErrorIs(t, err, apperr.EmptyCartErr)
	})

	t.Run("Should require a payment method", func(t *testing.T) {
		var cart pos.Cart
		require.NoError(t, cart.AddItem(product(1, "1.00", 1), 1))

		_, err := pos.NewDraft(cart, pos.DraftParams{})

		assert.ErrorIs(t, err, apperr.ValidationErr)
	})

	t.Run("Should build one order and one item per line", func(t *testing.T) {
		var cart pos.Cart
		require.NoError(t, cart.AddItem(product(1, "100.00", 5), 3))
		require.NoError(t, cart.AddItem(product(2, "20.00", 5), 1))
		require.NoError(t, cart.SetDiscount(dec("10")))

		draft, err := pos.NewDraft(cart, pos.DraftParams{
			Customer:      pos.Customer{Email: " jane@example.com "},
			CashierID:     ptr.New(int64(7)),
			PaymentMethod: model.PaymentMethodUPI,
			TaxRate:       pos.DefaultTaxRate,
			CreatedAt:     now,
		})
		require.NoError(t, err)

		order := draft.Order
		assert.Equal(t, model.OrderStatusCompleted, order.Status)
		assert.Equal(t, model.PaymentMethodUPI, order.PaymentMethod)
		assert.Equal(t, pos.WalkInCustomer, *order.CustomerName)
		assert.Equal(t, "jane@example.com", *order.CustomerEmail)
		assert.Nil(t, order.CustomerPhone)
		assert.Equal(t, int64(7), *order.CashierID)
		assert.Equal(t, now, order.CreatedAt)
		assert.True(t, dec("320.00").Equal(order.Subtotal))
		assert.True(t, dec("57.60").Equal(order.Tax))
		assert.True(t, dec("367.60").Equal(order.Total))
		assert.Regexp(t, regexp.MustCompile(`^ORD-\d+-[0-9A-F]{4}$`), order.OrderNumber)

		require.Len(t, draft.Items, len(cart.Lines))
		assert.Equal(t, int64(1), draft.Items[0].ProductID)
		assert.Equal(t, 3, draft.Items[0].Quantity)
		assert.True(t, dec("300.00").Equal(draft.Items[0].Total))
		assert.True(t, dec("20.00").Equal(draft.Items[1].Price))
	})

	t.Run("Should keep a provided order number", func(t *testing.T) {
		var cart pos.Cart
		require.NoError(t, cart.AddItem(product(1, "1.00", 1), 1))

		draft, err := pos.NewDraft(cart, pos.DraftParams{
			PaymentMethod: model.PaymentMethodCash,
			OrderNumber:   "ORD-1",
		})
		require.NoError(t, err)

		assert.Equal(t, "ORD-1", draft.Order.OrderNumber)
	})
}

func TestNewOrderNumber(t *testing.T) {
	now := time.UnixMilli(1718000000000)

	a := pos.NewOrderNumber(now)
	b := pos.NewOrderNumber(now)

	assert.Contains(t, a, "ORD-1718000000000-")
	assert.Len(t, a, len("ORD-1718000000000-")+4)
	assert.NotEqual(t, a, b)
}
