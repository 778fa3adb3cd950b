package event_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/bizsuite/internal/event"
)

func TestOrderEventsJSON(t *testing.T) {
	t.Run("Should write the completed total with two decimals", func(t *testing.T) {
		b, err := json.Marshal(event.OrderCompletedEvent{OrderID: 1, OrderNumber: "ORD-1-ABCD", Total: decimal.RequireFromString("344")})
		require.NoError(t, err)

		var out map[string]any
		require.NoError(t, json.Unmarshal(b, &out))
		assert.Equal(t, "344.00", out["total"])
		assert.Equal(t, "ORD-1-ABCD", out["order_number"])
	})

	t.Run("Should write the cancelled total with two decimals", func(t *testing.T) {
		b, err := json.Marshal(event.OrderCancelledEvent{OrderID: 1, Total: decimal.RequireFromString("12.5"), Restocked: map[int64]int{4: 2}})
		require.NoError(t, err)
		assert.JSONEq(t, `{"order_id":1,"order_number":"","total":"12.50","restocked":{"4":2}}`, string(b))
	})
}
