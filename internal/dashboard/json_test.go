package dashboard_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/bizsuite/internal/dashboard"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/pkg/ptr"
)

func TestStatsJSON(t *testing.T) {
	orders := []model.Order{order(1, "100", now), order(2, "50.5", now)}
	stats := dashboard.Aggregate(orders, leads(model.LeadStatusNew), nil, now)

	b, err := json.Marshal(stats)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))

	t.Run("Should write amounts with two decimals", func(t *testing.T) {
		assert.Equal(t, "150.50", out["total_sales"])
		assert.Equal(t, "150.50", out["monthly_revenue"])
		recent := out["recent_orders"].([]any)
		require.Len(t, recent, 2)
		assert.Equal(t, "100.00", recent[1].(map[string]any)["total"])
		assert.EqualValues(t, 1, out["active_leads"])
	})

	t.Run("Should read back cached stats", func(t *testing.T) {
		var got dashboard.Stats
		require.NoError(t, json.Unmarshal(b, &got))
		assert.True(t, stats.TotalSales.Equal(got.TotalSales))
		assert.Equal(t, stats.ActiveLeads, got.ActiveLeads)
		require.Len(t, got.RecentOrders, 2)
	})
}

func TestReportsJSON(t *testing.T) {
	fields := func(t *testing.T, v any) map[string]any {
		t.Helper()
		b, err := json.Marshal(v)
		require.NoError(t, err)
		var out map[string]any
		require.NoError(t, json.Unmarshal(b, &out))
		return out
	}

	t.Run("Should write sales amounts with two decimals", func(t *testing.T) {
		out := fields(t, dashboard.BuildSalesReport([]model.Order{order(1, "100", now)}, nil, nil))
		assert.Equal(t, "100.00", out["revenue"])
		assert.Equal(t, "100.00", out["average_order_value"])
	})

	t.Run("Should write stock value with two decimals", func(t *testing.T) {
		p := stockedProduct(ptr.New(4), ptr.New(1))
		p.SellPrice = decimal.RequireFromString("2.5")
		out := fields(t, dashboard.BuildInventoryReport([]model.Product{p}))
		assert.Equal(t, "10.00", out["stock_value"])
	})

	t.Run("Should write pipeline value with two decimals", func(t *testing.T) {
		l := model.Lead{ID: 1, Status: model.LeadStatusNew, Value: ptr.New(decimal.RequireFromString("1200"))}
		out := fields(t, dashboard.BuildLeadsReport([]model.Lead{l}))
		assert.Equal(t, "1200.00", out["pipeline_value"])
	})
}
