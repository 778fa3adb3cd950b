package dashboard_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/bizsuite/internal/dashboard"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/pkg/ptr"
)

var now = time.Date(2026, 5, 17, 15, 0, 0, 0, time.UTC)

func order(id int64, total string, createdAt time.Time) model.Order {
	return model.Order{ID: id, Total: decimal.RequireFromString(total), CreatedAt: createdAt}
}

func stockedProduct(qty, threshold *int) model.Product {
	return model.Product{Quantity: qty, Threshold: threshold}
}

func leads(statuses ...model.LeadStatus) []model.Lead {
	out := make([]model.Lead, len(statuses))
	for i, s := range statuses {
		out[i] = model.Lead{ID: int64(i + 1), Status: s}
	}
	return out
}

func TestAggregate(t *testing.T) {
	t.Run("Should return zero stats for empty collections", func(t *testing.T) {
		stats := dashboard.Aggregate(nil, nil, nil, now)

		assert.True(t, stats.TotalSales.IsZero())
		assert.True(t, stats.MonthlyRevenue.IsZero())
		assert.Zero(t, stats.ActiveLeads)
		assert.Zero(t, stats.StockAlerts)
		assert.NotNil(t, stats.RecentOrders)
		assert.Empty(t, stats.RecentOrders)
		assert.NotNil(t, stats.LeadsByStatus)
	})

	t.Run("Should sum all orders and orders of the current month", func(t *testing.T) {
		orders := []model.Order{
			order(1, "100.50", time.Date(2026, 4, 30, 23, 59, 59, 0, time.UTC)),
			order(2, "20.25", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)),
			order(3, "9.25", time.Date(2026, 5, 16, 8, 0, 0, 0, time.UTC)),
		}

		stats := dashboard.Aggregate(orders, nil, nil, now)

		assert.Equal(t, "130.00", stats.TotalSales.StringFixed(2))
		assert.Equal(t, "29.50", stats.MonthlyRevenue.StringFixed(2))
	})

	t.Run("Should use the location of now for the month boundary", func(t *testing.T) {
		loc := time.FixedZone("IST", 5*3600+1800)
		localNow := time.Date(2026, 5, 2, 10, 0, 0, 0, loc)
		orders := []model.Order{
			// 2026-04-30T20:00Z is 2026-05-01T01:30 in IST.
			order(1, "10", time.Date(2026, 4, 30, 20, 0, 0, 0, time.UTC)),
		}

		stats := dashboard.Aggregate(orders, nil, nil, localNow)

		assert.Equal(t, "10.00", stats.MonthlyRevenue.StringFixed(2))
	})

	t.Run("Should not modify the input collections", func(t *testing.T) {
		orders := []model.Order{
			order(1, "1", now.Add(-2*time.Hour)),
			order(2, "1", now.Add(-time.Hour)),
		}

		stats := dashboard.Aggregate(orders, nil, nil, now)

		assert.Equal(t, int64(1), orders[0].ID)
		assert.Equal(t, int64(2), stats.RecentOrders[0].ID)
	})
}

func TestActiveLeads(t *testing.T) {
	tests := []struct {
		name     string
		statuses []model.LeadStatus
		want     int
	}{
		{
			name:     "Should exclude converted leads",
			statuses: []model.LeadStatus{model.LeadStatusNew, model.LeadStatusConverted, model.LeadStatusFollowUp},
			want:     2,
		},
		{
			name:     "Should exclude dropped leads",
			statuses: []model.LeadStatus{model.LeadStatusDropped, model.LeadStatusContacted},
			want:     1,
		},
		{
			name:     "Should count nothing when every lead is closed",
			statuses: []model.LeadStatus{model.LeadStatusDropped, model.LeadStatusConverted},
			want:     0,
		},
		{
			name: "Should count nothing for no leads",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dashboard.ActiveLeads(leads(tt.statuses...)))
		})
	}
}

func TestStockAlerts(t *testing.T) {
	tests := []struct {
		name     string
		products []model.Product
		want     int
	}{
		{name: "Should count nothing for no products", want: 0},
		{
			name: "Should count every product when all are low",
			products: []model.Product{
				stockedProduct(ptr.New(0), ptr.New(5)),
				stockedProduct(ptr.New(5), ptr.New(5)),
			},
			want: 2,
		},
		{
			name: "Should count nothing when all are high",
			products: []model.Product{
				stockedProduct(ptr.New(6), ptr.New(5)),
				stockedProduct(ptr.New(100), ptr.New(10)),
			},
			want: 0,
		},
		{
			name: "Should skip products with a missing quantity or threshold",
			products: []model.Product{
				stockedProduct(nil, ptr.New(5)),
				stockedProduct(ptr.New(1), nil),
				stockedProduct(ptr.New(1), ptr.New(2)),
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dashboard.StockAlerts(tt.products))
		})
	}
}

func TestRecentOrders(t *testing.T) {
	t.Run("Should return the newest orders first", func(t *testing.T) {
		var orders []model.Order
		for i := range 15 {
			orders = append(orders, order(int64(i+1), "1", now.Add(time.Duration(i)*time.Minute)))
		}

		got := dashboard.RecentOrders(orders, dashboard.RecentOrdersLimit)

		require.Len(t, got, dashboard.RecentOrdersLimit)
		assert.Equal(t, int64(15), got[0].ID)
		assert.Equal(t, int64(6), got[9].ID)
	})

	t.Run("Should break ties by descending id", func(t *testing.T) {
		orders := []model.Order{order(3, "1", now), order(7, "1", now), order(5, "1", now)}

		got := dashboard.RecentOrders(orders, 2)

		require.Len(t, got, 2)
		assert.Equal(t, int64(7), got[0].ID)
		assert.Equal(t, int64(5), got[1].ID)
	})
}

func TestLeadsByStatus(t *testing.T) {
	t.Run("Should keep first-seen order", func(t *testing.T) {
		got := dashboard.LeadsByStatus(leads(
			model.LeadStatusContacted,
			model.LeadStatusNew,
			model.LeadStatusContacted,
			model.LeadStatusDropped,
			model.LeadStatusNew,
			model.LeadStatusContacted,
		))

		assert.Equal(t, []dashboard.StatusCount{
			{Status: model.LeadStatusContacted, Count: 3},
			{Status: model.LeadStatusNew, Count: 2},
			{Status: model.LeadStatusDropped, Count: 1},
		}, got)
	})
}
