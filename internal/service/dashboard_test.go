package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/dashboard"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/service"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db/dbtest"
	"github.com/tuanvumaihuynh/bizsuite/pkg/ptr"
)

func TestDashboardService(t *testing.T) {
	ctx := context.Background()

	seed := func() (*fakeOrderRepo, *fakeLeadRepo, *fakeProductRepo) {
		orders := newFakeOrderRepo()
		orders.orders = []model.Order{
			{ID: 1, Total: dec("100.00"), CreatedAt: time.Now()},
			{ID: 2, Total: dec("50.50"), CreatedAt: time.Now()},
		}
		leads := &fakeLeadRepo{leads: []model.Lead{
			{ID: 1, Status: model.LeadStatusNew},
			{ID: 2, Status: model.LeadStatusConverted},
			{ID: 3, Status: model.LeadStatusFollowUp},
		}}
		low := product(1, "1.00", 2)
		high := product(2, "1.00", 50)
		noThreshold := product(3, "1.00", 0)
		noThreshold.Threshold = nil
		return orders, leads, newFakeProductRepo(low, high, noThreshold)
	}

	t.Run("Should aggregate and cache stats", func(t *testing.T) {
		orders, leads, products := seed()
		c := newFakeCache()
		svc := service.NewDashboardService(discardLogger(), c, time.Minute, orders, leads, products)

		stats, err := svc.GetStats(ctx)
		require.NoError(t, err)

		assert.Equal(t, "150.50", stats.TotalSales.StringFixed(2))
		assert.Equal(t, 2, stats.ActiveLeads)
		assert.Equal(t, 1, stats.StockAlerts)
		assert.Len(t, stats.RecentOrders, 2)
		assert.Contains(t, c.data, dashboard.StatsCacheKey)

		orders.err = errBoom
		cached, err := svc.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, stats.ActiveLeads, cached.ActiveLeads)
		assert.True(t, stats.TotalSales.Equal(cached.TotalSales))
	})

	t.Run("Should fail without partial stats when a load fails", func(t *testing.T) {
		orders, leads, products := seed()
		leads.err = errBoom
		c := newFakeCache()
		svc := service.NewDashboardService(discardLogger(), c, time.Minute, orders, leads, products)

		stats, err := svc.GetStats(ctx)
		assert.ErrorIs(t, err, apperr.DataUnavailableErr)
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, dashboard.Stats{}, stats)
		assert.Empty(t, c.data)
	})

	t.Run("Should still compute stats when the cache is down", func(t *testing.T) {
		orders, leads, products := seed()
		c := newFakeCache()
		c.fails = true
		svc := service.NewDashboardService(discardLogger(), c, time.Minute, orders, leads, products)

		stats, err := svc.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.ActiveLeads)
	})

	t.Run("Should build reports", func(t *testing.T) {
		orders, leads, products := seed()
		svc := service.NewDashboardService(discardLogger(), newFakeCache(), time.Minute, orders, leads, products)

		sales, err := svc.SalesReport(ctx, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, sales.OrderCount)

		inventory, err := svc.InventoryReport(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, inventory.ProductCount)
		assert.Equal(t, 1, inventory.LowStockCount)

		leadsReport, err := svc.LeadsReport(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, leadsReport.Total)
	})

	t.Run("Should report unavailable data", func(t *testing.T) {
		orders, leads, products := seed()
		products.err = errBoom
		svc := service.NewDashboardService(discardLogger(), newFakeCache(), time.Minute, orders, leads, products)

		_, err := svc.InventoryReport(ctx)
		assert.ErrorIs(t, err, apperr.DataUnavailableErr)
	})

	t.Run("Should refresh cached stats after lead writes", func(t *testing.T) {
		orders, leads, products := seed()
		c := newFakeCache()
		svc := service.NewDashboardService(discardLogger(), c, time.Minute, orders, leads, products)
		leadSvc := service.NewLeadService(discardLogger(), c, leads, &fakeInteractionRepo{})

		stats, err := svc.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.ActiveLeads)

		lead, err := leadSvc.CreateLead(ctx, service.LeadParams{Name: "Globex"})
		require.NoError(t, err)
		assert.NotContains(t, c.data, dashboard.StatsCacheKey)

		stats, err = svc.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.ActiveLeads)

		_, err = leadSvc.UpdateLead(ctx, lead.ID, service.LeadParams{Name: "Globex", Status: model.LeadStatusConverted})
		require.NoError(t, err)
		stats, err = svc.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.ActiveLeads)

		require.NoError(t, leadSvc.DeleteLead(ctx, 1))
		stats, err = svc.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.ActiveLeads)
	})

	t.Run("Should refresh cached stats after product writes", func(t *testing.T) {
		orders, leads, products := seed()
		c := newFakeCache()
		svc := service.NewDashboardService(discardLogger(), c, time.Minute, orders, leads, products)
		productSvc := service.NewProductService(discardLogger(), c, &dbtest.FakeDB{}, products, &fakeOutboxRepo{})

		stats, err := svc.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.StockAlerts)

		_, err = productSvc.UpdateProduct(ctx, 2, service.ProductParams{
			Name: "Tea", Sku: "TEA-2", SellPrice: dec("1.00"), Quantity: ptr.New(5), Threshold: ptr.New(10),
		})
		require.NoError(t, err)
		stats, err = svc.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.StockAlerts)

		_, err = productSvc.CreateProduct(ctx, service.ProductParams{
			Name: "Mug", Sku: "MUG-1", SellPrice: dec("4.00"), Quantity: ptr.New(1),
		})
		require.NoError(t, err)
		stats, err = svc.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.StockAlerts)

		require.NoError(t, productSvc.DeleteProduct(ctx, 1))
		stats, err = svc.GetStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.StockAlerts)
	})
}
