// Package dashboard computes summary statistics and reports over read-only
// snapshots of orders, leads and products.
package dashboard

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/model"
)

// RecentOrdersLimit is the number of orders in Stats.RecentOrders.
const RecentOrdersLimit = 10

type StatusCount struct {
	Status model.LeadStatus `json:"status"`
	Count  int              `json:"count"`
}

type Stats struct {
	TotalSales     decimal.Decimal `json:"total_sales"`
	ActiveLeads    int             `json:"active_leads"`
	StockAlerts    int             `json:"stock_alerts"`
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
	RecentOrders   []model.Order   `json:"recent_orders"`
	LeadsByStatus  []StatusCount   `json:"leads_by_status"`
}

// Aggregate computes Stats. The month boundary for MonthlyRevenue is the first
// day of now's month in now's location. The inputs are not modified.
func Aggregate(orders []model.Order, leads []model.Lead, products []model.Product, now time.Time) Stats {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	totalSales := decimal.Zero
	monthly := decimal.Zero
	for _, o := range orders {
		totalSales = totalSales.Add(o.Total)
		if !o.CreatedAt.Before(monthStart) {
			monthly = monthly.Add(o.Total)
		}
	}

	stats := Stats{
		TotalSales:     totalSales.Round(2),
		ActiveLeads:    ActiveLeads(leads),
		StockAlerts:    StockAlerts(products),
		MonthlyRevenue: monthly.Round(2),
		RecentOrders:   RecentOrders(orders, RecentOrdersLimit),
		LeadsByStatus:  LeadsByStatus(leads),
	}
	return stats
}

// ActiveLeads counts leads that are neither converted nor dropped.
func ActiveLeads(leads []model.Lead) int {
	n := 0
	for _, l := range leads {
		if !l.Status.IsClosed() {
			n++
		}
	}
	return n
}

// StockAlerts counts low-stock products.
func StockAlerts(products []model.Product) int {
	n := 0
	for _, p := range products {
		if p.IsLowStock() {
			n++
		}
	}
	return n
}

// RecentOrders returns up to limit orders, newest first. Orders created at the
// same instant are ordered by descending id.
func RecentOrders(orders []model.Order, limit int) []model.Order {
	sorted := slices.Clone(orders)
	slices.SortStableFunc(sorted, func(a, b model.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	if sorted == nil {
		return []model.Order{}
	}
	return sorted
}

// LeadsByStatus counts leads per status in the order each status is first
// seen in leads.
func LeadsByStatus(leads []model.Lead) []StatusCount {
	counts := make([]StatusCount, 0)
	index := make(map[model.LeadStatus]int)
	for _, l := range leads {
		i, ok := index[l.Status]
		if !ok {
			i = len(counts)
			index[l.Status] = i
			counts = append(counts, StatusCount{Status: l.Status})
		}
		counts[i].Count++
	}
	return counts
}

// StatsCacheKey is where computed Stats are cached between order events.
const StatsCacheKey = "dashboard:stats"
