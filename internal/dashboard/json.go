package dashboard

import (
	"encoding/json"

	"github.com/tuanvumaihuynh/bizsuite/pkg/money"
)

func (s Stats) MarshalJSON() ([]byte, error) {
	type stats Stats
	return json.Marshal(struct {
		stats
		TotalSales     money.Fixed `json:"total_sales"`
		MonthlyRevenue money.Fixed `json:"monthly_revenue"`
	}{
		stats:          stats(s),
		TotalSales:     money.Of(s.TotalSales),
		MonthlyRevenue: money.Of(s.MonthlyRevenue),
	})
}

func (r SalesReport) MarshalJSON() ([]byte, error) {
	type salesReport SalesReport
	return json.Marshal(struct {
		salesReport
		Revenue           money.Fixed `json:"revenue"`
		AverageOrderValue money.Fixed `json:"average_order_value"`
	}{
		salesReport:       salesReport(r),
		Revenue:           money.Of(r.Revenue),
		AverageOrderValue: money.Of(r.AverageOrderValue),
	})
}

func (r InventoryReport) MarshalJSON() ([]byte, error) {
	type inventoryReport InventoryReport
	return json.Marshal(struct {
		inventoryReport
		StockValue money.Fixed `json:"stock_value"`
	}{
		inventoryReport: inventoryReport(r),
		StockValue:      money.Of(r.StockValue),
	})
}

// ConvertedRate is a percentage and keeps its own precision.
func (r LeadsReport) MarshalJSON() ([]byte, error) {
	type leadsReport LeadsReport
	return json.Marshal(struct {
		leadsReport
		PipelineValue money.Fixed `json:"pipeline_value"`
	}{
		leadsReport:   leadsReport(r),
		PipelineValue: money.Of(r.PipelineValue),
	})
}
