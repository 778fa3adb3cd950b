package dashboard

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/model"
)

// TopStockedLimit is the number of products in InventoryReport.TopStocked.
const TopStockedLimit = 10

type SalesReport struct {
	From              *time.Time      `json:"from"`
	To                *time.Time      `json:"to"`
	OrderCount        int             `json:"order_count"`
	Revenue           decimal.Decimal `json:"revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	Orders            []model.Order   `json:"orders"`
}

// BuildSalesReport summarizes orders created within [from, to]. A nil bound is
// open. Orders are returned newest first.
func BuildSalesReport(orders []model.Order, from, to *time.Time) SalesReport {
	report := SalesReport{From: from, To: to, Revenue: decimal.Zero, AverageOrderValue: decimal.Zero}

	in := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if from != nil && o.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && o.CreatedAt.After(*to) {
			continue
		}
		in = append(in, o)
		report.Revenue = report.Revenue.Add(o.Total)
	}

	report.Orders = RecentOrders(in, len(in))
	report.OrderCount = len(in)
	report.Revenue = report.Revenue.Round(2)
	if report.OrderCount > 0 {
		report.AverageOrderValue = report.Revenue.Div(decimal.NewFromInt(int64(report.OrderCount))).Round(2)
	}
	return report
}

type InventoryReport struct {
	ProductCount  int             `json:"product_count"`
	LowStockCount int             `json:"low_stock_count"`
	StockValue    decimal.Decimal `json:"stock_value"`
	TopStocked    []model.Product `json:"top_stocked"`
	LowStock      []model.Product `json:"low_stock"`
}

// BuildInventoryReport values the stock on hand at sell price.
func BuildInventoryReport(products []model.Product) InventoryReport {
	report := InventoryReport{
		ProductCount: len(products),
		StockValue:   decimal.Zero,
		LowStock:     []model.Product{},
	}

	stocked := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.IsLowStock() {
			report.LowStock = append(report.LowStock, p)
		}
		if p.Stock() > 0 {
			stocked = append(stocked, p)
			report.StockValue = report.StockValue.Add(p.SellPrice.Mul(decimal.NewFromInt(int64(p.Stock()))))
		}
	}
	report.LowStockCount = len(report.LowStock)
	report.StockValue = report.StockValue.Round(2)

	slices.SortStableFunc(stocked, func(a, b model.Product) int {
		return cmp.Compare(b.Stock(), a.Stock())
	})
	if len(stocked) > TopStockedLimit {
		stocked = stocked[:TopStockedLimit]
	}
	report.TopStocked = stocked
	return report
}

type LeadsReport struct {
	Total         int             `json:"total"`
	Active        int             `json:"active"`
	ByStatus      []StatusCount   `json:"by_status"`
	PipelineValue decimal.Decimal `json:"pipeline_value"`
	ConvertedRate decimal.Decimal `json:"converted_rate"`
}

// BuildLeadsReport counts leads for every funnel stage in board order, including
// empty stages, and sums the value of active leads.
func BuildLeadsReport(leads []model.Lead) LeadsReport {
	statuses := model.LeadStatuses()
	report := LeadsReport{
		Total:         len(leads),
		ByStatus:      make([]StatusCount, len(statuses)),
		PipelineValue: decimal.Zero,
		ConvertedRate: decimal.Zero,
	}
	for i, s := range statuses {
		report.ByStatus[i].Status = s
	}

	converted := 0
	for _, l := range leads {
		if i := slices.Index(statuses, l.Status); i >= 0 {
			report.ByStatus[i].Count++
		}
		if l.Status == model.LeadStatusConverted {
			converted++
		}
		if l.Status.IsClosed() {
			continue
		}
		report.Active++
		if l.Value != nil {
			report.PipelineValue = report.PipelineValue.Add(*l.Value)
		}
	}
	report.PipelineValue = report.PipelineValue.Round(2)
	if report.Total > 0 {
		report.ConvertedRate = decimal.NewFromInt(int64(converted)).
			Div(decimal.NewFromInt(int64(report.Total))).Round(4)
	}
	return report
}
