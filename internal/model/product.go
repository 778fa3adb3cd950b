package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Sku         string          `json:"sku"`
	CategoryID  *int64          `json:"category_id"`
	SupplierID  *int64          `json:"supplier_id"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SellPrice   decimal.Decimal `json:"sell_price"`
	Quantity    *int            `json:"quantity"`
	Threshold   *int            `json:"threshold"`
	Barcode     *string         `json:"barcode"`
	ImageURL    *string         `json:"image_url"`
	Description *string         `json:"description"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Stock returns the sellable quantity on hand. A missing quantity sells as zero.
func (p Product) Stock() int {
	if p.Quantity == nil || *p.Quantity < 0 {
		return 0
	}
	return *p.Quantity
}

// IsLowStock reports whether both quantity and threshold are set and the
// quantity is at or below the threshold.
func (p Product) IsLowStock() bool {
	return p.Quantity != nil && p.Threshold != nil && *p.Quantity <= *p.Threshold
}
