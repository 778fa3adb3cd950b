package event

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/pkg/money"
)

const (
	TopicOrderCompleted  = "order.completed"
	TopicOrderCancelled  = "order.cancelled"
	TopicProductLowStock = "product.low_stock"
)

type OrderCompletedEvent struct {
	OrderID       int64           `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	CashierID     *int64          `json:"cashier_id"`
	PaymentMethod string          `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
}

type OrderCancelledEvent struct {
	OrderID     int64           `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Total       decimal.Decimal `json:"total"`
	// Restocked maps product id to the quantity returned to stock.
	Restocked map[int64]int `json:"restocked"`
}

func (e OrderCompletedEvent) MarshalJSON() ([]byte, error) {
	type orderCompleted OrderCompletedEvent
	return json.Marshal(struct {
		orderCompleted
		Total money.Fixed `json:"total"`
	}{orderCompleted: orderCompleted(e), Total: money.Of(e.Total)})
}

func (e OrderCancelledEvent) MarshalJSON() ([]byte, error) {
	type orderCancelled OrderCancelledEvent
	return json.Marshal(struct {
		orderCancelled
		Total money.Fixed `json:"total"`
	}{orderCancelled: orderCancelled(e), Total: money.Of(e.Total)})
}

type ProductLowStockEvent struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Sku       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
}
