package model

import (
	"encoding/json"

	"github.com/tuanvumaihuynh/bizsuite/pkg/money"
)

// Amounts are written with two decimals; see money.Fixed.

func (o Order) MarshalJSON() ([]byte, error) {
	type order Order
	return json.Marshal(struct {
		order
		Subtotal money.Fixed `json:"subtotal"`
		Tax      money.Fixed `json:"tax"`
		Discount money.Fixed `json:"discount"`
		Total    money.Fixed `json:"total"`
	}{
		order:    order(o),
		Subtotal: money.Of(o.Subtotal),
		Tax:      money.Of(o.Tax),
		Discount: money.Of(o.Discount),
		Total:    money.Of(o.Total),
	})
}

func (i OrderItem) MarshalJSON() ([]byte, error) {
	type orderItem OrderItem
	return json.Marshal(struct {
		orderItem
		Price money.Fixed `json:"price"`
		Total money.Fixed `json:"total"`
	}{
		orderItem: orderItem(i),
		Price:     money.Of(i.Price),
		Total:     money.Of(i.Total),
	})
}

func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		CostPrice money.Fixed `json:"cost_price"`
		SellPrice money.Fixed `json:"sell_price"`
	}{
		product:   product(p),
		CostPrice: money.Of(p.CostPrice),
		SellPrice: money.Of(p.SellPrice),
	})
}

func (l Lead) MarshalJSON() ([]byte, error) {
	type lead Lead
	return json.Marshal(struct {
		lead
		Value *money.Fixed `json:"value"`
	}{
		lead:  lead(l),
		Value: money.OfPtr(l.Value),
	})
}
