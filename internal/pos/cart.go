// Package pos implements the point-of-sale cart: line items bounded by stock,
// totals with tax and discount, and the order draft produced at checkout.
// Nothing in this package performs I/O.
package pos

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/pkg/money"
)

// Line is one product in the cart.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Sku       string          `json:"sku"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

func (l Line) MarshalJSON() ([]byte, error) {
	type line Line
	return json.Marshal(struct {
		line
		UnitPrice money.Fixed `json:"unit_price"`
		Total     money.Fixed `json:"total"`
	}{
		line:      line(l),
		UnitPrice: money.Of(l.UnitPrice),
		Total:     money.Of(l.Total),
	})
}

func newLine(p model.Product, qty int) Line {
	return Line{
		ProductID: p.ID,
		Name:      p.Name,
		Sku:       p.Sku,
		UnitPrice: p.SellPrice,
		Quantity:  qty,
		Total:     p.SellPrice.Mul(decimal.NewFromInt(int64(qty))).Round(2),
	}
}

// Cart is the ephemeral sale being assembled by one session. The zero value
// is an empty cart. Failed operations leave the cart unchanged.
type Cart struct {
	Lines    []Line          `json:"lines"`
	Discount decimal.Decimal `json:"discount"`
}

func (c Cart) MarshalJSON() ([]byte, error) {
	type cart Cart
	return json.Marshal(struct {
		cart
		Discount money.Fixed `json:"discount"`
	}{
		cart:     cart(c),
		Discount: money.Of(c.Discount),
	})
}

// AddItem adds qty units of p, merging with an existing line. The cumulative
// quantity may not exceed the product's stock.
func (c *Cart) AddItem(p model.Product, qty int) error {
	if qty <= 0 {
		return apperr.ValidationErr.WithMsg("quantity must be at least 1")
	}
	if !p.IsActive {
		return apperr.ProductUnavailableErr.WithMsg(fmt.Sprintf("%s is not available for sale", p.Name))
	}

	stock := p.Stock()
	if stock == 0 {
		return apperr.OutOfStockErr.WithMsg(fmt.Sprintf("%s is out of stock", p.Name))
	}

	i := c.index(p.ID)
	current := 0
	if i >= 0 {
		current = c.Lines[i].Quantity
	}
	if current+qty > stock {
		return insufficientStock(p, stock)
	}

	if i < 0 {
		c.Lines = append(c.Lines, newLine(p, qty))
		return nil
	}
	c.Lines[i] = newLine(p, current+qty)
	return nil
}

// SetQuantity sets the line for p to exactly qty units. Zero removes the
// line; a missing line is created.
func (c *Cart) SetQuantity(p model.Product, qty int) error {
	if qty < 0 {
		return apperr.ValidationErr.WithMsg("quantity must not be negative")
	}
	if qty == 0 {
		c.RemoveItem(p.ID)
		return nil
	}
	if !p.IsActive {
		return apperr.ProductUnavailableErr.WithMsg(fmt.Sprintf("%s is not available for sale", p.Name))
	}
	if stock := p.Stock(); qty > stock {
		return insufficientStock(p, stock)
	}

	if i := c.index(p.ID); i >= 0 {
		c.Lines[i] = newLine(p, qty)
		return nil
	}
	c.Lines = append(c.Lines, newLine(p, qty))
	return nil
}

// RemoveItem drops the line for productID if present.
func (c *Cart) RemoveItem(productID int64) {
	c.Lines = slices.DeleteFunc(c.Lines, func(l Line) bool {
		return l.ProductID == productID
	})
}

// SetDiscount sets the absolute discount amount for the sale.
func (c *Cart) SetDiscount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperr.ValidationErr.WithMsg("discount must not be negative")
	}
	c.Discount = amount.Round(2)
	return nil
}

// Quantity returns the quantity of productID in the cart.
func (c *Cart) Quantity(productID int64) int {
	if i := c.index(productID); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

// ProductIDs returns the ids of the products in the cart in ascending order.
func (c *Cart) ProductIDs() []int64 {
	ids := make([]int64, 0, len(c.Lines))
	for _, l := range c.Lines {
		ids = append(ids, l.ProductID)
	}
	slices.Sort(ids)
	return ids
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clear empties the cart and resets the discount.
func (c *Cart) Clear() {
	c.Lines = nil
	c.Discount = decimal.Zero
}

// Totals computes the cart totals at taxRate.
func (c *Cart) Totals(taxRate decimal.Decimal) Totals {
	return ComputeTotals(c.Lines, taxRate, c.Discount)
}

func (c *Cart) index(productID int64) int {
	return slices.IndexFunc(c.Lines, func(l Line) bool {
		return l.ProductID == productID
	})
}

func insufficientStock(p model.Product, stock int) error {
	return apperr.InsufficientStockErr.WithMsg(
		fmt.Sprintf("only %d of %s available in stock", stock, p.Name))
}
