package pos

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/pkg/ptr"
)

// WalkInCustomer names anonymous sales.
const WalkInCustomer = "Walk-in Customer"

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type DraftParams struct {
	Customer      Customer
	CustomerID    *int64
	CashierID     *int64
	PaymentMethod model.PaymentMethod
	TaxRate       decimal.Decimal
	// OrderNumber is generated from CreatedAt when empty.
	OrderNumber string
	CreatedAt   time.Time
}

// Draft is the order and its items, ready to be persisted as one unit.
type Draft struct {
	Order model.Order
	Items []model.OrderItem
}

// NewDraft turns the cart into a completed order with one item per line.
func NewDraft(cart Cart, params DraftParams) (Draft, error) {
	if cart.IsEmpty() {
		return Draft{}, apperr.EmptyCartErr
	}
	if err := params.PaymentMethod.Validate(); err != nil {
		return Draft{}, apperr.ValidationErr.WrapParent(err).WithMsg("payment method is required")
	}

	createdAt := params.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	orderNumber := params.OrderNumber
	if orderNumber == "" {
		orderNumber = NewOrderNumber(createdAt)
	}

	customerName := strings.TrimSpace(params.Customer.Name)
	if customerName == "" {
		customerName = WalkInCustomer
	}

	totals := cart.Totals(params.TaxRate)
	order := model.Order{
		OrderNumber:   orderNumber,
		CustomerID:    params.CustomerID,
		CustomerName:  &customerName,
		CustomerEmail: ptr.NilIfZero(strings.TrimSpace(params.Customer.Email)),
		CustomerPhone: ptr.NilIfZero(strings.TrimSpace(params.Customer.Phone)),
		CashierID:     params.CashierID,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Discount:      totals.Discount,
		Total:         totals.Total,
		PaymentMethod: params.PaymentMethod,
		Status:        model.OrderStatusCompleted,
		CreatedAt:     createdAt,
	}

	items := make([]model.OrderItem, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		items = append(items, model.OrderItem{
			ProductID:   l.ProductID,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			Price:       l.UnitPrice,
			Total:       l.Total,
		})
	}

	return Draft{Order: order, Items: items}, nil
}

// NewOrderNumber derives an order number from now, e.g. ORD-1718000000000-4F2A.
// The random suffix keeps numbers unique across tills within one millisecond.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}
