package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db"
)

const orderColumns = `id, order_number, customer_id, customer_name, customer_email, customer_phone, cashier_id,
	subtotal, tax, discount, total, payment_method, status, created_at`

type ListOrdersParams struct {
	From *time.Time
	To   *time.Time
	// Limit caps the result when positive.
	Limit int
}

type OrderRepository interface {
	WithDB(db db.DB) OrderRepository
	CreateOrder(ctx context.Context, order model.Order) (model.Order, error)
	// CreateOrderItems bulk inserts items of orderID.
	CreateOrderItems(ctx context.Context, orderID int64, items []model.OrderItem) error
	GetOrder(ctx context.Context, id int64) (model.Order, error)
	// GetOrderForUpdate locks the order row for the rest of the transaction.
	GetOrderForUpdate(ctx context.Context, id int64) (model.Order, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	// ListOrders returns orders newest first, ordered by created_at then id.
	ListOrders(ctx context.Context, params ListOrdersParams) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error)
}

type orderRepository struct {
	db db.DB
}

func NewOrderRepository(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r orderRepository) WithDB(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

type orderRow struct {
	ID            int64           `db:"id"`
	OrderNumber   string          `db:"order_number"`
	CustomerID    *int64          `db:"customer_id"`
	CustomerName  *string         `db:"customer_name"`
	CustomerEmail *string         `db:"customer_email"`
	CustomerPhone *string         `db:"customer_phone"`
	CashierID     *int64          `db:"cashier_id"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	Tax           decimal.Decimal `db:"tax"`
	Discount      decimal.Decimal `db:"discount"`
	Total         decimal.Decimal `db:"total"`
	PaymentMethod string          `db:"payment_method"`
	Status        string          `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
}

func (row orderRow) toModel() (model.Order, error) {
	method, err := model.ParsePaymentMethod(row.PaymentMethod)
	if err != nil {
		return model.Order{}, fmt.Errorf("order %d: %w", row.ID, err)
	}
	status, err := model.ParseOrderStatus(row.Status)
	if err != nil {
		return model.Order{}, fmt.Errorf("order %d: %w", row.ID, err)
	}
	return model.Order{
		ID:            row.ID,
		OrderNumber:   row.OrderNumber,
		CustomerID:    row.CustomerID,
		CustomerName:  row.CustomerName,
		CustomerEmail: row.CustomerEmail,
		CustomerPhone: row.CustomerPhone,
		CashierID:     row.CashierID,
		Subtotal:      row.Subtotal,
		Tax:           row.Tax,
		Discount:      row.Discount,
		Total:         row.Total,
		PaymentMethod: method,
		Status:        status,
		CreatedAt:     row.CreatedAt,
	}, nil
}

type orderItemRow struct {
	ID          int64           `db:"id"`
	OrderID     int64           `db:"order_id"`
	ProductID   int64           `db:"product_id"`
	ProductName string          `db:"product_name"`
	Quantity    int             `db:"quantity"`
	Price       decimal.Decimal `db:"price"`
	Total       decimal.Decimal `db:"total"`
}

func (row orderItemRow) toModel() (model.OrderItem, error) {
	return model.OrderItem(row), nil
}

func (r orderRepository) CreateOrder(ctx context.Context, order model.Order) (model.Order, error) {
	createdAt := order.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	rows, _ := r.db.Query(ctx, `
		INSERT INTO orders (order_number, customer_id, customer_name, customer_email, customer_phone, cashier_id,
		                    subtotal, tax, discount, total, payment_method, status, created_at)
		VALUES (@order_number, @customer_id, @customer_name, @customer_email, @customer_phone, @cashier_id,
		        @subtotal, @tax, @discount, @total, @payment_method, @status, @created_at)
		RETURNING `+orderColumns,
		pgx.NamedArgs{
			"order_number":   order.OrderNumber,
			"customer_id":    order.CustomerID,
			"customer_name":  order.CustomerName,
			"customer_email": order.CustomerEmail,
			"customer_phone": order.CustomerPhone,
			"cashier_id":     order.CashierID,
			"subtotal":       numeric(order.Subtotal),
			"tax":            numeric(order.Tax),
			"discount":       numeric(order.Discount),
			"total":          numeric(order.Total),
			"payment_method": order.PaymentMethod.String(),
			"status":         order.Status.String(),
			"created_at":     createdAt,
		})
	created, err := collectOne(rows, orderRow.toModel)
	if db.IsUniqueViolation(err, "orders_order_number_key") {
		return model.Order{}, apperr.OrderNumberTakenErr.WrapParent(err)
	}
	if err != nil {
		return model.Order{}, referenceErr(err, "create order")
	}
	return created, nil
}

func (r orderRepository) CreateOrderItems(ctx context.Context, orderID int64, items []model.OrderItem) error {
	n, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"order_items"},
		[]string{"order_id", "product_id", "product_name", "quantity", "price", "total"},
		pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
			it := items[i]
			return []any{orderID, it.ProductID, it.ProductName, it.Quantity, numeric(it.Price), numeric(it.Total)}, nil
		}),
	)
	if err != nil {
		return referenceErr(err, "copy order items")
	}
	if int(n) != len(items) {
		return fmt.Errorf("copy order items: wrote %d of %d rows", n, len(items))
	}
	return nil
}

func (r orderRepository) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	return r.getOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r orderRepository) GetOrderForUpdate(ctx context.Context, id int64) (model.Order, error) {
	return r.getOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r orderRepository) getOrder(ctx context.Context, query string, id int64) (model.Order, error) {
	rows, _ := r.db.Query(ctx, query, id)
	order, err := collectOne(rows, orderRow.toModel)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Order{}, apperr.OrderNotFoundErr.WrapParent(err)
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (r orderRepository) ListOrderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	rows, _ := r.db.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, price, total
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`, orderID)
	items, err := collectAll(rows, orderItemRow.toModel)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return items, nil
}

func (r orderRepository) ListOrders(ctx context.Context, params ListOrdersParams) ([]model.Order, error) {
	var limit *int
	if params.Limit > 0 {
		limit = &params.Limit
	}

	rows, _ := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE (@from::timestamptz IS NULL OR created_at >= @from)
		  AND (@to::timestamptz IS NULL OR created_at <= @to)
		ORDER BY created_at DESC, id DESC
		LIMIT @limit`,
		pgx.NamedArgs{
			"from":  params.From,
			"to":    params.To,
			"limit": limit,
		})
	orders, err := collectAll(rows, orderRow.toModel)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r orderRepository) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error) {
	rows, _ := r.db.Query(ctx, `
		UPDATE orders SET status = $2 WHERE id = $1
		RETURNING `+orderColumns,
		id, status.String())
	order, err := collectOne(rows, orderRow.toModel)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Order{}, apperr.OrderNotFoundErr.WrapParent(err)
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("update order status: %w", err)
	}
	return order, nil
}
