package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/event"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/pos"
	"github.com/tuanvumaihuynh/bizsuite/internal/repository"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db"
)

// CartSummary is a cart with its totals at the configured tax rate.
type CartSummary struct {
	Cart   pos.Cart
	Totals pos.Totals
}

type OrderLine struct {
	ProductID int64
	Quantity  int
}

type CheckoutParams struct {
	Customer      pos.Customer
	CustomerID    *int64
	CashierID     *int64
	PaymentMethod model.PaymentMethod
}

type PlaceOrderParams struct {
	CheckoutParams
	Items    []OrderLine
	Discount decimal.Decimal
}

// CheckoutObserver is notified of every completed sale.
type CheckoutObserver interface {
	ObserveCheckout(method model.PaymentMethod, total decimal.Decimal)
}

type POSService interface {
	GetCart(ctx context.Context, sessionID string) (CartSummary, error)
	AddItem(ctx context.Context, sessionID string, productID int64, qty int) (CartSummary, error)
	// SetQuantity sets the line quantity; zero removes the line.
	SetQuantity(ctx context.Context, sessionID string, productID int64, qty int) (CartSummary, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (CartSummary, error)
	SetDiscount(ctx context.Context, sessionID string, amount decimal.Decimal) (CartSummary, error)
	ClearCart(ctx context.Context, sessionID string) error
	// Checkout turns the session cart into a completed order and clears the
	// cart. Stock is re-checked against locked product rows.
	Checkout(ctx context.Context, sessionID string, params CheckoutParams) (model.Order, error)
	// PlaceOrder records a sale from explicit lines, bypassing the session cart.
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (model.Order, error)
}

type posService struct {
	logger        *slog.Logger
	db            db.DB
	settings      model.Settings
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
	outboxMsgRepo repository.OutboxMsgRepository
	observer      CheckoutObserver
	now           func() time.Time
}

func NewPOSService(
	logger *slog.Logger,
	db db.DB,
	settings model.Settings,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
	observer CheckoutObserver,
) POSService {
	return &posService{
		logger:        logger.With(slog.String("service", "pos")),
		db:            db,
		settings:      settings,
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		outboxMsgRepo: outboxMsgRepo,
		observer:      observer,
		now:           time.Now,
	}
}

func (s *posService) GetCart(ctx context.Context, sessionID string) (CartSummary, error) {
	cart, err := s.cartRepo.GetCart(ctx, sessionID)
	if err != nil {
		return CartSummary{}, fmt.Errorf("cart repository get cart: %w", err)
	}
	return s.summary(cart), nil
}

func (s *posService) AddItem(ctx context.Context, sessionID string, productID int64, qty int) (CartSummary, error) {
	return s.updateCart(ctx, sessionID, func(cart *pos.Cart) error {
		product, err := s.productRepo.GetProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("product repository get product: %w", err)
		}
		return cart.AddItem(product, qty)
	})
}

func (s *posService) SetQuantity(ctx context.Context, sessionID string, productID int64, qty int) (CartSummary, error) {
	return s.updateCart(ctx, sessionID, func(cart *pos.Cart) error {
		if qty == 0 {
			cart.RemoveItem(productID)
			return nil
		}
		product, err := s.productRepo.GetProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("product repository get product: %w", err)
		}
		return cart.SetQuantity(product, qty)
	})
}

func (s *posService) RemoveItem(ctx context.Context, sessionID string, productID int64) (CartSummary, error) {
	return s.updateCart(ctx, sessionID, func(cart *pos.Cart) error {
		cart.RemoveItem(productID)
		return nil
	})
}

func (s *posService) SetDiscount(ctx context.Context, sessionID string, amount decimal.Decimal) (CartSummary, error) {
	return s.updateCart(ctx, sessionID, func(cart *pos.Cart) error {
		return cart.SetDiscount(amount)
	})
}

func (s *posService) ClearCart(ctx context.Context, sessionID string) error {
	if err := s.cartRepo.DeleteCart(ctx, sessionID); err != nil {
		return fmt.Errorf("cart repository delete cart: %w", err)
	}
	return nil
}

func (s *posService) Checkout(ctx context.Context, sessionID string, params CheckoutParams) (model.Order, error) {
	cart, err := s.cartRepo.GetCart(ctx, sessionID)
	if err != nil {
		return model.Order{}, fmt.Errorf("cart repository get cart: %w", err)
	}
	if cart.IsEmpty() {
		return model.Order{}, apperr.EmptyCartErr
	}

	lines := make([]OrderLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, OrderLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	order, err := s.placeOrder(ctx, lines, cart.Discount, params)
	if err != nil {
		return model.Order{}, err
	}

	// The order is already committed; a failed clear is only logged.
	if err := s.cartRepo.DeleteCart(ctx, sessionID); err != nil {
		s.logger.WarnContext(ctx, "error clearing cart after checkout",
			slog.String("order_number", order.OrderNumber),
			slog.Any("error", err))
	}

	return order, nil
}

func (s *posService) PlaceOrder(ctx context.Context, params PlaceOrderParams) (model.Order, error) {
	return s.placeOrder(ctx, params.Items, params.Discount, params.CheckoutParams)
}

func (s *posService) placeOrder(ctx context.Context, lines []OrderLine, discount decimal.Decimal, params CheckoutParams) (model.Order, error) {
	if len(lines) == 0 {
		return model.Order{}, apperr.EmptyCartErr
	}

	var order model.Order
	if err := s.db.WithTx(ctx, func(tx db.DB) error {
		productRepo := s.productRepo.WithDB(tx)
		orderRepo := s.orderRepo.WithDB(tx)

		products, err := productRepo.ListProductsForUpdate(ctx, productIDs(lines))
		if err != nil {
			return fmt.Errorf("product repository list products for update: %w", err)
		}
		byID := make(map[int64]model.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		var cart pos.Cart
		for _, l := range lines {
			p, ok := byID[l.ProductID]
			if !ok {
				return apperr.ProductNotFoundErr.WithMsg(fmt.Sprintf("product %d not found", l.ProductID))
			}
			if err := cart.AddItem(p, l.Quantity); err != nil {
				return err
			}
		}
		if err := cart.SetDiscount(discount); err != nil {
			return err
		}

		draft, err := pos.NewDraft(cart, pos.DraftParams{
			Customer:      params.Customer,
			CustomerID:    params.CustomerID,
			CashierID:     params.CashierID,
			PaymentMethod: params.PaymentMethod,
			TaxRate:       s.settings.TaxRate,
			CreatedAt:     s.now(),
		})
		if err != nil {
			return err
		}

		created, err := orderRepo.CreateOrder(ctx, draft.Order)
		if err != nil {
			return fmt.Errorf("order repository create order: %w", err)
		}
		if err := orderRepo.CreateOrderItems(ctx, created.ID, draft.Items); err != nil {
			return fmt.Errorf("order repository create order items: %w", err)
		}

		for _, item := range draft.Items {
			remaining, err := productRepo.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return fmt.Errorf("product repository decrement stock: %w", err)
			}

			before := byID[item.ProductID]
			after := before
			after.Quantity = &remaining
			if after.IsLowStock() && !before.IsLowStock() {
				if err := publish(ctx, tx, s.outboxMsgRepo, event.TopicProductLowStock,
					after.Sku, lowStockEvent(after)); err != nil {
					return err
				}
			}
		}

		created.Items, err = orderRepo.ListOrderItems(ctx, created.ID)
		if err != nil {
			return fmt.Errorf("order repository list order items: %w", err)
		}

		if err := publish(ctx, tx, s.outboxMsgRepo, event.TopicOrderCompleted,
			created.OrderNumber, orderCompletedEvent(created)); err != nil {
			return err
		}

		order = created
		return nil
	}); err != nil {
		return model.Order{}, fmt.Errorf("db with tx: %w", err)
	}

	if s.observer != nil {
		s.observer.ObserveCheckout(order.PaymentMethod, order.Total)
	}
	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_number", order.OrderNumber),
		slog.Int("items", len(order.Items)),
		slog.String("total", order.Total.StringFixed(2)),
	)

	return order, nil
}

// updateCart loads the session cart, applies fn and saves the result. A
// failing fn leaves the stored cart untouched.
func (s *posService) updateCart(ctx context.Context, sessionID string, fn func(*pos.Cart) error) (CartSummary, error) {
	cart, err := s.cartRepo.GetCart(ctx, sessionID)
	if err != nil {
		return CartSummary{}, fmt.Errorf("cart repository get cart: %w", err)
	}

	if err := fn(&cart); err != nil {
		return CartSummary{}, err
	}

	if err := s.cartRepo.SaveCart(ctx, sessionID, cart); err != nil {
		return CartSummary{}, fmt.Errorf("cart repository save cart: %w", err)
	}
	return s.summary(cart), nil
}

func (s *posService) summary(cart pos.Cart) CartSummary {
	return CartSummary{Cart: cart, Totals: cart.Totals(s.settings.TaxRate)}
}

func productIDs(lines []OrderLine) []int64 {
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

func orderCompletedEvent(o model.Order) event.OrderCompletedEvent {
	return event.OrderCompletedEvent{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		CashierID:     o.CashierID,
		PaymentMethod: o.PaymentMethod.String(),
		ItemCount:     len(o.Items),
		Total:         o.Total,
		CreatedAt:     o.CreatedAt,
	}
}
