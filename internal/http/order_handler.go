package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/pos"
	"github.com/tuanvumaihuynh/bizsuite/internal/repository"
	"github.com/tuanvumaihuynh/bizsuite/internal/service"
	"github.com/tuanvumaihuynh/bizsuite/pkg/validator"
)

type customerRequest struct {
	Name  string `json:"name" validate:"max=255"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"max=32"`
}

type checkoutRequest struct {
	Customer      customerRequest     `json:"customer"`
	CustomerID    *int64              `json:"customer_id" validate:"omitempty,gt=0"`
	PaymentMethod model.PaymentMethod `json:"payment_method" validate:"required,enum"`
}

func (req checkoutRequest) params(cashierID int64) service.CheckoutParams {
	return service.CheckoutParams{
		Customer:      pos.Customer(req.Customer),
		CustomerID:    req.CustomerID,
		CashierID:     &cashierID,
		PaymentMethod: req.PaymentMethod,
	}
}

type orderLineRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	checkoutRequest
	Items    []orderLineRequest `json:"items" validate:"required,min=1,dive"`
	Discount decimal.Decimal    `json:"discount" validate:"decimal_gte=0"`
}

type updateOrderRequest struct {
	Status model.OrderStatus `json:"status" validate:"required,enum"`
}

type orderHandler struct {
	orderSvc  service.OrderService
	posSvc    service.POSService
	validator validator.Validator
}

func newOrderHandler(orderSvc service.OrderService, posSvc service.POSService, v validator.Validator) *orderHandler {
	return &orderHandler{orderSvc: orderSvc, posSvc: posSvc, validator: v}
}

func (h *orderHandler) ListOrders(w http.ResponseWriter, r *http.Request) error {
	var from, to *time.Time
	if err := queryParam(r, "from", &from); err != nil {
		return err
	}
	if err := queryParam(r, "to", &to); err != nil {
		return err
	}

	orders, err := h.orderSvc.ListOrders(r.Context(), repository.ListOrdersParams{From: from, To: to})
	if err != nil {
		return fmt.Errorf("order service list orders: %w", err)
	}
	return writeJSON(w, http.StatusOK, orders)
}

func (h *orderHandler) GetOrder(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	order, err := h.orderSvc.GetOrder(r.Context(), id)
	if err != nil {
		return fmt.Errorf("order service get order: %w", err)
	}
	return writeJSON(w, http.StatusOK, order)
}

func (h *orderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) error {
	caller, err := identity(r)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	items := make([]service.OrderLine, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := h.posSvc.PlaceOrder(r.Context(), service.PlaceOrderParams{
		CheckoutParams: req.params(caller.UserID),
		Items:          items,
		Discount:       req.Discount,
	})
	if err != nil {
		return fmt.Errorf("pos service place order: %w", err)
	}
	return writeJSON(w, http.StatusCreated, order)
}

func (h *orderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	var req updateOrderRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	order, err := h.orderSvc.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		return fmt.Errorf("order service update order status: %w", err)
	}
	return writeJSON(w, http.StatusOK, order)
}
