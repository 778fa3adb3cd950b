package http

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/pos"
	"github.com/tuanvumaihuynh/bizsuite/internal/service"
	"github.com/tuanvumaihuynh/bizsuite/pkg/validator"
)

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type setCartItemRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

type setDiscountRequest struct {
	Discount decimal.Decimal `json:"discount" validate:"decimal_gte=0"`
}

type cartResponse struct {
	Lines  []pos.Line `json:"lines"`
	Totals pos.Totals `json:"totals"`
}

func newCartResponse(s service.CartSummary) cartResponse {
	lines := s.Cart.Lines
	if lines == nil {
		lines = []pos.Line{}
	}
	return cartResponse{Lines: lines, Totals: s.Totals}
}

// posHandler serves the cart of the caller's session.
type posHandler struct {
	posSvc    service.POSService
	validator validator.Validator
}

func newPOSHandler(posSvc service.POSService, v validator.Validator) *posHandler {
	return &posHandler{posSvc: posSvc, validator: v}
}

func (h *posHandler) GetCart(w http.ResponseWriter, r *http.Request) error {
	caller, err := identity(r)
	if err != nil {
		return err
	}

	summary, err := h.posSvc.GetCart(r.Context(), caller.SessionID)
	if err != nil {
		return fmt.Errorf("pos service get cart: %w", err)
	}
	return writeJSON(w, http.StatusOK, newCartResponse(summary))
}

func (h *posHandler) ClearCart(w http.ResponseWriter, r *http.Request) error {
	caller, err := identity(r)
	if err != nil {
		return err
	}

	if err := h.posSvc.ClearCart(r.Context(), caller.SessionID); err != nil {
		return fmt.Errorf("pos service clear cart: %w", err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *posHandler) AddItem(w http.ResponseWriter, r *http.Request) error {
	caller, err := identity(r)
	if err != nil {
		return err
	}

	var req addCartItemRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	summary, err := h.posSvc.AddItem(r.Context(), caller.SessionID, req.ProductID, req.Quantity)
	if err != nil {
		return fmt.Errorf("pos service add item: %w", err)
	}
	return writeJSON(w, http.StatusOK, newCartResponse(summary))
}

func (h *posHandler) SetQuantity(w http.ResponseWriter, r *http.Request) error {
	caller, err := identity(r)
	if err != nil {
		return err
	}
	productID, err := pathInt64(r, "product_id")
	if err != nil {
		return err
	}

	var req setCartItemRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	summary, err := h.posSvc.SetQuantity(r.Context(), caller.SessionID, productID, req.Quantity)
	if err != nil {
		return fmt.Errorf("pos service set quantity: %w", err)
	}
	return writeJSON(w, http.StatusOK, newCartResponse(summary))
}

func (h *posHandler) RemoveItem(w http.ResponseWriter, r *http.Request) error {
	caller, err := identity(r)
	if err != nil {
		return err
	}
	productID, err := pathInt64(r, "product_id")
	if err != nil {
		return err
	}

	summary, err := h.posSvc.RemoveItem(r.Context(), caller.SessionID, productID)
	if err != nil {
		return fmt.Errorf("pos service remove item: %w", err)
	}
	return writeJSON(w, http.StatusOK, newCartResponse(summary))
}

func (h *posHandler) SetDiscount(w http.ResponseWriter, r *http.Request) error {
	caller, err := identity(r)
	if err != nil {
		return err
	}

	var req setDiscountRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	summary, err := h.posSvc.SetDiscount(r.Context(), caller.SessionID, req.Discount)
	if err != nil {
		return fmt.Errorf("pos service set discount: %w", err)
	}
	return writeJSON(w, http.StatusOK, newCartResponse(summary))
}

func (h *posHandler) Checkout(w http.ResponseWriter, r *http.Request) error {
	caller, err := identity(r)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	order, err := h.posSvc.Checkout(r.Context(), caller.SessionID, req.params(caller.UserID))
	if err != nil {
		return fmt.Errorf("pos service checkout: %w", err)
	}
	return writeJSON(w, http.StatusCreated, order)
}
