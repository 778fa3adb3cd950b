package http

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/repository"
	"github.com/tuanvumaihuynh/bizsuite/internal/service"
	"github.com/tuanvumaihuynh/bizsuite/pkg/validator"
)

type productRequest struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Sku         string          `json:"sku" validate:"required,max=64,sku"`
	CategoryID  *int64          `json:"category_id" validate:"omitempty,gt=0"`
	SupplierID  *int64          `json:"supplier_id" validate:"omitempty,gt=0"`
	CostPrice   decimal.Decimal `json:"cost_price" validate:"decimal_gte=0"`
	SellPrice   decimal.Decimal `json:"sell_price" validate:"decimal_gte=0"`
	Quantity    *int            `json:"quantity" validate:"omitempty,gte=0"`
	Threshold   *int            `json:"threshold" validate:"omitempty,gte=0"`
	Barcode     *string         `json:"barcode" validate:"omitempty,max=64"`
	ImageURL    *string         `json:"image_url" validate:"omitempty,url"`
	Description *string         `json:"description"`
	IsActive    *bool           `json:"is_active"`
}

type productHandler struct {
	productSvc service.ProductService
	validator  validator.Validator
}

func newProductHandler(productSvc service.ProductService, v validator.Validator) *productHandler {
	return &productHandler{productSvc: productSvc, validator: v}
}

func (h *productHandler) ListProducts(w http.ResponseWriter, r *http.Request) error {
	var (
		categoryID *int64
		sku        *string
		lowStock   *bool
	)
	if err := queryParam(r, "category_id", &categoryID); err != nil {
		return err
	}
	if err := queryParam(r, "sku", &sku); err != nil {
		return err
	}
	if err := queryParam(r, "low_stock", &lowStock); err != nil {
		return err
	}

	products, err := h.productSvc.ListProducts(r.Context(), repository.ListProductsParams{
		CategoryID: categoryID,
		Sku:        sku,
		LowStock:   lowStock != nil && *lowStock,
	})
	if err != nil {
		return fmt.Errorf("product service list products: %w", err)
	}
	return writeJSON(w, http.StatusOK, products)
}

func (h *productHandler) GetProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		return fmt.Errorf("product service get product: %w", err)
	}
	return writeJSON(w, http.StatusOK, product)
}

func (h *productHandler) CreateProduct(w http.ResponseWriter, r *http.Request) error {
	var req productRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	product, err := h.productSvc.CreateProduct(r.Context(), service.ProductParams(req))
	if err != nil {
		return fmt.Errorf("product service create product: %w", err)
	}
	return writeJSON(w, http.StatusCreated, product)
}

func (h *productHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	var req productRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), id, service.ProductParams(req))
	if err != nil {
		return fmt.Errorf("product service update product: %w", err)
	}
	return writeJSON(w, http.StatusOK, product)
}

func (h *productHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		return fmt.Errorf("product service delete product: %w", err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
