package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/service"
	"github.com/tuanvumaihuynh/bizsuite/pkg/validator"
)

type categoryRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

type supplierRequest struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Contact *string `json:"contact" validate:"omitempty,max=255"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=32"`
	Address *string `json:"address"`
}

func (req supplierRequest) toModel(id int64) model.Supplier {
	return model.Supplier{
		ID:      id,
		Name:    req.Name,
		Contact: req.Contact,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
}

type catalogHandler struct {
	catalogSvc service.CatalogService
	validator  validator.Validator
}

func newCatalogHandler(catalogSvc service.CatalogService, v validator.Validator) *catalogHandler {
	return &catalogHandler{catalogSvc: catalogSvc, validator: v}
}

func (h *catalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.catalogSvc.ListCategories(r.Context())
	if err != nil {
		return fmt.Errorf("catalog service list categories: %w", err)
	}
	return writeJSON(w, http.StatusOK, categories)
}

func (h *catalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	category, err := h.catalogSvc.GetCategory(r.Context(), id)
	if err != nil {
		return fmt.Errorf("catalog service get category: %w", err)
	}
	return writeJSON(w, http.StatusOK, category)
}

func (h *catalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) error {
	var req categoryRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	category, err := h.catalogSvc.CreateCategory(r.Context(), model.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return fmt.Errorf("catalog service create category: %w", err)
	}
	return writeJSON(w, http.StatusCreated, category)
}

func (h *catalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	category, err := h.catalogSvc.UpdateCategory(r.Context(), model.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return fmt.Errorf("catalog service update category: %w", err)
	}
	return writeJSON(w, http.StatusOK, category)
}

func (h *catalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	if err := h.catalogSvc.DeleteCategory(r.Context(), id); err != nil {
		return fmt.Errorf("catalog service delete category: %w", err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *catalogHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) error {
	suppliers, err := h.catalogSvc.ListSuppliers(r.Context())
	if err != nil {
		return fmt.Errorf("catalog service list suppliers: %w", err)
	}
	return writeJSON(w, http.StatusOK, suppliers)
}

func (h *catalogHandler) GetSupplier(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	supplier, err := h.catalogSvc.GetSupplier(r.Context(), id)
	if err != nil {
		return fmt.Errorf("catalog service get supplier: %w", err)
	}
	return writeJSON(w, http.StatusOK, supplier)
}

func (h *catalogHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) error {
	var req supplierRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	supplier, err := h.catalogSvc.CreateSupplier(r.Context(), req.toModel(0))
	if err != nil {
		return fmt.Errorf("catalog service create supplier: %w", err)
	}
	return writeJSON(w, http.StatusCreated, supplier)
}

func (h *catalogHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	var req supplierRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	supplier, err := h.catalogSvc.UpdateSupplier(r.Context(), req.toModel(id))
	if err != nil {
		return fmt.Errorf("catalog service update supplier: %w", err)
	}
	return writeJSON(w, http.StatusOK, supplier)
}

func (h *catalogHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	if err := h.catalogSvc.DeleteSupplier(r.Context(), id); err != nil {
		return fmt.Errorf("catalog service delete supplier: %w", err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
