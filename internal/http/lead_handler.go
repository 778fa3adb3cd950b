package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/repository"
	"github.com/tuanvumaihuynh/bizsuite/internal/service"
	"github.com/tuanvumaihuynh/bizsuite/pkg/validator"
)

type leadRequest struct {
	Name       string            `json:"name" validate:"required,max=255"`
	Company    *string           `json:"company" validate:"omitempty,max=255"`
	Email      *string           `json:"email" validate:"omitempty,email"`
	Phone      *string           `json:"phone" validate:"omitempty,max=32"`
	Source     *string           `json:"source" validate:"omitempty,max=64"`
	Status     *model.LeadStatus `json:"status" validate:"omitempty,enum"`
	AssignedTo *int64            `json:"assigned_to" validate:"omitempty,gt=0"`
	Notes      *string           `json:"notes"`
	Value      *decimal.Decimal  `json:"value" validate:"omitempty,decimal_gte=0"`
	DueDate    *time.Time        `json:"due_date"`
}

func (req leadRequest) params() service.LeadParams {
	p := service.LeadParams{
		Name:       req.Name,
		Company:    req.Company,
		Email:      req.Email,
		Phone:      req.Phone,
		Source:     req.Source,
		AssignedTo: req.AssignedTo,
		Notes:      req.Notes,
		Value:      req.Value,
		DueDate:    req.DueDate,
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	return p
}

type interactionRequest struct {
	Type    model.InteractionType `json:"type" validate:"required,enum"`
	Subject *string               `json:"subject" validate:"omitempty,max=255"`
	Notes   *string               `json:"notes"`
}

type leadHandler struct {
	leadSvc   service.LeadService
	validator validator.Validator
}

func newLeadHandler(leadSvc service.LeadService, v validator.Validator) *leadHandler {
	return &leadHandler{leadSvc: leadSvc, validator: v}
}

func (h *leadHandler) ListLeads(w http.ResponseWriter, r *http.Request) error {
	var (
		status     *string
		assignedTo *int64
		params     repository.ListLeadsParams
	)
	if err := queryParam(r, "status", &status); err != nil {
		return err
	}
	if err := queryParam(r, "assigned_to", &assignedTo); err != nil {
		return err
	}
	if status != nil {
		s, err := model.ParseLeadStatus(*status)
		if err != nil {
			return invalidQuery("status", err)
		}
		params.Status = &s
	}
	params.AssignedTo = assignedTo

	leads, err := h.leadSvc.ListLeads(r.Context(), params)
	if err != nil {
		return fmt.Errorf("lead service list leads: %w", err)
	}
	return writeJSON(w, http.StatusOK, leads)
}

func (h *leadHandler) GetLead(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	lead, err := h.leadSvc.GetLead(r.Context(), id)
	if err != nil {
		return fmt.Errorf("lead service get lead: %w", err)
	}
	return writeJSON(w, http.StatusOK, lead)
}

func (h *leadHandler) CreateLead(w http.ResponseWriter, r *http.Request) error {
	var req leadRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	lead, err := h.leadSvc.CreateLead(r.Context(), req.params())
	if err != nil {
		return fmt.Errorf("lead service create lead: %w", err)
	}
	return writeJSON(w, http.StatusCreated, lead)
}

func (h *leadHandler) UpdateLead(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	var req leadRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	lead, err := h.leadSvc.UpdateLead(r.Context(), id, req.params())
	if err != nil {
		return fmt.Errorf("lead service update lead: %w", err)
	}
	return writeJSON(w, http.StatusOK, lead)
}

func (h *leadHandler) DeleteLead(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	if err := h.leadSvc.DeleteLead(r.Context(), id); err != nil {
		return fmt.Errorf("lead service delete lead: %w", err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *leadHandler) ListInteractions(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	interactions, err := h.leadSvc.ListInteractions(r.Context(), id)
	if err != nil {
		return fmt.Errorf("lead service list interactions: %w", err)
	}
	return writeJSON(w, http.StatusOK, interactions)
}

func (h *leadHandler) AddInteraction(w http.ResponseWriter, r *http.Request) error {
	leadID, err := pathInt64(r, "id")
	if err != nil {
		return err
	}
	caller, err := identity(r)
	if err != nil {
		return err
	}

	var req interactionRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	interaction, err := h.leadSvc.AddInteraction(r.Context(), leadID, &caller.UserID, service.CreateInteractionParams{
		Type:    req.Type,
		Subject: req.Subject,
		Notes:   req.Notes,
	})
	if err != nil {
		return fmt.Errorf("lead service add interaction: %w", err)
	}
	return writeJSON(w, http.StatusCreated, interaction)
}
