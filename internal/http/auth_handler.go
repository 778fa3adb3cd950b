package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/bizsuite/internal/auth"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/service"
	"github.com/tuanvumaihuynh/bizsuite/pkg/validator"
)

type registerRequest struct {
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Name     string  `json:"name" validate:"required,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	auth.Token
	User model.User `json:"user"`
}

type authHandler struct {
	authSvc   service.AuthService
	validator validator.Validator
}

func newAuthHandler(authSvc service.AuthService, v validator.Validator) *authHandler {
	return &authHandler{authSvc: authSvc, validator: v}
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) error {
	var req registerRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	user, err := h.authSvc.Register(r.Context(), service.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		return fmt.Errorf("auth service register: %w", err)
	}

	return writeJSON(w, http.StatusCreated, user)
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	session, err := h.authSvc.Login(r.Context(), service.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return fmt.Errorf("auth service login: %w", err)
	}

	return writeJSON(w, http.StatusOK, loginResponse{Token: session.Token, User: session.User})
}

func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) error {
	id, err := identity(r)
	if err != nil {
		return err
	}

	user, err := h.authSvc.CurrentUser(r.Context(), id)
	if err != nil {
		return fmt.Errorf("auth service current user: %w", err)
	}

	return writeJSON(w, http.StatusOK, user)
}
