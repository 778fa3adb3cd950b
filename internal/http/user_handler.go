package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/service"
	"github.com/tuanvumaihuynh/bizsuite/pkg/validator"
)

type createUserRequest struct {
	Email    string     `json:"email" validate:"required,email,max=255"`
	Password string     `json:"password" validate:"required,min=8,max=72"`
	Name     string     `json:"name" validate:"required,max=255"`
	Phone    *string    `json:"phone" validate:"omitempty,max=32"`
	Role     model.Role `json:"role" validate:"required,enum"`
}

type updateUserRequest struct {
	Name     *string     `json:"name" validate:"omitempty,min=1,max=255"`
	Phone    *string     `json:"phone" validate:"omitempty,max=32"`
	Role     *model.Role `json:"role" validate:"omitempty,enum"`
	IsActive *bool       `json:"is_active"`
	Password *string     `json:"password" validate:"omitempty,min=8,max=72"`
}

type userHandler struct {
	userSvc   service.UserService
	validator validator.Validator
}

func newUserHandler(userSvc service.UserService, v validator.Validator) *userHandler {
	return &userHandler{userSvc: userSvc, validator: v}
}

func (h *userHandler) ListUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := h.userSvc.ListUsers(r.Context())
	if err != nil {
		return fmt.Errorf("user service list users: %w", err)
	}
	return writeJSON(w, http.StatusOK, users)
}

func (h *userHandler) GetUser(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	user, err := h.userSvc.GetUser(r.Context(), id)
	if err != nil {
		return fmt.Errorf("user service get user: %w", err)
	}
	return writeJSON(w, http.StatusOK, user)
}

func (h *userHandler) CreateUser(w http.ResponseWriter, r *http.Request) error {
	var req createUserRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	user, err := h.userSvc.CreateUser(r.Context(), service.CreateUserParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		return fmt.Errorf("user service create user: %w", err)
	}
	return writeJSON(w, http.StatusCreated, user)
}

func (h *userHandler) UpdateUser(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return err
	}

	user, err := h.userSvc.UpdateUser(r.Context(), id, service.UpdateUserParams(req))
	if err != nil {
		return fmt.Errorf("user service update user: %w", err)
	}
	return writeJSON(w, http.StatusOK, user)
}

func (h *userHandler) DeleteUser(w http.ResponseWriter, r *http.Request) error {
	id, err := pathInt64(r, "id")
	if err != nil {
		return err
	}

	if err := h.userSvc.DeleteUser(r.Context(), id); err != nil {
		return fmt.Errorf("user service delete user: %w", err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
