package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tuanvumaihuynh/bizsuite/internal/auth"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/repository"
)

type CreateUserParams struct {
	Email    string
	Password string
	Name     string
	Phone    *string
	Role     model.Role
}

// UpdateUserParams changes the non-nil fields.
type UpdateUserParams struct {
	Name     *string
	Phone    *string
	Role     *model.Role
	IsActive *bool
	Password *string
}

type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	CreateUser(ctx context.Context, params CreateUserParams) (model.User, error)
	UpdateUser(ctx context.Context, id int64, params UpdateUserParams) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("user repository list users: %w", err)
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (model.User, error) {
	user, err := s.userRepo.GetUser(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("user repository get user: %w", err)
	}
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, params CreateUserParams) (model.User, error) {
	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.userRepo.CreateUser(ctx, model.User{
		Email:        normalizeEmail(params.Email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(params.Name),
		Phone:        params.Phone,
		Role:         params.Role,
		IsActive:     true,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("user repository create user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int64, params UpdateUserParams) (model.User, error) {
	user, err := s.userRepo.GetUser(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("user repository get user: %w", err)
	}

	if params.Name != nil {
		user.Name = strings.TrimSpace(*params.Name)
	}
	if params.Phone != nil {
		user.Phone = params.Phone
	}
	if params.Role != nil {
		user.Role = *params.Role
	}
	if params.IsActive != nil {
		user.IsActive = *params.IsActive
	}
	if params.Password != nil {
		hash, err := auth.HashPassword(*params.Password)
		if err != nil {
			return model.User{}, err
		}
		user.PasswordHash = hash
	}

	user, err = s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("user repository update user: %w", err)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("user repository delete user: %w", err)
	}
	return nil
}
