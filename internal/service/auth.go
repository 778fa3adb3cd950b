package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/auth"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/repository"
)

type RegisterParams struct {
	Email    string
	Password string
	Name     string
	Phone    *string
}

type LoginParams struct {
	Email    string
	Password string
}

// Session is the result of a successful login.
type Session struct {
	Token auth.Token
	User  model.User
}

type AuthService interface {
	// Register creates an active Sales user.
	Register(ctx context.Context, params RegisterParams) (model.User, error)
	Login(ctx context.Context, params LoginParams) (Session, error)
	// Authenticate verifies a bearer token.
	Authenticate(ctx context.Context, token string) (auth.Identity, error)
	// CurrentUser reloads the identity's user. Deactivated or deleted users
	// are unauthorized.
	CurrentUser(ctx context.Context, identity auth.Identity) (model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Register(ctx context.Context, params RegisterParams) (model.User, error) {
	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return model.User{}, err
	}

	user, err := s.userRepo.CreateUser(ctx, model.User{
		Email:        normalizeEmail(params.Email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(params.Name),
		Phone:        params.Phone,
		Role:         model.RoleSales,
		IsActive:     true,
	})
	if err != nil {
		return model.User{}, fmt.Errorf("user repository create user: %w", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, params LoginParams) (Session, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(params.Email))
	if errors.Is(err, apperr.UserNotFoundErr) {
		return Session{}, apperr.InvalidCredentialsErr
	}
	if err != nil {
		return Session{}, fmt.Errorf("user repository get user by email: %w", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, params.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return Session{}, apperr.InvalidCredentialsErr
		}
		return Session{}, err
	}
	if !user.IsActive {
		return Session{}, apperr.InvalidCredentialsErr.WithMsg("account is disabled")
	}

	token, _, err := s.tokens.Issue(user)
	if err != nil {
		return Session{}, err
	}

	return Session{Token: token, User: user}, nil
}

func (s *authService) Authenticate(_ context.Context, token string) (auth.Identity, error) {
	identity, err := s.tokens.Parse(token)
	if err != nil {
		return auth.Identity{}, apperr.UnauthorizedErr.WrapParent(err).WithMsg("invalid or expired token")
	}
	return identity, nil
}

func (s *authService) CurrentUser(ctx context.Context, identity auth.Identity) (model.User, error) {
	user, err := s.userRepo.GetUser(ctx, identity.UserID)
	if errors.Is(err, apperr.UserNotFoundErr) {
		return model.User{}, apperr.UnauthorizedErr.WrapParent(err)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("user repository get user: %w", err)
	}
	if !user.IsActive {
		return model.User{}, apperr.UnauthorizedErr.WithMsg("account is disabled")
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
