package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db"
)

const userColumns = `id, email, password_hash, name, phone, role, is_active, created_at`

type UserRepository interface {
	WithDB(db db.DB) UserRepository
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, user model.User) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userRepository struct {
	db db.DB
}

func NewUserRepository(db db.DB) UserRepository {
	return &userRepository{db: db}
}

func (r userRepository) WithDB(db db.DB) UserRepository {
	return &userRepository{db: db}
}

type userRow struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Phone        *string   `db:"phone"`
	Role         string    `db:"role"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
}

func (row userRow) toModel() (model.User, error) {
	role, err := model.ParseRole(row.Role)
	if err != nil {
		return model.User{}, fmt.Errorf("user %d: %w", row.ID, err)
	}
	return model.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Name:         row.Name,
		Phone:        row.Phone,
		Role:         role,
		IsActive:     row.IsActive,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func (r userRepository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	rows, _ := r.db.Query(ctx, `
		INSERT INTO users (email, password_hash, name, phone, role, is_active)
		VALUES (@email, @password_hash, @name, @phone, @role, @is_active)
		RETURNING `+userColumns,
		pgx.NamedArgs{
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"name":          user.Name,
			"phone":         user.Phone,
			"role":          user.Role.String(),
			"is_active":     user.IsActive,
		})
	created, err := collectOne(rows, userRow.toModel)
	if db.IsUniqueViolation(err, "users_email_key") {
		return model.User{}, apperr.EmailTakenErr.WrapParent(err)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r userRepository) GetUser(ctx context.Context, id int64) (model.User, error) {
	rows, _ := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := collectOne(rows, userRow.toModel)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, apperr.UserNotFoundErr.WrapParent(err)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (r userRepository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	rows, _ := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	user, err := collectOne(rows, userRow.toModel)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, apperr.UserNotFoundErr.WrapParent(err)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

func (r userRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, _ := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	users, err := collectAll(rows, userRow.toModel)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r userRepository) UpdateUser(ctx context.Context, user model.User) (model.User, error) {
	rows, _ := r.db.Query(ctx, `
		UPDATE users
		SET email         = @email,
			password_hash = @password_hash,
			name          = @name,
			phone         = @phone,
			role          = @role,
			is_active     = @is_active
		WHERE id = @id
		RETURNING `+userColumns,
		pgx.NamedArgs{
			"id":            user.ID,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"name":          user.Name,
			"phone":         user.Phone,
			"role":          user.Role.String(),
			"is_active":     user.IsActive,
		})
	updated, err := collectOne(rows, userRow.toModel)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return model.User{}, apperr.UserNotFoundErr.WrapParent(err)
	case db.IsUniqueViolation(err, "users_email_key"):
		return model.User{}, apperr.EmailTakenErr.WrapParent(err)
	case err != nil:
		return model.User{}, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (r userRepository) DeleteUser(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.UserNotFoundErr
	}
	return nil
}
