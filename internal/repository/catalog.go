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

const (
	categoryColumns = `id, name, description, created_at`
	supplierColumns = `id, name, contact, email, phone, address, created_at`
)

type CategoryRepository interface {
	WithDB(db db.DB) CategoryRepository
	CreateCategory(ctx context.Context, category model.Category) (model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, category model.Category) (model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type categoryRepository struct {
	db db.DB
}

func NewCategoryRepository(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r categoryRepository) WithDB(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

type categoryRow struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

func (row categoryRow) toModel() (model.Category, error) {
	return model.Category(row), nil
}

func (r categoryRepository) CreateCategory(ctx context.Context, category model.Category) (model.Category, error) {
	rows, _ := r.db.Query(ctx, `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING `+categoryColumns,
		category.Name, category.Description)
	created, err := collectOne(rows, categoryRow.toModel)
	if err != nil {
		return model.Category{}, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

func (r categoryRepository) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	rows, _ := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	category, err := collectOne(rows, categoryRow.toModel)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Category{}, apperr.CategoryNotFoundErr.WrapParent(err)
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("get category: %w", err)
	}
	return category, nil
}

func (r categoryRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, _ := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name, id`)
	categories, err := collectAll(rows, categoryRow.toModel)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r categoryRepository) UpdateCategory(ctx context.Context, category model.Category) (model.Category, error) {
	rows, _ := r.db.Query(ctx, `
		UPDATE categories
		SET name = $2, description = $3
		WHERE id = $1
		RETURNING `+categoryColumns,
		category.ID, category.Name, category.Description)
	updated, err := collectOne(rows, categoryRow.toModel)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Category{}, apperr.CategoryNotFoundErr.WrapParent(err)
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

func (r categoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "categories", id, apperr.CategoryNotFoundErr)
}

type SupplierRepository interface {
	WithDB(db db.DB) SupplierRepository
	CreateSupplier(ctx context.Context, supplier model.Supplier) (model.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (model.Supplier, error)
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier model.Supplier) (model.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
}

type supplierRepository struct {
	db db.DB
}

func NewSupplierRepository(db db.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r supplierRepository) WithDB(db db.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

type supplierRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Contact   *string   `db:"contact"`
	Email     *string   `db:"email"`
	Phone     *string   `db:"phone"`
	Address   *string   `db:"address"`
	CreatedAt time.Time `db:"created_at"`
}

func (row supplierRow) toModel() (model.Supplier, error) {
	return model.Supplier(row), nil
}

func supplierArgs(s model.Supplier) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":      s.ID,
		"name":    s.Name,
		"contact": s.Contact,
		"email":   s.Email,
		"phone":   s.Phone,
		"address": s.Address,
	}
}

func (r supplierRepository) CreateSupplier(ctx context.Context, supplier model.Supplier) (model.Supplier, error) {
	rows, _ := r.db.Query(ctx, `
		INSERT INTO suppliers (name, contact, email, phone, address)
		VALUES (@name, @contact, @email, @phone, @address)
		RETURNING `+supplierColumns,
		supplierArgs(supplier))
	created, err := collectOne(rows, supplierRow.toModel)
	if err != nil {
		return model.Supplier{}, fmt.Errorf("create supplier: %w", err)
	}
	return created, nil
}

func (r supplierRepository) GetSupplier(ctx context.Context, id int64) (model.Supplier, error) {
	rows, _ := r.db.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id)
	supplier, err := collectOne(rows, supplierRow.toModel)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Supplier{}, apperr.SupplierNotFoundErr.WrapParent(err)
	}
	if err != nil {
		return model.Supplier{}, fmt.Errorf("get supplier: %w", err)
	}
	return supplier, nil
}

func (r supplierRepository) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	rows, _ := r.db.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY name, id`)
	suppliers, err := collectAll(rows, supplierRow.toModel)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

func (r supplierRepository) UpdateSupplier(ctx context.Context, supplier model.Supplier) (model.Supplier, error) {
	rows, _ := r.db.Query(ctx, `
		UPDATE suppliers
		SET name    = @name,
			contact = @contact,
			email   = @email,
			phone   = @phone,
			address = @address
		WHERE id = @id
		RETURNING `+supplierColumns,
		supplierArgs(supplier))
	updated, err := collectOne(rows, supplierRow.toModel)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Supplier{}, apperr.SupplierNotFoundErr.WrapParent(err)
	}
	if err != nil {
		return model.Supplier{}, fmt.Errorf("update supplier: %w", err)
	}
	return updated, nil
}

func (r supplierRepository) DeleteSupplier(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "suppliers", id, apperr.SupplierNotFoundErr)
}

// deleteByID deletes one row of table. Rows still referenced elsewhere yield
// ReferenceInUseErr.
func deleteByID(ctx context.Context, d db.DB, table string, id int64, notFound error) error {
	tag, err := d.Exec(ctx, `DELETE FROM `+pgx.Identifier{table}.Sanitize()+` WHERE id = $1`, id)
	if db.IsForeignKeyViolation(err) {
		return apperr.ReferenceInUseErr.WrapParent(err)
	}
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}
