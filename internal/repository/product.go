package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db"
)

const productColumns = `id, name, sku, category_id, supplier_id, cost_price, sell_price, quantity, threshold,
	barcode, image_url, description, is_active, created_at, updated_at`

type ListProductsParams struct {
	CategoryID *int64
	Sku        *string
	LowStock   bool
}

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, product model.Product) (model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	// ListProductsForUpdate locks the rows of ids in id order. Missing ids
	// are skipped.
	ListProductsForUpdate(ctx context.Context, ids []int64) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) (model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	// DecrementStock removes qty units and returns the remaining quantity. It
	// fails with InsufficientStockErr when fewer than qty units are on hand.
	DecrementStock(ctx context.Context, id int64, qty int) (int, error)
	IncrementStock(ctx context.Context, id int64, qty int) error
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

type productRow struct {
	ID          int64           `db:"id"`
	Name        string          `db:"name"`
	Sku         string          `db:"sku"`
	CategoryID  *int64          `db:"category_id"`
	SupplierID  *int64          `db:"supplier_id"`
	CostPrice   decimal.Decimal `db:"cost_price"`
	SellPrice   decimal.Decimal `db:"sell_price"`
	Quantity    *int            `db:"quantity"`
	Threshold   *int            `db:"threshold"`
	Barcode     *string         `db:"barcode"`
	ImageURL    *string         `db:"image_url"`
	Description *string         `db:"description"`
	IsActive    bool            `db:"is_active"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func (row productRow) toModel() (model.Product, error) {
	return model.Product(row), nil
}

func productArgs(p model.Product) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":          p.ID,
		"name":        p.Name,
		"sku":         p.Sku,
		"category_id": p.CategoryID,
		"supplier_id": p.SupplierID,
		"cost_price":  numeric(p.CostPrice),
		"sell_price":  numeric(p.SellPrice),
		"quantity":    p.Quantity,
		"threshold":   p.Threshold,
		"barcode":     p.Barcode,
		"image_url":   p.ImageURL,
		"description": p.Description,
		"is_active":   p.IsActive,
	}
}

func productWriteErr(err error, action string) error {
	switch {
	case db.IsUniqueViolation(err, "products_sku_key"):
		return apperr.SkuTakenErr.WrapParent(err)
	case db.IsCheckViolation(err, "products_quantity_check"):
		return apperr.ValidationErr.WrapParent(err).WithMsg("quantity must not be negative")
	default:
		return referenceErr(err, action)
	}
}

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	rows, _ := r.db.Query(ctx, `
		INSERT INTO products (name, sku, category_id, supplier_id, cost_price, sell_price, quantity, threshold,
		                      barcode, image_url, description, is_active)
		VALUES (@name, @sku, @category_id, @supplier_id, @cost_price, @sell_price, @quantity, @threshold,
		        @barcode, @image_url, @description, @is_active)
		RETURNING `+productColumns,
		productArgs(product))
	created, err := collectOne(rows, productRow.toModel)
	if err != nil {
		return model.Product{}, productWriteErr(err, "create product")
	}
	return created, nil
}

func (r productRepository) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	rows, _ := r.db.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	product, err := collectOne(rows, productRow.toModel)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, apperr.ProductNotFoundErr.WrapParent(err)
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

func (r productRepository) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	rows, _ := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE (@category_id::bigint IS NULL OR category_id = @category_id)
		  AND (@sku::text IS NULL OR sku = @sku)
		  AND (NOT @low_stock::boolean OR (quantity IS NOT NULL AND threshold IS NOT NULL AND quantity <= threshold))
		ORDER BY id`,
		pgx.NamedArgs{
			"category_id": params.CategoryID,
			"sku":         params.Sku,
			"low_stock":   params.LowStock,
		})
	products, err := collectAll(rows, productRow.toModel)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r productRepository) ListProductsForUpdate(ctx context.Context, ids []int64) ([]model.Product, error) {
	rows, _ := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`, ids)
	products, err := collectAll(rows, productRow.toModel)
	if err != nil {
		return nil, fmt.Errorf("list products for update: %w", err)
	}
	return products, nil
}

func (r productRepository) UpdateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	rows, _ := r.db.Query(ctx, `
		UPDATE products
		SET name        = @name,
			sku         = @sku,
			category_id = @category_id,
			supplier_id = @supplier_id,
			cost_price  = @cost_price,
			sell_price  = @sell_price,
			quantity    = @quantity,
			threshold   = @threshold,
			barcode     = @barcode,
			image_url   = @image_url,
			description = @description,
			is_active   = @is_active,
			updated_at  = NOW()
		WHERE id = @id
		RETURNING `+productColumns,
		productArgs(product))
	updated, err := collectOne(rows, productRow.toModel)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, apperr.ProductNotFoundErr.WrapParent(err)
	}
	if err != nil {
		return model.Product{}, productWriteErr(err, "update product")
	}
	return updated, nil
}

func (r productRepository) DeleteProduct(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "products", id, apperr.ProductNotFoundErr)
}

func (r productRepository) DecrementStock(ctx context.Context, id int64, qty int) (int, error) {
	var remaining int
	err := r.db.QueryRow(ctx, `
		UPDATE products
		SET quantity = quantity - @qty, updated_at = NOW()
		WHERE id = @id AND quantity >= @qty
		RETURNING quantity`,
		pgx.NamedArgs{"id": id, "qty": qty},
	).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperr.InsufficientStockErr.WrapParent(err)
	}
	if err != nil {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}
	return remaining, nil
}

func (r productRepository) IncrementStock(ctx context.Context, id int64, qty int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET quantity = COALESCE(quantity, 0) + @qty, updated_at = NOW()
		WHERE id = @id`,
		pgx.NamedArgs{"id": id, "qty": qty})
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ProductNotFoundErr
	}
	return nil
}
