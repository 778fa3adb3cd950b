package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/event"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/repository"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/cache"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db"
	"github.com/tuanvumaihuynh/bizsuite/pkg/ptr"
)

const (
	defaultQuantity  = 0
	defaultThreshold = 10
)

type ProductParams struct {
	Name        string
	Sku         string
	CategoryID  *int64
	SupplierID  *int64
	CostPrice   decimal.Decimal
	SellPrice   decimal.Decimal
	Quantity    *int
	Threshold   *int
	Barcode     *string
	ImageURL    *string
	Description *string
	IsActive    *bool
}

type ProductService interface {
	ListProducts(ctx context.Context, params repository.ListProductsParams) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	CreateProduct(ctx context.Context, params ProductParams) (model.Product, error)
	// UpdateProduct replaces the product. A product dropping to or below its
	// threshold emits a low stock event.
	UpdateProduct(ctx context.Context, id int64, params ProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	stats         statsInvalidator
	db            db.DB
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewProductService(
	logger *slog.Logger,
	statsCache cache.Cache,
	db db.DB,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		stats: statsInvalidator{
			logger: logger.With(slog.String("service", "product")),
			cache:  statsCache,
		},
		db:            db,
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *productService) ListProducts(ctx context.Context, params repository.ListProductsParams) ([]model.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("product repository list products: %w", err)
	}
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get product: %w", err)
	}
	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, params ProductParams) (model.Product, error) {
	product := model.Product{
		Quantity:  ptr.New(defaultQuantity),
		Threshold: ptr.New(defaultThreshold),
		IsActive:  true,
	}
	params.apply(&product)

	product, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository create product: %w", err)
	}
	s.stats.invalidate(ctx)
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, params ProductParams) (model.Product, error) {
	var updated model.Product
	if err := s.db.WithTx(ctx, func(tx db.DB) error {
		locked, err := s.productRepo.WithDB(tx).ListProductsForUpdate(ctx, []int64{id})
		if err != nil {
			return fmt.Errorf("product repository list products for update: %w", err)
		}
		if len(locked) == 0 {
			return apperr.ProductNotFoundErr
		}
		current := locked[0]

		next := current
		params.apply(&next)

		updated, err = s.productRepo.WithDB(tx).UpdateProduct(ctx, next)
		if err != nil {
			return fmt.Errorf("product repository update product: %w", err)
		}

		if updated.IsLowStock() && !current.IsLowStock() {
			return publish(ctx, tx, s.outboxMsgRepo, event.TopicProductLowStock,
				updated.Sku, lowStockEvent(updated))
		}
		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	s.stats.invalidate(ctx)
	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("product repository delete product: %w", err)
	}
	s.stats.invalidate(ctx)
	return nil
}

func (p ProductParams) apply(product *model.Product) {
	product.Name = strings.TrimSpace(p.Name)
	product.Sku = strings.TrimSpace(p.Sku)
	product.CategoryID = p.CategoryID
	product.SupplierID = p.SupplierID
	product.CostPrice = p.CostPrice.Round(2)
	product.SellPrice = p.SellPrice.Round(2)
	if p.Quantity != nil {
		product.Quantity = p.Quantity
	}
	if p.Threshold != nil {
		product.Threshold = p.Threshold
	}
	product.Barcode = p.Barcode
	product.ImageURL = p.ImageURL
	product.Description = p.Description
	if p.IsActive != nil {
		product.IsActive = *p.IsActive
	}
}

func lowStockEvent(p model.Product) event.ProductLowStockEvent {
	return event.ProductLowStockEvent{
		ProductID: p.ID,
		Name:      p.Name,
		Sku:       p.Sku,
		Quantity:  ptr.ValueOr(p.Quantity, 0),
		Threshold: ptr.ValueOr(p.Threshold, 0),
	}
}
