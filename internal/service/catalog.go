package service

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/repository"
)

// CatalogService manages product categories and suppliers.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	CreateCategory(ctx context.Context, category model.Category) (model.Category, error)
	UpdateCategory(ctx context.Context, category model.Category) (model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (model.Supplier, error)
	CreateSupplier(ctx context.Context, supplier model.Supplier) (model.Supplier, error)
	UpdateSupplier(ctx context.Context, supplier model.Supplier) (model.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("category repository list categories: %w", err)
	}
	return categories, nil
}

func (s *catalogService) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	category, err := s.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		return model.Category{}, fmt.Errorf("category repository get category: %w", err)
	}
	return category, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, category model.Category) (model.Category, error) {
	category, err := s.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		return model.Category{}, fmt.Errorf("category repository create category: %w", err)
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, category model.Category) (model.Category, error) {
	category, err := s.categoryRepo.UpdateCategory(ctx, category)
	if err != nil {
		return model.Category{}, fmt.Errorf("category repository update category: %w", err)
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("category repository delete category: %w", err)
	}
	return nil
}

func (s *catalogService) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	suppliers, err := s.supplierRepo.ListSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("supplier repository list suppliers: %w", err)
	}
	return suppliers, nil
}

func (s *catalogService) GetSupplier(ctx context.Context, id int64) (model.Supplier, error) {
	supplier, err := s.supplierRepo.GetSupplier(ctx, id)
	if err != nil {
		return model.Supplier{}, fmt.Errorf("supplier repository get supplier: %w", err)
	}
	return supplier, nil
}

func (s *catalogService) CreateSupplier(ctx context.Context, supplier model.Supplier) (model.Supplier, error) {
	supplier, err := s.supplierRepo.CreateSupplier(ctx, supplier)
	if err != nil {
		return model.Supplier{}, fmt.Errorf("supplier repository create supplier: %w", err)
	}
	return supplier, nil
}

func (s *catalogService) UpdateSupplier(ctx context.Context, supplier model.Supplier) (model.Supplier, error) {
	supplier, err := s.supplierRepo.UpdateSupplier(ctx, supplier)
	if err != nil {
		return model.Supplier{}, fmt.Errorf("supplier repository update supplier: %w", err)
	}
	return supplier, nil
}

func (s *catalogService) DeleteSupplier(ctx context.Context, id int64) error {
	if err := s.supplierRepo.DeleteSupplier(ctx, id); err != nil {
		return fmt.Errorf("supplier repository delete supplier: %w", err)
	}
	return nil
}
