package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/dashboard"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/repository"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/cache"
)

type DashboardService interface {
	// GetStats aggregates every order, lead and product. It fails with
	// DataUnavailableErr when any collection cannot be loaded.
	GetStats(ctx context.Context) (dashboard.Stats, error)
	SalesReport(ctx context.Context, from, to *time.Time) (dashboard.SalesReport, error)
	InventoryReport(ctx context.Context) (dashboard.InventoryReport, error)
	LeadsReport(ctx context.Context) (dashboard.LeadsReport, error)
}

type dashboardService struct {
	logger      *slog.Logger
	cache       cache.Cache
	cacheTTL    time.Duration
	orderRepo   repository.OrderRepository
	leadRepo    repository.LeadRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

func NewDashboardService(
	logger *slog.Logger,
	cache cache.Cache,
	cacheTTL time.Duration,
	orderRepo repository.OrderRepository,
	leadRepo repository.LeadRepository,
	productRepo repository.ProductRepository,
) DashboardService {
	return &dashboardService{
		logger:      logger.With(slog.String("service", "dashboard")),
		cache:       cache,
		cacheTTL:    cacheTTL,
		orderRepo:   orderRepo,
		leadRepo:    leadRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

func (s *dashboardService) GetStats(ctx context.Context) (dashboard.Stats, error) {
	var stats dashboard.Stats
	hit, err := s.cache.Get(ctx, dashboard.StatsCacheKey, &stats)
	if err != nil {
		s.logger.WarnContext(ctx, "error reading cached dashboard stats", slog.Any("error", err))
	}
	if hit {
		return stats, nil
	}

	var (
		orders   []model.Order
		leads    []model.Lead
		products []model.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orderRepo.ListOrders(gctx, repository.ListOrdersParams{})
		if err != nil {
			return fmt.Errorf("order repository list orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		leads, err = s.leadRepo.ListLeads(gctx, repository.ListLeadsParams{})
		if err != nil {
			return fmt.Errorf("lead repository list leads: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = s.productRepo.ListProducts(gctx, repository.ListProductsParams{})
		if err != nil {
			return fmt.Errorf("product repository list products: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return dashboard.Stats{}, apperr.DataUnavailableErr.WrapParent(err)
	}

	stats = dashboard.Aggregate(orders, leads, products, s.now())

	if err := s.cache.Set(ctx, dashboard.StatsCacheKey, stats, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "error caching dashboard stats", slog.Any("error", err))
	}
	return stats, nil
}

func (s *dashboardService) SalesReport(ctx context.Context, from, to *time.Time) (dashboard.SalesReport, error) {
	orders, err := s.orderRepo.ListOrders(ctx, repository.ListOrdersParams{From: from, To: to})
	if err != nil {
		return dashboard.SalesReport{}, apperr.DataUnavailableErr.WrapParent(
			fmt.Errorf("order repository list orders: %w", err))
	}
	return dashboard.BuildSalesReport(orders, from, to), nil
}

func (s *dashboardService) InventoryReport(ctx context.Context) (dashboard.InventoryReport, error) {
	products, err := s.productRepo.ListProducts(ctx, repository.ListProductsParams{})
	if err != nil {
		return dashboard.InventoryReport{}, apperr.DataUnavailableErr.WrapParent(
			fmt.Errorf("product repository list products: %w", err))
	}
	return dashboard.BuildInventoryReport(products), nil
}

func (s *dashboardService) LeadsReport(ctx context.Context) (dashboard.LeadsReport, error) {
	leads, err := s.leadRepo.ListLeads(ctx, repository.ListLeadsParams{})
	if err != nil {
		return dashboard.LeadsReport{}, apperr.DataUnavailableErr.WrapParent(
			fmt.Errorf("lead repository list leads: %w", err))
	}
	return dashboard.BuildLeadsReport(leads), nil
}

// statsInvalidator drops the cached dashboard stats after a write that changes
// leads or products. A failed delete is logged and the write still succeeds.
type statsInvalidator struct {
	logger *slog.Logger
	cache  cache.Cache
}

func (i statsInvalidator) invalidate(ctx context.Context) {
	if err := i.cache.Delete(ctx, dashboard.StatsCacheKey); err != nil {
		i.logger.WarnContext(ctx, "error invalidating dashboard stats", slog.Any("error", err))
	}
}
