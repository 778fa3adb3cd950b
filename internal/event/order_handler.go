package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/bizsuite/internal/dashboard"
)

func (s *Service) handleOrderCompletedEvent(ctx context.Context, ev OrderCompletedEvent) error {
	s.logger.InfoContext(ctx, "handling order completed event",
		slog.Int64("order_id", ev.OrderID),
		slog.String("order_number", ev.OrderNumber),
		slog.String("total", ev.Total.StringFixed(2)),
	)
	return s.invalidateStats(ctx)
}

func (s *Service) handleOrderCancelledEvent(ctx context.Context, ev OrderCancelledEvent) error {
	s.logger.InfoContext(ctx, "handling order cancelled event",
		slog.Int64("order_id", ev.OrderID),
		slog.String("order_number", ev.OrderNumber),
		slog.Int("restocked_products", len(ev.Restocked)),
	)
	return s.invalidateStats(ctx)
}

func (s *Service) invalidateStats(ctx context.Context) error {
	if err := s.cache.Delete(ctx, dashboard.StatsCacheKey); err != nil {
		return fmt.Errorf("invalidate dashboard stats: %w", err)
	}
	return nil
}
