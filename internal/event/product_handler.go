package event

import (
	"context"
	"log/slog"
)

func (s *Service) handleProductLowStockEvent(ctx context.Context, ev ProductLowStockEvent) error {
	s.logger.WarnContext(ctx, "product stock is low",
		slog.Int64("product_id", ev.ProductID),
		slog.String("sku", ev.Sku),
		slog.Int("quantity", ev.Quantity),
		slog.Int("threshold", ev.Threshold),
	)
	return nil
}
