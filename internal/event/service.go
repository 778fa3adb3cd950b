// Package event consumes domain events published through the outbox.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/bizsuite/internal/storage/cache"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/mq"
)

// Service is the event service.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
	cache      cache.Cache
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
	cache cache.Cache,
) *Service {
	return &Service{
		logger:     logger.With(slog.String("service", "event")),
		mqConsumer: mqConsumer,
		cache:      cache,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := s.Register(); err != nil {
		return nil, err
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	cleanup := func() {
		mqCleanup()
	}

	return cleanup, nil
}

// Register subscribes the handler of every topic.
func (s *Service) Register() error {
	if err := s.mqConsumer.RegisterHandler(TopicOrderCompleted, decode(s.handleOrderCompletedEvent)); err != nil {
		return fmt.Errorf("register order completed event handler: %w", err)
	}
	if err := s.mqConsumer.RegisterHandler(TopicOrderCancelled, decode(s.handleOrderCancelledEvent)); err != nil {
		return fmt.Errorf("register order cancelled event handler: %w", err)
	}
	if err := s.mqConsumer.RegisterHandler(TopicProductLowStock, decode(s.handleProductLowStockEvent)); err != nil {
		return fmt.Errorf("register product low stock event handler: %w", err)
	}
	return nil
}

func decode[E any](handle func(context.Context, E) error) mq.HandlerFunc {
	return func(ctx context.Context, topic string, payload []byte) error {
		var ev E
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", topic, err)
		}

		if err := handle(ctx, ev); err != nil {
			return fmt.Errorf("handle %s event: %w", topic, err)
		}

		return nil
	}
}
