package service

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/bizsuite/internal/apperr"
	"github.com/tuanvumaihuynh/bizsuite/internal/event"
	"github.com/tuanvumaihuynh/bizsuite/internal/model"
	"github.com/tuanvumaihuynh/bizsuite/internal/repository"
	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db"
)

type OrderService interface {
	ListOrders(ctx context.Context, params repository.ListOrdersParams) ([]model.Order, error)
	// GetOrder returns the order with its items.
	GetOrder(ctx context.Context, id int64) (model.Order, error)
	// UpdateOrderStatus moves the order to status. Cancelling returns every
	// item to stock.
	UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error)
}

type orderService struct {
	db            db.DB
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewOrderService(
	db db.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) OrderService {
	return &orderService{
		db:            db,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *orderService) ListOrders(ctx context.Context, params repository.ListOrdersParams) ([]model.Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("order repository list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	order, err := s.orderRepo.GetOrder(ctx, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("order repository get order: %w", err)
	}

	order.Items, err = s.orderRepo.ListOrderItems(ctx, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("order repository list order items: %w", err)
	}
	return order, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id int64, status model.OrderStatus) (model.Order, error) {
	if err := status.Validate(); err != nil {
		return model.Order{}, apperr.ValidationErr.WrapParent(err).WithMsg("invalid order status")
	}

	var updated model.Order
	if err := s.db.WithTx(ctx, func(tx db.DB) error {
		orderRepo := s.orderRepo.WithDB(tx)

		current, err := orderRepo.GetOrderForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("order repository get order for update: %w", err)
		}
		if !current.Status.CanTransitionTo(status) {
			return apperr.InvalidStatusTransitionErr.WithMsg(
				fmt.Sprintf("cannot change order status from %s to %s", current.Status, status))
		}

		items, err := orderRepo.ListOrderItems(ctx, id)
		if err != nil {
			return fmt.Errorf("order repository list order items: %w", err)
		}

		updated, err = orderRepo.UpdateOrderStatus(ctx, id, status)
		if err != nil {
			return fmt.Errorf("order repository update order status: %w", err)
		}
		updated.Items = items

		switch status {
		case model.OrderStatusCancelled:
			restocked := make(map[int64]int, len(items))
			for _, item := range items {
				if err := s.productRepo.WithDB(tx).IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
					return fmt.Errorf("product repository increment stock: %w", err)
				}
				restocked[item.ProductID] += item.Quantity
			}
			return publish(ctx, tx, s.outboxMsgRepo, event.TopicOrderCancelled, updated.OrderNumber,
				event.OrderCancelledEvent{
					OrderID:     updated.ID,
					OrderNumber: updated.OrderNumber,
					Total:       updated.Total,
					Restocked:   restocked,
				})
		case model.OrderStatusCompleted:
			return publish(ctx, tx, s.outboxMsgRepo, event.TopicOrderCompleted, updated.OrderNumber,
				orderCompletedEvent(updated))
		default:
			return nil
		}
	}); err != nil {
		return model.Order{}, fmt.Errorf("db with tx: %w", err)
	}

	return updated, nil
}
