package repository

import (
	"context"

	"laptophub/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
	DeleteByOrderID(ctx context.Context, orderID string) error
}
