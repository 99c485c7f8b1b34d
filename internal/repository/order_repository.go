package repository

import (
	"context"

	"laptophub/internal/domain/model"
)

type OrderRepository interface {
	//IDはクライアント採番。衝突はそのままinsert失敗として返す。
	Create(ctx context.Context, order model.Order) error
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	//新着順
	ListAll(ctx context.Context) ([]model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	//無条件上書き。履歴は残さない。
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	Delete(ctx context.Context, orderID string) error
}
