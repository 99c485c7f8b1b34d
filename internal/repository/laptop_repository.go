package repository

import (
	"context"
	"errors"

	"laptophub/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type LaptopRepository interface {
	//新着順で全件
	List(ctx context.Context) ([]model.Laptop, error)
	//name/brand/processorの部分一致（大文字小文字無視）
	Search(ctx context.Context, query string) ([]model.Laptop, error)
	FindByID(ctx context.Context, laptopID int64) (model.Laptop, error)
	Create(ctx context.Context, laptop model.Laptop) (int64, error)
	Update(ctx context.Context, laptop model.Laptop) error
	Delete(ctx context.Context, laptopID int64) error
}
