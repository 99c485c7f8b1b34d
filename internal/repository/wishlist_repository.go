package repository

import (
	"context"

	"laptophub/internal/domain/model"
)

type WishlistRepository interface {
	//新着順
	ListByUserID(ctx context.Context, userID int64) ([]model.Wishlist, error)
	//見つからなければfound=false
	FindByUserAndLaptop(ctx context.Context, userID int64, laptopID int64) (model.Wishlist, bool, error)
	Create(ctx context.Context, item model.Wishlist) (int64, error)
	FindByID(ctx context.Context, wishlistID int64) (model.Wishlist, error)
	Delete(ctx context.Context, userID int64, laptopID int64) error
}
