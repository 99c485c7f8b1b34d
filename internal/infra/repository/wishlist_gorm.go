package repository

import (
	"context"
	"errors"

	"laptophub/internal/domain/model"
	repo "laptophub/internal/repository"

	"gorm.io/gorm"
)

type WishlistGormRepository struct {
	db *gorm.DB
}

// DI
func NewWishlistGormRepository(db *gorm.DB) *WishlistGormRepository {
	return &WishlistGormRepository{db: db}
}

func (r *WishlistGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Wishlist, error) {
	var items []model.Wishlist
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Wishlist{}, err
	}
	return items, nil
}

func (r *WishlistGormRepository) FindByUserAndLaptop(ctx context.Context, userID int64, laptopID int64) (model.Wishlist, bool, error) {
	var w model.Wishlist
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND laptop_id = ?", userID, laptopID).
		First(&w).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Wishlist{}, false, nil
	}
	if err != nil {
		return model.Wishlist{}, false, err
	}
	return w, true, nil
}

func (r *WishlistGormRepository) Create(ctx context.Context, item model.Wishlist) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return 0, err
	}
	return item.ID, nil
}

func (r *WishlistGormRepository) FindByID(ctx context.Context, wishlistID int64) (model.Wishlist, error) {
	var w model.Wishlist
	err := r.db.WithContext(ctx).Where("id = ?", wishlistID).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Wishlist{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Wishlist{}, err
	}
	return w, nil
}

func (r *WishlistGormRepository) Delete(ctx context.Context, userID int64, laptopID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND laptop_id = ?", userID, laptopID).
		Delete(&model.Wishlist{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
