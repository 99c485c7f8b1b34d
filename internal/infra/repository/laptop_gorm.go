package repository

import (
	"context"
	"errors"

	"laptophub/internal/domain/model"
	repo "laptophub/internal/repository"

	"gorm.io/gorm"
)

type LaptopGormRepository struct {
	db *gorm.DB
}

// DI
func NewLaptopGormRepository(db *gorm.DB) *LaptopGormRepository {
	return &LaptopGormRepository{db: db}
}

func (r *LaptopGormRepository) List(ctx context.Context) ([]model.Laptop, error) {
	var items []model.Laptop
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&items).Error
	if err != nil {
		return []model.Laptop{}, err
	}
	return items, nil
}

// name/brand/processorをILIKE相当で部分一致検索
func (r *LaptopGormRepository) Search(ctx context.Context, query string) ([]model.Laptop, error) {
	pattern := "%" + query + "%"

	var items []model.Laptop
	err := r.db.WithContext(ctx).
		Where("lower(name) LIKE lower(?) OR lower(brand) LIKE lower(?) OR lower(processor) LIKE lower(?)",
			pattern, pattern, pattern).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.Laptop{}, err
	}
	return items, nil
}

func (r *LaptopGormRepository) FindByID(ctx context.Context, laptopID int64) (model.Laptop, error) {
	var l model.Laptop
	err := r.db.WithContext(ctx).Where("id = ?", laptopID).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Laptop{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Laptop{}, err
	}
	return l, nil
}

func (r *LaptopGormRepository) Create(ctx context.Context, laptop model.Laptop) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&laptop).Error; err != nil {
		return 0, err
	}
	return laptop.ID, nil
}

func (r *LaptopGormRepository) Update(ctx context.Context, laptop model.Laptop) error {
	res := r.db.WithContext(ctx).Model(&model.Laptop{}).
		Where("id = ?", laptop.ID).
		Select("*").Omit("id", "created_at").
		Updates(laptop)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *LaptopGormRepository) Delete(ctx context.Context, laptopID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", laptopID).Delete(&model.Laptop{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
