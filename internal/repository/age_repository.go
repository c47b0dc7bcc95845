package repository

import (
	"context"

	"gorm.io/gorm"

	"dogbook/internal/model"
)

// AgeRepository defines age reference data access.
type AgeRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Age, error)
	ListBySortOrder(ctx context.Context) ([]model.Age, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, age *model.Age) error
}

type ageRepository struct {
	db *gorm.DB
}

// NewAgeRepository builds a GORM-backed repository.
func NewAgeRepository(db *gorm.DB) AgeRepository {
	return &ageRepository{db: db}
}

func (r *ageRepository) FindByID(ctx context.Context, id uint) (*model.Age, error) {
	var age model.Age
	if err := r.db.WithContext(ctx).First(&age, id).Error; err != nil {
		return nil, err
	}
	return &age, nil
}

// ListBySortOrder returns all ages ordered ascending by sort order.
func (r *ageRepository) ListBySortOrder(ctx context.Context) ([]model.Age, error) {
	var ages []model.Age
	if err := r.db.WithContext(ctx).Order("sort_order ASC").Find(&ages).Error; err != nil {
		return nil, err
	}
	return ages, nil
}

func (r *ageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Age{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ageRepository) Create(ctx context.Context, age *model.Age) error {
	return r.db.WithContext(ctx).Create(age).Error
}
