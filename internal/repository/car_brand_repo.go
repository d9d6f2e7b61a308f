package repository

import (
	"context"

	"seratauto/internal/dto"
	"seratauto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CarBrandRepository interface {
	Create(ctx context.Context, b *model.CarBrand) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CarBrand, error)
	FindByName(ctx context.Context, name string) (*model.CarBrand, error)
	List(ctx context.Context, filter dto.CarBrandFilter) ([]model.CarBrand, int64, error)
	Update(ctx context.Context, b *model.CarBrand) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type carBrandRepo struct{ db *gorm.DB }

func NewCarBrandRepository(db *gorm.DB) CarBrandRepository { return &carBrandRepo{db: db} }

func (r *carBrandRepo) Create(ctx context.Context, b *model.CarBrand) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *carBrandRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CarBrand, error) {
	var b model.CarBrand
	err := r.db.WithContext(ctx).First(&b, id).Error
	return &b, err
}

func (r *carBrandRepo) FindByName(ctx context.Context, name string) (*model.CarBrand, error) {
	var b model.CarBrand
	err := r.db.WithContext(ctx).Unscoped().
		Where("LOWER(name) = LOWER(?)", name).First(&b).Error
	return &b, err
}

func (r *carBrandRepo) List(ctx context.Context, filter dto.CarBrandFilter) ([]model.CarBrand, int64, error) {
	var brands []model.CarBrand
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CarBrand{})

	if filter.Search != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Offset(offset).Limit(filter.Limit).Find(&brands).Error
	return brands, total, err
}

func (r *carBrandRepo) Update(ctx context.Context, b *model.CarBrand) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *carBrandRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CarBrand{}, id).Error
}

func (r *carBrandRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Model(&model.CarBrand{}).
		Where("id = ?", id).Update("deleted_at", nil).Error
}
