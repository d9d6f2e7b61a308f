package repository

import (
	"context"

	"seratauto/internal/dto"
	"seratauto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CarRepository interface {
	Create(ctx context.Context, c *model.Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Car, error)
	FindByPlate(ctx context.Context, plate string) (*model.Car, error)
	List(ctx context.Context, filter dto.CarFilter) ([]model.Car, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Car, error)
	Update(ctx context.Context, c *model.Car) error
	SetCustomer(ctx context.Context, id uuid.UUID, customerID *uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type carRepo struct{ db *gorm.DB }

func NewCarRepository(db *gorm.DB) CarRepository { return &carRepo{db: db} }

func (r *carRepo) Create(ctx context.Context, c *model.Car) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *carRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	var c model.Car
	err := r.db.WithContext(ctx).Preload("Brand").Preload("Customer").First(&c, id).Error
	return &c, err
}

func (r *carRepo) FindByPlate(ctx context.Context, plate string) (*model.Car, error) {
	var c model.Car
	err := r.db.WithContext(ctx).Unscoped().Where("plate = ?", plate).First(&c).Error
	return &c, err
}

func (r *carRepo) List(ctx context.Context, filter dto.CarFilter) ([]model.Car, int64, error) {
	var cars []model.Car
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Car{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("plate ILIKE ? OR model_name ILIKE ?", like, like)
	}
	if filter.Customer != "" {
		q = q.Where("customer_id = ?", filter.Customer)
	}
	if filter.Brand != "" {
		q = q.Where("brand_id = ?", filter.Brand)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Brand").Preload("Customer").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&cars).Error
	return cars, total, err
}

func (r *carRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Car, error) {
	var cars []model.Car
	err := r.db.WithContext(ctx).Preload("Brand").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&cars).Error
	return cars, err
}

func (r *carRepo) Update(ctx context.Context, c *model.Car) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *carRepo) SetCustomer(ctx context.Context, id uuid.UUID, customerID *uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Car{}).
		Where("id = ?", id).Update("customer_id", customerID).Error
}

func (r *carRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Car{}, id).Error
}

func (r *carRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Model(&model.Car{}).
		Where("id = ?", id).Update("deleted_at", nil).Error
}
