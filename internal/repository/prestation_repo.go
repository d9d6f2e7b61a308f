package repository

import (
	"context"

	"seratauto/internal/dto"
	"seratauto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrestationRepository interface {
	Create(ctx context.Context, p *model.Prestation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Prestation, error)
	List(ctx context.Context, filter dto.PrestationFilter) ([]model.Prestation, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Prestation, error)
	Update(ctx context.Context, p *model.Prestation) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type prestationRepo struct{ db *gorm.DB }

func NewPrestationRepository(db *gorm.DB) PrestationRepository { return &prestationRepo{db: db} }

func (r *prestationRepo) Create(ctx context.Context, p *model.Prestation) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *prestationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Prestation, error) {
	var p model.Prestation
	err := r.db.WithContext(ctx).Preload("Customer").Preload("Car").First(&p, id).Error
	return &p, err
}

func (r *prestationRepo) List(ctx context.Context, filter dto.PrestationFilter) ([]model.Prestation, int64, error) {
	var prestations []model.Prestation
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Prestation{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("service_type ILIKE ? OR description ILIKE ?", like, like)
	}
	if filter.Customer != "" {
		q = q.Where("customer_id = ?", filter.Customer)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Customer").Preload("Car").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&prestations).Error
	return prestations, total, err
}

func (r *prestationRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Prestation, error) {
	var prestations []model.Prestation
	err := r.db.WithContext(ctx).Preload("Car").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&prestations).Error
	return prestations, err
}

func (r *prestationRepo) Update(ctx context.Context, p *model.Prestation) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *prestationRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Prestation{}, id).Error
}

func (r *prestationRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Model(&model.Prestation{}).
		Where("id = ?", id).Update("deleted_at", nil).Error
}
