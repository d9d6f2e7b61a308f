package repository

import (
	"context"
	"time"

	"seratauto/internal/dto"
	"seratauto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NeotrackRepository interface {
	Create(ctx context.Context, n *model.Neotrack) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Neotrack, error)
	FindByIMEI(ctx context.Context, imei string) (*model.Neotrack, error)
	List(ctx context.Context, filter dto.NeotrackFilter) ([]model.Neotrack, int64, error)
	Update(ctx context.Context, n *model.Neotrack) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, seenAt *time.Time) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type neotrackRepo struct{ db *gorm.DB }

func NewNeotrackRepository(db *gorm.DB) NeotrackRepository { return &neotrackRepo{db: db} }

func (r *neotrackRepo) Create(ctx context.Context, n *model.Neotrack) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *neotrackRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Neotrack, error) {
	var n model.Neotrack
	err := r.db.WithContext(ctx).Preload("Customer").Preload("Car").First(&n, id).Error
	return &n, err
}

func (r *neotrackRepo) FindByIMEI(ctx context.Context, imei string) (*model.Neotrack, error) {
	var n model.Neotrack
	err := r.db.WithContext(ctx).Unscoped().Where("imei = ?", imei).First(&n).Error
	return &n, err
}

func (r *neotrackRepo) List(ctx context.Context, filter dto.NeotrackFilter) ([]model.Neotrack, int64, error) {
	var devices []model.Neotrack
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Neotrack{})

	if filter.Search != "" {
		q = q.Where("imei ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Customer != "" {
		q = q.Where("customer_id = ?", filter.Customer)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Customer").Preload("Car").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&devices).Error
	return devices, total, err
}

func (r *neotrackRepo) Update(ctx context.Context, n *model.Neotrack) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *neotrackRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, seenAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if seenAt != nil {
		updates["last_seen_at"] = *seenAt
	}
	return r.db.WithContext(ctx).Model(&model.Neotrack{}).
		Where("id = ?", id).Updates(updates).Error
}

func (r *neotrackRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Neotrack{}, id).Error
}

func (r *neotrackRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Model(&model.Neotrack{}).
		Where("id = ?", id).Update("deleted_at", nil).Error
}
