package repository

import (
	"context"

	"seratauto/internal/dto"
	"seratauto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VenteRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Vente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vente, error)
	List(ctx context.Context, filter dto.VenteFilter) ([]model.Vente, int64, error)
	ListForSummary(ctx context.Context, filter dto.ComptabiliteFilter) ([]model.Vente, error)
	Update(ctx context.Context, tx *gorm.DB, v *model.Vente) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error
	SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type venteRepo struct{ db *gorm.DB }

func NewVenteRepository(db *gorm.DB) VenteRepository { return &venteRepo{db: db} }

func (r *venteRepo) DB() *gorm.DB { return r.db }

func (r *venteRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Vente) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *venteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vente, error) {
	var v model.Vente
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Articles.Product").
		Preload("Services.Prestation").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date ASC")
		}).
		First(&v, id).Error
	return &v, err
}

func (r *venteRepo) List(ctx context.Context, filter dto.VenteFilter) ([]model.Vente, int64, error) {
	var ventes []model.Vente
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Vente{})

	if filter.Customer != "" {
		q = q.Where("customer_id = ?", filter.Customer)
	}
	if filter.PaymentType != "" {
		q = q.Where("payment_type = ?", filter.PaymentType)
	}
	if filter.From != "" {
		q = q.Where("DATE(created_at) >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("DATE(created_at) <= ?", filter.To)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Customer").
		Preload("Articles.Product").
		Preload("Services.Prestation").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date ASC")
		}).
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventes).Error

	return ventes, total, err
}

func (r *venteRepo) ListForSummary(ctx context.Context, filter dto.ComptabiliteFilter) ([]model.Vente, error) {
	var ventes []model.Vente
	q := r.db.WithContext(ctx).Preload("Installments")
	if filter.From != "" {
		q = q.Where("DATE(created_at) >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("DATE(created_at) <= ?", filter.To)
	}
	if filter.Customer != "" {
		q = q.Where("customer_id = ?", filter.Customer)
	}
	err := q.Find(&ventes).Error
	return ventes, err
}

func (r *venteRepo) Update(ctx context.Context, tx *gorm.DB, v *model.Vente) error {
	return tx.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(v).Error
}

func (r *venteRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Vente{}).
		Where("id = ?", id).Update("payment_status", status).Error
}

func (r *venteRepo) SoftDelete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&model.Vente{}, id).Error
}

func (r *venteRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Model(&model.Vente{}).
		Where("id = ?", id).Update("deleted_at", nil).Error
}
