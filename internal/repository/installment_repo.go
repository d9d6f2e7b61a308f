package repository

import (
	"context"
	"time"

	"seratauto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InstallmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Installment, error)
	ListByVente(ctx context.Context, venteID uuid.UUID) ([]model.Installment, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Installment, error)
	ListUpcoming(ctx context.Context, until time.Time, page, limit int) ([]model.Installment, int64, error)
	ListDueForReminder(ctx context.Context, until time.Time, batchSize int) ([]model.Installment, error)
	Update(ctx context.Context, i *model.Installment) error
	MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error
	CountUnpaidByVente(ctx context.Context, venteID uuid.UUID) (int64, error)
}

type installmentRepo struct{ db *gorm.DB }

func NewInstallmentRepository(db *gorm.DB) InstallmentRepository {
	return &installmentRepo{db: db}
}

func (r *installmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Installment, error) {
	var i model.Installment
	err := r.db.WithContext(ctx).Preload("Vente").Preload("Vente.Customer").First(&i, id).Error
	return &i, err
}

func (r *installmentRepo) ListByVente(ctx context.Context, venteID uuid.UUID) ([]model.Installment, error) {
	var installments []model.Installment
	err := r.db.WithContext(ctx).
		Where("vente_id = ?", venteID).
		Order("due_date ASC").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Installment, error) {
	var installments []model.Installment
	err := r.db.WithContext(ctx).
		Joins("JOIN ventes ON ventes.id = installments.vente_id").
		Where("ventes.customer_id = ? AND ventes.deleted_at IS NULL", customerID).
		Preload("Vente").
		Order("due_date ASC").
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepo) ListUpcoming(ctx context.Context, until time.Time, page, limit int) ([]model.Installment, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Installment{}).
		Joins("JOIN ventes ON ventes.id = installments.vente_id").
		Where("installments.paid = false AND installments.due_date <= ? AND ventes.deleted_at IS NULL", until)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var installments []model.Installment
	err := q.Preload("Vente").Preload("Vente.Customer").
		Order("installments.due_date ASC").
		Offset(offset).Limit(limit).
		Find(&installments).Error
	return installments, total, err
}

// ListDueForReminder returns unpaid installments due before the cutoff that
// have not yet been reminded, bounded to keep reminder batches small.
func (r *installmentRepo) ListDueForReminder(ctx context.Context, until time.Time, batchSize int) ([]model.Installment, error) {
	var installments []model.Installment
	err := r.db.WithContext(ctx).
		Joins("JOIN ventes ON ventes.id = installments.vente_id").
		Where("installments.paid = false AND installments.due_date <= ? AND installments.reminder_sent_at IS NULL AND ventes.deleted_at IS NULL", until).
		Preload("Vente").Preload("Vente.Customer").
		Order("installments.due_date ASC").
		Limit(batchSize).
		Find(&installments).Error
	return installments, err
}

func (r *installmentRepo) Update(ctx context.Context, i *model.Installment) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *installmentRepo) MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Installment{}).
		Where("id = ?", id).Update("reminder_sent_at", at).Error
}

func (r *installmentRepo) CountUnpaidByVente(ctx context.Context, venteID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Installment{}).
		Where("vente_id = ? AND paid = false", venteID).
		Count(&count).Error
	return count, err
}
