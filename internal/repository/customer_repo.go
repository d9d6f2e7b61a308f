package repository

import (
	"context"

	"seratauto/internal/dto"
	"seratauto/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerRepository defines the data access contract for customers.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via mocks.
type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	FindByCIN(ctx context.Context, cin string) (*model.Customer, error)
	List(ctx context.Context, filter dto.CustomerFilter) ([]model.Customer, int64, error)
	Update(ctx context.Context, c *model.Customer) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Preload("Cars").Preload("Cars.Brand").First(&c, id).Error
	return &c, err
}

func (r *customerRepo) FindByCIN(ctx context.Context, cin string) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Unscoped().Where("cin = ?", cin).First(&c).Error
	return &c, err
}

func (r *customerRepo) List(ctx context.Context, filter dto.CustomerFilter) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Customer{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("fname ILIKE ? OR lname ILIKE ? OR cin ILIKE ? OR phone_number ILIKE ?",
			like, like, like, like)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cars").Order("lname ASC, fname ASC").
		Offset(offset).Limit(filter.Limit).
		Find(&customers).Error
	return customers, total, err
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *customerRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Customer{}, id).Error
}

func (r *customerRepo) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Model(&model.Customer{}).
		Where("id = ?", id).Update("deleted_at", nil).Error
}
