package service

import (
	"context"
	"errors"

	"seratauto/internal/dto"
	"seratauto/internal/model"
	"seratauto/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func mapCustomer(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:          c.ID.String(),
		Fname:       c.Fname,
		Lname:       c.Lname,
		CIN:         c.CIN,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		Address:     c.Address,
		CreatedAt:   c.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Deleted:     c.DeletedAt.Valid,
	}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	// CIN is the business key: reject duplicates, including soft-deleted ones
	existing, err := s.repo.FindByCIN(ctx, req.CIN)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && existing != nil {
		return nil, errors.New("un client avec ce CIN existe déjà")
	}

	c := &model.Customer{
		Fname:       req.Fname,
		Lname:       req.Lname,
		CIN:         req.CIN,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Address:     req.Address,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := mapCustomer(c)
	return &resp, nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client introuvable")
		}
		return nil, err
	}
	resp := mapCustomer(c)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context, filter dto.CustomerFilter) (*dto.CustomerListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		data = append(data, mapCustomer(&customers[i]))
	}
	return &dto.CustomerListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client introuvable")
		}
		return nil, err
	}

	if req.CIN != nil && *req.CIN != c.CIN {
		existing, err := s.repo.FindByCIN(ctx, *req.CIN)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil && existing != nil && existing.ID != id {
			return nil, errors.New("un client avec ce CIN existe déjà")
		}
		c.CIN = *req.CIN
	}
	if req.Fname != nil {
		c.Fname = *req.Fname
	}
	if req.Lname != nil {
		c.Lname = *req.Lname
	}
	if req.PhoneNumber != nil {
		c.PhoneNumber = *req.PhoneNumber
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Address != nil {
		c.Address = req.Address
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := mapCustomer(c)
	return &resp, nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("client introuvable")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *customerService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repo.Restore(ctx, id)
}
