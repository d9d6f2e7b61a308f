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

type PrestationService interface {
	Create(ctx context.Context, req dto.CreatePrestationRequest) (*dto.PrestationResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PrestationResponse, error)
	List(ctx context.Context, filter dto.PrestationFilter) (*dto.PrestationListResponse, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]dto.PrestationResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdatePrestationRequest) (*dto.PrestationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type prestationService struct {
	repo         repository.PrestationRepository
	customerRepo repository.CustomerRepository
	carRepo      repository.CarRepository
}

func NewPrestationService(
	repo repository.PrestationRepository,
	customerRepo repository.CustomerRepository,
	carRepo repository.CarRepository,
) PrestationService {
	return &prestationService{repo: repo, customerRepo: customerRepo, carRepo: carRepo}
}

func mapPrestation(p *model.Prestation) dto.PrestationResponse {
	resp := dto.PrestationResponse{
		ID:          p.ID.String(),
		ServiceType: p.ServiceType,
		Cost:        p.Cost,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Deleted:     p.DeletedAt.Valid,
	}
	if p.CustomerID != nil {
		id := p.CustomerID.String()
		resp.Customer = &id
	}
	if p.CarID != nil {
		id := p.CarID.String()
		resp.Car = &id
	}
	return resp
}

func (s *prestationService) Create(ctx context.Context, req dto.CreatePrestationRequest) (*dto.PrestationResponse, error) {
	if req.Cost.IsNegative() {
		return nil, errors.New("le coût d'une prestation ne peut pas être négatif")
	}
	p := &model.Prestation{
		ServiceType: req.ServiceType,
		Cost:        req.Cost.Decimal,
		Description: req.Description,
	}
	if req.CustomerID != nil {
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, errors.New("identifiant de client invalide")
		}
		if _, err := s.customerRepo.FindByID(ctx, cid); err != nil {
			return nil, errors.New("client introuvable")
		}
		p.CustomerID = &cid
	}
	if req.CarID != nil {
		carID, err := uuid.Parse(*req.CarID)
		if err != nil {
			return nil, errors.New("identifiant de véhicule invalide")
		}
		if _, err := s.carRepo.FindByID(ctx, carID); err != nil {
			return nil, errors.New("véhicule introuvable")
		}
		p.CarID = &carID
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := mapPrestation(p)
	return &resp, nil
}

func (s *prestationService) Get(ctx context.Context, id uuid.UUID) (*dto.PrestationResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("prestation introuvable")
		}
		return nil, err
	}
	resp := mapPrestation(p)
	return &resp, nil
}

func (s *prestationService) List(ctx context.Context, filter dto.PrestationFilter) (*dto.PrestationListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	prestations, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PrestationResponse, 0, len(prestations))
	for i := range prestations {
		data = append(data, mapPrestation(&prestations[i]))
	}
	return &dto.PrestationListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *prestationService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]dto.PrestationResponse, error) {
	prestations, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.PrestationResponse, 0, len(prestations))
	for i := range prestations {
		data = append(data, mapPrestation(&prestations[i]))
	}
	return data, nil
}

func (s *prestationService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePrestationRequest) (*dto.PrestationResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("prestation introuvable")
		}
		return nil, err
	}

	if req.ServiceType != nil {
		p.ServiceType = *req.ServiceType
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, errors.New("le coût d'une prestation ne peut pas être négatif")
		}
		p.Cost = req.Cost.Decimal
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.CarID != nil {
		carID, err := uuid.Parse(*req.CarID)
		if err != nil {
			return nil, errors.New("identifiant de véhicule invalide")
		}
		if _, err := s.carRepo.FindByID(ctx, carID); err != nil {
			return nil, errors.New("véhicule introuvable")
		}
		p.CarID = &carID
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := mapPrestation(p)
	return &resp, nil
}

func (s *prestationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("prestation introuvable")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *prestationService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repo.Restore(ctx, id)
}
