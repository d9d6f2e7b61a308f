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

type CarService interface {
	Create(ctx context.Context, req dto.CreateCarRequest) (*dto.CarResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CarResponse, error)
	List(ctx context.Context, filter dto.CarFilter) (*dto.CarListResponse, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]dto.CarResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCarRequest) (*dto.CarResponse, error)
	Associate(ctx context.Context, id, customerID uuid.UUID) (*dto.CarResponse, error)
	Disassociate(ctx context.Context, id uuid.UUID) (*dto.CarResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type carService struct {
	repo         repository.CarRepository
	customerRepo repository.CustomerRepository
	brandRepo    repository.CarBrandRepository
}

func NewCarService(
	repo repository.CarRepository,
	customerRepo repository.CustomerRepository,
	brandRepo repository.CarBrandRepository,
) CarService {
	return &carService{repo: repo, customerRepo: customerRepo, brandRepo: brandRepo}
}

func mapCar(c *model.Car) dto.CarResponse {
	resp := dto.CarResponse{
		ID:        c.ID.String(),
		ModelName: c.ModelName,
		Plate:     c.Plate,
		VIN:       c.VIN,
		Year:      c.Year,
		CreatedAt: c.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Deleted:   c.DeletedAt.Valid,
	}
	if c.BrandID != nil {
		id := c.BrandID.String()
		resp.BrandID = &id
	}
	if c.Brand != nil {
		resp.BrandName = c.Brand.Name
	}
	if c.CustomerID != nil {
		id := c.CustomerID.String()
		resp.Customer = &id
	}
	return resp
}

func (s *carService) Create(ctx context.Context, req dto.CreateCarRequest) (*dto.CarResponse, error) {
	existing, err := s.repo.FindByPlate(ctx, req.Plate)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && existing != nil {
		return nil, errors.New("un véhicule avec cette immatriculation existe déjà")
	}

	car := &model.Car{
		ModelName: req.ModelName,
		Plate:     req.Plate,
		VIN:       req.VIN,
		Year:      req.Year,
	}
	if req.BrandID != nil {
		bid, err := uuid.Parse(*req.BrandID)
		if err != nil {
			return nil, errors.New("identifiant de marque invalide")
		}
		if _, err := s.brandRepo.FindByID(ctx, bid); err != nil {
			return nil, errors.New("marque introuvable")
		}
		car.BrandID = &bid
	}
	if req.CustomerID != nil {
		cid, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, errors.New("identifiant de client invalide")
		}
		if _, err := s.customerRepo.FindByID(ctx, cid); err != nil {
			return nil, errors.New("client introuvable")
		}
		car.CustomerID = &cid
	}

	if err := s.repo.Create(ctx, car); err != nil {
		return nil, err
	}
	created, err := s.repo.FindByID(ctx, car.ID)
	if err != nil {
		created = car
	}
	resp := mapCar(created)
	return &resp, nil
}

func (s *carService) Get(ctx context.Context, id uuid.UUID) (*dto.CarResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("véhicule introuvable")
		}
		return nil, err
	}
	resp := mapCar(c)
	return &resp, nil
}

func (s *carService) List(ctx context.Context, filter dto.CarFilter) (*dto.CarListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	cars, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CarResponse, 0, len(cars))
	for i := range cars {
		data = append(data, mapCar(&cars[i]))
	}
	return &dto.CarListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *carService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]dto.CarResponse, error) {
	cars, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CarResponse, 0, len(cars))
	for i := range cars {
		data = append(data, mapCar(&cars[i]))
	}
	return data, nil
}

func (s *carService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCarRequest) (*dto.CarResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("véhicule introuvable")
		}
		return nil, err
	}

	if req.Plate != nil && *req.Plate != c.Plate {
		existing, err := s.repo.FindByPlate(ctx, *req.Plate)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil && existing != nil && existing.ID != id {
			return nil, errors.New("un véhicule avec cette immatriculation existe déjà")
		}
		c.Plate = *req.Plate
	}
	if req.BrandID != nil {
		bid, err := uuid.Parse(*req.BrandID)
		if err != nil {
			return nil, errors.New("identifiant de marque invalide")
		}
		if _, err := s.brandRepo.FindByID(ctx, bid); err != nil {
			return nil, errors.New("marque introuvable")
		}
		c.BrandID = &bid
	}
	if req.ModelName != nil {
		c.ModelName = *req.ModelName
	}
	if req.VIN != nil {
		c.VIN = req.VIN
	}
	if req.Year != nil {
		c.Year = req.Year
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := mapCar(c)
	return &resp, nil
}

// Associate attaches a car to a customer. A car already owned by another
// customer must be disassociated first.
func (s *carService) Associate(ctx context.Context, id, customerID uuid.UUID) (*dto.CarResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("véhicule introuvable")
		}
		return nil, err
	}
	if c.CustomerID != nil && *c.CustomerID != customerID {
		return nil, errors.New("véhicule déjà associé à un autre client")
	}
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, errors.New("client introuvable")
	}

	if err := s.repo.SetCustomer(ctx, id, &customerID); err != nil {
		return nil, err
	}
	c.CustomerID = &customerID
	resp := mapCar(c)
	return &resp, nil
}

func (s *carService) Disassociate(ctx context.Context, id uuid.UUID) (*dto.CarResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("véhicule introuvable")
		}
		return nil, err
	}
	if err := s.repo.SetCustomer(ctx, id, nil); err != nil {
		return nil, err
	}
	c.CustomerID = nil
	resp := mapCar(c)
	return &resp, nil
}

func (s *carService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("véhicule introuvable")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *carService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repo.Restore(ctx, id)
}
