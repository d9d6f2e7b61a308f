package service

import (
	"context"
	"errors"
	"strings"

	"seratauto/internal/dto"
	"seratauto/internal/model"
	"seratauto/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CarBrandService interface {
	Create(ctx context.Context, req dto.CreateCarBrandRequest) (*dto.CarBrandResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CarBrandResponse, error)
	List(ctx context.Context, filter dto.CarBrandFilter) (*dto.CarBrandListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCarBrandRequest) (*dto.CarBrandResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type carBrandService struct {
	repo repository.CarBrandRepository
}

func NewCarBrandService(repo repository.CarBrandRepository) CarBrandService {
	return &carBrandService{repo: repo}
}

// filterModelNames drops blank entries so half-filled form rows never reach
// the database.
func filterModelNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if trimmed := strings.TrimSpace(n); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func mapCarBrand(b *model.CarBrand) dto.CarBrandResponse {
	names := b.ModelNames
	if names == nil {
		names = []string{}
	}
	return dto.CarBrandResponse{
		ID:         b.ID.String(),
		Name:       b.Name,
		ModelNames: names,
		CreatedAt:  b.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Deleted:    b.DeletedAt.Valid,
	}
}

func (s *carBrandService) Create(ctx context.Context, req dto.CreateCarBrandRequest) (*dto.CarBrandResponse, error) {
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && existing != nil {
		return nil, errors.New("une marque avec ce nom existe déjà")
	}

	b := &model.CarBrand{
		Name:       req.Name,
		ModelNames: filterModelNames(req.ModelNames),
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	resp := mapCarBrand(b)
	return &resp, nil
}

func (s *carBrandService) Get(ctx context.Context, id uuid.UUID) (*dto.CarBrandResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("marque introuvable")
		}
		return nil, err
	}
	resp := mapCarBrand(b)
	return &resp, nil
}

func (s *carBrandService) List(ctx context.Context, filter dto.CarBrandFilter) (*dto.CarBrandListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	brands, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CarBrandResponse, 0, len(brands))
	for i := range brands {
		data = append(data, mapCarBrand(&brands[i]))
	}
	return &dto.CarBrandListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *carBrandService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCarBrandRequest) (*dto.CarBrandResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("marque introuvable")
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != b.Name {
		existing, err := s.repo.FindByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil && existing != nil && existing.ID != id {
			return nil, errors.New("une marque avec ce nom existe déjà")
		}
		b.Name = *req.Name
	}
	if req.ModelNames != nil {
		b.ModelNames = filterModelNames(req.ModelNames)
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	resp := mapCarBrand(b)
	return &resp, nil
}

func (s *carBrandService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("marque introuvable")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *carBrandService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repo.Restore(ctx, id)
}
