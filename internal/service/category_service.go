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

// CategoryService defines business operations for product categories.
type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	Get(ctx context.Context, id uuid.UUID) (dto.CategoryResponse, error)
	List(ctx context.Context, filter dto.CategoryFilter) (*dto.CategoryListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

// mapCategory converts a model to a DTO response.
func mapCategory(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Deleted:     c.DeletedAt.Valid,
	}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error) {
	// Check for duplicate name
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CategoryResponse{}, err
	}
	if err == nil && existing != nil {
		return dto.CategoryResponse{}, errors.New("une catégorie avec ce nom existe déjà")
	}

	c := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) Get(ctx context.Context, id uuid.UUID) (dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoryResponse{}, errors.New("catégorie introuvable")
		}
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) List(ctx context.Context, filter dto.CategoryFilter) (*dto.CategoryListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	list, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		data = append(data, mapCategory(c))
	}
	return &dto.CategoryListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoryResponse{}, errors.New("catégorie introuvable")
		}
		return dto.CategoryResponse{}, err
	}

	if req.Name != nil {
		// Check uniqueness if name is changing
		if *req.Name != c.Name {
			existing, err := s.repo.FindByName(ctx, *req.Name)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.CategoryResponse{}, err
			}
			if err == nil && existing != nil && existing.ID != id {
				return dto.CategoryResponse{}, errors.New("une catégorie avec ce nom existe déjà")
			}
		}
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = req.Description
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("catégorie introuvable")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *categoryService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repo.Restore(ctx, id)
}
