package service

import (
	"context"
	"errors"
	"fmt"

	"seratauto/internal/dto"
	"seratauto/internal/model"
	"seratauto/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	ListLowStock(ctx context.Context) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error)
	ListMovements(ctx context.Context, productID uuid.UUID) ([]dto.StockMovementResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	movementRepo repository.StockMovementRepository
}

func NewProductService(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	movementRepo repository.StockMovementRepository,
) ProductService {
	return &productService{repo: repo, categoryRepo: categoryRepo, movementRepo: movementRepo}
}

func mapProduct(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:        p.ID.String(),
		Title:     p.Title,
		SPrice:    p.SPrice,
		BPrice:    p.BPrice,
		Stock:     p.Stock,
		StockMin:  p.StockMin,
		LowStock:  p.Stock <= p.StockMin,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Deleted:   p.DeletedAt.Valid,
	}
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		resp.CategoryID = &id
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &model.Product{
		Title:    req.Title,
		SPrice:   req.SPrice.Decimal,
		BPrice:   req.BPrice.Decimal,
		Stock:    req.Stock,
		StockMin: req.StockMin,
	}
	if p.StockMin == 0 {
		p.StockMin = 5
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.New("identifiant de catégorie invalide")
		}
		if _, err := s.categoryRepo.FindByID(ctx, cid); err != nil {
			return nil, errors.New("catégorie introuvable")
		}
		p.CategoryID = &cid
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := mapProduct(p)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("produit introuvable")
		}
		return nil, err
	}
	resp := mapProduct(p)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, mapProduct(&products[i]))
	}
	return &dto.ProductListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, mapProduct(&products[i]))
	}
	return data, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("produit introuvable")
		}
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.SPrice != nil {
		p.SPrice = req.SPrice.Decimal
	}
	if req.BPrice != nil {
		p.BPrice = req.BPrice.Decimal
	}
	if req.StockMin != nil {
		p.StockMin = *req.StockMin
	}
	if req.CategoryID != nil {
		cid, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, errors.New("identifiant de catégorie invalide")
		}
		if _, err := s.categoryRepo.FindByID(ctx, cid); err != nil {
			return nil, errors.New("catégorie introuvable")
		}
		p.CategoryID = &cid
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := mapProduct(p)
	return &resp, nil
}

// AdjustStock applies a signed delta and records the movement in the same
// transaction so the trail can never diverge from the stock figure.
func (s *productService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("produit introuvable")
		}
		return nil, err
	}
	if p.Stock+req.Delta < 0 {
		return nil, fmt.Errorf("stock insuffisant: %d disponible, ajustement de %d refusé", p.Stock, req.Delta)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateStockTx(tx, id, req.Delta); err != nil {
			return err
		}
		mov := &model.StockMovement{
			ProductID:   id,
			Type:        "ajustement",
			Quantity:    req.Delta,
			StockBefore: p.Stock,
			StockAfter:  p.Stock + req.Delta,
			Reason:      req.Reason,
		}
		return s.movementRepo.CreateTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	p.Stock += req.Delta
	resp := mapProduct(p)
	return &resp, nil
}

func (s *productService) ListMovements(ctx context.Context, productID uuid.UUID) ([]dto.StockMovementResponse, error) {
	movements, _, err := s.movementRepo.List(ctx, repository.StockMovementFilter{ProductID: &productID})
	if err != nil {
		return nil, err
	}
	data := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		data = append(data, dto.StockMovementResponse{
			ID:          m.ID.String(),
			ProductID:   m.ProductID.String(),
			Type:        m.Type,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reason:      m.Reason,
			CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return data, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("produit introuvable")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repo.Restore(ctx, id)
}
