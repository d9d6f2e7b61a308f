package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"seratauto/internal/apierror"
	"seratauto/internal/dto"
	"seratauto/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const priceCacheTTL = 4 * time.Hour

// PriceLookupHandler serves the cached price check used by the sale form.
// Read-only, no side effects.
type PriceLookupHandler struct {
	repo repository.ProductRepository
	rdb  *redis.Client
}

func NewPriceLookupHandler(repo repository.ProductRepository, rdb *redis.Client) *PriceLookupHandler {
	return &PriceLookupHandler{repo: repo, rdb: rdb}
}

// GetPrice godoc
// @Summary Consultation rapide du prix d'un produit
// @Tags prix
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID du produit"
// @Success 200 {object} dto.PriceLookupResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/prix/{id} [get]
func (h *PriceLookupHandler) GetPrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalide"))
		return
	}
	ctx := c.Request.Context()
	cacheKey := "prix:" + id.String()

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PriceLookupResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	product, err := h.repo.FindByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Produit introuvable"))
		return
	}

	resp := dto.PriceLookupResponse{
		Title:  product.Title,
		SPrice: product.SPrice,
		Stock:  product.Stock,
	}
	if product.Category != nil {
		resp.Category = product.Category.Name
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, priceCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
