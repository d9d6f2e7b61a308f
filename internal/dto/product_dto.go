package dto

import (
	"github.com/shopspring/decimal"

	"seratauto/internal/pricing"
)

// ─── Products ────────────────────────────────────────────────────────────────

type ProductFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"` // category UUID
	LowStock bool   `form:"lowStock"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=10" validate:"min=1,max=200"`
}

// Price fields use pricing.Amount: older exports of the catalog send
// {"$numberDecimal": "…"} wrappers and both shapes must be accepted.
type CreateProductRequest struct {
	Title      string         `json:"title"    validate:"required"`
	SPrice     pricing.Amount `json:"s_price"`
	BPrice     pricing.Amount `json:"b_price"`
	Stock      int            `json:"stock"     validate:"min=0"`
	StockMin   int            `json:"stock_min" validate:"min=0"`
	CategoryID *string        `json:"category"  validate:"omitempty,uuid"`
}

type UpdateProductRequest struct {
	Title      *string         `json:"title"`
	SPrice     *pricing.Amount `json:"s_price"`
	BPrice     *pricing.Amount `json:"b_price"`
	StockMin   *int            `json:"stock_min" validate:"omitempty,min=0"`
	CategoryID *string         `json:"category"  validate:"omitempty,uuid"`
}

// AdjustStockRequest applies a signed delta to a product's stock.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3"`
}

type ProductResponse struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	SPrice       decimal.Decimal `json:"s_price"`
	BPrice       decimal.Decimal `json:"b_price"`
	Stock        int             `json:"stock"`
	StockMin     int             `json:"stock_min"`
	CategoryID   *string         `json:"category,omitempty"`
	CategoryName string          `json:"categoryName,omitempty"`
	LowStock     bool            `json:"lowStock"`
	CreatedAt    string          `json:"createdAt"`
	Deleted      bool            `json:"deleted"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// PriceLookupResponse is served by the public cached price endpoint.
type PriceLookupResponse struct {
	Title    string          `json:"title"`
	SPrice   decimal.Decimal `json:"s_price"`
	Stock    int             `json:"stock"`
	Category string          `json:"category,omitempty"`
}

// StockMovementResponse is one entry of a product's stock trail.
type StockMovementResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"productId"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	StockBefore int    `json:"stockBefore"`
	StockAfter  int    `json:"stockAfter"`
	Reason      string `json:"reason,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

// ─── Categories ──────────────────────────────────────────────────────────────

type CategoryFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=10" validate:"min=1,max=200"`
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Deleted     bool    `json:"deleted"`
}

type CategoryListResponse struct {
	Data  []CategoryResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}
