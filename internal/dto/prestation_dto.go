package dto

import (
	"github.com/shopspring/decimal"

	"seratauto/internal/pricing"
)

type PrestationFilter struct {
	Customer string `form:"customer"` // customer UUID
	Search   string `form:"search"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=10" validate:"min=1,max=200"`
}

type CreatePrestationRequest struct {
	ServiceType string         `json:"serviceType" validate:"required"`
	Cost        pricing.Amount `json:"cost"`
	Description *string        `json:"description"`
	CustomerID  *string        `json:"customer" validate:"omitempty,uuid"`
	CarID       *string        `json:"car"      validate:"omitempty,uuid"`
}

type UpdatePrestationRequest struct {
	ServiceType *string         `json:"serviceType"`
	Cost        *pricing.Amount `json:"cost"`
	Description *string         `json:"description"`
	CarID       *string         `json:"car" validate:"omitempty,uuid"`
}

type PrestationResponse struct {
	ID          string          `json:"id"`
	ServiceType string          `json:"serviceType"`
	Cost        decimal.Decimal `json:"cost"`
	Description *string         `json:"description,omitempty"`
	Customer    *string         `json:"customer,omitempty"`
	Car         *string         `json:"car,omitempty"`
	CreatedAt   string          `json:"createdAt"`
	Deleted     bool            `json:"deleted"`
}

type PrestationListResponse struct {
	Data  []PrestationResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
