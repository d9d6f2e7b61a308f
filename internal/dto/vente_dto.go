package dto

import (
	"github.com/shopspring/decimal"

	"seratauto/internal/pricing"
)

// ─── Filter / List ──────────────────────────────────────────────────────────

// VenteFilter is bound from the query string of GET /v1/ventes.
type VenteFilter struct {
	Customer    string `form:"customer"`    // customer UUID; empty = all
	PaymentType string `form:"paymentType"` // comptant | facilite | empty
	From        string `form:"from"`        // YYYY-MM-DD inclusive
	To          string `form:"to"`          // YYYY-MM-DD inclusive
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=10" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// VenteArticleRequest is one product line. UnitPrice is optional: when
// omitted the catalog price is used; when present it wins (negotiated
// price), frozen onto the sale either way.
type VenteArticleRequest struct {
	Product   string          `json:"product"  validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitPrice *pricing.Amount `json:"unitPrice"`
}

// VenteServiceRequest is one service line. Cost overrides the prestation's
// stored cost when present.
type VenteServiceRequest struct {
	Service     string          `json:"service" validate:"required,uuid"`
	Cost        *pricing.Amount `json:"cost"`
	Description *string         `json:"description"`
}

type InstallmentRequest struct {
	Amount  pricing.Amount `json:"amount"`
	DueDate string         `json:"dueDate" validate:"required,datetime=2006-01-02"`
}

type CreateVenteRequest struct {
	Customer      string                `json:"customer"      validate:"required,uuid"`
	Articles      []VenteArticleRequest `json:"articles"      validate:"dive"`
	Services      []VenteServiceRequest `json:"services"      validate:"dive"`
	Reduction     pricing.Amount        `json:"reduction"`
	ReductionType string                `json:"reductionType" validate:"omitempty,oneof=percent amount"`
	PaymentType   string                `json:"paymentType"   validate:"required,oneof=comptant facilite"`
	Installments  []InstallmentRequest  `json:"installments"  validate:"dive"`
	Notes         *string               `json:"notes"`
}

type UpdateVenteRequest struct {
	Articles      []VenteArticleRequest `json:"articles"      validate:"dive"`
	Services      []VenteServiceRequest `json:"services"      validate:"dive"`
	Reduction     *pricing.Amount       `json:"reduction"`
	ReductionType *string               `json:"reductionType" validate:"omitempty,oneof=percent amount"`
	PaymentType   *string               `json:"paymentType"   validate:"omitempty,oneof=comptant facilite"`
	Installments  []InstallmentRequest  `json:"installments"  validate:"dive"`
	Notes         *string               `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VenteArticleResponse struct {
	Product    string          `json:"product"`
	Title      string          `json:"title"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type VenteServiceResponse struct {
	Service     string          `json:"service"`
	ServiceType string          `json:"serviceType"`
	Cost        decimal.Decimal `json:"cost"`
	Description *string         `json:"description,omitempty"`
}

type InstallmentResponse struct {
	ID      string          `json:"id"`
	VenteID string          `json:"venteId"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate string          `json:"dueDate"`
	Paid    bool            `json:"paid"`
	PaidAt  *string         `json:"paidAt,omitempty"`
}

type VenteResponse struct {
	ID              string                 `json:"id"`
	Customer        string                 `json:"customer"`
	Articles        []VenteArticleResponse `json:"articles"`
	Services        []VenteServiceResponse `json:"services"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	Reduction       decimal.Decimal        `json:"reduction"`
	ReductionType   string                 `json:"reductionType"`
	ReductionAmount decimal.Decimal        `json:"reductionAmount"`
	TotalCost       decimal.Decimal        `json:"totalCost"`
	PaymentType     string                 `json:"paymentType"`
	PaymentStatus   string                 `json:"paymentStatus"`
	Installments    []InstallmentResponse  `json:"installments,omitempty"`
	Notes           *string                `json:"notes,omitempty"`
	CreatedAt       string                 `json:"createdAt"`
	// AdjustmentNotice is set when a small installment rounding drift was
	// absorbed into the last row instead of rejecting the sale.
	AdjustmentNotice string `json:"adjustmentNotice,omitempty"`
}

type VenteListResponse struct {
	Data  []VenteResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Installment operations ──────────────────────────────────────────────────

type UpcomingInstallmentsFilter struct {
	DaysAhead int `form:"daysAhead,default=30" validate:"min=1,max=365"`
	Page      int `form:"page,default=1"       validate:"min=1"`
	Limit     int `form:"limit,default=20"     validate:"min=1,max=200"`
}

type UpdateInstallmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid"`
}

type MarkInstallmentPaidRequest struct {
	PaidAt *string `json:"paidAt" validate:"omitempty,datetime=2006-01-02"`
}

type InstallmentListResponse struct {
	Data  []InstallmentResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
