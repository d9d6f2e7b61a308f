package service

import (
	"context"

	"seratauto/internal/dto"
	"seratauto/internal/repository"

	"github.com/shopspring/decimal"
)

// ComptabiliteService aggregates sales figures for the accounting dashboard.
type ComptabiliteService interface {
	Summary(ctx context.Context, filter dto.ComptabiliteFilter) (*dto.ComptabiliteSummaryResponse, error)
}

type comptabiliteService struct {
	venteRepo repository.VenteRepository
}

func NewComptabiliteService(venteRepo repository.VenteRepository) ComptabiliteService {
	return &comptabiliteService{venteRepo: venteRepo}
}

// Summary walks the ventes in range once, splitting revenue by payment type
// and accumulating the unpaid installment balance. Comptant plus facilite
// always equals the total.
func (s *comptabiliteService) Summary(ctx context.Context, filter dto.ComptabiliteFilter) (*dto.ComptabiliteSummaryResponse, error) {
	ventes, err := s.venteRepo.ListForSummary(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ComptabiliteSummaryResponse{
		TotalRevenue:      decimal.Zero,
		ComptantRevenue:   decimal.Zero,
		FaciliteRevenue:   decimal.Zero,
		OutstandingAmount: decimal.Zero,
	}

	for i := range ventes {
		v := &ventes[i]
		resp.TotalRevenue = resp.TotalRevenue.Add(v.TotalCost)
		resp.TotalTransactions++

		switch v.PaymentType {
		case "comptant":
			resp.ComptantRevenue = resp.ComptantRevenue.Add(v.TotalCost)
		case "facilite":
			resp.FaciliteRevenue = resp.FaciliteRevenue.Add(v.TotalCost)
		}

		switch v.PaymentStatus {
		case "pending":
			resp.PendingCount++
		case "en_cours":
			resp.EnCoursCount++
		case "paid":
			resp.PaidCount++
		}

		for _, inst := range v.Installments {
			if !inst.Paid {
				resp.OutstandingAmount = resp.OutstandingAmount.Add(inst.Amount)
			}
		}
	}

	return resp, nil
}
