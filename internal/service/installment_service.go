package service

import (
	"context"
	"errors"
	"time"

	"seratauto/internal/dto"
	"seratauto/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InstallmentService interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.InstallmentResponse, error)
	ListUpcoming(ctx context.Context, filter dto.UpcomingInstallmentsFilter) (*dto.InstallmentListResponse, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]dto.InstallmentResponse, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*dto.InstallmentResponse, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt *time.Time) (*dto.InstallmentResponse, error)
}

type installmentService struct {
	repo      repository.InstallmentRepository
	venteRepo repository.VenteRepository
}

func NewInstallmentService(
	repo repository.InstallmentRepository,
	venteRepo repository.VenteRepository,
) InstallmentService {
	return &installmentService{repo: repo, venteRepo: venteRepo}
}

func (s *installmentService) Get(ctx context.Context, id uuid.UUID) (*dto.InstallmentResponse, error) {
	inst, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("échéance introuvable")
		}
		return nil, err
	}
	resp := mapInstallment(inst)
	return &resp, nil
}

func (s *installmentService) ListUpcoming(ctx context.Context, filter dto.UpcomingInstallmentsFilter) (*dto.InstallmentListResponse, error) {
	if filter.DaysAhead < 1 {
		filter.DaysAhead = 30
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	until := time.Now().AddDate(0, 0, filter.DaysAhead)

	installments, total, err := s.repo.ListUpcoming(ctx, until, filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.InstallmentResponse, 0, len(installments))
	for i := range installments {
		data = append(data, mapInstallment(&installments[i]))
	}
	return &dto.InstallmentListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *installmentService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]dto.InstallmentResponse, error) {
	installments, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.InstallmentResponse, 0, len(installments))
	for i := range installments {
		data = append(data, mapInstallment(&installments[i]))
	}
	return data, nil
}

func (s *installmentService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*dto.InstallmentResponse, error) {
	switch status {
	case "paid":
		return s.MarkPaid(ctx, id, nil)
	case "pending":
		return s.markUnpaid(ctx, id)
	default:
		return nil, errors.New("statut d'échéance invalide")
	}
}

// MarkPaid settles one installment and rolls the parent sale's payment
// status forward: pending → en_cours on the first payment, en_cours → paid
// when the last installment settles.
func (s *installmentService) MarkPaid(ctx context.Context, id uuid.UUID, paidAt *time.Time) (*dto.InstallmentResponse, error) {
	inst, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("échéance introuvable")
		}
		return nil, err
	}
	if inst.Paid {
		resp := mapInstallment(inst)
		return &resp, nil
	}

	when := time.Now()
	if paidAt != nil {
		when = *paidAt
	}
	inst.Paid = true
	inst.PaidAt = &when
	if err := s.repo.Update(ctx, inst); err != nil {
		return nil, err
	}

	if err := s.syncVenteStatus(ctx, inst.VenteID); err != nil {
		return nil, err
	}

	resp := mapInstallment(inst)
	return &resp, nil
}

func (s *installmentService) markUnpaid(ctx context.Context, id uuid.UUID) (*dto.InstallmentResponse, error) {
	inst, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("échéance introuvable")
		}
		return nil, err
	}
	if !inst.Paid {
		resp := mapInstallment(inst)
		return &resp, nil
	}

	inst.Paid = false
	inst.PaidAt = nil
	if err := s.repo.Update(ctx, inst); err != nil {
		return nil, err
	}

	if err := s.syncVenteStatus(ctx, inst.VenteID); err != nil {
		return nil, err
	}

	resp := mapInstallment(inst)
	return &resp, nil
}

// syncVenteStatus recomputes the parent sale's payment status from its
// installments: none paid = pending, some = en_cours, all = paid.
func (s *installmentService) syncVenteStatus(ctx context.Context, venteID uuid.UUID) error {
	installments, err := s.repo.ListByVente(ctx, venteID)
	if err != nil {
		return err
	}
	paidCount := 0
	for _, i := range installments {
		if i.Paid {
			paidCount++
		}
	}

	status := "pending"
	switch {
	case paidCount == len(installments) && len(installments) > 0:
		status = "paid"
	case paidCount > 0:
		status = "en_cours"
	}
	return s.venteRepo.UpdatePaymentStatus(ctx, venteID, status)
}
