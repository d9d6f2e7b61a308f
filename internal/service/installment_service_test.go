package service

import (
	"context"
	"testing"
	"time"

	"seratauto/internal/model"
	"seratauto/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubInstallmentRepo is an in-memory InstallmentRepository.
type stubInstallmentRepo struct {
	installments map[uuid.UUID]*model.Installment
}

func newStubInstallmentRepo() *stubInstallmentRepo {
	return &stubInstallmentRepo{installments: make(map[uuid.UUID]*model.Installment)}
}

func (r *stubInstallmentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Installment, error) {
	i, ok := r.installments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubInstallmentRepo) ListByVente(_ context.Context, venteID uuid.UUID) ([]model.Installment, error) {
	var out []model.Installment
	for _, i := range r.installments {
		if i.VenteID == venteID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubInstallmentRepo) ListByCustomer(_ context.Context, _ uuid.UUID) ([]model.Installment, error) {
	return nil, nil
}

func (r *stubInstallmentRepo) ListUpcoming(_ context.Context, until time.Time, _, _ int) ([]model.Installment, int64, error) {
	var out []model.Installment
	for _, i := range r.installments {
		if !i.Paid && !i.DueDate.After(until) {
			out = append(out, *i)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubInstallmentRepo) ListDueForReminder(_ context.Context, until time.Time, batchSize int) ([]model.Installment, error) {
	var out []model.Installment
	for _, i := range r.installments {
		if !i.Paid && i.ReminderSentAt == nil && !i.DueDate.After(until) {
			out = append(out, *i)
		}
		if len(out) >= batchSize {
			break
		}
	}
	return out, nil
}

func (r *stubInstallmentRepo) Update(_ context.Context, i *model.Installment) error {
	r.installments[i.ID] = i
	return nil
}

func (r *stubInstallmentRepo) MarkReminderSent(_ context.Context, id uuid.UUID, at time.Time) error {
	i, ok := r.installments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	i.ReminderSentAt = &at
	return nil
}

func (r *stubInstallmentRepo) CountUnpaidByVente(_ context.Context, venteID uuid.UUID) (int64, error) {
	var n int64
	for _, i := range r.installments {
		if i.VenteID == venteID && !i.Paid {
			n++
		}
	}
	return n, nil
}

var _ repository.InstallmentRepository = (*stubInstallmentRepo)(nil)

func seedFaciliteVente(venteRepo *stubVenteRepo, instRepo *stubInstallmentRepo, n int) (*model.Vente, []uuid.UUID) {
	vente := &model.Vente{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		PaymentType:   "facilite",
		PaymentStatus: "pending",
		TotalCost:     decimal.NewFromInt(int64(n * 100)),
	}
	venteRepo.ventes[vente.ID] = vente

	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		inst := &model.Installment{
			ID:      uuid.New(),
			VenteID: vente.ID,
			Amount:  decimal.NewFromInt(100),
			DueDate: time.Now().AddDate(0, i+1, 0),
		}
		instRepo.installments[inst.ID] = inst
		ids = append(ids, inst.ID)
	}
	return vente, ids
}

func TestMarkPaid_StatusProgression(t *testing.T) {
	venteRepo := newStubVenteRepo()
	instRepo := newStubInstallmentRepo()
	svc := NewInstallmentService(instRepo, venteRepo)
	vente, ids := seedFaciliteVente(venteRepo, instRepo, 3)

	// First payment: pending → en_cours
	resp, err := svc.MarkPaid(context.Background(), ids[0], nil)
	require.NoError(t, err)
	assert.True(t, resp.Paid)
	assert.NotNil(t, resp.PaidAt)
	assert.Equal(t, "en_cours", venteRepo.ventes[vente.ID].PaymentStatus)

	// Second payment keeps en_cours
	_, err = svc.MarkPaid(context.Background(), ids[1], nil)
	require.NoError(t, err)
	assert.Equal(t, "en_cours", venteRepo.ventes[vente.ID].PaymentStatus)

	// Last payment: en_cours → paid
	_, err = svc.MarkPaid(context.Background(), ids[2], nil)
	require.NoError(t, err)
	assert.Equal(t, "paid", venteRepo.ventes[vente.ID].PaymentStatus)
}

func TestMarkPaid_Idempotent(t *testing.T) {
	venteRepo := newStubVenteRepo()
	instRepo := newStubInstallmentRepo()
	svc := NewInstallmentService(instRepo, venteRepo)
	_, ids := seedFaciliteVente(venteRepo, instRepo, 2)

	first, err := svc.MarkPaid(context.Background(), ids[0], nil)
	require.NoError(t, err)
	again, err := svc.MarkPaid(context.Background(), ids[0], nil)
	require.NoError(t, err)
	assert.Equal(t, first.PaidAt, again.PaidAt)
}

func TestMarkPaid_ExplicitDate(t *testing.T) {
	venteRepo := newStubVenteRepo()
	instRepo := newStubInstallmentRepo()
	svc := NewInstallmentService(instRepo, venteRepo)
	_, ids := seedFaciliteVente(venteRepo, instRepo, 1)

	when := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	resp, err := svc.MarkPaid(context.Background(), ids[0], &when)
	require.NoError(t, err)
	require.NotNil(t, resp.PaidAt)
	assert.Equal(t, "2026-08-15", *resp.PaidAt)
}

func TestSetStatus_RevertToPending(t *testing.T) {
	venteRepo := newStubVenteRepo()
	instRepo := newStubInstallmentRepo()
	svc := NewInstallmentService(instRepo, venteRepo)
	vente, ids := seedFaciliteVente(venteRepo, instRepo, 2)

	_, err := svc.MarkPaid(context.Background(), ids[0], nil)
	require.NoError(t, err)
	_, err = svc.MarkPaid(context.Background(), ids[1], nil)
	require.NoError(t, err)
	assert.Equal(t, "paid", venteRepo.ventes[vente.ID].PaymentStatus)

	// Reverting one payment drops the sale back to en_cours
	resp, err := svc.SetStatus(context.Background(), ids[1], "pending")
	require.NoError(t, err)
	assert.False(t, resp.Paid)
	assert.Nil(t, resp.PaidAt)
	assert.Equal(t, "en_cours", venteRepo.ventes[vente.ID].PaymentStatus)
}

func TestSetStatus_Invalide(t *testing.T) {
	venteRepo := newStubVenteRepo()
	instRepo := newStubInstallmentRepo()
	svc := NewInstallmentService(instRepo, venteRepo)
	_, ids := seedFaciliteVente(venteRepo, instRepo, 1)

	_, err := svc.SetStatus(context.Background(), ids[0], "annulee")
	assert.ErrorContains(t, err, "statut d'échéance invalide")
}

func TestMarkPaid_Introuvable(t *testing.T) {
	svc := NewInstallmentService(newStubInstallmentRepo(), newStubVenteRepo())
	_, err := svc.MarkPaid(context.Background(), uuid.New(), nil)
	assert.ErrorContains(t, err, "introuvable")
}
