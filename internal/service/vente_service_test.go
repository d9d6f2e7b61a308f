package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"seratauto/internal/dto"
	"seratauto/internal/model"
	"seratauto/internal/pricing"
	"seratauto/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubVenteRepo is an in-memory VenteRepository for testing.
type stubVenteRepo struct {
	ventes map[uuid.UUID]*model.Vente
}

func newStubVenteRepo() *stubVenteRepo {
	return &stubVenteRepo{ventes: make(map[uuid.UUID]*model.Vente)}
}

func (r *stubVenteRepo) Create(_ context.Context, _ *gorm.DB, v *model.Vente) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ventes[v.ID] = v
	return nil
}

func (r *stubVenteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Vente, error) {
	v, ok := r.ventes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVenteRepo) List(_ context.Context, _ dto.VenteFilter) ([]model.Vente, int64, error) {
	out := make([]model.Vente, 0, len(r.ventes))
	for _, v := range r.ventes {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVenteRepo) ListForSummary(_ context.Context, filter dto.ComptabiliteFilter) ([]model.Vente, error) {
	out := make([]model.Vente, 0, len(r.ventes))
	for _, v := range r.ventes {
		if filter.Customer != "" && v.CustomerID.String() != filter.Customer {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *stubVenteRepo) Update(_ context.Context, _ *gorm.DB, v *model.Vente) error {
	r.ventes[v.ID] = v
	return nil
}

func (r *stubVenteRepo) UpdatePaymentStatus(_ context.Context, id uuid.UUID, status string) error {
	v, ok := r.ventes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.PaymentStatus = status
	return nil
}

func (r *stubVenteRepo) SoftDelete(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	v, ok := r.ventes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	return nil
}

func (r *stubVenteRepo) Restore(_ context.Context, id uuid.UUID) error {
	v, ok := r.ventes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.DeletedAt = gorm.DeletedAt{}
	return nil
}

func (r *stubVenteRepo) DB() *gorm.DB { return nil }

var _ repository.VenteRepository = (*stubVenteRepo)(nil)

// stubCustomerRepo holds customers keyed by ID.
type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) FindByCIN(_ context.Context, cin string) (*model.Customer, error) {
	for _, c := range r.customers {
		if c.CIN == cin {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCustomerRepo) List(_ context.Context, _ dto.CustomerFilter) ([]model.Customer, int64, error) {
	return nil, 0, nil
}
func (r *stubCustomerRepo) Update(_ context.Context, _ *model.Customer) error  { return nil }
func (r *stubCustomerRepo) SoftDelete(_ context.Context, _ uuid.UUID) error    { return nil }
func (r *stubCustomerRepo) Restore(_ context.Context, _ uuid.UUID) error       { return nil }

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

// stubProductRepo tracks stock in memory; UpdateStockTx accepts a nil tx.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	return nil, 0, nil
}
func (r *stubProductRepo) ListLowStock(_ context.Context) ([]model.Product, error) { return nil, nil }
func (r *stubProductRepo) Update(_ context.Context, _ *model.Product) error        { return nil }
func (r *stubProductRepo) SoftDelete(_ context.Context, _ uuid.UUID) error         { return nil }
func (r *stubProductRepo) Restore(_ context.Context, _ uuid.UUID) error            { return nil }

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return errors.New("not found")
	}
	p.Stock += delta
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubPrestationRepo holds prestations keyed by ID.
type stubPrestationRepo struct {
	prestations map[uuid.UUID]*model.Prestation
}

func newStubPrestationRepo() *stubPrestationRepo {
	return &stubPrestationRepo{prestations: make(map[uuid.UUID]*model.Prestation)}
}

func (r *stubPrestationRepo) Create(_ context.Context, p *model.Prestation) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.prestations[p.ID] = p
	return nil
}

func (r *stubPrestationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Prestation, error) {
	p, ok := r.prestations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPrestationRepo) List(_ context.Context, _ dto.PrestationFilter) ([]model.Prestation, int64, error) {
	return nil, 0, nil
}
func (r *stubPrestationRepo) ListByCustomer(_ context.Context, _ uuid.UUID) ([]model.Prestation, error) {
	return nil, nil
}
func (r *stubPrestationRepo) Update(_ context.Context, _ *model.Prestation) error { return nil }
func (r *stubPrestationRepo) SoftDelete(_ context.Context, _ uuid.UUID) error     { return nil }
func (r *stubPrestationRepo) Restore(_ context.Context, _ uuid.UUID) error        { return nil }

var _ repository.PrestationRepository = (*stubPrestationRepo)(nil)

// stubMovementRepo captures movements for assertion.
type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, _ repository.StockMovementFilter) ([]model.StockMovement, int64, error) {
	return r.movements, int64(len(r.movements)), nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// ── Test helpers ─────────────────────────────────────────────────────────────

func buildVenteSvc() (VenteService, *stubVenteRepo, *stubCustomerRepo, *stubProductRepo, *stubPrestationRepo, *stubMovementRepo) {
	venteRepo := newStubVenteRepo()
	customerRepo := newStubCustomerRepo()
	productRepo := newStubProductRepo()
	prestaRepo := newStubPrestationRepo()
	movementRepo := &stubMovementRepo{}

	svc := NewVenteService(venteRepo, customerRepo, productRepo, prestaRepo, movementRepo, nil)
	return svc, venteRepo, customerRepo, productRepo, prestaRepo, movementRepo
}

func seedCustomer(repo *stubCustomerRepo) *model.Customer {
	c := &model.Customer{
		ID:          uuid.New(),
		Fname:       "Ahmed",
		Lname:       "Ben Salah",
		CIN:         "09234817",
		PhoneNumber: "21655123456",
	}
	repo.customers[c.ID] = c
	return c
}

func seedProduct(repo *stubProductRepo, title string, price float64, stock int) *model.Product {
	p := &model.Product{
		ID:     uuid.New(),
		Title:  title,
		SPrice: decimal.NewFromFloat(price),
		BPrice: decimal.NewFromFloat(price * 0.7),
		Stock:  stock,
	}
	repo.products[p.ID] = p
	return p
}

func seedPrestation(repo *stubPrestationRepo, serviceType string, cost float64) *model.Prestation {
	p := &model.Prestation{
		ID:          uuid.New(),
		ServiceType: serviceType,
		Cost:        decimal.NewFromFloat(cost),
	}
	repo.prestations[p.ID] = p
	return p
}

func amt(v float64) pricing.Amount {
	return pricing.NewAmount(decimal.NewFromFloat(v))
}

func amtPtr(v float64) *pricing.Amount {
	a := amt(v)
	return &a
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCreateVente_Comptant(t *testing.T) {
	svc, venteRepo, customerRepo, productRepo, _, movementRepo := buildVenteSvc()
	customer := seedCustomer(customerRepo)
	p := seedProduct(productRepo, "Traceur GPS TK-103", 250, 10)

	resp, err := svc.Create(context.Background(), dto.CreateVenteRequest{
		Customer:    customer.ID.String(),
		Articles:    []dto.VenteArticleRequest{{Product: p.ID.String(), Quantity: 2}},
		PaymentType: "comptant",
	})
	require.NoError(t, err)

	// Comptant ventes are fully settled at creation
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, "500.00", resp.TotalCost.StringFixed(2))
	assert.Equal(t, "500.00", resp.Subtotal.StringFixed(2))
	assert.Empty(t, resp.Installments)

	// Stock decremented and a movement recorded
	assert.Equal(t, 8, productRepo.products[p.ID].Stock)
	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, "vente", movementRepo.movements[0].Type)
	assert.Equal(t, -2, movementRepo.movements[0].Quantity)

	stored, err := venteRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "comptant", stored.PaymentType)
}

func TestCreateVente_NegotiatedPriceWins(t *testing.T) {
	svc, _, customerRepo, productRepo, _, _ := buildVenteSvc()
	customer := seedCustomer(customerRepo)
	p := seedProduct(productRepo, "Autoradio Android", 400, 5)

	resp, err := svc.Create(context.Background(), dto.CreateVenteRequest{
		Customer: customer.ID.String(),
		Articles: []dto.VenteArticleRequest{
			{Product: p.ID.String(), Quantity: 1, UnitPrice: amtPtr(350)},
		},
		PaymentType: "comptant",
	})
	require.NoError(t, err)
	assert.Equal(t, "350.00", resp.TotalCost.StringFixed(2))
	assert.Equal(t, "350.00", resp.Articles[0].UnitPrice.StringFixed(2))
}

func TestCreateVente_ReductionPercent(t *testing.T) {
	svc, _, customerRepo, productRepo, prestaRepo, _ := buildVenteSvc()
	customer := seedCustomer(customerRepo)
	p := seedProduct(productRepo, "Caméra de recul", 100, 5)
	presta := seedPrestation(prestaRepo, "pose caméra", 50)

	// subtotal = 2×100 + 50 = 250; 10% → reduction 25, total 225
	resp, err := svc.Create(context.Background(), dto.CreateVenteRequest{
		Customer:      customer.ID.String(),
		Articles:      []dto.VenteArticleRequest{{Product: p.ID.String(), Quantity: 2}},
		Services:      []dto.VenteServiceRequest{{Service: presta.ID.String()}},
		Reduction:     amt(10),
		ReductionType: "percent",
		PaymentType:   "comptant",
	})
	require.NoError(t, err)
	assert.Equal(t, "250.00", resp.Subtotal.StringFixed(2))
	assert.Equal(t, "25.00", resp.ReductionAmount.StringFixed(2))
	assert.Equal(t, "225.00", resp.TotalCost.StringFixed(2))
}

func TestCreateVente_ReductionAmountClamped(t *testing.T) {
	svc, _, customerRepo, productRepo, _, _ := buildVenteSvc()
	customer := seedCustomer(customerRepo)
	p := seedProduct(productRepo, "Ampoule LED", 20, 10)

	// Flat reduction bigger than the subtotal clamps to it; total floors at 0
	resp, err := svc.Create(context.Background(), dto.CreateVenteRequest{
		Customer:      customer.ID.String(),
		Articles:      []dto.VenteArticleRequest{{Product: p.ID.String(), Quantity: 1}},
		Reduction:     amt(500),
		ReductionType: "amount",
		PaymentType:   "comptant",
	})
	require.NoError(t, err)
	assert.Equal(t, "20.00", resp.ReductionAmount.StringFixed(2))
	assert.True(t, resp.TotalCost.IsZero())
}

func TestCreateVente_NegativeReductionRejected(t *testing.T) {
	svc, _, customerRepo, productRepo, _, _ := buildVenteSvc()
	customer := seedCustomer(customerRepo)
	p := seedProduct(productRepo, "Pneu 195/65", 180, 8)

	_, err := svc.Create(context.Background(), dto.CreateVenteRequest{
		Customer:    customer.ID.String(),
		Articles:    []dto.VenteArticleRequest{{Product: p.ID.String(), Quantity: 1}},
		Reduction:   pricing.NewAmount(decimal.NewFromInt(-5)),
		PaymentType: "comptant",
	})
	assert.ErrorContains(t, err, "réduction")
}

func TestCreateVente_StockInsuffisant(t *testing.T) {
	svc, _, customerRepo, productRepo, _, _ := buildVenteSvc()
	customer := seedCustomer(customerRepo)
	p := seedProduct(productRepo, "Batterie 60Ah", 220, 2)

	_, err := svc.Create(context.Background(), dto.CreateVenteRequest{
		Customer:    customer.ID.String(),
		Articles:    []dto.VenteArticleRequest{{Product: p.ID.String(), Quantity: 5}},
		PaymentType: "comptant",
	})
	assert.ErrorContains(t, err, "stock insuffisant")
	var ruleErr *RuleError
	assert.ErrorAs(t, err, &ruleErr)
	// Nothing written, stock untouched
	assert.Equal(t, 2, productRepo.products[p.ID].Stock)
}

func TestCreateVente_SansLignes(t *testing.T) {
	svc, _, customerRepo, _, _, _ := buildVenteSvc()
	customer := seedCustomer(customerRepo)

	_, err := svc.Create(context.Background(), dto.CreateVenteRequest{
		Customer:    customer.ID.String(),
		PaymentType: "comptant",
	})
	assert.ErrorContains(t, err, "au moins un article ou une prestation")
	var ruleErr *RuleError
	assert.ErrorAs(t, err, &ruleErr)
}

func TestCreateVente_ComptantAvecEcheancesRejete(t *testing.T) {
	svc, _, customerRepo, productRepo, _, _ := buildVenteSvc()
	customer := seedCustomer(customerRepo)
	p := seedProduct(productRepo, "Kit distribution", 300, 5)

	_, err := svc.Create(context.Background(), dto.CreateVenteRequest{
		Customer:    customer.ID.String(),
		Articles:    []dto.VenteArticleRequest{{Product: p.ID.String(), Quantity: 1}},
		PaymentType: "comptant",
		Installments: []dto.InstallmentRequest{
			{Amount: amt(300), DueDate: "2026-10-01"},
		},
	})
	assert.ErrorContains(t, err, "comptant")
}

func TestCreateVente_Facilite(t *testing.T) {
	svc, venteRepo, customerRepo, productRepo, _, _ := buildVenteSvc()
	customer := seedCustomer(customerRepo)
	p := seedProduct(productRepo, "Traceur GPS TK-103", 300, 10)

	resp, err := svc.Create(context.Background(), dto.CreateVenteRequest{
		Customer:    customer.ID.String(),
		Articles:    []dto.VenteArticleRequest{{Product: p.ID.String(), Quantity: 1}},
		PaymentType: "facilite",
		Installments: []dto.InstallmentRequest{
			{Amount: amt(100), DueDate: "2026-10-01"},
			{Amount: amt(100), DueDate: "2026-11-01"},
			{Amount: amt(100), DueDate: "2026-12-01"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.PaymentStatus)
	require.Len(t, resp.Installments, 3)
	assert.Empty(t, resp.AdjustmentNotice)

	stored, _ := venteRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	assert.Len(t, stored.Installments, 3)
}

func TestCreateVente_FaciliteSansEcheances(t *testing.T) {
	svc, _, customerRepo, productRepo, _, _ := buildVenteSvc()
	customer := seedCustomer(customerRepo)
	p := seedProduct(productRepo, "Jantes alu 16\"", 800, 4)

	_, err := svc.Create(context.Background(), dto.CreateVenteRequest{
		Customer:    customer.ID.String(),
		Articles:    []dto.VenteArticleRequest{{Product: p.ID.String(), Quantity: 1}},
		PaymentType: "facilite",
	})
	assert.ErrorContains(t, err, "au moins une échéance")
}

func TestCreateVente_EcheancesDiscordantesRejetees(t *testing.T) {
	svc, _, customerRepo, productRepo, _, _ := buildVenteSvc()
	customer := seedCustomer(customerRepo)
	p := seedProduct(productRepo, "Attelage remorque", 450, 3)

	// 100 + 100 = 200 ≠ 450: well past the auto-adjust window
	_, err := svc.Create(context.Background(), dto.CreateVenteRequest{
		Customer:    customer.ID.String(),
		Articles:    []dto.VenteArticleRequest{{Product: p.ID.String(), Quantity: 1}},
		PaymentType: "facilite",
		Installments: []dto.InstallmentRequest{
			{Amount: amt(100), DueDate: "2026-10-01"},
			{Amount: amt(100), DueDate: "2026-11-01"},
		},
	})
	assert.ErrorContains(t, err, "ne correspond pas au total")
	var ruleErr *RuleError
	assert.ErrorAs(t, err, &ruleErr)
}

func TestCreateVente_AutoAjustementDerniereEcheance(t *testing.T) {
	svc, venteRepo, customerRepo, productRepo, _, _ := buildVenteSvc()
	customer := seedCustomer(customerRepo)
	p := seedProduct(productRepo, "Pare-brise", 100, 5)

	// 33.33 × 3 = 99.99; drift of 0.01 sits inside the adjust window,
	// so the last installment absorbs it.
	resp, err := svc.Create(context.Background(), dto.CreateVenteRequest{
		Customer:    customer.ID.String(),
		Articles:    []dto.VenteArticleRequest{{Product: p.ID.String(), Quantity: 1}},
		PaymentType: "facilite",
		Installments: []dto.InstallmentRequest{
			{Amount: amt(33.33), DueDate: "2026-10-01"},
			{Amount: amt(33.33), DueDate: "2026-11-01"},
			{Amount: amt(33.33), DueDate: "2026-12-01"},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AdjustmentNotice)

	stored, _ := venteRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	sum := decimal.Zero
	for _, inst := range stored.Installments {
		sum = sum.Add(inst.Amount)
	}
	assert.True(t, sum.Equal(stored.TotalCost), "installments must close on the total")
	assert.Equal(t, "33.34", stored.Installments[2].Amount.StringFixed(2))
}

func TestCreateVente_ClientIntrouvable(t *testing.T) {
	svc, _, _, productRepo, _, _ := buildVenteSvc()
	p := seedProduct(productRepo, "Filtre à huile", 15, 20)

	_, err := svc.Create(context.Background(), dto.CreateVenteRequest{
		Customer:    uuid.New().String(),
		Articles:    []dto.VenteArticleRequest{{Product: p.ID.String(), Quantity: 1}},
		PaymentType: "comptant",
	})
	assert.ErrorContains(t, err, "client introuvable")
}

func TestDeleteVente_RestaureStock(t *testing.T) {
	svc, venteRepo, customerRepo, productRepo, _, movementRepo := buildVenteSvc()
	customer := seedCustomer(customerRepo)
	p := seedProduct(productRepo, "Plaquettes de frein", 80, 10)

	resp, err := svc.Create(context.Background(), dto.CreateVenteRequest{
		Customer:    customer.ID.String(),
		Articles:    []dto.VenteArticleRequest{{Product: p.ID.String(), Quantity: 3}},
		PaymentType: "comptant",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, productRepo.products[p.ID].Stock)

	err = svc.Delete(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)

	// Stock restored, soft delete applied, annulation movement recorded
	assert.Equal(t, 10, productRepo.products[p.ID].Stock)
	stored, _ := venteRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	assert.True(t, stored.DeletedAt.Valid)

	var hasAnnulation bool
	for _, m := range movementRepo.movements {
		if m.Type == "annulation" {
			hasAnnulation = true
			assert.Equal(t, 3, m.Quantity)
		}
	}
	assert.True(t, hasAnnulation)
}

func TestGetVente_RecomputeTotals(t *testing.T) {
	svc, _, customerRepo, productRepo, _, _ := buildVenteSvc()
	customer := seedCustomer(customerRepo)
	p := seedProduct(productRepo, "Amortisseur", 120, 6)

	created, err := svc.Create(context.Background(), dto.CreateVenteRequest{
		Customer:      customer.ID.String(),
		Articles:      []dto.VenteArticleRequest{{Product: p.ID.String(), Quantity: 2}},
		Reduction:     amt(40),
		ReductionType: "amount",
		PaymentType:   "comptant",
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, "240.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, "40.00", got.ReductionAmount.StringFixed(2))
	assert.Equal(t, "200.00", got.TotalCost.StringFixed(2))
}
