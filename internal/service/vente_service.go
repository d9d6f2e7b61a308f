package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"seratauto/internal/dto"
	"seratauto/internal/model"
	"seratauto/internal/pricing"
	"seratauto/internal/repository"
	"seratauto/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RuleError signals a business-rule rejection on an otherwise well-formed
// request (zero line items, stock insuffisant, échéancier discordant…).
// Handlers return 422 for it, keeping 400 for malformed input.
type RuleError struct{ Msg string }

func (e *RuleError) Error() string { return e.Msg }

func ruleErrf(format string, args ...interface{}) error {
	return &RuleError{Msg: fmt.Sprintf(format, args...)}
}

type VenteService interface {
	Create(ctx context.Context, req dto.CreateVenteRequest) (*dto.VenteResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.VenteResponse, error)
	List(ctx context.Context, filter dto.VenteFilter) (*dto.VenteListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateVenteRequest) (*dto.VenteResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
}

type venteService struct {
	repo         repository.VenteRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	prestaRepo   repository.PrestationRepository
	movementRepo repository.StockMovementRepository
	dispatcher   *worker.Dispatcher
}

func NewVenteService(
	repo repository.VenteRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	prestaRepo repository.PrestationRepository,
	movementRepo repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
) VenteService {
	return &venteService{
		repo:         repo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		prestaRepo:   prestaRepo,
		movementRepo: movementRepo,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// resolvedArticle carries a product line after pre-flight resolution.
type resolvedArticle struct {
	product   *model.Product
	quantity  int
	unitPrice decimal.Decimal
	total     decimal.Decimal
}

// resolvedService carries a prestation line after pre-flight resolution.
type resolvedService struct {
	prestation  *model.Prestation
	cost        decimal.Decimal
	description *string
}

// resolveLines fetches every referenced product and prestation, freezes
// prices onto the lines, and returns the calculator inputs.
func (s *venteService) resolveLines(
	ctx context.Context,
	articles []dto.VenteArticleRequest,
	services []dto.VenteServiceRequest,
) ([]resolvedArticle, []resolvedService, error) {
	if len(articles) == 0 && len(services) == 0 {
		return nil, nil, &RuleError{Msg: "une vente doit comporter au moins un article ou une prestation"}
	}

	resolvedArticles := make([]resolvedArticle, 0, len(articles))
	for _, a := range articles {
		pid, err := uuid.Parse(a.Product)
		if err != nil {
			return nil, nil, errors.New("identifiant de produit invalide")
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, nil, fmt.Errorf("produit %s introuvable", a.Product)
		}
		if p.Stock < a.Quantity {
			return nil, nil, ruleErrf("stock insuffisant pour %s: %d disponible, %d demandé", p.Title, p.Stock, a.Quantity)
		}
		unitPrice := p.SPrice
		if a.UnitPrice != nil {
			if a.UnitPrice.IsNegative() {
				return nil, nil, &RuleError{Msg: "le prix unitaire ne peut pas être négatif"}
			}
			unitPrice = a.UnitPrice.Decimal
		}
		resolvedArticles = append(resolvedArticles, resolvedArticle{
			product:   p,
			quantity:  a.Quantity,
			unitPrice: unitPrice,
			total:     unitPrice.Mul(decimal.NewFromInt(int64(a.Quantity))),
		})
	}

	resolvedServices := make([]resolvedService, 0, len(services))
	for _, sv := range services {
		sid, err := uuid.Parse(sv.Service)
		if err != nil {
			return nil, nil, errors.New("identifiant de prestation invalide")
		}
		p, err := s.prestaRepo.FindByID(ctx, sid)
		if err != nil {
			return nil, nil, fmt.Errorf("prestation %s introuvable", sv.Service)
		}
		cost := p.Cost
		if sv.Cost != nil {
			if sv.Cost.IsNegative() {
				return nil, nil, &RuleError{Msg: "le coût d'une prestation ne peut pas être négatif"}
			}
			cost = sv.Cost.Decimal
		}
		resolvedServices = append(resolvedServices, resolvedService{
			prestation:  p,
			cost:        cost,
			description: sv.Description,
		})
	}

	return resolvedArticles, resolvedServices, nil
}

// computeTotals runs the pricing calculator over the resolved lines.
func computeTotals(articles []resolvedArticle, services []resolvedService, reduction decimal.Decimal, reductionType string) (subtotal, reductionAmount, total decimal.Decimal) {
	lines := make([]pricing.ArticleLine, 0, len(articles))
	for _, a := range articles {
		lines = append(lines, pricing.ArticleLine{UnitPrice: a.unitPrice, Quantity: int64(a.quantity)})
	}
	svcLines := make([]pricing.ServiceLine, 0, len(services))
	for _, sv := range services {
		svcLines = append(svcLines, pricing.ServiceLine{Cost: sv.cost})
	}

	subtotal = pricing.Subtotal(lines, svcLines)
	reductionAmount, total = pricing.ApplyReduction(subtotal, pricing.Reduction{
		Kind:  pricing.ReductionKind(reductionType),
		Value: reduction,
	})
	return subtotal, reductionAmount, total
}

// checkInstallments validates that the installment plan closes on the sale
// total. A drift inside the auto-adjust window is silently absorbed into the
// last row; anything larger rejects the plan.
func checkInstallments(reqs []dto.InstallmentRequest, total decimal.Decimal) ([]model.Installment, string, error) {
	if len(reqs) == 0 {
		return nil, "", &RuleError{Msg: "une vente à facilités doit comporter au moins une échéance"}
	}

	drafts := make([]pricing.InstallmentDraft, 0, len(reqs))
	dueDates := make([]time.Time, 0, len(reqs))
	for _, r := range reqs {
		due, err := time.Parse("2006-01-02", r.DueDate)
		if err != nil {
			return nil, "", &RuleError{Msg: "chaque échéance doit avoir un montant et une date d'échéance"}
		}
		amount := r.Amount.Decimal
		dueCopy := due
		drafts = append(drafts, pricing.InstallmentDraft{Amount: &amount, DueDate: &dueCopy})
		dueDates = append(dueDates, due)
	}

	notice := ""
	if pricing.AutoAdjustLast(drafts, total) {
		notice = "Le montant de la dernière échéance a été ajusté pour correspondre au total"
	}

	v := pricing.ValidateInstallments(drafts, total)
	if v.Incomplete {
		return nil, "", &RuleError{Msg: "chaque échéance doit avoir un montant positif et une date d'échéance"}
	}
	if !v.OK {
		return nil, "", ruleErrf("le montant des échéances (%s) ne correspond pas au total de la vente (%s)",
			v.Sum.StringFixed(2), v.Expected.StringFixed(2))
	}

	installments := make([]model.Installment, 0, len(drafts))
	for i, d := range drafts {
		installments = append(installments, model.Installment{
			Amount:  *d.Amount,
			DueDate: dueDates[i],
		})
	}
	return installments, notice, nil
}

// ── Create ────────────────────────────────────────────────────────────────────
// Pre-flight resolution happens outside the transaction; the transaction
// covers the vente, its lines, installments, and the stock decrements.

func (s *venteService) Create(ctx context.Context, req dto.CreateVenteRequest) (*dto.VenteResponse, error) {
	customerID, err := uuid.Parse(req.Customer)
	if err != nil {
		return nil, errors.New("identifiant de client invalide")
	}
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, errors.New("client introuvable")
	}

	articles, services, err := s.resolveLines(ctx, req.Articles, req.Services)
	if err != nil {
		return nil, err
	}

	reductionType := req.ReductionType
	if reductionType == "" {
		reductionType = "percent"
	}
	if req.Reduction.IsNegative() {
		return nil, &RuleError{Msg: "la réduction ne peut pas être négative"}
	}

	subtotal, reductionAmount, total := computeTotals(articles, services, req.Reduction.Decimal, reductionType)

	var installments []model.Installment
	notice := ""
	paymentStatus := "paid"
	if req.PaymentType == "facilite" {
		installments, notice, err = checkInstallments(req.Installments, total)
		if err != nil {
			return nil, err
		}
		paymentStatus = "pending"
	} else if len(req.Installments) > 0 {
		return nil, &RuleError{Msg: "une vente au comptant ne peut pas comporter d'échéances"}
	}

	vente := model.Vente{
		CustomerID:    customerID,
		Reduction:     req.Reduction.Decimal,
		ReductionType: reductionType,
		PaymentType:   req.PaymentType,
		PaymentStatus: paymentStatus,
		TotalCost:     pricing.Round2(total),
		Notes:         req.Notes,
		Installments:  installments,
	}
	for _, a := range articles {
		vente.Articles = append(vente.Articles, model.VenteArticle{
			ProductID:  a.product.ID,
			Quantity:   a.quantity,
			UnitPrice:  a.unitPrice,
			TotalPrice: a.total,
		})
	}
	for _, sv := range services {
		vente.Services = append(vente.Services, model.VenteService{
			PrestationID: sv.prestation.ID,
			Cost:         sv.cost,
			Description:  sv.description,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &vente); err != nil {
			return err
		}

		for _, a := range articles {
			if err := s.productRepo.UpdateStockTx(tx, a.product.ID, -a.quantity); err != nil {
				return fmt.Errorf("erreur de décompte du stock de %s: %w", a.product.Title, err)
			}
			ref := vente.ID
			mov := &model.StockMovement{
				ProductID:   a.product.ID,
				Type:        "vente",
				Quantity:    -a.quantity,
				StockBefore: a.product.Stock,
				StockAfter:  a.product.Stock - a.quantity,
				Reason:      fmt.Sprintf("Vente %s", vente.ID),
				RefID:       &ref,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async invoice job (best-effort — fire & forget)
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueInvoice(ctx, map[string]interface{}{
			"vente_id": vente.ID.String(),
		})
	}

	resp := s.mapVente(&vente, subtotal, reductionAmount)
	resp.AdjustmentNotice = notice
	// Enrich line names from the resolved slices; preloads are absent on a
	// freshly created record.
	for i, a := range articles {
		resp.Articles[i].Title = a.product.Title
	}
	for i, sv := range services {
		resp.Services[i].ServiceType = sv.prestation.ServiceType
	}
	return resp, nil
}

func (s *venteService) Get(ctx context.Context, id uuid.UUID) (*dto.VenteResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("vente introuvable")
		}
		return nil, err
	}
	subtotal, reductionAmount := recomputeStoredTotals(v)
	return s.mapVente(v, subtotal, reductionAmount), nil
}

func (s *venteService) List(ctx context.Context, filter dto.VenteFilter) (*dto.VenteListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	ventes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VenteResponse, 0, len(ventes))
	for i := range ventes {
		subtotal, reductionAmount := recomputeStoredTotals(&ventes[i])
		data = append(data, *s.mapVente(&ventes[i], subtotal, reductionAmount))
	}
	return &dto.VenteListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Update ────────────────────────────────────────────────────────────────────
// Replacing line items restocks the old articles before decrementing the new
// ones, all inside one transaction.

func (s *venteService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateVenteRequest) (*dto.VenteResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("vente introuvable")
		}
		return nil, err
	}
	if existing.PaymentStatus == "paid" && existing.PaymentType == "facilite" {
		return nil, &RuleError{Msg: "une vente entièrement payée ne peut plus être modifiée"}
	}

	// Build the new line set: absent slices keep the existing lines.
	articleReqs := req.Articles
	if articleReqs == nil {
		articleReqs = make([]dto.VenteArticleRequest, 0, len(existing.Articles))
		for _, a := range existing.Articles {
			price := pricing.NewAmount(a.UnitPrice)
			articleReqs = append(articleReqs, dto.VenteArticleRequest{
				Product:   a.ProductID.String(),
				Quantity:  a.Quantity,
				UnitPrice: &price,
			})
		}
	}
	serviceReqs := req.Services
	if serviceReqs == nil {
		serviceReqs = make([]dto.VenteServiceRequest, 0, len(existing.Services))
		for _, sv := range existing.Services {
			cost := pricing.NewAmount(sv.Cost)
			serviceReqs = append(serviceReqs, dto.VenteServiceRequest{
				Service:     sv.PrestationID.String(),
				Cost:        &cost,
				Description: sv.Description,
			})
		}
	}

	// Restock previous articles virtually so the pre-flight stock check
	// evaluates against what would be available after the swap.
	restocked := make(map[uuid.UUID]int, len(existing.Articles))
	for _, a := range existing.Articles {
		restocked[a.ProductID] += a.Quantity
	}

	articles, services, err := s.resolveLinesForUpdate(ctx, articleReqs, serviceReqs, restocked)
	if err != nil {
		return nil, err
	}

	reduction := existing.Reduction
	if req.Reduction != nil {
		if req.Reduction.IsNegative() {
			return nil, &RuleError{Msg: "la réduction ne peut pas être négative"}
		}
		reduction = req.Reduction.Decimal
	}
	reductionType := existing.ReductionType
	if req.ReductionType != nil {
		reductionType = *req.ReductionType
	}
	paymentType := existing.PaymentType
	if req.PaymentType != nil {
		paymentType = *req.PaymentType
	}

	subtotal, reductionAmount, total := computeTotals(articles, services, reduction, reductionType)

	var installments []model.Installment
	notice := ""
	paymentStatus := existing.PaymentStatus
	if paymentType == "facilite" {
		installmentReqs := req.Installments
		if installmentReqs == nil {
			installmentReqs = make([]dto.InstallmentRequest, 0, len(existing.Installments))
			for _, inst := range existing.Installments {
				installmentReqs = append(installmentReqs, dto.InstallmentRequest{
					Amount:  pricing.NewAmount(inst.Amount),
					DueDate: inst.DueDate.Format("2006-01-02"),
				})
			}
		}
		installments, notice, err = checkInstallments(installmentReqs, total)
		if err != nil {
			return nil, err
		}
		if existing.PaymentType != "facilite" {
			paymentStatus = "pending"
		}
	} else {
		if len(req.Installments) > 0 {
			return nil, &RuleError{Msg: "une vente au comptant ne peut pas comporter d'échéances"}
		}
		paymentStatus = "paid"
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Restock the old articles
		for pid, qty := range restocked {
			if err := s.productRepo.UpdateStockTx(tx, pid, qty); err != nil {
				return err
			}
		}

		// Drop old children; the new set is recreated below
		if err := tx.Where("vente_id = ?", id).Delete(&model.VenteArticle{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vente_id = ?", id).Delete(&model.VenteService{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vente_id = ?", id).Delete(&model.Installment{}).Error; err != nil {
			return err
		}

		existing.Reduction = reduction
		existing.ReductionType = reductionType
		existing.PaymentType = paymentType
		existing.PaymentStatus = paymentStatus
		existing.TotalCost = pricing.Round2(total)
		if req.Notes != nil {
			existing.Notes = req.Notes
		}
		existing.Articles = nil
		existing.Services = nil
		existing.Installments = nil
		if err := tx.WithContext(ctx).Save(existing).Error; err != nil {
			return err
		}

		for _, a := range articles {
			line := model.VenteArticle{
				VenteID:    id,
				ProductID:  a.product.ID,
				Quantity:   a.quantity,
				UnitPrice:  a.unitPrice,
				TotalPrice: a.total,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			if err := s.productRepo.UpdateStockTx(tx, a.product.ID, -a.quantity); err != nil {
				return err
			}
		}
		for _, sv := range services {
			line := model.VenteService{
				VenteID:      id,
				PrestationID: sv.prestation.ID,
				Cost:         sv.cost,
				Description:  sv.description,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}
		for i := range installments {
			installments[i].VenteID = id
			if err := tx.Create(&installments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.mapVente(updated, subtotal, reductionAmount)
	resp.AdjustmentNotice = notice
	return resp, nil
}

// resolveLinesForUpdate is resolveLines with a virtual restock map applied to
// the stock check, so replacing a line with itself never trips a false
// stock-insufficient error.
func (s *venteService) resolveLinesForUpdate(
	ctx context.Context,
	articleReqs []dto.VenteArticleRequest,
	serviceReqs []dto.VenteServiceRequest,
	restocked map[uuid.UUID]int,
) ([]resolvedArticle, []resolvedService, error) {
	if len(articleReqs) == 0 && len(serviceReqs) == 0 {
		return nil, nil, &RuleError{Msg: "une vente doit comporter au moins un article ou une prestation"}
	}

	articles := make([]resolvedArticle, 0, len(articleReqs))
	for _, a := range articleReqs {
		pid, err := uuid.Parse(a.Product)
		if err != nil {
			return nil, nil, errors.New("identifiant de produit invalide")
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, nil, fmt.Errorf("produit %s introuvable", a.Product)
		}
		available := p.Stock + restocked[pid]
		if available < a.Quantity {
			return nil, nil, ruleErrf("stock insuffisant pour %s: %d disponible, %d demandé", p.Title, available, a.Quantity)
		}
		unitPrice := p.SPrice
		if a.UnitPrice != nil {
			if a.UnitPrice.IsNegative() {
				return nil, nil, &RuleError{Msg: "le prix unitaire ne peut pas être négatif"}
			}
			unitPrice = a.UnitPrice.Decimal
		}
		articles = append(articles, resolvedArticle{
			product:   p,
			quantity:  a.Quantity,
			unitPrice: unitPrice,
			total:     unitPrice.Mul(decimal.NewFromInt(int64(a.Quantity))),
		})
	}

	services := make([]resolvedService, 0, len(serviceReqs))
	for _, sv := range serviceReqs {
		sid, err := uuid.Parse(sv.Service)
		if err != nil {
			return nil, nil, errors.New("identifiant de prestation invalide")
		}
		p, err := s.prestaRepo.FindByID(ctx, sid)
		if err != nil {
			return nil, nil, fmt.Errorf("prestation %s introuvable", sv.Service)
		}
		cost := p.Cost
		if sv.Cost != nil {
			cost = sv.Cost.Decimal
		}
		services = append(services, resolvedService{
			prestation:  p,
			cost:        cost,
			description: sv.Description,
		})
	}

	return articles, services, nil
}

// ── Delete / Restore ──────────────────────────────────────────────────────────
// Deleting a vente restores its article stock and leaves an "annulation"
// movement per line.

func (s *venteService) Delete(ctx context.Context, id uuid.UUID) error {
	vente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("vente introuvable")
		}
		return err
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, a := range vente.Articles {
			stockBefore := 0
			if a.Product != nil {
				stockBefore = a.Product.Stock
			}
			if err := s.productRepo.UpdateStockTx(tx, a.ProductID, a.Quantity); err != nil {
				return err
			}
			ref := vente.ID
			mov := &model.StockMovement{
				ProductID:   a.ProductID,
				Type:        "annulation",
				Quantity:    a.Quantity,
				StockBefore: stockBefore,
				StockAfter:  stockBefore + a.Quantity,
				Reason:      fmt.Sprintf("Annulation vente %s", vente.ID),
				RefID:       &ref,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return s.repo.SoftDelete(ctx, tx, id)
	})
}

func (s *venteService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.repo.Restore(ctx, id)
}

// ── Mapping ───────────────────────────────────────────────────────────────────

// recomputeStoredTotals rebuilds subtotal and reduction amount from the
// persisted lines so reads never depend on a denormalized column.
func recomputeStoredTotals(v *model.Vente) (subtotal, reductionAmount decimal.Decimal) {
	lines := make([]pricing.ArticleLine, 0, len(v.Articles))
	for _, a := range v.Articles {
		lines = append(lines, pricing.ArticleLine{UnitPrice: a.UnitPrice, Quantity: int64(a.Quantity)})
	}
	svcLines := make([]pricing.ServiceLine, 0, len(v.Services))
	for _, sv := range v.Services {
		svcLines = append(svcLines, pricing.ServiceLine{Cost: sv.Cost})
	}
	subtotal = pricing.Subtotal(lines, svcLines)
	reductionAmount, _ = pricing.ApplyReduction(subtotal, pricing.Reduction{
		Kind:  pricing.ReductionKind(v.ReductionType),
		Value: v.Reduction,
	})
	return subtotal, reductionAmount
}

func (s *venteService) mapVente(v *model.Vente, subtotal, reductionAmount decimal.Decimal) *dto.VenteResponse {
	articles := make([]dto.VenteArticleResponse, 0, len(v.Articles))
	for _, a := range v.Articles {
		title := ""
		if a.Product != nil {
			title = a.Product.Title
		}
		articles = append(articles, dto.VenteArticleResponse{
			Product:    a.ProductID.String(),
			Title:      title,
			Quantity:   a.Quantity,
			UnitPrice:  a.UnitPrice,
			TotalPrice: a.TotalPrice,
		})
	}
	services := make([]dto.VenteServiceResponse, 0, len(v.Services))
	for _, sv := range v.Services {
		serviceType := ""
		if sv.Prestation != nil {
			serviceType = sv.Prestation.ServiceType
		}
		services = append(services, dto.VenteServiceResponse{
			Service:     sv.PrestationID.String(),
			ServiceType: serviceType,
			Cost:        sv.Cost,
			Description: sv.Description,
		})
	}
	installments := make([]dto.InstallmentResponse, 0, len(v.Installments))
	for _, inst := range v.Installments {
		installments = append(installments, mapInstallment(&inst))
	}

	return &dto.VenteResponse{
		ID:              v.ID.String(),
		Customer:        v.CustomerID.String(),
		Articles:        articles,
		Services:        services,
		Subtotal:        pricing.Round2(subtotal),
		Reduction:       v.Reduction,
		ReductionType:   v.ReductionType,
		ReductionAmount: pricing.Round2(reductionAmount),
		TotalCost:       v.TotalCost,
		PaymentType:     v.PaymentType,
		PaymentStatus:   v.PaymentStatus,
		Installments:    installments,
		Notes:           v.Notes,
		CreatedAt:       v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func mapInstallment(i *model.Installment) dto.InstallmentResponse {
	resp := dto.InstallmentResponse{
		ID:      i.ID.String(),
		VenteID: i.VenteID.String(),
		Amount:  i.Amount,
		DueDate: i.DueDate.Format("2006-01-02"),
		Paid:    i.Paid,
	}
	if i.PaidAt != nil {
		paidAt := i.PaidAt.Format("2006-01-02")
		resp.PaidAt = &paidAt
	}
	return resp
}
