package worker

// invoice_worker.go
// Processes invoice jobs from QueueInvoice.
// Generates the PDF invoice for a vente and, when the customer has an
// email address, enqueues the delivery job.
// Implements exponential backoff (max 3 retries) around PDF generation so a
// transient filesystem error does not drop the invoice.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"seratauto/internal/infra"
	"seratauto/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// InvoiceJobPayload is the job envelope sent to QueueInvoice.
type InvoiceJobPayload struct {
	VenteID string `json:"vente_id"`
}

// InvoiceWorker generates invoice PDFs for completed ventes.
type InvoiceWorker struct {
	venteRepo      repository.VenteRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewInvoiceWorker(
	venteRepo repository.VenteRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
) *InvoiceWorker {
	return &InvoiceWorker{
		venteRepo:      venteRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single invoice job:
//  1. Parse InvoiceJobPayload from the job envelope
//  2. Fetch the vente (with lines and installments) from DB
//  3. Generate the PDF with retry/backoff
//  4. Enqueue email delivery when the customer has an address
func (w *InvoiceWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload InvoiceJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("invoice_worker: invalid payload")
		return
	}

	venteID, err := uuid.Parse(payload.VenteID)
	if err != nil {
		log.Error().Str("vente_id", payload.VenteID).Msg("invoice_worker: invalid vente_id")
		return
	}

	vente, err := w.venteRepo.FindByID(ctx, venteID)
	if err != nil {
		log.Error().Err(err).Str("vente_id", payload.VenteID).Msg("invoice_worker: vente not found")
		return
	}

	var pdfPath string
	pdfErr := withRetry(ctx, 3, func(attempt int) error {
		path, err := infra.GenerateInvoicePDF(vente, w.pdfStoragePath)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("vente_id", payload.VenteID).
				Msg("invoice_worker: PDF attempt failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})
	if pdfErr != nil {
		log.Error().Err(pdfErr).Str("vente_id", payload.VenteID).Msg("invoice_worker: PDF generation failed after all retries")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("vente_id", payload.VenteID).Msg("invoice_worker: PDF generated")

	if vente.Customer == nil || vente.Customer.Email == nil || *vente.Customer.Email == "" {
		return
	}

	emailJob := EmailJobPayload{
		ToEmail: *vente.Customer.Email,
		Subject: "Votre facture Serat Auto",
		Body: fmt.Sprintf("Bonjour %s,\n\nVeuillez trouver ci-joint votre facture du %s.\nTotal: %s DT\n\nSerat Auto",
			vente.Customer.Fname, vente.CreatedAt.Format("02/01/2006"), vente.TotalCost.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", *vente.Customer.Email).Msg("invoice_worker: failed to enqueue email")
	} else {
		log.Info().Str("email", *vente.Customer.Email).Msg("invoice_worker: email job enqueued")
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			// 1s, 2s … (exponential backoff)
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
