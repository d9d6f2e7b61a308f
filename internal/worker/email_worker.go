package worker

// email_worker.go
// Processes email jobs from QueueEmail: invoice deliveries and
// installment reminders. Delivery failures go to the DLQ so they can be
// inspected and replayed.

import (
	"context"
	"encoding/json"

	"seratauto/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
// PDFPath is optional; when set the file is attached.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path,omitempty"`
}

// EmailWorker delivers outgoing mail through the configured SMTP relay.
type EmailWorker struct {
	mailer *infra.Mailer
	rdb    *redis.Client
}

func NewEmailWorker(mailer *infra.Mailer, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, rdb: rdb}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty recipient, dropping job")
		return
	}

	err := withRetry(ctx, 3, func(attempt int) error {
		if err := w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath); err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("email", payload.ToEmail).
				Msg("email_worker: send attempt failed, retrying")
			return err
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("email", payload.ToEmail).Msg("email_worker: delivery failed after all retries")
		if w.rdb != nil {
			SendToDLQ(ctx, w.rdb, QueueEmail, "email", raw, err.Error(), 3)
		}
		return
	}
	log.Info().Str("email", payload.ToEmail).Str("subject", payload.Subject).Msg("email_worker: email sent")
}
