package worker

// reminder_cron.go
// Background cron that warns customers about upcoming échéances.
// Every hour it selects unpaid installments due within the configured
// window that have not yet been reminded, enqueues a reminder email for
// each, and records reminder_sent_at so the next pass skips them.

import (
	"context"
	"fmt"
	"time"

	"seratauto/internal/repository"

	"github.com/rs/zerolog/log"
)

const reminderBatchSize = 10

// ReminderCronConfig holds the dependencies for the reminder loop.
type ReminderCronConfig struct {
	InstallmentRepo   repository.InstallmentRepository
	Dispatcher        *Dispatcher
	ReminderDaysAhead int
	Interval          time.Duration // defaults to 1h
}

// StartReminderCron launches the installment reminder loop in a goroutine.
// It stops when ctx is cancelled.
func StartReminderCron(ctx context.Context, cfg ReminderCronConfig) {
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	days := cfg.ReminderDaysAhead
	if days <= 0 {
		days = 7
	}

	go func() {
		log.Info().
			Int("days_ahead", days).
			Dur("interval", interval).
			Msg("reminder_cron: started")

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		// First pass shortly after boot so a restart doesn't delay
		// reminders by a full interval.
		timer := time.NewTimer(30 * time.Second)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reminder_cron: shutting down")
				return
			case <-timer.C:
				runReminderPass(ctx, cfg.InstallmentRepo, cfg.Dispatcher, days)
			case <-ticker.C:
				runReminderPass(ctx, cfg.InstallmentRepo, cfg.Dispatcher, days)
			}
		}
	}()
}

func runReminderPass(ctx context.Context, repo repository.InstallmentRepository, dispatcher *Dispatcher, daysAhead int) {
	until := time.Now().AddDate(0, 0, daysAhead)

	installments, err := repo.ListDueForReminder(ctx, until, reminderBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("reminder_cron: failed to list due installments")
		return
	}
	if len(installments) == 0 {
		return
	}
	log.Info().Int("count", len(installments)).Msg("reminder_cron: sending reminders")

	for _, inst := range installments {
		if inst.Vente == nil || inst.Vente.Customer == nil {
			continue
		}
		customer := inst.Vente.Customer
		if customer.Email == nil || *customer.Email == "" {
			// No address to remind. Mark it anyway so the batch does not
			// re-select the same row forever.
			if err := repo.MarkReminderSent(ctx, inst.ID, time.Now()); err != nil {
				log.Error().Err(err).Str("installment_id", inst.ID.String()).Msg("reminder_cron: failed to mark reminder sent")
			}
			continue
		}

		payload := EmailJobPayload{
			ToEmail: *customer.Email,
			Subject: "Rappel d'échéance - Serat Auto",
			Body: fmt.Sprintf("Bonjour %s,\n\nVotre échéance de %s DT arrive à terme le %s.\nMerci de passer régler votre paiement.\n\nSerat Auto",
				customer.Fname, inst.Amount.StringFixed(2), inst.DueDate.Format("02/01/2006")),
		}
		if err := dispatcher.EnqueueEmail(ctx, payload); err != nil {
			log.Error().Err(err).Str("installment_id", inst.ID.String()).Msg("reminder_cron: failed to enqueue reminder")
			continue
		}
		if err := repo.MarkReminderSent(ctx, inst.ID, time.Now()); err != nil {
			log.Error().Err(err).Str("installment_id", inst.ID.String()).Msg("reminder_cron: failed to mark reminder sent")
		}
	}
}
