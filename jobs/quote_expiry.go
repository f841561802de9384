package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/navette-vtc/navette/internal/billing"
)

// NewQuoteExpiryScanHandler builds the handler for TaskQuoteExpiryScan.
// Documents are immutable after creation, so the scan only reports expired
// quotes; it never mutates them.
func NewQuoteExpiryScanHandler(repo billing.Repository, clock billing.Clock, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		isInvoice := false
		quotes, err := repo.List(ctx, &isInvoice)
		if err != nil {
			return err
		}

		now := clock.Now()
		expired := 0
		for _, q := range quotes {
			if q.ValidityDate.Before(now) {
				expired++
				logger.Info("quote past validity date",
					slog.String("doc_number", q.DocNumber),
					slog.Time("validity_date", q.ValidityDate),
				)
			}
		}
		logger.Info("quote expiry scan finished",
			slog.Int("open_quotes", len(quotes)),
			slog.Int("expired", expired),
		)
		return nil
	}
}
