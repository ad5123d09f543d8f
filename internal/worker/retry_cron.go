package worker

// retry_cron.go
// Background goroutine that periodically finds confirmed sales still missing
// a receipt reference (a crashed worker, a full disk) and re-enqueues their
// receipt jobs.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wallblue4/tustockya-backend/internal/repository"
)

const (
	retryTickInterval = 60 * time.Second
	retryBatchSize    = 10
	// receiptGracePeriod keeps the cron from racing a worker that is still
	// processing a freshly enqueued job.
	receiptGracePeriod = 5 * time.Minute
)

// RetryCronConfig holds the dependencies for the retry goroutine.
type RetryCronConfig struct {
	SaleRepo   repository.SaleRepository
	Dispatcher *Dispatcher
}

// StartRetryCron launches a background goroutine that ticks every minute and
// re-enqueues receipt jobs for confirmed sales with no receipt. It respects
// the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	cutoff := time.Now().Add(-receiptGracePeriod)
	sales, err := cfg.SaleRepo.FindConfirmedMissingReceipt(ctx, cutoff, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query sales missing receipts")
		return
	}
	if len(sales) == 0 {
		return
	}

	log.Info().Int("count", len(sales)).Msg("retry_cron: re-enqueueing receipt jobs")
	for _, sale := range sales {
		payload := ReceiptJobPayload{SaleID: sale.ID.String()}
		if err := cfg.Dispatcher.EnqueueReceipt(ctx, payload); err != nil {
			log.Warn().Err(err).Str("sale_id", sale.ID.String()).Msg("retry_cron: enqueue failed")
		}
	}
}
