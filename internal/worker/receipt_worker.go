package worker

// receipt_worker.go
// Processes receipt jobs from QueueReceipts: renders the PDF for a confirmed
// sale and stores its path as the sale's receipt reference. Retries with
// exponential backoff; exhausted jobs go to the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/wallblue4/tustockya-backend/internal/infra"
	"github.com/wallblue4/tustockya-backend/internal/model"
	"github.com/wallblue4/tustockya-backend/internal/repository"
)

const maxReceiptAttempts = 3

// ReceiptJobPayload is the job envelope sent to QueueReceipts.
type ReceiptJobPayload struct {
	SaleID string `json:"sale_id"`
}

type ReceiptWorker struct {
	saleRepo       repository.SaleRepository
	rdb            *redis.Client
	pdfStoragePath string
}

func NewReceiptWorker(saleRepo repository.SaleRepository, rdb *redis.Client, pdfStoragePath string) *ReceiptWorker {
	return &ReceiptWorker{saleRepo: saleRepo, rdb: rdb, pdfStoragePath: pdfStoragePath}
}

func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}
	saleID, err := uuid.Parse(payload.SaleID)
	if err != nil {
		log.Error().Str("sale_id", payload.SaleID).Msg("receipt_worker: invalid sale_id")
		return
	}

	sale, err := w.saleRepo.FindByID(ctx, saleID)
	if err != nil || sale == nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("receipt_worker: sale not found")
		return
	}
	if sale.Status != model.SaleConfirmed {
		log.Warn().Str("sale_id", payload.SaleID).Str("status", sale.Status).Msg("receipt_worker: sale not confirmed, skipping")
		return
	}
	if sale.ReceiptReference != nil {
		return // another worker got there first
	}

	var pdfPath string
	genErr := withRetry(ctx, maxReceiptAttempts, func(attempt int) error {
		path, err := infra.GenerateReceiptPDF(sale, w.pdfStoragePath)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Str("sale_id", payload.SaleID).
				Msg("receipt_worker: PDF generation failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})
	if genErr != nil {
		SendToDLQ(ctx, w.rdb, QueueReceipts, "receipt", raw,
			fmt.Sprintf("max retries (%d) exceeded: %s", maxReceiptAttempts, genErr), maxReceiptAttempts)
		return
	}

	sale.ReceiptReference = &pdfPath
	if err := w.saleRepo.Update(ctx, sale); err != nil {
		log.Error().Err(err).Str("sale_id", payload.SaleID).Msg("receipt_worker: failed to store receipt path")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("sale_id", payload.SaleID).Msg("receipt_worker: receipt generated")
}
