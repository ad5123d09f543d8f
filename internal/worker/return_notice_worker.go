package worker

// return_notice_worker.go
// Processes return-notice jobs from QueueReturnNotices: emails the original
// transfer requester that their units arrived back at the source location.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/wallblue4/tustockya-backend/internal/infra"
)

const maxNoticeAttempts = 3

// ReturnNoticeJobPayload is the job envelope sent to QueueReturnNotices.
type ReturnNoticeJobPayload struct {
	ToEmail            string `json:"to_email"`
	ReferenceCode      string `json:"reference_code"`
	Size               string `json:"size"`
	Quantity           int    `json:"quantity"`
	ReturnedToLocation string `json:"returned_to_location"`
	ReturnedAt         string `json:"returned_at"`
}

type ReturnNoticeWorker struct {
	mailer *infra.Mailer
	rdb    *redis.Client
}

func NewReturnNoticeWorker(mailer *infra.Mailer, rdb *redis.Client) *ReturnNoticeWorker {
	return &ReturnNoticeWorker{mailer: mailer, rdb: rdb}
}

func (w *ReturnNoticeWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReturnNoticeJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("return_notice_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("return_notice_worker: empty to_email, skipping")
		return
	}

	subject := fmt.Sprintf("Return received: %s (size %s)", payload.ReferenceCode, payload.Size)
	body := fmt.Sprintf(
		"Your transferred units came back.\n\nReference: %s\nSize: %s\nQuantity: %d\nReturned to: %s\nReturned at: %s\n",
		payload.ReferenceCode, payload.Size, payload.Quantity,
		payload.ReturnedToLocation, payload.ReturnedAt)

	sendErr := withRetry(ctx, maxNoticeAttempts, func(attempt int) error {
		if err := w.mailer.Send(payload.ToEmail, subject, body, ""); err != nil {
			log.Warn().Err(err).Int("attempt", attempt+1).Str("to", payload.ToEmail).
				Msg("return_notice_worker: send failed, retrying")
			return err
		}
		return nil
	})
	if sendErr != nil {
		SendToDLQ(ctx, w.rdb, QueueReturnNotices, "return_notice", raw,
			fmt.Sprintf("max retries (%d) exceeded: %s", maxNoticeAttempts, sendErr), maxNoticeAttempts)
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("return_notice_worker: notice sent")
}
