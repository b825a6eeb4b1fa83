package worker

// retry_cron.go
// Background goroutine that periodically drains the receipt DLQ back into its
// work queue, so receipts stuck behind a transient SMTP or filesystem outage
// eventually go out without manual intervention.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	redriveTickInterval = 5 * time.Minute
	redriveBatchSize    = 10
)

// StartRedriveCron launches a background goroutine that ticks every 5m and
// moves up to redriveBatchSize dead recibo jobs back into QueueRecibo with a
// reset attempt counter. Audit jobs are not redriven; a dead audit row is left
// in the DLQ for inspection.
func StartRedriveCron(ctx context.Context, rdb *redis.Client) {
	go func() {
		ticker := time.NewTicker(redriveTickInterval)
		defer ticker.Stop()

		log.Info().Msg("redrive_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("redrive_cron: shutting down")
				return
			case <-ticker.C:
				redrive(ctx, rdb, QueueRecibo)
			}
		}
	}()
}

func redrive(ctx context.Context, rdb *redis.Client, queue string) {
	dlqKey := DLQPrefix + queue
	moved := 0

	for moved < redriveBatchSize {
		raw, err := rdb.RPop(ctx, dlqKey).Result()
		if err != nil {
			if err != redis.Nil {
				log.Error().Err(err).Str("dlq_key", dlqKey).Msg("redrive_cron: pop failed")
			}
			break
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Str("dlq_key", dlqKey).Msg("redrive_cron: malformed DLQ entry, discarding")
			continue
		}

		job := Job{Type: entry.JobType, Payload: entry.Payload, Attempts: 0}
		encoded, err := json.Marshal(job)
		if err != nil {
			continue
		}
		if err := rdb.LPush(ctx, queue, encoded).Err(); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("redrive_cron: re-enqueue failed, putting entry back")
			_ = rdb.RPush(ctx, dlqKey, raw).Err()
			break
		}
		moved++
	}

	if moved > 0 {
		log.Info().Int("moved", moved).Str("queue", queue).Msg("redrive_cron: dead jobs re-enqueued")
	}
}
