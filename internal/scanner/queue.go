package scanner

import (
	"context"
	"fmt"
	"time"

	"handlescan/internal/config"
	"handlescan/pkg/logger"
	"handlescan/pkg/serrors"
	"handlescan/pkg/storage"

	"go.uber.org/zap"
)

// MaxBatchSize is the largest number of identifiers accepted by one Enqueue call.
const MaxBatchSize = 100

// QueueOptions configure how scan jobs are enqueued.
type QueueOptions struct {
	// MaxAttempts is the maximum number of attempts the background worker should
	// make when processing a scan job before discarding it.
	MaxAttempts int
	// UniquePeriod is the window during which a second job for the same
	// identifier is skipped. It matches the cache TTL so a completed job keeps
	// answering from the cache.
	UniquePeriod time.Duration
}

// NewQueueOptions constructs a QueueOptions value from the provided application config.
func NewQueueOptions(cfg *config.Config) QueueOptions {
	return QueueOptions{
		MaxAttempts:  cfg.Worker.MaxAttempts,
		UniquePeriod: cfg.Scanner.CacheTTL,
	}
}

// queue is the concrete implementation of the Queue interface backed by
// River jobs stored in the database.
type queue struct {
	options QueueOptions
	storage storage.Storage
}

// NewQueue creates a Queue that inserts jobs through the provided storage.
func NewQueue(storage storage.Storage, options QueueOptions) Queue {
	return &queue{
		options: options,
		storage: storage,
	}
}

// Enqueue inserts one job per distinct identifier in a single transaction.
func (q *queue) Enqueue(ctx context.Context, identifiers []string) (int, error) {
	if len(identifiers) == 0 {
		return 0, serrors.With(serrors.ErrBadRequest, "no identifiers given")
	}
	if len(identifiers) > MaxBatchSize {
		return 0, serrors.With(serrors.ErrBadRequest, "at most %d identifiers can be queued at once", MaxBatchSize)
	}

	seen := make(map[string]struct{}, len(identifiers))
	normalized := make([]string, 0, len(identifiers))
	for _, raw := range identifiers {
		id, err := NormalizeIdentifier(raw)
		if err != nil {
			return 0, serrors.Wrap(serrors.ErrBadRequest, err, "invalid identifier")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		normalized = append(normalized, id)
	}

	queued := 0
	if err := q.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		for _, id := range normalized {
			added, err := tx.AddJob(ctx, JobArgs{
				Identifier:      id,
				maxAttempts:     q.options.MaxAttempts,
				uniqueJobPeriod: q.options.UniquePeriod,
			}, nil)
			if err != nil {
				return fmt.Errorf("could not add job for %q: %w", id, err)
			}
			// river unique jobs skip identifiers that already have a job
			if added {
				queued++
			}
		}

		return nil
	}); err != nil {
		return 0, fmt.Errorf("could not enqueue identifiers: %w", err)
	}

	logger.Info(ctx, "scans enqueued",
		zap.Int("requested", len(normalized)),
		zap.Int("queued", queued))

	return queued, nil
}
