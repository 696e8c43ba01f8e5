package worker

import (
	"context"
	"fmt"

	"handlescan/internal/scanner"
	"handlescan/pkg/logger"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// ScanWorker is a River worker that scans one identifier per job through the
// engine, refreshing its cache. The engine's result sink records the result.
type ScanWorker struct {
	river.WorkerDefaults[scanner.JobArgs]

	scanner scanner.Scanner
}

// NewScanWorker constructs a ScanWorker using the provided scanner.
func NewScanWorker(s scanner.Scanner) *ScanWorker {
	return &ScanWorker{scanner: s}
}

// Work scans the job's identifier. Provider failures are part of the result;
// an error is returned only when the scan was interrupted, so River retries it.
func (w *ScanWorker) Work(ctx context.Context, job *river.Job[scanner.JobArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.Int("attempt", job.Attempt),
		zap.String("identifier", job.Args.Identifier))

	res, err := w.scanner.Scan(ctx, job.Args.Identifier, true)
	if err != nil {
		logger.Warn(ctx, "scan job interrupted", zap.Error(err))

		return fmt.Errorf("could not scan identifier: %w", err)
	}

	logger.Debug(ctx, "scan job completed", zap.Int("hits", res.Hits), zap.Int("failed", res.Failed()))

	return nil
}
