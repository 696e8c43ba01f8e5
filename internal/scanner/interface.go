package scanner

import (
	"context"

	"handlescan/pkg/domain"
)

//go:generate mockgen -package mockscanner -source=interface.go -destination=mock/mockscanner.go *

// Scanner scans identifiers across the configured providers.
type Scanner interface {
	Scan(ctx context.Context, identifier string, useCache bool) (domain.ScanResult, error)
	Providers() []domain.Provider
}

// Queue schedules scans to run in the background.
type Queue interface {
	// Enqueue validates the identifiers and queues one scan job per distinct
	// identifier. It returns how many jobs were newly queued; identifiers with a
	// job already queued or recently completed are skipped.
	Enqueue(ctx context.Context, identifiers []string) (int, error)
}
