package scanner

import (
	"context"
	"time"

	"handlescan/internal/config"
	"handlescan/pkg/domain"
	"handlescan/pkg/metrics"
	"handlescan/pkg/resultcache"
	"handlescan/pkg/retry"

	"github.com/jonboulle/clockwork"
)

// ResultSink receives every freshly computed scan result, typically to
// persist it. storage.Storage satisfies it.
type ResultSink interface {
	StoreScans(ctx context.Context, results ...domain.ScanResult) ([]domain.ScanRecord, error)
}

// Options configure the scan engine. They are typically derived from
// application configuration with NewOptions and completed with runtime
// dependencies.
type Options struct {
	// Providers are probed in this order. Disabled providers are skipped.
	Providers []domain.Provider
	// MaxConcurrentProbes bounds in-flight probes across all scans.
	MaxConcurrentProbes int
	// MaxConcurrentProbesPerScan bounds the fan-out of a single scan. Zero
	// means MaxConcurrentProbes.
	MaxConcurrentProbesPerScan int
	// MaxConcurrentScans bounds how many scans probe at once. Zero means unlimited.
	MaxConcurrentScans int
	// CacheTTL is how long a result is served from the cache.
	CacheTTL time.Duration
	// CacheMaxEntries bounds the cache size. Zero means resultcache.DefaultMaxEntries.
	CacheMaxEntries int
	// Retry configures attempts and backoff per probe.
	Retry retry.Policy

	// Clock drives cache expiry and backoff delays. Defaults to the real clock.
	Clock clockwork.Clock
	// Sleeper overrides how backoff delays are spent. Defaults to a sleeper on Clock.
	Sleeper retry.Sleeper
	// Metrics records engine measurements. Optional.
	Metrics *metrics.Recorder
	// Sink receives fresh results. Optional.
	Sink ResultSink
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Providers:                  cfg.Scanner.Providers,
		MaxConcurrentProbes:        cfg.Scanner.MaxConcurrentProbes,
		MaxConcurrentProbesPerScan: cfg.Scanner.MaxConcurrentProbesPerScan,
		MaxConcurrentScans:         cfg.Scanner.MaxConcurrentScans,
		CacheTTL:                   cfg.Scanner.CacheTTL,
		CacheMaxEntries:            cfg.Scanner.CacheMaxEntries,
		Retry: retry.Policy{
			Attempts:     cfg.Scanner.RetryAttempts,
			InitialDelay: cfg.Scanner.RetryInitialDelay,
		},
	}
}
