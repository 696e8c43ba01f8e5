// Package scanner implements the scan engine: it checks the result cache and
// otherwise fans probes out across the configured providers through a global
// concurrency limiter and a retry wrapper. It also enqueues background scans.
package scanner

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"handlescan/pkg/domain"
	"handlescan/pkg/limiter"
	"handlescan/pkg/logger"
	"handlescan/pkg/metrics"
	"handlescan/pkg/prober"
	"handlescan/pkg/resultcache"
	"handlescan/pkg/retry"
	"handlescan/pkg/serrors"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("handlescan/internal/scanner") //nolint: gochecknoglobals

// Engine scans identifiers across providers. It is constructed once per
// process and is safe for concurrent use.
type Engine struct {
	providers []domain.Provider
	prober    prober.Prober

	// probes bounds in-flight probes across all scans.
	probes *limiter.Limiter
	// scans bounds concurrently probing scans; nil when unlimited.
	scans *limiter.Limiter
	// perScan is the fan-out limit of a single scan.
	perScan int

	cache   *resultcache.Cache
	clock   clockwork.Clock
	retry   retry.Policy
	sleeper retry.Sleeper
	metrics *metrics.Recorder
	sink    ResultSink
}

// Ensure Engine conforms to the Scanner interface at compile time.
var _ Scanner = (*Engine)(nil)

// New creates an engine that probes with p. It returns a CONFIG error when
// options are invalid.
func New(p prober.Prober, options Options) (*Engine, error) {
	if p == nil {
		return nil, serrors.With(serrors.ErrConfig, "prober is required")
	}
	switch {
	case options.MaxConcurrentProbes < 1:
		return nil, serrors.With(serrors.ErrConfig, "max concurrent probes must be >= 1, got %d", options.MaxConcurrentProbes)
	case options.MaxConcurrentProbesPerScan < 0:
		return nil, serrors.With(serrors.ErrConfig,
			"max concurrent probes per scan must not be negative, got %d", options.MaxConcurrentProbesPerScan)
	case options.MaxConcurrentScans < 0:
		return nil, serrors.With(serrors.ErrConfig,
			"max concurrent scans must not be negative, got %d", options.MaxConcurrentScans)
	case options.Retry.Attempts < 1:
		return nil, serrors.With(serrors.ErrConfig, "retry attempts must be >= 1")
	}

	providers := make([]domain.Provider, 0, len(options.Providers))
	for i, pr := range options.Providers {
		if pr.Name == "" || pr.URLTemplate == "" {
			return nil, serrors.With(serrors.ErrConfig, "provider %d needs a name and url template", i)
		}
		if !pr.HasPlaceholder() {
			return nil, serrors.With(serrors.ErrConfig, "provider %q url template has no identifier placeholder", pr.Name)
		}
		if !pr.Disabled {
			providers = append(providers, pr)
		}
	}

	clock := options.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	sleeper := options.Sleeper
	if sleeper == nil {
		sleeper = retry.ClockSleeper(clock)
	}
	maxEntries := options.CacheMaxEntries
	if maxEntries == 0 {
		maxEntries = resultcache.DefaultMaxEntries
	}
	perScan := options.MaxConcurrentProbesPerScan
	if perScan == 0 {
		perScan = options.MaxConcurrentProbes
	}

	cache, err := resultcache.New(options.CacheTTL, maxEntries, clock)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrConfig, err, "invalid cache settings")
	}
	probes, err := limiter.New(options.MaxConcurrentProbes, limiter.WithObserver(options.Metrics.SetInFlight))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrConfig, err, "invalid probe limit")
	}
	var scans *limiter.Limiter
	if options.MaxConcurrentScans > 0 {
		scans, err = limiter.New(options.MaxConcurrentScans)
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrConfig, err, "invalid scan limit")
		}
	}

	return &Engine{
		providers: providers,
		prober:    p,
		probes:    probes,
		scans:     scans,
		perScan:   perScan,
		cache:     cache,
		clock:     clock,
		retry:     options.Retry,
		sleeper:   sleeper,
		metrics:   options.Metrics,
		sink:      options.Sink,
	}, nil
}

// Providers returns the enabled providers in probe order.
func (e *Engine) Providers() []domain.Provider {
	return slices.Clone(e.providers)
}

// Scan returns the presence of identifier across all providers.
//
// With useCache, a result stored less than the cache TTL ago is returned
// without probing, and a fresh result replaces the cache entry. Providers that
// cannot be decided after retries are reported FAILED and never abort the
// scan. An error is returned only when ctx ends first; the partial result,
// with unfinished providers FAILED, is returned alongside it and not cached.
func (e *Engine) Scan(ctx context.Context, identifier string, useCache bool) (domain.ScanResult, error) {
	ctx, span := tracer.Start(ctx, "Engine.Scan", trace.WithAttributes(
		attribute.String("identifier", identifier),
		attribute.Bool("use_cache", useCache),
	))
	defer span.End()
	ctx = logger.WithFields(ctx, zap.String("identifier", identifier))

	if useCache {
		res, ok := e.cache.Get(identifier)
		e.metrics.CacheLookup(ctx, ok)
		if ok {
			logger.Debug(ctx, "serving scan from cache", zap.Time("scannedAt", res.ScannedAt))
			span.SetAttributes(attribute.Bool("cached", true))
			e.metrics.ScanCompleted(ctx, metrics.ScanCached)

			return res, nil
		}
	}

	if e.scans != nil {
		if err := e.scans.Acquire(ctx); err != nil {
			return e.interrupted(ctx, span, identifier, e.failAll(err), err)
		}
		defer e.scans.Release()
	}

	reports := make([]domain.ProviderReport, len(e.providers))
	var cut atomic.Bool
	var g errgroup.Group
	g.SetLimit(e.perScan)
	for i, p := range e.providers {
		g.Go(func() error {
			var stopped bool
			reports[i], stopped = e.probe(ctx, p, identifier)
			if stopped {
				cut.Store(true)
			}

			return nil
		})
	}
	_ = g.Wait()

	// a context that ends after every provider settled leaves the result whole
	if cut.Load() {
		return e.interrupted(ctx, span, identifier, reports, ctx.Err())
	}

	result := domain.NewScanResult(identifier, reports, e.clock.Now())
	if useCache {
		e.cache.Put(identifier, result)
	}
	if e.sink != nil {
		if _, err := e.sink.StoreScans(context.WithoutCancel(ctx), result); err != nil {
			logger.Warn(ctx, "could not store scan result", zap.Error(err))
		}
	}

	e.metrics.ScanCompleted(ctx, metrics.ScanFresh)
	span.SetAttributes(attribute.Int("hits", result.Hits))
	logger.Info(ctx, "scan completed",
		zap.Int("hits", result.Hits),
		zap.Strings("platforms", result.Platforms),
		zap.Int("failed", result.Failed()))

	return result, nil
}

// probe runs the retrying probe of one provider inside a global limiter slot.
// stopped reports whether the provider was left FAILED because ctx ended.
func (e *Engine) probe(ctx context.Context,
	p domain.Provider,
	identifier string) (report domain.ProviderReport, stopped bool) {
	ctx, span := tracer.Start(ctx, "Engine.probe", trace.WithAttributes(attribute.String("provider", p.Name)))
	defer span.End()

	report = domain.ProviderReport{Provider: p.Name}
	start := e.clock.Now()

	if err := e.probes.Acquire(ctx); err != nil {
		report.Outcome = domain.OutcomeFailed
		report.Reason = err.Error()

		return report, true
	}
	defer e.probes.Release()

	outcome, err := retry.Do(ctx, e.sleeper, e.retry, func(ctx context.Context) (domain.Outcome, error) {
		report.Attempts++

		return e.prober.Probe(ctx, p, identifier)
	})
	if err != nil {
		report.Outcome = domain.OutcomeFailed
		report.Reason = err.Error()
		stopped = ctx.Err() != nil
		span.SetStatus(codes.Error, err.Error())
		logger.Warn(ctx, "could not probe provider",
			zap.String("provider", p.Name),
			zap.Int("attempts", report.Attempts),
			zap.Error(err))
	} else {
		report.Outcome = outcome
	}

	span.SetAttributes(attribute.String("outcome", string(report.Outcome)))
	e.metrics.ObserveProbe(ctx, p.Name, report.Outcome, e.clock.Since(start))

	return report, stopped
}

func (e *Engine) failAll(err error) []domain.ProviderReport {
	reports := make([]domain.ProviderReport, len(e.providers))
	for i, p := range e.providers {
		reports[i] = domain.ProviderReport{Provider: p.Name, Outcome: domain.OutcomeFailed, Reason: err.Error()}
	}

	return reports
}

func (e *Engine) interrupted(ctx context.Context,
	span trace.Span,
	identifier string,
	reports []domain.ProviderReport,
	err error) (domain.ScanResult, error) {
	span.SetStatus(codes.Error, err.Error())
	e.metrics.ScanCompleted(ctx, metrics.ScanCanceled)
	logger.Info(ctx, "scan interrupted", zap.Error(err))

	return domain.NewScanResult(identifier, reports, e.clock.Now()), fmt.Errorf("scan interrupted: %w", err)
}
