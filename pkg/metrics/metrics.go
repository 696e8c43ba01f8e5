// Package metrics holds the scanner's OpenTelemetry instruments and the
// meter provider that exports them to Prometheus.
package metrics

import (
	"context"
	"fmt"
	"time"

	"handlescan/pkg/domain"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

const meterName = "handlescan"

// Scan statuses recorded by ScanCompleted.
const (
	ScanFresh    = "fresh"
	ScanCached   = "cached"
	ScanCanceled = "canceled"
)

// NewMeterProvider creates a meter provider whose instruments are exported
// through the given Prometheus registerer.
func NewMeterProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}

// Recorder records scan engine measurements. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	probes        metric.Int64Counter
	probeDuration metric.Float64Histogram
	cacheLookups  metric.Int64Counter
	inFlight      metric.Int64Gauge
	scans         metric.Int64Counter
}

// New creates the scan engine instruments on the given meter provider.
func New(mp metric.MeterProvider) (*Recorder, error) {
	m := mp.Meter(meterName)

	probes, err := m.Int64Counter("handlescan.probes",
		metric.WithDescription("Completed provider probes by final outcome."))
	if err != nil {
		return nil, fmt.Errorf("could not create probes counter: %w", err)
	}
	probeDuration, err := m.Float64Histogram("handlescan.probe.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Time spent probing one provider, retries included."),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create probe duration histogram: %w", err)
	}
	cacheLookups, err := m.Int64Counter("handlescan.cache.lookups",
		metric.WithDescription("Result cache lookups by result."))
	if err != nil {
		return nil, fmt.Errorf("could not create cache counter: %w", err)
	}
	inFlight, err := m.Int64Gauge("handlescan.probes.inflight",
		metric.WithDescription("Probes currently holding a concurrency slot."))
	if err != nil {
		return nil, fmt.Errorf("could not create in-flight gauge: %w", err)
	}
	scans, err := m.Int64Counter("handlescan.scans",
		metric.WithDescription("Scans served by status."))
	if err != nil {
		return nil, fmt.Errorf("could not create scans counter: %w", err)
	}

	return &Recorder{
		probes:        probes,
		probeDuration: probeDuration,
		cacheLookups:  cacheLookups,
		inFlight:      inFlight,
		scans:         scans,
	}, nil
}

// ObserveProbe records one settled probe.
func (r *Recorder) ObserveProbe(ctx context.Context, provider string, outcome domain.Outcome, d time.Duration) {
	if r == nil {
		return
	}
	r.probes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", string(outcome)),
	))
	r.probeDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("provider", provider)))
}

// CacheLookup records a cache hit or miss.
func (r *Recorder) CacheLookup(ctx context.Context, hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// SetInFlight records the current number of in-flight probes.
func (r *Recorder) SetInFlight(n int) {
	if r == nil {
		return
	}
	r.inFlight.Record(context.Background(), int64(n))
}

// ScanCompleted records a finished scan with one of ScanFresh, ScanCached or ScanCanceled.
func (r *Recorder) ScanCompleted(ctx context.Context, status string) {
	if r == nil {
		return
	}
	r.scans.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}
