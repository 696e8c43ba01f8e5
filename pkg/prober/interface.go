// Package prober defines the single presence check performed against one
// provider for one identifier.
package prober

import (
	"context"

	"handlescan/pkg/domain"
)

// Prober checks whether an identifier exists on a provider.
//
//go:generate mockgen -package mockprober -source=interface.go -destination=mock/mockprober.go *
type Prober interface {
	// Probe issues one presence check and classifies the answer. A non-nil
	// error means the outcome could not be determined; the returned outcome is
	// then meaningless.
	Probe(ctx context.Context, provider domain.Provider, identifier string) (domain.Outcome, error)
}

// Func adapts a function to the Prober interface.
type Func func(ctx context.Context, provider domain.Provider, identifier string) (domain.Outcome, error)

// Probe calls f(ctx, provider, identifier).
func (f Func) Probe(ctx context.Context, provider domain.Provider, identifier string) (domain.Outcome, error) {
	return f(ctx, provider, identifier)
}
