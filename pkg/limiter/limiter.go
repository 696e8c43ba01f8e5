// Package limiter provides a counting admission gate bounding how many
// operations may be in flight at once.
package limiter

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Limiter admits at most Capacity holders at a time. Acquire blocks until a
// slot frees or the context ends. It is safe for concurrent use.
type Limiter struct {
	sem      *semaphore.Weighted
	capacity int

	// mu guards inFlight and peak.
	mu       sync.Mutex
	inFlight int
	peak     int
	// onChange, when set, is called with the in-flight count after every change.
	onChange func(inFlight int)
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithObserver registers fn to be called with the in-flight count after every
// acquire and release. fn must not call back into the limiter.
func WithObserver(fn func(inFlight int)) Option {
	return func(l *Limiter) {
		l.onChange = fn
	}
}

// New creates a limiter with the given capacity, which must be at least 1.
func New(capacity int, opts ...Option) (*Limiter, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("limiter capacity must be >= 1, got %d", capacity)
	}

	l := &Limiter{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: capacity,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// Acquire takes one slot, blocking until one is available. It returns
// ctx.Err() without taking a slot if ctx ends first.
func (l *Limiter) Acquire(ctx context.Context) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire slot: %w", err)
	}
	l.track(1)

	return nil
}

// Release returns a slot taken by Acquire.
func (l *Limiter) Release() {
	l.track(-1)
	l.sem.Release(1)
}

func (l *Limiter) track(delta int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.inFlight += delta
	if l.inFlight > l.peak {
		l.peak = l.inFlight
	}
	if l.onChange != nil {
		l.onChange(l.inFlight)
	}
}

// Capacity returns the maximum number of concurrent holders.
func (l *Limiter) Capacity() int { return l.capacity }

// InFlight returns the number of slots currently held.
func (l *Limiter) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.inFlight
}

// Peak returns the highest in-flight count observed since creation.
func (l *Limiter) Peak() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.peak
}
