// Package retry repeats fallible operations with exponential backoff.
//
// The combinator is generic over the operation's result and knows nothing
// about HTTP. Delays are produced by a go-retry backoff and spent through a
// Sleeper, so tests can observe them without sleeping.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

const (
	// DefaultAttempts is the default total attempt budget, including the first attempt.
	DefaultAttempts = 3
	// DefaultInitialDelay is the delay before the second attempt; it doubles afterwards.
	DefaultInitialDelay = 200 * time.Millisecond
)

// Policy configures the attempt budget and the backoff schedule.
type Policy struct {
	// Attempts is the total number of attempts. Values below 1 are treated as 1.
	Attempts uint64
	// InitialDelay is the first inter-attempt delay. Each later delay doubles it.
	InitialDelay time.Duration
}

// DefaultPolicy returns 3 attempts with 200ms and 400ms delays, no jitter.
func DefaultPolicy() Policy {
	return Policy{Attempts: DefaultAttempts, InitialDelay: DefaultInitialDelay}
}

func (p Policy) backoff() goretry.Backoff {
	retries := uint64(0)
	if p.Attempts > 1 {
		retries = p.Attempts - 1
	}
	delay := p.InitialDelay
	if delay <= 0 {
		delay = time.Nanosecond
	}

	return goretry.WithMaxRetries(retries, goretry.NewExponential(delay))
}

// permanentError marks an error that must not be retried.
type permanentError struct{ err error }

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent wraps err so Do returns it immediately without further attempts.
// Do unwraps it before returning. A nil err stays nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}

	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError

	return errors.As(err, &p)
}

// Do runs op until it succeeds, returns a permanent error, or the attempt
// budget is spent. The last error is returned as is. If ctx ends while waiting
// between attempts, the returned error wraps both ctx.Err() and the last error.
func Do[T any](ctx context.Context, sleeper Sleeper, policy Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	b := policy.backoff()

	for {
		v, err := op(ctx)
		if err == nil {
			return v, nil
		}

		var p *permanentError
		if errors.As(err, &p) {
			return zero, p.err
		}

		delay, stop := b.Next()
		if stop {
			return zero, err
		}

		if serr := sleeper.Sleep(ctx, delay); serr != nil {
			return zero, fmt.Errorf("retry aborted: %w (last error: %w)", serr, err)
		}
	}
}
