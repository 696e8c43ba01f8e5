package retry

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Sleeper waits between attempts.
type Sleeper interface {
	// Sleep blocks for d or until ctx is done, in which case it returns ctx.Err().
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to the Sleeper interface.
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep calls f(ctx, d).
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error { return f(ctx, d) }

type clockSleeper struct {
	clock clockwork.Clock
}

// ClockSleeper returns a Sleeper driven by the given clock.
func ClockSleeper(clock clockwork.Clock) Sleeper {
	return clockSleeper{clock: clock}
}

func (c clockSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := c.clock.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.Chan():
		return nil
	}
}
