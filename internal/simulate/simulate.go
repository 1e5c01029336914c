package simulate

import (
	"context"
	"time"
)

// Wait suspends for the configured artificial latency, honoring context
// cancellation only while suspended. A zero or negative duration returns
// immediately with the context's current error state.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
