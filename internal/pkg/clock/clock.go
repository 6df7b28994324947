// Package clock provides the real-time implementation of the Clock port.
package clock

import (
	"context"
	"time"
)

// Clock reads the wall clock and sleeps cooperatively.
type Clock struct{}

// New creates a Clock.
func New() Clock {
	return Clock{}
}

// Now returns the current wall-clock time.
func (Clock) Now() time.Time {
	return time.Now()
}

// Sleep waits for d unless ctx ends first. The wait is a timer select, not a
// busy spin, so the caller stays responsive to cancellation.
func (Clock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
