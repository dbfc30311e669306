package tickutil

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrClockStopped = errors.New("minuteticker: clock timer channel closed")

// Sent on every minute boundary. The receiver should read the live clock
// instead of trusting Time.
type TickEvent struct {
	Time time.Time
}

// Next wall clock minute boundary strictly after t, in t's location. The
// result has no monotonic reading so comparisons against it use the wall clock.
func NextMinute(t time.Time) time.Time {
	u := t.Add(time.Minute)
	// subtract instead of time.Date to stay clear of ambiguous dst hours
	d := time.Duration(u.Second())*time.Second + time.Duration(u.Nanosecond())
	return u.Add(-d).Round(0)
}

//----------

// Emits a TickEvent at (never before) each wall clock minute boundary. The
// target is recomputed from the clock every cycle so delays don't accumulate.
type MinuteTicker struct {
	clock  Clock
	events chan<- any
}

func NewMinuteTicker(clock Clock, events chan<- any) *MinuteTicker {
	if clock == nil {
		clock = Real()
	}
	return &MinuteTicker{clock: clock, events: events}
}

// Runs until ctx is done (returns ctx.Err()) or a cycle fails.
func (mt *MinuteTicker) Run(ctx context.Context) error {
	for {
		now := mt.clock.Now()
		target := NextMinute(now)
		d := target.Sub(now)
		if d <= 0 || d > time.Minute {
			return fmt.Errorf("minuteticker: bad delay %v (now=%v, target=%v)", d, now, target)
		}
		if err := mt.sleepUntil(ctx, target, d); err != nil {
			return err
		}
		select {
		case mt.events <- &TickEvent{Time: target}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (mt *MinuteTicker) sleepUntil(ctx context.Context, target time.Time, d time.Duration) error {
	for {
		select {
		case _, ok := <-mt.clock.After(d):
			if !ok {
				return ErrClockStopped
			}
		case <-ctx.Done():
			return ctx.Err()
		}
		// the wall clock could have been stepped back while sleeping
		d = target.Sub(mt.clock.Now())
		if d <= 0 {
			return nil
		}
	}
}
