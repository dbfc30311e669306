package tickutil

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestNextMinute1(t *testing.T) {
	loc := time.FixedZone("x", 3600)
	now := time.Date(2024, 9, 5, 10, 29, 59, 500, loc)
	u := NextMinute(now)
	if !u.Equal(time.Date(2024, 9, 5, 10, 30, 0, 0, loc)) {
		t.Fatal(u)
	}

	// exactly on a boundary waits a full minute
	now = time.Date(2024, 9, 5, 10, 30, 0, 0, loc)
	u = NextMinute(now)
	if u.Sub(now) != time.Minute {
		t.Fatal(u)
	}

	// day/year rollover
	now = time.Date(2024, 12, 31, 23, 59, 1, 0, time.UTC)
	u = NextMinute(now)
	if !u.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal(u)
	}
}

func TestNextMinute2(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10000; i++ {
		now := base.Add(time.Duration(rnd.Int63n(int64(400 * 24 * time.Hour))))
		u := NextMinute(now)
		d := u.Sub(now)
		if d <= 0 || d > time.Minute {
			t.Fatalf("now=%v: delay %v", now, d)
		}
		if u.Second() != 0 || u.Nanosecond() != 0 {
			t.Fatalf("now=%v: %v", now, u)
		}
	}
}

func TestNextMinuteDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip(err)
	}
	// first 01:59:30 before falling back to 01:00 EST
	now := time.Date(2024, 11, 3, 5, 59, 30, 0, time.UTC).In(loc)
	u := NextMinute(now)
	if d := u.Sub(now); d != 30*time.Second {
		t.Fatalf("%v -> %v (%v)", now, u, d)
	}
	if u.Hour() != 1 || u.Minute() != 0 {
		t.Fatal(u)
	}
}

//----------

func TestMinuteTicker1(t *testing.T) {
	start := time.Date(2024, 9, 5, 10, 29, 59, int(500*time.Millisecond), time.UTC)
	fc := NewFakeClock(start)
	events := make(chan any, 4)
	mt := NewMinuteTicker(fc, events)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- mt.Run(ctx) }()

	deadline := fc.WaitForWaiters(1)
	if d := deadline.Sub(start); d != 500*time.Millisecond {
		t.Fatalf("first delay: %v", d)
	}

	// not early
	fc.Advance(400 * time.Millisecond)
	select {
	case ev := <-events:
		t.Fatalf("early tick: %v", ev)
	case <-time.After(20 * time.Millisecond):
	}

	fc.Advance(100 * time.Millisecond)
	ev := receiveTick(t, events)
	want := time.Date(2024, 9, 5, 10, 30, 0, 0, time.UTC)
	if !ev.Time.Equal(want) {
		t.Fatal(ev.Time)
	}

	// next cycle waits a full minute
	deadline = fc.WaitForWaiters(1)
	if d := deadline.Sub(fc.Now()); d != time.Minute {
		t.Fatal(d)
	}
	fc.Advance(time.Minute)
	ev = receiveTick(t, events)
	if ev.Time.Minute() != 31 || ev.Time.Second() != 0 {
		t.Fatal(ev.Time)
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatal(err)
	}
}

func TestMinuteTickerClockBack(t *testing.T) {
	start := time.Date(2024, 9, 5, 10, 29, 50, 0, time.UTC)
	fc := NewFakeClock(start)
	events := make(chan any, 4)
	mt := NewMinuteTicker(fc, events)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mt.Run(ctx)

	fc.WaitForWaiters(1)
	// timer fires, but the wall clock is still 5s short of the boundary
	fc.Set(start.Add(5 * time.Second))
	fc.FireAll()
	select {
	case ev := <-events:
		t.Fatalf("early tick: %v", ev)
	case <-time.After(20 * time.Millisecond):
	}

	deadline := fc.WaitForWaiters(1)
	if d := deadline.Sub(fc.Now()); d != 5*time.Second {
		t.Fatal(d)
	}
	fc.Advance(5 * time.Second)
	ev := receiveTick(t, events)
	if ev.Time.Second() != 0 || ev.Time.Minute() != 30 {
		t.Fatal(ev.Time)
	}
}

func TestMinuteTickerCancelOnSend(t *testing.T) {
	fc := NewFakeClock(time.Date(2024, 9, 5, 10, 29, 59, 0, time.UTC))
	events := make(chan any) // nobody receives
	mt := NewMinuteTicker(fc, events)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- mt.Run(ctx) }()

	fc.WaitForWaiters(1)
	fc.Advance(time.Second)
	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatal(err)
		}
	case <-time.After(time.Second):
		t.Fatal("ticker did not stop")
	}
}

func receiveTick(t *testing.T, events <-chan any) *TickEvent {
	t.Helper()
	select {
	case ev := <-events:
		te, ok := ev.(*TickEvent)
		if !ok {
			t.Fatalf("unexpected event: %#v", ev)
		}
		return te
	case <-time.After(time.Second):
		t.Fatal("tick timeout")
	}
	return nil
}

func TestMinuteTickerClockStopped(t *testing.T) {
	clk := StoppedClock{T: time.Date(2024, 9, 5, 10, 29, 59, 0, time.UTC)}
	events := make(chan any, 1)
	mt := NewMinuteTicker(clk, events)

	errCh := make(chan error, 1)
	go func() { errCh <- mt.Run(context.Background()) }()
	select {
	case err := <-errCh:
		if !errors.Is(err, ErrClockStopped) {
			t.Fatal(err)
		}
	case <-time.After(time.Second):
		t.Fatal("ticker kept waiting on a stopped clock")
	}
	if len(events) != 0 {
		t.Fatal("unexpected tick")
	}
}
