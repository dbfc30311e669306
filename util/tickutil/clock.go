package tickutil

import (
	"sort"
	"sync"
	"time"
)

// Wall clock source. Production code uses Real(); tests use a FakeClock.
type Clock interface {
	Now() time.Time
	// Receives the clock time once d has elapsed.
	After(d time.Duration) <-chan time.Time
}

func Real() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

//----------

// Manually advanced clock.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	waiters []*fakeWaiter
	added   *sync.Cond
}

type fakeWaiter struct {
	deadline time.Time
	ch       chan time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	fc := &FakeClock{now: now}
	fc.added = sync.NewCond(&fc.mu)
	return fc
}

func (fc *FakeClock) Now() time.Time {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.now
}

func (fc *FakeClock) After(d time.Duration) <-chan time.Time {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- fc.now
		return ch
	}
	fc.waiters = append(fc.waiters, &fakeWaiter{fc.now.Add(d), ch})
	fc.added.Broadcast()
	return ch
}

// Moves the clock and fires expired waiters. A negative d steps the clock
// back (ex: ntp adjustment).
func (fc *FakeClock) Advance(d time.Duration) {
	fc.Set(fc.Now().Add(d))
}

func (fc *FakeClock) Set(t time.Time) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.now = t
	sort.Slice(fc.waiters, func(i, j int) bool {
		return fc.waiters[i].deadline.Before(fc.waiters[j].deadline)
	})
	k := 0
	for _, w := range fc.waiters {
		if !w.deadline.After(t) {
			w.ch <- t
			continue
		}
		fc.waiters[k] = w
		k++
	}
	fc.waiters = fc.waiters[:k]
}

// Fires all pending waiters without moving the clock, as a timer running on a
// monotonic clock would after the wall clock was stepped back.
func (fc *FakeClock) FireAll() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	for _, w := range fc.waiters {
		w.ch <- fc.now
	}
	fc.waiters = nil
}

// Blocks until n waiters are pending; returns the earliest deadline.
func (fc *FakeClock) WaitForWaiters(n int) time.Time {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	for len(fc.waiters) < n {
		fc.added.Wait()
	}
	min := fc.waiters[0].deadline
	for _, w := range fc.waiters[1:] {
		if w.deadline.Before(min) {
			min = w.deadline
		}
	}
	return min
}

//----------

// Broken time source: frozen at T, timers are closed channels that never
// deliver a time.
type StoppedClock struct {
	T time.Time
}

func (c StoppedClock) Now() time.Time { return c.T }
func (c StoppedClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time)
	close(ch)
	return ch
}
