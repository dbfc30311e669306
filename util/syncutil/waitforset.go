package syncutil

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrTimeout = errors.New("waitforset: timeout")

// Reusable one value rendezvous between a waiter and an async setter.
// Usage:
//
//	w := NewWaitForSet()
//	w.Start(time.Second)
//	// request that leads to an async w.Set(v)
//	v, err := w.WaitForSet()
type WaitForSet struct {
	mu    sync.Mutex
	cond  *sync.Cond // signaled by Set() or the timer
	timer *time.Timer
	fired bool // timer expired

	gotV bool
	v    any
}

func NewWaitForSet() *WaitForSet {
	w := &WaitForSet{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

//----------

func (w *WaitForSet) Start(timeout time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		panic("waitforset: already started")
	}
	w.fired = false
	w.timer = time.AfterFunc(timeout, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.fired = true
		w.cond.Broadcast()
	})
}

func (w *WaitForSet) WaitForSet() (any, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer == nil {
		panic("waitforset: not started")
	}
	defer w.clear()
	for !w.gotV && !w.fired {
		w.cond.Wait()
	}
	if w.gotV {
		return w.v, nil
	}
	return nil, ErrTimeout
}

// In case WaitForSet() is not going to be called.
func (w *WaitForSet) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clear()
}

func (w *WaitForSet) clear() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.gotV = false
	w.v = nil
}

//----------

// Fails if not started.
func (w *WaitForSet) Set(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer == nil {
		return fmt.Errorf("waitforset: not waiting for set")
	}
	w.gotV = true
	w.v = v
	w.cond.Broadcast()
	return nil
}
