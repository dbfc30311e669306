package iout

import (
	"io"
	"sync"
)

// Closes registered closers once each, in reverse order of registration.
type MultiClose struct {
	mu      sync.Mutex
	closers []io.Closer
	done    bool
}

func (mc *MultiClose) Add(closer io.Closer) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.closers = append(mc.closers, closer)
}

func (mc *MultiClose) CloseAll() error {
	mc.mu.Lock()
	if mc.done {
		mc.mu.Unlock()
		return nil
	}
	mc.done = true
	w := mc.closers
	mc.closers = nil
	mc.mu.Unlock()

	// run unlocked
	var me MultiError
	for i := len(w) - 1; i >= 0; i-- {
		me.Add(w[i].Close())
	}
	return me.Result()
}
