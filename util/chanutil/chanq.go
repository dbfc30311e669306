package chanutil

import (
	"container/list"
	"sync"
)

// Unbounded, order preserving channel queue. Sends to In() never block for
// long, regardless of how slow the Out() reader is.
type ChanQ struct {
	q       list.List
	in, out chan any

	stop      chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

func NewChanQ(inSize, outSize int) *ChanQ {
	ch := &ChanQ{}
	ch.in = make(chan any, inSize)
	ch.out = make(chan any, outSize)
	ch.stop = make(chan struct{})
	ch.done = make(chan struct{})
	go ch.loop()
	return ch
}

func (ch *ChanQ) In() chan<- any {
	return ch.in
}

func (ch *ChanQ) Out() <-chan any {
	return ch.out
}

// Stops the queue goroutine. Pending values are dropped; later sends to In()
// are buffered up to inSize and then block.
func (ch *ChanQ) Close() {
	ch.closeOnce.Do(func() {
		close(ch.stop)
		<-ch.done
	})
}

func (ch *ChanQ) loop() {
	defer close(ch.done)
	var next any
	var out chan<- any
	for {
		select {
		case <-ch.stop:
			return
		case v := <-ch.in:
			if out == nil {
				next = v
				out = ch.out
			} else {
				ch.q.PushBack(v)
			}
		case out <- next:
			elem := ch.q.Front()
			if elem == nil {
				next = nil
				out = nil
			} else {
				next = elem.Value
				ch.q.Remove(elem)
			}
		}
	}
}
