package driver

import (
	"image"
	"sync"

	"github.com/jmigpin/barclock/util/uiutil/event"
)

// Event loop for windows without a display server: one expose to get the
// first frame, then a close when Close() is called.
type Headless struct {
	Size image.Point

	closeOnce sync.Once
	closed    chan struct{}
	initOnce  sync.Once
}

func (h *Headless) init() {
	h.initOnce.Do(func() { h.closed = make(chan struct{}) })
}

func (h *Headless) EventLoop(events chan<- any) {
	h.init()
	events <- &event.WindowExpose{Rect: image.Rectangle{Max: h.Size}}
	<-h.closed
	events <- &event.WindowClose{}
}

func (h *Headless) Close() error {
	h.init()
	h.closeOnce.Do(func() { close(h.closed) })
	return nil
}
