package driver

import (
	"image"
	"testing"

	"github.com/jmigpin/barclock/util/uiutil/event"
)

func TestHeadless(t *testing.T) {
	h := &Headless{Size: image.Pt(10, 5)}
	events := make(chan any, 4)
	done := make(chan struct{})
	go func() {
		h.EventLoop(events)
		close(done)
	}()

	ev := <-events
	ex, ok := ev.(*event.WindowExpose)
	if !ok || ex.Rect != image.Rect(0, 0, 10, 5) {
		t.Fatalf("%#v", ev)
	}

	_ = h.Close()
	_ = h.Close()
	<-done
	if _, ok := (<-events).(*event.WindowClose); !ok {
		t.Fatal("expecting window close")
	}
}
