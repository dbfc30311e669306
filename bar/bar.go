// Host loop: owns the window and a module, serializes every event through one
// queue and paints when the module reports itself dirty.
package bar

import (
	"context"
	"errors"
	"image/color"
	"log"
	"path/filepath"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/jmigpin/barclock/driver"
	"github.com/jmigpin/barclock/module"
	"github.com/jmigpin/barclock/util/chanutil"
	"github.com/jmigpin/barclock/util/fswatcher"
	"github.com/jmigpin/barclock/util/imageutil"
	"github.com/jmigpin/barclock/util/tickutil"
	"github.com/jmigpin/barclock/util/uiutil/event"
)

type Options struct {
	Bg     color.Color
	Clock  tickutil.Clock // nil uses the real clock
	TzFile string         // empty uses time.Local and disables reloads
	Debug  bool           // log unhandled events
}

type Bar struct {
	Win    driver.Window
	Module module.Module

	opt   *Options
	clock tickutil.Clock
	loc   *time.Location
	q     *chanutil.ChanQ

	winLoopDone chan struct{}
}

// Starts the window event loop into the bar queue. The bar owns the window
// from here on. Module must be set before EventLoop is called.
func New(win driver.Window, opt *Options) (*Bar, error) {
	b := &Bar{Win: win, opt: opt}
	if b.opt.Bg == nil {
		b.opt.Bg = color.Black
	}
	b.clock = opt.Clock
	if b.clock == nil {
		b.clock = tickutil.Real()
	}
	b.loc = time.Local
	if opt.TzFile != "" {
		loc, err := LoadLocationFile(opt.TzFile)
		if err != nil {
			return nil, err
		}
		b.loc = loc
	}

	b.q = chanutil.NewChanQ(16, 16)
	b.winLoopDone = make(chan struct{})
	go func() {
		defer close(b.winLoopDone)
		win.EventLoop(b.q.In())
	}()
	return b, nil
}

// Queue for producers (modules, watchers). Never blocks for long.
func (b *Bar) Events() chan<- any {
	return b.q.In()
}

func (b *Bar) Location() *time.Location {
	return b.loc
}

// Closes the window and stops the queue once the window event loop is done
// sending to it. Does not close the module.
func (b *Bar) Close() error {
	err := b.Win.Close()
	<-b.winLoopDone
	b.q.Close()
	return err
}

//----------

var errWindowClosed = errors.New("window closed")

// Runs until the window is closed (returns nil), a module faults (returns
// the *module.FaultEvent) or the context is done.
func (b *Bar) EventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-b.q.Out():
			if err := b.handleEvent(ev); err != nil {
				if errors.Is(err, errWindowClosed) {
					return nil
				}
				return err
			}
		}
	}
}

func (b *Bar) handleEvent(ev any) error {
	switch t := ev.(type) {
	case *module.FaultEvent: // before error, it is one
		return t
	case error:
		log.Printf("bar: %v", t)
	case *tickutil.TickEvent:
		// live clock, the tick payload is only a wake up
		b.paint(false)
	case *event.WindowExpose:
		b.paint(true)
	case *event.WindowInput:
		b.Module.Input(t.Event)
	case *event.WindowClose:
		return errWindowClosed
	case *fswatcher.Event:
		b.onFsEvent(t)
	default:
		if b.opt.Debug {
			log.Printf("bar: unhandled event: %v", spew.Sdump(ev))
		}
	}
	return nil
}

//----------

func (b *Bar) paint(force bool) {
	now := b.clock.Now().In(b.loc)
	if !b.Module.Update(now, force) {
		return
	}
	buf := imageutil.NewBuffer(b.Win.Image())
	rs, err := b.Module.Draw(buf, b.opt.Bg, now)
	if err != nil {
		// frame skipped
		log.Printf("bar: draw: %v", err)
		return
	}
	r := imageutil.UnionRects(rs)
	if r.Empty() {
		return
	}
	if err := b.Win.PutImage(r); err != nil {
		log.Printf("bar: put image: %v", err)
	}
}

//----------

func (b *Bar) onFsEvent(ev *fswatcher.Event) {
	if b.opt.TzFile == "" || ev.Name != filepath.Clean(b.opt.TzFile) {
		return
	}
	if !ev.Op.HasAny(fswatcher.Create | fswatcher.Modify | fswatcher.Rename) {
		return // removed, wait for the new one
	}
	loc, err := LoadLocationFile(b.opt.TzFile)
	if err != nil {
		log.Printf("bar: %v", err)
		return
	}
	b.loc = loc
	b.paint(true)
}
