// Date and time widget, redrawn on minute boundaries.
package clock

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/jmigpin/barclock/module"
	"github.com/jmigpin/barclock/util/fontutil"
	"github.com/jmigpin/barclock/util/imageutil"
	"github.com/jmigpin/barclock/util/tickutil"
)

const Name = "clock"

type Options struct {
	Font     *fontutil.Font // nil uses the default font
	FaceOpt  fontutil.FaceOptions
	DateSize float64 // line height in pixels
	TimeSize float64
	Fg       color.Color

	DateRect image.Rectangle // relative to the draw buffer
	TimeRect image.Rectangle
	// Cell width of each rune in "HH:MM".
	TimeWidths []int

	Clock tickutil.Clock // nil uses the real clock
}

func DefaultOptions() *Options {
	return &Options{
		DateSize:   64,
		TimeSize:   256,
		Fg:         color.White,
		DateRect:   image.Rect(0, 0, 448, 64),
		TimeRect:   image.Rect(0, 64, 288*2+64, 64+256),
		TimeWidths: []int{120, 120, 64, 120, 120},
	}
}

// Size of the buffer needed to draw both lines.
func (opt *Options) Size() image.Point {
	return opt.DateRect.Union(opt.TimeRect).Max
}

//----------

type Clock struct {
	opt *Options

	cur       time.Time // last time reported dirty
	firstDraw bool

	dateCache *fontutil.TextCache
	timeCache *fontutil.TextCache

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Starts a minute ticker that sends *tickutil.TickEvent to events, or a
// *module.FaultEvent if it stops before Close.
func New(events chan<- any, opt *Options) (*Clock, error) {
	if opt == nil {
		opt = DefaultOptions()
	}
	f := opt.Font
	if f == nil {
		f = fontutil.DefaultFont()
	}
	dateFace, err := f.FaceForPixels(opt.DateSize, opt.FaceOpt)
	if err != nil {
		return nil, fmt.Errorf("clock: date face: %w", err)
	}
	timeFace, err := f.FaceForPixels(opt.TimeSize, opt.FaceOpt)
	if err != nil {
		return nil, fmt.Errorf("clock: time face: %w", err)
	}

	clk := opt.Clock
	if clk == nil {
		clk = tickutil.Real()
	}

	c := &Clock{
		opt:       opt,
		cur:       clk.Now(),
		firstDraw: true,
		dateCache: fontutil.NewTextCache(dateFace),
		timeCache: fontutil.NewTextCache(timeFace),
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	mt := tickutil.NewMinuteTicker(clk, events)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		err := mt.Run(ctx)
		if ctx.Err() != nil {
			return // closed
		}
		select {
		case events <- &module.FaultEvent{Name: Name, Err: err}:
		case <-ctx.Done():
		}
	}()

	return c, nil
}

// Stops the minute ticker.
func (c *Clock) Close() error {
	c.cancel()
	c.wg.Wait()
	return nil
}

//----------

func (c *Clock) Update(now time.Time, force bool) bool {
	if force || c.firstDraw || minuteChanged(c.cur, now) {
		c.cur = now
		c.firstDraw = false
		return true
	}
	return false
}

func minuteChanged(t0, t1 time.Time) bool {
	y0, m0, d0 := t0.Date()
	y1, m1, d1 := t1.Date()
	return y0 != y1 || m0 != m1 || d0 != d1 ||
		t0.Hour() != t1.Hour() ||
		t0.Minute() != t1.Minute()
}

//----------

func (c *Clock) Draw(buf *imageutil.Buffer, bg color.Color, now time.Time) ([]image.Rectangle, error) {
	buf.Memset(bg)

	db, err := subBuffer(buf, c.opt.DateRect)
	if err != nil {
		return nil, fmt.Errorf("clock: date: %w", err)
	}
	if err := c.dateCache.DrawText(db, bg, c.opt.Fg, DateString(now)); err != nil {
		return nil, fmt.Errorf("clock: date: %w", err)
	}

	tb, err := subBuffer(buf, c.opt.TimeRect)
	if err != nil {
		return nil, fmt.Errorf("clock: time: %w", err)
	}
	if err := c.timeCache.DrawTextFixedWidth(tb, bg, c.opt.Fg, c.opt.TimeWidths, TimeString(now)); err != nil {
		return nil, fmt.Errorf("clock: time: %w", err)
	}

	return []image.Rectangle{buf.SignedBounds()}, nil
}

func subBuffer(buf *imageutil.Buffer, r image.Rectangle) (*imageutil.Buffer, error) {
	return buf.SubDimensions(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

func (c *Clock) Input(ev any) {}

//----------

// Ex: "Thu, 05/09/2024" (day/month/year).
func DateString(t time.Time) string {
	return fmt.Sprintf("%s, %02d/%02d/%4d", t.Format("Mon"), t.Day(), int(t.Month()), t.Year())
}

// Ex: "09:05".
func TimeString(t time.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
