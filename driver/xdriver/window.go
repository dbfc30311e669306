package xdriver

import (
	"image"
	"image/draw"
	"log"
	"os"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/shm"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/jmigpin/barclock/driver/xdriver/wimage"
	"github.com/jmigpin/barclock/driver/xdriver/wmprotocols"
	"github.com/jmigpin/barclock/driver/xdriver/xinput"
	"github.com/jmigpin/barclock/util/uiutil/event"
	"github.com/pkg/errors"
)

type Dock int

const (
	DockNone Dock = iota
	DockTop
	DockBottom
)

type Options struct {
	Name string
	Pos  image.Point
	Size image.Point
	Dock Dock // overrides Pos.Y, reserves screen space
}

type Window struct {
	Conn   *xgb.Conn
	Window xproto.Window
	Screen *xproto.ScreenInfo
	GCtx   xproto.Gcontext

	XU   *xgbutil.XUtil
	Wmp  *wmprotocols.WMP
	WImg wimage.WImage

	opt       *Options
	closeOnce sync.Once
}

func NewWindow(opt *Options) (*Window, error) {
	conn, err := xgb.NewConnDisplay(os.Getenv("DISPLAY"))
	if err != nil {
		return nil, errors.Wrap(err, "x conn")
	}
	win := &Window{Conn: conn, opt: opt}
	if err := win.initialize(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "win init")
	}
	return win, nil
}

func (win *Window) initialize() error {
	// early, before any concurrent use of the connection
	wimage.Init(win.Conn)

	si := xproto.Setup(win.Conn)
	win.Screen = si.DefaultScreen(win.Conn)

	window, err := xproto.NewWindowId(win.Conn)
	if err != nil {
		return err
	}
	win.Window = window

	pos := win.position()
	var evMask uint32 = 0 |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskExposure |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskEnterWindow |
		xproto.EventMaskLeaveWindow |
		0
	// mask/values order is defined by the protocol
	mask := uint32(xproto.CwBackPixel | xproto.CwEventMask)
	values := []uint32{win.Screen.BlackPixel, evMask}
	c1 := xproto.CreateWindowChecked(
		win.Conn,
		win.Screen.RootDepth,
		win.Window,
		win.Screen.Root,
		int16(pos.X), int16(pos.Y),
		uint16(win.opt.Size.X), uint16(win.opt.Size.Y),
		0, // border width
		xproto.WindowClassInputOutput,
		win.Screen.RootVisual,
		mask, values)
	if err := c1.Check(); err != nil {
		return errors.Wrap(err, "create window")
	}

	gCtx, err := xproto.NewGcontextId(win.Conn)
	if err != nil {
		return err
	}
	win.GCtx = gCtx
	c2 := xproto.CreateGCChecked(win.Conn, win.GCtx, xproto.Drawable(win.Window), 0, nil)
	if err := c2.Check(); err != nil {
		return errors.Wrap(err, "create gc")
	}

	wmp, err := wmprotocols.NewWMP(win.Conn, win.Window)
	if err != nil {
		return errors.Wrap(err, "wm protocols")
	}
	win.Wmp = wmp

	if err := win.setupEwmh(pos); err != nil {
		return errors.Wrap(err, "ewmh")
	}

	wopt := &wimage.Options{
		Conn:       win.Conn,
		Window:     win.Window,
		ScreenInfo: win.Screen,
		GCtx:       win.GCtx,
		Size:       win.opt.Size,
	}
	img, err := wimage.NewWImage(wopt)
	if err != nil {
		return errors.Wrap(err, "wimage")
	}
	win.WImg = img

	// map after the hints are set so the window manager sees them
	_ = xproto.MapWindow(win.Conn, win.Window)
	// position again, some window managers ignore the create position
	_ = xproto.ConfigureWindow(win.Conn, win.Window,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(pos.X), uint32(pos.Y)})
	return nil
}

func (win *Window) position() image.Point {
	p := win.opt.Pos
	switch win.opt.Dock {
	case DockTop:
		p.Y = 0
	case DockBottom:
		p.Y = int(win.Screen.HeightInPixels) - win.opt.Size.Y
	}
	return p
}

func (win *Window) setupEwmh(pos image.Point) error {
	xu, err := xgbutil.NewConnXgb(win.Conn)
	if err != nil {
		return err
	}
	win.XU = xu

	if err := ewmh.WmNameSet(xu, win.Window, win.opt.Name); err != nil {
		return err
	}
	if win.opt.Dock == DockNone {
		return nil
	}

	if err := ewmh.WmWindowTypeSet(xu, win.Window, []string{"_NET_WM_WINDOW_TYPE_DOCK"}); err != nil {
		return err
	}
	// all desktops
	if err := ewmh.WmDesktopSet(xu, win.Window, 0xFFFFFFFF); err != nil {
		return err
	}
	strut := &ewmh.WmStrutPartial{}
	x0, x1 := uint(pos.X), uint(pos.X+win.opt.Size.X-1)
	h := uint(win.opt.Size.Y)
	switch win.opt.Dock {
	case DockTop:
		strut.Top, strut.TopStartX, strut.TopEndX = h, x0, x1
	case DockBottom:
		strut.Bottom, strut.BottomStartX, strut.BottomEndX = h, x0, x1
	}
	return ewmh.WmStrutPartialSet(xu, win.Window, strut)
}

//----------

func (win *Window) Close() error {
	win.closeOnce.Do(func() {
		if win.WImg != nil {
			if err := win.WImg.Close(); err != nil {
				log.Printf("xdriver: close: %v", err)
			}
		}
		win.Conn.Close()
	})
	return nil
}

//----------

func (win *Window) EventLoop(events chan<- any) {
	for {
		if quit := win.handleEvent(events); quit {
			return
		}
	}
}

func (win *Window) handleEvent(events chan<- any) (quit bool) {
	ev, xerr := win.Conn.WaitForEvent()
	if ev == nil && xerr == nil {
		// connection closed
		events <- &event.WindowClose{}
		return true
	}
	if xerr != nil {
		events <- error(xerr)
	}
	if ev == nil {
		return false
	}
	switch t := ev.(type) {
	case xproto.ExposeEvent: // region needs paint
		// only report on the last of a series
		if t.Count == 0 {
			r := image.Rect(0, 0, win.opt.Size.X, win.opt.Size.Y)
			events <- &event.WindowExpose{Rect: r}
		}
	case shm.CompletionEvent:
		win.WImg.PutImageCompleted()

	case xproto.ButtonPressEvent:
		events <- xinput.ButtonPress(&t)
	case xproto.ButtonReleaseEvent:
		events <- xinput.ButtonRelease(&t)
	case xproto.EnterNotifyEvent:
		events <- xinput.EnterNotify(&t)
	case xproto.LeaveNotifyEvent:
		events <- xinput.LeaveNotify(&t)

	case xproto.ClientMessageEvent:
		if win.Wmp.IsDeleteWindow(&t) {
			events <- &event.WindowClose{}
			return true
		}

	case xproto.MapNotifyEvent, xproto.UnmapNotifyEvent,
		xproto.ConfigureNotifyEvent, xproto.ReparentNotifyEvent:
		// ignored, fixed size window
	default:
		log.Printf("xdriver: unhandled event: %#v", ev)
	}
	return false
}

//----------

func (win *Window) Image() draw.Image {
	return win.WImg.Image()
}

func (win *Window) PutImage(r image.Rectangle) error {
	return win.WImg.PutImage(r)
}
