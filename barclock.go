// Date and time bar widget.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/jmigpin/barclock/bar"
	"github.com/jmigpin/barclock/driver"
	"github.com/jmigpin/barclock/driver/pngdriver"
	"github.com/jmigpin/barclock/driver/termdriver"
	"github.com/jmigpin/barclock/driver/xdriver"
	"github.com/jmigpin/barclock/module/clock"
	"github.com/jmigpin/barclock/util/fontutil"
	"github.com/jmigpin/barclock/util/fswatcher"
	"github.com/jmigpin/barclock/util/iout"
)

func main() {
	log.SetFlags(log.Lshortfile)
	opt, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(opt); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opt *Options) (err error) {
	if opt.Verbose {
		spew.Fdump(os.Stderr, opt)
	}

	font, err := fontutil.FontsMan.FontFile(opt.Font)
	if err != nil {
		return err
	}
	copt := clock.DefaultOptions()
	copt.Font = font
	copt.FaceOpt = opt.faceOptions()
	copt.DateSize = opt.DateSize
	copt.TimeSize = opt.ClockSize
	copt.Fg = opt.Fg.Color()

	// closed in reverse order
	mc := &iout.MultiClose{}
	defer func() {
		err = iout.MultiErrors(err, mc.CloseAll())
	}()

	win, err := newWindow(opt, copt.Size())
	if err != nil {
		return err
	}
	b, err := bar.New(win, &bar.Options{
		Bg:     opt.Bg.Color(),
		TzFile: opt.TzFile,
		Debug:  opt.Verbose,
	})
	if err != nil {
		_ = win.Close()
		return err
	}
	mc.Add(b) // closes the window

	if opt.TzFile != "" {
		w, err := fswatcher.NewFsnWatcher(b.Events(), fswatcher.AllOps)
		if err != nil {
			return err
		}
		mc.Add(w)
		if err := w.AddFile(opt.TzFile); err != nil {
			return err
		}
	}

	c, err := clock.New(b.Events(), copt)
	if err != nil {
		return err
	}
	mc.Add(c)
	b.Module = c

	ctx, cancel := catchSignals(context.Background())
	defer cancel()
	err = b.EventLoop(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newWindow(opt *Options, size image.Point) (driver.Window, error) {
	switch opt.Display {
	case "png":
		return pngdriver.NewWindow(opt.Out, size), nil
	case "term":
		return termdriver.NewWindow(os.Stdout, size, opt.TermScale, true), nil
	default:
		dock, err := opt.dock()
		if err != nil {
			return nil, err
		}
		return xdriver.NewWindow(&xdriver.Options{
			Name: "barclock",
			Pos:  image.Pt(opt.X, opt.Y),
			Size: size,
			Dock: dock,
		})
	}
}

// Cancels the context on the first terminating signal.
func catchSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx,
		os.Interrupt, // syscall.SIGINT, ctrl+c
		syscall.SIGHUP,
		syscall.SIGTERM,
		syscall.SIGQUIT)
}
