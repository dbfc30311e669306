package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/jmigpin/barclock/driver/xdriver"
	"github.com/jmigpin/barclock/util/fontutil"
	"github.com/jmigpin/barclock/util/imageutil"
)

type Options struct {
	Font        string
	FontBackend string
	FontHinting string
	DateSize    float64
	ClockSize   float64
	GlyphCache  int
	Fg          ColorOpt
	Bg          ColorOpt

	Display   string // x11, png, term
	Out       string // png filename
	TermScale int
	X, Y      int
	Dock      string

	TzFile  string
	Verbose bool
}

func parseOptions(args []string, stderr io.Writer) (*Options, error) {
	opt := &Options{}
	opt.Fg.c = color.RGBA{255, 255, 255, 255}
	opt.Bg.c = color.RGBA{0, 0, 0, 255}

	fs := flag.NewFlagSet("barclock", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opt.Font, "font", "", "ttf font filename, empty uses the embedded go font")
	fs.StringVar(&opt.FontBackend, "fontbackend", "opentype", "font rasterizer: opentype, freetype")
	fs.StringVar(&opt.FontHinting, "hinting", "none", "font hinting: none, vertical, full")
	fs.Float64Var(&opt.DateSize, "datesize", 64, "date line height in pixels")
	fs.Float64Var(&opt.ClockSize, "clocksize", 256, "time line height in pixels")
	fs.IntVar(&opt.GlyphCache, "glyphcache", fontutil.DefaultGlyphCacheSize, "glyph masks cached per face")
	fs.Var(&opt.Fg, "fg", "foreground color (#rrggbb)")
	fs.Var(&opt.Bg, "bg", "background color (#rrggbb)")
	fs.StringVar(&opt.Display, "display", "x11", "output: x11, png, term")
	fs.StringVar(&opt.Out, "out", "barclock.png", "png output filename (-display=png)")
	fs.IntVar(&opt.TermScale, "termscale", 8, "image pixels per terminal column (-display=term)")
	fs.IntVar(&opt.X, "x", 0, "window x position")
	fs.IntVar(&opt.Y, "y", 0, "window y position")
	fs.StringVar(&opt.Dock, "dock", "none", "dock the window and reserve space: none, top, bottom")
	fs.StringVar(&opt.TzFile, "tzfile", "/etc/localtime", "timezone file to follow, empty uses $TZ once")
	fs.BoolVar(&opt.Verbose, "verbose", false, "print the options and unhandled events")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected args: %v", fs.Args())
	}
	if err := opt.validate(); err != nil {
		return nil, err
	}
	return opt, nil
}

func (opt *Options) validate() error {
	switch opt.Display {
	case "x11", "png", "term":
	default:
		return fmt.Errorf("unknown display: %q", opt.Display)
	}
	if opt.DateSize <= 0 || opt.ClockSize <= 0 {
		return fmt.Errorf("font sizes must be positive")
	}
	if _, err := fontutil.ParseBackend(opt.FontBackend); err != nil {
		return err
	}
	if _, err := fontutil.ParseHinting(opt.FontHinting); err != nil {
		return err
	}
	if _, err := opt.dock(); err != nil {
		return err
	}
	return nil
}

func (opt *Options) faceOptions() fontutil.FaceOptions {
	b, _ := fontutil.ParseBackend(opt.FontBackend)
	h, _ := fontutil.ParseHinting(opt.FontHinting)
	return fontutil.FaceOptions{Backend: b, Hinting: h, GlyphCacheSize: opt.GlyphCache}
}

func (opt *Options) dock() (xdriver.Dock, error) {
	switch strings.ToLower(opt.Dock) {
	case "", "none":
		return xdriver.DockNone, nil
	case "top":
		return xdriver.DockTop, nil
	case "bottom":
		return xdriver.DockBottom, nil
	}
	return 0, fmt.Errorf("unknown dock: %q", opt.Dock)
}

//----------

// implements flag.Value interface
type ColorOpt struct {
	c color.RGBA
}

func (co *ColorOpt) Set(s string) error {
	c, err := imageutil.ParseRgb(s)
	if err != nil {
		return err
	}
	co.c = c
	return nil
}

func (co *ColorOpt) String() string {
	return imageutil.SprintRgb(co.c)
}

func (co *ColorOpt) Color() color.Color {
	return co.c
}
