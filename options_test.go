package main

import (
	"bytes"
	"errors"
	"flag"
	"image/color"
	"testing"

	"github.com/jmigpin/barclock/driver/xdriver"
	"github.com/jmigpin/barclock/util/fontutil"
	"golang.org/x/image/font"
)

func TestParseOptions1(t *testing.T) {
	opt, err := parseOptions(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if opt.DateSize != 64 || opt.ClockSize != 256 || opt.Display != "x11" {
		t.Fatalf("%+v", opt)
	}
	if opt.TzFile != "/etc/localtime" {
		t.Fatal(opt.TzFile)
	}
	if opt.Bg.Color() != (color.RGBA{0, 0, 0, 255}) {
		t.Fatal(opt.Bg.Color())
	}
}

func TestParseOptions2(t *testing.T) {
	args := []string{
		"-fg", "#ff8000",
		"-display", "png",
		"-fontbackend", "freetype",
		"-hinting", "full",
		"-dock", "bottom",
		"-tzfile", "",
	}
	opt, err := parseOptions(args, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if opt.Fg.Color() != (color.RGBA{255, 128, 0, 255}) {
		t.Fatal(opt.Fg.Color())
	}
	if opt.Fg.String() != "#ff8000" {
		t.Fatal(opt.Fg.String())
	}
	fo := opt.faceOptions()
	if fo.Backend != fontutil.BackendFreeType || fo.Hinting != font.HintingFull {
		t.Fatalf("%+v", fo)
	}
	if d, _ := opt.dock(); d != xdriver.DockBottom {
		t.Fatal(d)
	}
	if opt.TzFile != "" {
		t.Fatal(opt.TzFile)
	}
}

func TestParseOptionsErrors(t *testing.T) {
	bad := [][]string{
		{"-display", "wayland"},
		{"-fg", "nocolor"},
		{"-dock", "left"},
		{"-hinting", "max"},
		{"-datesize", "0"},
		{"extra"},
	}
	for _, args := range bad {
		if _, err := parseOptions(args, &bytes.Buffer{}); err == nil {
			t.Fatalf("expecting error: %v", args)
		}
	}
	_, err := parseOptions([]string{"-h"}, &bytes.Buffer{})
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatal(err)
	}
}
