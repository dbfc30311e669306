// Writes each presented frame to a png file. Useful without a display server.
package pngdriver

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/jmigpin/barclock/driver"
)

type Window struct {
	driver.Headless
	filename string
	img      *image.RGBA
}

func NewWindow(filename string, size image.Point) *Window {
	win := &Window{filename: filename}
	win.Size = size
	win.img = image.NewRGBA(image.Rectangle{Max: size})
	return win
}

func (win *Window) Image() draw.Image {
	return win.img
}

// Rewrites the whole file, the rectangle is ignored. Readers never see a
// partial file.
func (win *Window) PutImage(image.Rectangle) error {
	dir := filepath.Dir(win.filename)
	f, err := os.CreateTemp(dir, ".barclock-*.png")
	if err != nil {
		return fmt.Errorf("pngdriver: %w", err)
	}
	tmp := f.Name()
	if err := png.Encode(f, win.img); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("pngdriver: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("pngdriver: %w", err)
	}
	if err := os.Rename(tmp, win.filename); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("pngdriver: %w", err)
	}
	return nil
}
