package imageutil

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

var ErrOutOfBounds = errors.New("out of bounds")

// Rectangular window onto a shared image. Sub buffers address a rectangle
// relative to the parent origin and share the parent pixels (no copies).
type Buffer struct {
	img  draw.Image
	rect image.Rectangle // in img coordinates
}

// Buffer covering the whole image.
func NewBuffer(img draw.Image) *Buffer {
	return &Buffer{img: img, rect: img.Bounds()}
}

//----------

// Child view at (x,y) relative to this view's origin with size (w,h). Fails if
// the rectangle is not fully inside this view; it is never clamped.
func (b *Buffer) SubDimensions(x, y, w, h int) (*Buffer, error) {
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("subdimensions: negative size %vx%v: %w", w, h, ErrOutOfBounds)
	}
	r := image.Rect(x, y, x+w, y+h).Add(b.rect.Min)
	if !rectInside(r, b.rect) {
		return nil, fmt.Errorf("subdimensions: %v not in %v: %w", r, b.rect, ErrOutOfBounds)
	}
	return &Buffer{img: b.img, rect: r}, nil
}

// Unlike image.Rectangle.In, an empty r must also be positioned inside s.
func rectInside(r, s image.Rectangle) bool {
	return r.Min.X >= s.Min.X && r.Min.Y >= s.Min.Y &&
		r.Max.X <= s.Max.X && r.Max.Y <= s.Max.Y
}

//----------

func (b *Buffer) Memset(c color.Color) {
	FillRectangle(b.img, b.rect, c)
}

// The view rectangle in the coordinates of the root image.
func (b *Buffer) SignedBounds() image.Rectangle {
	return b.rect
}

func (b *Buffer) Size() image.Point {
	return b.rect.Size()
}

// The shared backing image. Drawing must be clipped to SignedBounds().
func (b *Buffer) Image() draw.Image {
	return b.img
}
