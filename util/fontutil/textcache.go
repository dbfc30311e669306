package fontutil

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"unicode/utf8"

	"github.com/jmigpin/barclock/util/imageutil"
	"golang.org/x/image/math/fixed"
)

var ErrWidthsTooShort = errors.New("widths table shorter than text")

// Single line text rasterizer bound to one face. Glyphs are rasterized once
// and reused on every draw.
type TextCache struct {
	ff *FontFace
}

func NewTextCache(ff *FontFace) *TextCache {
	return &TextCache{ff: ff}
}

func (tc *TextCache) FontFace() *FontFace {
	return tc.ff
}

//----------

// Clears buf with bg and draws str left aligned with the natural glyph advances.
func (tc *TextCache) DrawText(buf *imageutil.Buffer, bg, fg color.Color, str string) error {
	buf.Memset(bg)

	face := tc.ff.Face
	pen := tc.origin(buf)
	prev := rune(-1)
	for _, ru := range str {
		if prev >= 0 {
			pen.X += face.Kern(prev, ru)
		}
		adv := tc.drawRune(buf, pen, ru, fg)
		pen.X += adv
		prev = ru
	}
	return nil
}

// Clears buf with bg and draws each rune of str centered in a cell of the
// corresponding width. Keeps columns still when glyph advances differ.
func (tc *TextCache) DrawTextFixedWidth(buf *imageutil.Buffer, bg, fg color.Color, widths []int, str string) error {
	if n := utf8.RuneCountInString(str); len(widths) < n {
		return fmt.Errorf("fixed width: %v<%v: %w", len(widths), n, ErrWidthsTooShort)
	}

	buf.Memset(bg)

	face := tc.ff.Face
	pen := tc.origin(buf)
	cellX := pen.X
	i := 0
	for _, ru := range str {
		w := fixed.I(widths[i])
		i++
		adv, ok := face.GlyphAdvance(ru)
		if ok {
			pen.X = cellX + (w-adv)/2
			_ = tc.drawRune(buf, pen, ru, fg)
		}
		cellX += w
	}
	return nil
}

// Natural size of str (advances and kerning by line height).
func (tc *TextCache) Measure(str string) image.Point {
	face := tc.ff.Face
	x := fixed.Int26_6(0)
	prev := rune(-1)
	for _, ru := range str {
		if prev >= 0 {
			x += face.Kern(prev, ru)
		}
		adv, _ := face.GlyphAdvance(ru)
		x += adv
		prev = ru
	}
	return image.Point{x.Ceil(), tc.ff.LineHeightInt()}
}

//----------

func (tc *TextCache) origin(buf *imageutil.Buffer) fixed.Point26_6 {
	min := buf.SignedBounds().Min
	return fixed.Point26_6{
		X: fixed.I(min.X),
		Y: fixed.I(min.Y) + tc.ff.BaseLine().Y,
	}
}

func (tc *TextCache) drawRune(buf *imageutil.Buffer, pen fixed.Point26_6, ru rune, fg color.Color) fixed.Int26_6 {
	gr, mask, maskp, adv, ok := tc.ff.Face.Glyph(pen, ru)
	if !ok {
		return adv
	}

	// clip
	b := buf.SignedBounds()
	if gr.Min.X < b.Min.X {
		maskp.X += b.Min.X - gr.Min.X
	}
	if gr.Min.Y < b.Min.Y {
		maskp.Y += b.Min.Y - gr.Min.Y
	}
	gr = gr.Intersect(b)
	if gr.Empty() {
		return adv
	}

	imageutil.DrawUniformMask(buf.Image(), gr, fg, mask, maskp, draw.Over)
	return adv
}
