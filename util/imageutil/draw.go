package imageutil

import (
	"image"
	"image/color"
	"image/draw"
)

func DrawMask(
	dst draw.Image,
	r image.Rectangle,
	src image.Image, srcp image.Point,
	mask image.Image, maskp image.Point,
	op draw.Op,
) {
	// fast lane for bgra (colors were already corrected)
	if bgra, ok := dst.(*BGRA); ok {
		dst = &bgra.RGBA
	}
	draw.DrawMask(dst, r, src, srcp, mask, maskp, op)
}

//----------

func DrawUniformMask(
	dst draw.Image,
	r image.Rectangle,
	c color.Color,
	mask image.Image, maskp image.Point,
	op draw.Op,
) {
	if c == nil {
		return
	}
	if _, ok := dst.(*BGRA); ok {
		c = BgraColor(c)
	}
	src := image.NewUniform(c)
	DrawMask(dst, r, src, image.Point{}, mask, maskp, op)
}

func DrawUniform(dst draw.Image, r image.Rectangle, c color.Color, op draw.Op) {
	DrawUniformMask(dst, r, c, nil, image.Point{}, op)
}

func FillRectangle(img draw.Image, r image.Rectangle, c color.Color) {
	DrawUniform(img, r, c, draw.Src)
}

//----------

// Union of all rectangles; empty rectangles are ignored.
func UnionRects(rs []image.Rectangle) image.Rectangle {
	var u image.Rectangle
	for _, r := range rs {
		u = u.Union(r)
	}
	return u
}
