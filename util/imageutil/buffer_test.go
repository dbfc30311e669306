package imageutil

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestBufferSubDimensions1(t *testing.T) {
	img := NewBGRA(image.Rect(0, 0, 448, 320))
	b := NewBuffer(img)

	sb, err := b.SubDimensions(0, 0, 448, 64)
	if err != nil {
		t.Fatal(err)
	}
	if sb.SignedBounds() != image.Rect(0, 0, 448, 64) {
		t.Fatal(sb.SignedBounds())
	}

	sb2, err := b.SubDimensions(0, 0, 449, 64)
	if err == nil || sb2 != nil {
		t.Fatalf("expecting error: %v", sb2)
	}
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatal(err)
	}
}

func TestBufferSubDimensions2(t *testing.T) {
	b := NewBuffer(image.NewRGBA(image.Rect(0, 0, 100, 100)))
	bad := []image.Rectangle{
		image.Rect(-1, 0, 10, 10),
		image.Rect(0, -1, 10, 10),
		image.Rect(95, 0, 101, 10),
		image.Rect(0, 95, 10, 101),
		image.Rect(200, 200, 200, 200), // empty, but outside
	}
	for _, r := range bad {
		_, err := b.SubDimensions(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
		if !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("%v: expecting out of bounds, got %v", r, err)
		}
	}
	if _, err := b.SubDimensions(10, 10, -5, 5); !errors.Is(err, ErrOutOfBounds) {
		t.Fatal(err)
	}
	if _, err := b.SubDimensions(100, 100, 0, 0); err != nil {
		t.Fatal(err)
	}
}

func TestBufferNested(t *testing.T) {
	b := NewBuffer(image.NewRGBA(image.Rect(0, 0, 100, 100)))
	b1, err := b.SubDimensions(10, 20, 50, 50)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := b1.SubDimensions(5, 5, 45, 45)
	if err != nil {
		t.Fatal(err)
	}
	if b2.SignedBounds() != image.Rect(15, 25, 60, 70) {
		t.Fatal(b2.SignedBounds())
	}
	// fits the root, but not the parent view
	if _, err := b1.SubDimensions(5, 5, 46, 10); err == nil {
		t.Fatal("expecting error")
	}
}

func TestBufferMemset(t *testing.T) {
	img := NewBGRA(image.Rect(0, 0, 20, 20))
	b := NewBuffer(img)
	b.Memset(color.RGBA{0, 0, 255, 255})

	sb, err := b.SubDimensions(5, 5, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	red := color.RGBA{255, 0, 0, 255}
	sb.Memset(red)

	// shares storage with the parent
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			c := img.At(x, y)
			inside := image.Pt(x, y).In(image.Rect(5, 5, 10, 10))
			if inside && c != red {
				t.Fatalf("%v,%v: %v", x, y, c)
			}
			if !inside && c != (color.RGBA{0, 0, 255, 255}) {
				t.Fatalf("%v,%v: %v", x, y, c)
			}
		}
	}

	// bgra byte order
	i := img.PixOffset(5, 5)
	if img.Pix[i] != 0 || img.Pix[i+2] != 255 {
		t.Fatal(img.Pix[i : i+4])
	}
}

func TestParseRgb(t *testing.T) {
	c, err := ParseRgb("#ff8000")
	if err != nil {
		t.Fatal(err)
	}
	if c != (color.RGBA{255, 128, 0, 255}) {
		t.Fatal(c)
	}
	if SprintRgb(c) != "#ff8000" {
		t.Fatal(SprintRgb(c))
	}
	if _, err := ParseRgb("fff"); err == nil {
		t.Fatal("expecting error")
	}
}

func TestUnionRects(t *testing.T) {
	u := UnionRects([]image.Rectangle{
		image.Rect(0, 0, 10, 10),
		{},
		image.Rect(20, 5, 30, 15),
	})
	if u != image.Rect(0, 0, 30, 15) {
		t.Fatal(u)
	}
}
