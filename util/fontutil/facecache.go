package fontutil

import (
	"image"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const DefaultGlyphCacheSize = 256

// Caches glyph masks (bounded, lru) and advances/kerning (unbounded, small)
// of a face. Safe for a single goroutine only: the underlying face is not.
type FaceCache struct {
	font.Face
	gc  *lru.Cache[rune, *GlyphCache]
	gac map[rune]*GlyphAdvanceCache
	kc  map[[2]rune]fixed.Int26_6

	misses int
}

func NewFaceCache(face font.Face, glyphs int) *FaceCache {
	if glyphs <= 0 {
		glyphs = DefaultGlyphCacheSize
	}
	gc, err := lru.New[rune, *GlyphCache](glyphs)
	if err != nil { // only fails on size<=0
		panic(err)
	}
	fc := &FaceCache{Face: face, gc: gc}
	fc.gac = make(map[rune]*GlyphAdvanceCache)
	fc.kc = make(map[[2]rune]fixed.Int26_6)
	return fc
}

func (fc *FaceCache) Glyph(dot fixed.Point26_6, ru rune) (
	dr image.Rectangle,
	mask image.Image,
	maskp image.Point,
	advance fixed.Int26_6,
	ok bool,
) {
	gc, ok := fc.gc.Get(ru)
	if !ok {
		fc.misses++
		gc = NewGlyphCache(fc.Face, ru)
		fc.gc.Add(ru, gc)
	}
	p := image.Point{dot.X.Floor(), dot.Y.Floor()}
	dr2 := gc.dr.Add(p)
	return dr2, gc.mask, gc.maskp, gc.advance, gc.ok
}

func (fc *FaceCache) GlyphAdvance(ru rune) (advance fixed.Int26_6, ok bool) {
	gac, ok := fc.gac[ru]
	if !ok {
		adv, ok2 := fc.Face.GlyphAdvance(ru)
		gac = &GlyphAdvanceCache{adv, ok2}
		fc.gac[ru] = gac
	}
	return gac.advance, gac.ok
}

func (fc *FaceCache) Kern(r0, r1 rune) fixed.Int26_6 {
	i := [2]rune{r0, r1}
	k, ok := fc.kc[i]
	if !ok {
		k = fc.Face.Kern(r0, r1)
		fc.kc[i] = k
	}
	return k
}

// Number of cached glyph masks.
func (fc *FaceCache) GlyphsLen() int {
	return fc.gc.Len()
}

// Number of glyph rasterizations (cache misses) since creation.
func (fc *FaceCache) Misses() int {
	return fc.misses
}

//----------

type GlyphCache struct {
	dr      image.Rectangle
	mask    image.Image
	maskp   image.Point
	advance fixed.Int26_6
	ok      bool
}

func NewGlyphCache(face font.Face, ru rune) *GlyphCache {
	var zeroDot fixed.Point26_6 // always use zero, offset on use
	dr, mask, maskp, adv, ok := face.Glyph(zeroDot, ru)

	// faces reuse their mask buffer between calls
	if ok {
		mask = copyMask(mask)
	}
	return &GlyphCache{dr, mask, maskp, adv, ok}
}

type GlyphAdvanceCache struct {
	advance fixed.Int26_6
	ok      bool
}

//----------

func copyMask(mask image.Image) image.Image {
	alpha, ok := mask.(*image.Alpha)
	if !ok {
		return mask
	}
	a2 := *alpha // copy structure
	pix := make([]uint8, len(alpha.Pix))
	copy(pix, alpha.Pix)
	a2.Pix = pix
	return &a2
}
