package fontutil

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

func DefaultFont() *Font {
	f, err := FontsMan.Font(goregular.TTF)
	if err != nil {
		panic(err)
	}
	return f
}

//----------

var FontsMan = NewFontsManager()

// Caches parsed fonts by their ttf data. Faces are not cached: each owner gets
// its own face and glyph cache.
type FontsManager struct {
	mu         sync.Mutex
	fontsCache map[string]*Font
}

func NewFontsManager() *FontsManager {
	return &FontsManager{fontsCache: map[string]*Font{}}
}

func (fm *FontsManager) Font(ttf []byte) (*Font, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	f, ok := fm.fontsCache[string(ttf)]
	if ok {
		return f, nil
	}
	f, err := NewFont(ttf)
	if err != nil {
		return nil, err
	}
	fm.fontsCache[string(ttf)] = f
	return f, nil
}

// Empty filename returns the default font.
func (fm *FontsManager) FontFile(filename string) (*Font, error) {
	if filename == "" {
		return DefaultFont(), nil
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	f, err := fm.Font(b)
	if err != nil {
		return nil, fmt.Errorf("font %v: %w", filename, err)
	}
	return f, nil
}

//----------

type Backend int

const (
	BackendOpenType Backend = iota // golang.org/x/image/font/opentype
	BackendFreeType                // github.com/golang/freetype/truetype
)

func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(s) {
	case "", "opentype":
		return BackendOpenType, nil
	case "freetype":
		return BackendFreeType, nil
	}
	return 0, fmt.Errorf("unknown font backend: %q", s)
}

func ParseHinting(s string) (font.Hinting, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return font.HintingNone, nil
	case "vertical":
		return font.HintingVertical, nil
	case "full":
		return font.HintingFull, nil
	}
	return 0, fmt.Errorf("unknown hinting: %q", s)
}

//----------

type FaceOptions struct {
	Size           float64 // points
	DPI            float64
	Hinting        font.Hinting
	Backend        Backend
	GlyphCacheSize int
}

func (opt *FaceOptions) setDefaults() {
	// avoid divide by zero; also ensures face.metrics() works
	if opt.Size == 0 {
		opt.Size = 12
	}
	if opt.DPI == 0 {
		opt.DPI = 72
	}
}

//----------

type Font struct {
	Font *sfnt.Font
	ttf  []byte
	tt   *truetype.Font // parsed on first freetype face
}

func NewFont(ttf []byte) (*Font, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return &Font{Font: f, ttf: ttf}, nil
}

func (f *Font) NewFontFace(opt FaceOptions) (*FontFace, error) {
	opt.setDefaults()
	var face font.Face
	switch opt.Backend {
	case BackendOpenType:
		o := opentype.FaceOptions{Size: opt.Size, DPI: opt.DPI, Hinting: opt.Hinting}
		face2, err := opentype.NewFace(f.Font, &o)
		if err != nil {
			return nil, err
		}
		face = face2
	case BackendFreeType:
		if f.tt == nil {
			tt, err := truetype.Parse(f.ttf)
			if err != nil {
				return nil, fmt.Errorf("freetype: %w", err)
			}
			f.tt = tt
		}
		o := truetype.Options{Size: opt.Size, DPI: opt.DPI, Hinting: opt.Hinting}
		face = truetype.NewFace(f.tt, &o)
	default:
		return nil, fmt.Errorf("unknown font backend: %v", opt.Backend)
	}
	return NewFontFace(face, opt), nil
}

// Face whose line height (ascent+descent) is px pixels.
func (f *Font) FaceForPixels(px float64, opt FaceOptions) (*FontFace, error) {
	opt.setDefaults()
	opt.Size = px * 72 / opt.DPI
	ff, err := f.NewFontFace(opt)
	if err != nil {
		return nil, err
	}
	h := Fixed266ToFloat64(ff.Metrics.Ascent + ff.Metrics.Descent)
	if h <= 0 {
		return ff, nil
	}
	opt.Size *= px / h
	return f.NewFontFace(opt)
}

//----------

type FontFace struct {
	Face    *FaceCache
	Size    float64 // in points, readonly
	Metrics font.Metrics

	lineHeight fixed.Int26_6
	baselineY  fixed.Int26_6
}

func NewFontFace(face font.Face, opt FaceOptions) *FontFace {
	fc := NewFaceCache(face, opt.GlyphCacheSize)
	ff := &FontFace{Face: fc, Size: opt.Size, Metrics: face.Metrics()}
	ff.lineHeight = max(
		ff.Metrics.Ascent+ff.Metrics.Descent,
		ff.Metrics.Height)
	ff.baselineY = min(
		ff.Metrics.Ascent,
		ff.lineHeight-ff.Metrics.Descent)
	return ff
}

func (ff *FontFace) LineHeight() fixed.Int26_6 {
	return ff.lineHeight
}
func (ff *FontFace) LineHeightInt() int {
	return ff.LineHeight().Ceil()
}

func (ff *FontFace) BaseLine() fixed.Point26_6 {
	return fixed.Point26_6{X: 0, Y: ff.baselineY}
}
