package wimage

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/jmigpin/barclock/util/imageutil"
)

// Fallback when shared memory is not available: pixels are sent in the
// request data.
type PixmapWImage struct {
	opt *Options
	img *imageutil.BGRA
}

func NewPixmapWImage(opt *Options) (*PixmapWImage, error) {
	wi := &PixmapWImage{opt: opt}
	wi.img = imageutil.NewBGRA(image.Rectangle{Max: opt.Size})
	return wi, nil
}

func (wi *PixmapWImage) Close() error {
	return nil
}

func (wi *PixmapWImage) Image() draw.Image {
	return wi.img
}

func (wi *PixmapWImage) PutImage(r image.Rectangle) error {
	r = r.Intersect(wi.img.Bounds())
	if r.Empty() {
		return nil
	}

	// x max request length = (2^16)*4 bytes, send in chunks of rows
	putImgReqSize := 28
	maxReqSize := (1 << 16) * 4
	maxW := (maxReqSize - putImgReqSize) / 4
	if r.Dx() > maxW {
		return fmt.Errorf("pixmapwimage: dx>max, %v>%v", r.Dx(), maxW)
	}
	rowsPerChunk := maxW / r.Dx()
	rowBytes := r.Dx() * 4

	for y := r.Min.Y; y < r.Max.Y; y += rowsPerChunk {
		h := min(rowsPerChunk, r.Max.Y-y)
		data := make([]byte, rowBytes*h)
		for k := 0; k < h; k++ {
			j := wi.img.PixOffset(r.Min.X, y+k)
			copy(data[k*rowBytes:(k+1)*rowBytes], wi.img.Pix[j:j+rowBytes])
		}
		c := xproto.PutImageChecked(
			wi.opt.Conn,
			xproto.ImageFormatZPixmap,
			xproto.Drawable(wi.opt.Window),
			wi.opt.GCtx,
			uint16(r.Dx()), uint16(h), // width/height
			int16(r.Min.X), int16(y), // dst x/y
			0, // left pad, must be 0 for ZPixmap format
			wi.opt.ScreenInfo.RootDepth,
			data)
		if err := c.Check(); err != nil {
			return fmt.Errorf("pixmapwimage: putimage: %w", err)
		}
	}
	return nil
}

// Only the shm image is async.
func (wi *PixmapWImage) PutImageCompleted() {}
