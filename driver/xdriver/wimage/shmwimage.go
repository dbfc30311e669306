package wimage

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/shm"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/jmigpin/barclock/util/syncutil"
)

type ShmWImage struct {
	opt          *Options
	segId        shm.Seg
	imgWrap      *ShmImgWrap
	putCompleted *syncutil.WaitForSet
}

func NewShmWImage(opt *Options) (*ShmWImage, error) {
	// error from early init
	if initErr != nil {
		return nil, initErr
	}

	wi := &ShmWImage{opt: opt}
	wi.putCompleted = syncutil.NewWaitForSet()

	segId, err := shm.NewSegId(opt.Conn)
	if err != nil {
		return nil, err
	}
	wi.segId = segId

	imgWrap, err := NewShmImgWrap(image.Rectangle{Max: opt.Size})
	if err != nil {
		return nil, err
	}
	wi.imgWrap = imgWrap

	readOnly := false
	shmId := uint32(imgWrap.shmId)
	cookie := shm.AttachChecked(opt.Conn, segId, shmId, readOnly)
	if err := cookie.Check(); err != nil {
		_ = imgWrap.Close()
		return nil, fmt.Errorf("shmwimage: attach: %w", err)
	}
	return wi, nil
}

func (wi *ShmWImage) Close() error {
	_ = shm.Detach(wi.opt.Conn, wi.segId)
	return wi.imgWrap.Close()
}

func (wi *ShmWImage) Image() draw.Image {
	return wi.imgWrap.Img
}

func (wi *ShmWImage) PutImage(r image.Rectangle) error {
	wi.putCompleted.Start(500 * time.Millisecond)
	if err := wi.putImage2(r); err != nil {
		wi.putCompleted.Cancel()
		return err
	}
	// wait for shm.CompletionEvent that calls PutImageCompleted()
	// (pixels can't be touched until the server read them)
	if _, err := wi.putCompleted.WaitForSet(); err != nil {
		return fmt.Errorf("shm put completed: %w", err)
	}
	return nil
}

func (wi *ShmWImage) putImage2(r image.Rectangle) error {
	b := wi.imgWrap.Img.Bounds()
	c1 := shm.PutImageChecked(
		wi.opt.Conn,
		xproto.Drawable(wi.opt.Window),
		wi.opt.GCtx,
		uint16(b.Dx()), uint16(b.Dy()), // total width/height
		uint16(r.Min.X), uint16(r.Min.Y), uint16(r.Dx()), uint16(r.Dy()), // src x,y,w,h
		int16(r.Min.X), int16(r.Min.Y), // dst x,y
		wi.opt.ScreenInfo.RootDepth,
		xproto.ImageFormatZPixmap,
		1, // send shm.CompletionEvent when done
		wi.segId,
		0) // offset
	return c1.Check()
}

func (wi *ShmWImage) PutImageCompleted() {
	if err := wi.putCompleted.Set(nil); err != nil {
		log.Printf("shm put completed: %v", err)
	}
}

//----------

var initErr error

// Must run before any concurrent use of the connection (xgb extension map is
// not goroutine safe).
func Init(conn *xgb.Conn) {
	initErr = shm.Init(conn)
}
