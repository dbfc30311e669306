package wimage

import (
	"image"
	"image/draw"
	"log"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Window image for drawing. Fixed size, the bar never resizes.
type WImage interface {
	Image() draw.Image
	PutImage(image.Rectangle) error
	PutImageCompleted()
	Close() error
}

type Options struct {
	Conn       *xgb.Conn
	Window     xproto.Window
	ScreenInfo *xproto.ScreenInfo
	GCtx       xproto.Gcontext
	Size       image.Point
}

func NewWImage(opt *Options) (WImage, error) {
	// shared memory first
	wimg, err := NewShmWImage(opt)
	if err == nil {
		return wimg, nil
	}
	log.Printf("warning: unable to use shmwimage: %v", err)

	// copy through requests
	return NewPixmapWImage(opt)
}
