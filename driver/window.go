package driver

import (
	"image"
	"image/draw"
)

// Output surface of the bar.
type Window interface {
	// Blocks sending window events (util/uiutil/event) and errors to events
	// until the window is closed. Ends after sending *event.WindowClose.
	EventLoop(events chan<- any)

	// Backing image, BGRA ordered for the x11 driver.
	Image() draw.Image
	// Presents the given region of Image().
	PutImage(image.Rectangle) error

	Close() error
}
