// Contract between bar widgets and the host that paints them.
package module

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/jmigpin/barclock/util/imageutil"
)

// A bar widget. All methods are called from the host loop goroutine only,
// never concurrently.
type Module interface {
	// Reports whether the widget is stale for now and must be drawn. Force
	// always reports dirty.
	Update(now time.Time, force bool) (dirty bool)

	// Renders now into buf and returns the regions that were modified.
	// Doesn't change the state compared by Update.
	Draw(buf *imageutil.Buffer, bg color.Color, now time.Time) ([]image.Rectangle, error)

	// Input events (ex: *event.MouseDown). Widgets that don't react to input
	// still accept them.
	Input(ev any)
}

//----------

// Sent by a module background task that stopped working. The module won't
// request paints anymore.
type FaultEvent struct {
	Name string
	Err  error
}

func (ev *FaultEvent) Error() string {
	return fmt.Sprintf("module %v: fault: %v", ev.Name, ev.Err)
}
func (ev *FaultEvent) Unwrap() error {
	return ev.Err
}
