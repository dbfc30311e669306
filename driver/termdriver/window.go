// Previews frames in a terminal with half block characters, each cell showing
// two vertically stacked samples of the image.
package termdriver

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/jmigpin/barclock/driver"
	"github.com/jmigpin/barclock/util/imageutil"
)

const halfBlock = "▀"

type Window struct {
	driver.Headless
	w     io.Writer
	scale int
	home  bool // move the cursor home before each frame
	img   *image.RGBA
	r     *lipgloss.Renderer

	mu sync.Mutex
}

// Scale is the number of image pixels per terminal column.
func NewWindow(w io.Writer, size image.Point, scale int, home bool) *Window {
	win := &Window{w: w, scale: max(scale, 1), home: home}
	win.Size = size
	win.img = image.NewRGBA(image.Rectangle{Max: size})
	win.r = lipgloss.NewRenderer(w)
	return win
}

func (win *Window) Image() draw.Image {
	return win.img
}

// Always renders the whole frame.
func (win *Window) PutImage(image.Rectangle) error {
	win.mu.Lock()
	defer win.mu.Unlock()
	s := win.Render()
	if win.home {
		s = "\x1b[H" + s
	}
	if _, err := io.WriteString(win.w, s); err != nil {
		return fmt.Errorf("termdriver: %w", err)
	}
	return nil
}

func (win *Window) Render() string {
	b := win.img.Bounds()
	cols := b.Dx() / win.scale
	rows := (b.Dy()/win.scale + 1) / 2

	sb := strings.Builder{}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := b.Min.X + col*win.scale
			y0 := b.Min.Y + row*2*win.scale
			y1 := y0 + win.scale
			top := win.sample(x, y0)
			bot := top
			if y1 < b.Max.Y {
				bot = win.sample(x, y1)
			}
			st := win.r.NewStyle().
				Foreground(lipgloss.Color(imageutil.SprintRgb(top))).
				Background(lipgloss.Color(imageutil.SprintRgb(bot)))
			sb.WriteString(st.Render(halfBlock))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (win *Window) sample(x, y int) color.Color {
	return win.img.RGBAAt(x, y)
}
