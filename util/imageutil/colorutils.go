package imageutil

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

func RgbaColor(c color.Color) color.RGBA {
	if u, ok := c.(color.RGBA); ok {
		return u
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func RgbaFromInt(u int) color.RGBA {
	v := u & 0xffffff
	r := uint8((v << 0) >> 16)
	g := uint8((v << 8) >> 16)
	b := uint8((v << 16) >> 16)
	return color.RGBA{r, g, b, 255}
}

// Accepts "#rrggbb", "0xrrggbb" or "rrggbb".
func ParseRgb(s string) (color.RGBA, error) {
	u := strings.TrimPrefix(s, "#")
	u = strings.TrimPrefix(u, "0x")
	if len(u) != 6 {
		return color.RGBA{}, fmt.Errorf("bad rgb color: %q", s)
	}
	v, err := strconv.ParseUint(u, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad rgb color: %q: %w", s, err)
	}
	return RgbaFromInt(int(v)), nil
}

func SprintRgb(c color.Color) string {
	rgba := RgbaColor(c)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
