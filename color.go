package halftone

import (
	"fmt"
	stdcolor "image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/halftone/internal/color"
)

// Color is a straight-alpha (not premultiplied) float color.
// Components are nominally in the range [0, 1].
//
// Color implements the standard color.Color interface.
type Color = color.ColorF32

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// NRGBA creates a color from straight RGBA components.
func NRGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromColor converts a standard color.Color to a straight-alpha Color.
func FromColor(c stdcolor.Color) Color {
	if n, ok := c.(stdcolor.NRGBA); ok {
		return color.U8ToF32(color.ColorU8{R: n.R, G: n.G, B: n.B, A: n.A})
	}
	r, g, b, a := c.RGBA()
	return Color{
		R: float32(r) / 65535,
		G: float32(g) / 65535,
		B: float32(b) / 65535,
		A: float32(a) / 65535,
	}.Demultiply()
}

// ToNRGBA converts c to an 8-bit straight-alpha color.
func ToNRGBA(c Color) stdcolor.NRGBA {
	u := color.F32ToU8(c)
	return stdcolor.NRGBA{R: u.R, G: u.G, B: u.B, A: u.A}
}

// ParseColor parses a hex color string.
// Supported formats: "#RGB", "#RRGGBB" and "#RRGGBBAA"; the leading '#'
// is optional.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	alpha := float32(1)
	if len(hex) == 8 {
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("halftone: invalid color %q: %w", s, err)
		}
		alpha = float32(a) / 255
		hex = hex[:6]
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("halftone: invalid color %q: %w", s, err)
	}
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: alpha}, nil
}

// FormatColor renders c as "#RRGGBBAA", the inverse of ParseColor.
func FormatColor(c Color) string {
	u := color.F32ToU8(c)
	return fmt.Sprintf("#%02x%02x%02x%02x", u.R, u.G, u.B, u.A)
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Gray        = RGB(0.5, 0.5, 0.5)
	Transparent = NRGBA(0, 0, 0, 0)
)
