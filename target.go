package halftone

import (
	"image"

	"github.com/gogpu/halftone/internal/color"
)

// target is the pixel-format strategy of a pass. load returns a
// straight-alpha color; store clamps and writes one.
type target interface {
	size() (w, h int)
	load(x, y int) Color
	store(x, y int, c Color)
}

// surfaceTarget writes straight-alpha floats.
type surfaceTarget struct {
	s *Surface
}

func (t surfaceTarget) size() (int, int) { return t.s.width, t.s.height }

func (t surfaceTarget) load(x, y int) Color {
	return t.s.data[y*t.s.width+x]
}

func (t surfaceTarget) store(x, y int, c Color) {
	t.s.data[y*t.s.width+x] = c.Clamped()
}

// premulTarget demultiplies on load and premultiplies on store.
type premulTarget struct {
	img *image.RGBA
}

func (t premulTarget) size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t premulTarget) load(x, y int) Color {
	b := t.img.Bounds()
	i := t.img.PixOffset(b.Min.X+x, b.Min.Y+y)
	p := t.img.Pix[i : i+4 : i+4]
	return color.PremulU8ToF32(color.ColorU8{R: p[0], G: p[1], B: p[2], A: p[3]})
}

func (t premulTarget) store(x, y int, c Color) {
	b := t.img.Bounds()
	i := t.img.PixOffset(b.Min.X+x, b.Min.Y+y)
	u := color.F32ToPremulU8(c)
	p := t.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = u.R, u.G, u.B, u.A
}
