// Package color provides the float color type shared by the halftone filter,
// the blend primitive and the pixel backends.
package color

import "math"

// Epsilon is the alpha magnitude below which a color counts as fully
// transparent.
const Epsilon = 1e-6

// ColorF32 represents a color with float32 components.
// RGB components are straight (never premultiplied) and nominally in [0,1].
// Intermediate blend results may leave that range until Clamped is applied.
type ColorF32 struct {
	R, G, B, A float32
}

// BT.601 YUV weights.
const (
	yR, yG, yB = 0.299, 0.587, 0.114
	uR, uG, uB = -0.168736, -0.331264, 0.5
	vR, vG, vB = 0.5, -0.418688, -0.081312

	rV     = 1.402
	gU, gV = -0.344136, -0.714136
	bU     = 1.772
)

// Y returns the luma of c.
func (c ColorF32) Y() float32 {
	return c.R*yR + c.G*yG + c.B*yB
}

// U returns the blue-difference chroma of c.
func (c ColorF32) U() float32 {
	return c.R*uR + c.G*uG + c.B*uB
}

// V returns the red-difference chroma of c.
func (c ColorF32) V() float32 {
	return c.R*vR + c.G*vG + c.B*vB
}

// FromYUV builds a color from luma, chroma and alpha.
func FromYUV(y, u, v, a float32) ColorF32 {
	return ColorF32{
		R: y + v*rV,
		G: y + u*gU + v*gV,
		B: y + u*bU,
		A: a,
	}
}

// WithY returns c with its luma replaced.
func (c ColorF32) WithY(y float32) ColorF32 {
	return FromYUV(y, c.U(), c.V(), c.A)
}

// WithUV returns c with its chroma replaced.
func (c ColorF32) WithUV(u, v float32) ColorF32 {
	return FromYUV(c.Y(), u, v, c.A)
}

// Hue returns the chroma angle of c in radians.
func (c ColorF32) Hue() float64 {
	return math.Atan2(float64(c.U()), float64(c.V()))
}

// Saturation returns the chroma magnitude of c.
func (c ColorF32) Saturation() float32 {
	return float32(math.Hypot(float64(c.U()), float64(c.V())))
}

// WithHue returns c rotated to the given chroma angle, keeping luma and
// saturation.
func (c ColorF32) WithHue(hue float64) ColorF32 {
	s := float64(c.Saturation())
	return c.WithUV(float32(s*math.Sin(hue)), float32(s*math.Cos(hue)))
}

// WithSaturation returns c with its chroma scaled to magnitude s.
// A gray color stays gray.
func (c ColorF32) WithSaturation(s float32) ColorF32 {
	u, v := c.U(), c.V()
	cur := float32(math.Hypot(float64(u), float64(v)))
	if cur == 0 {
		return c
	}
	k := s / cur
	return c.WithUV(u*k, v*k)
}

// WithAlpha returns c with alpha replaced.
func (c ColorF32) WithAlpha(a float32) ColorF32 {
	c.A = a
	return c
}

// Inverse returns the RGB complement of c. Alpha is kept.
func (c ColorF32) Inverse() ColorF32 {
	return ColorF32{R: 1 - c.R, G: 1 - c.G, B: 1 - c.B, A: c.A}
}

// Add returns the componentwise sum of c and o, alpha included.
func (c ColorF32) Add(o ColorF32) ColorF32 {
	return ColorF32{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B, A: c.A + o.A}
}

// Sub returns the componentwise difference of c and o, alpha included.
func (c ColorF32) Sub(o ColorF32) ColorF32 {
	return ColorF32{R: c.R - o.R, G: c.G - o.G, B: c.B - o.B, A: c.A - o.A}
}

// Scale multiplies every component of c, alpha included, by k.
func (c ColorF32) Scale(k float32) ColorF32 {
	return ColorF32{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A * k}
}

// Premultiply returns c with RGB scaled by alpha.
func (c ColorF32) Premultiply() ColorF32 {
	return ColorF32{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Demultiply undoes Premultiply. A fully transparent color becomes
// transparent black.
func (c ColorF32) Demultiply() ColorF32 {
	if c.A <= 0 {
		return ColorF32{}
	}
	return ColorF32{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}

// Clamped returns c with every component restricted to [0,1].
// NaN components become 0.
func (c ColorF32) Clamped() ColorF32 {
	return ColorF32{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// ColorU8 represents a color with uint8 components in [0,255].
// Whether RGB is premultiplied depends on the buffer holding it.
type ColorU8 struct {
	R, G, B, A uint8
}

func clamp01(v float32) float32 {
	switch {
	case v > 1:
		return 1
	case v >= 0:
		return v
	default:
		// negative or NaN
		return 0
	}
}

// RGBA implements the image/color.Color interface. The result is clamped
// and alpha-premultiplied, as that interface requires.
func (c ColorF32) RGBA() (r, g, b, a uint32) {
	p := c.Clamped().Premultiply()
	return uint32(p.R*0xffff + 0.5), uint32(p.G*0xffff + 0.5), uint32(p.B*0xffff + 0.5), uint32(p.A*0xffff + 0.5)
}
