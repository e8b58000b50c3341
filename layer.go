package halftone

import (
	"context"
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/halftone/internal/color"
)

// SurfaceRenderer fills a float surface with rendered content.
//
// RenderSurface must fill dst, whose size matches desc.W x desc.H, with the
// part of the world described by desc. Implementations report progress on
// cb and return ErrCanceled when cb asks them to stop.
type SurfaceRenderer interface {
	RenderSurface(ctx context.Context, dst *Surface, q Quality, desc RendDesc, cb ProgressCallback) error
}

// RGBARenderer fills a premultiplied 8-bit image with rendered content.
// The contract matches SurfaceRenderer.
type RGBARenderer interface {
	RenderRGBA(ctx context.Context, dst *image.RGBA, q Quality, desc RendDesc, cb ProgressCallback) error
}

// Sampler returns the straight-alpha color of a layer at a world point.
type Sampler interface {
	ColorAt(p Point) Color
}

// Layer is a complete upstream: both raster backends plus point sampling.
type Layer interface {
	SurfaceRenderer
	RGBARenderer
	Sampler
}

// SolidLayer is an infinite layer of one color.
type SolidLayer struct {
	Color Color
}

// RenderSurface implements SurfaceRenderer.
func (l SolidLayer) RenderSurface(ctx context.Context, dst *Surface, _ Quality, _ RendDesc, cb ProgressCallback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst.Clear(l.Color)
	if !report(cb, 1, 1) {
		return ErrCanceled
	}
	return nil
}

// RenderRGBA implements RGBARenderer.
func (l SolidLayer) RenderRGBA(ctx context.Context, dst *image.RGBA, _ Quality, _ RendDesc, cb ProgressCallback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p := color.F32ToPremulU8(l.Color)
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := dst.PixOffset(b.Min.X, y)
		row := dst.Pix[off : off+4*b.Dx()]
		for i := 0; i < len(row); i += 4 {
			row[i+0] = p.R
			row[i+1] = p.G
			row[i+2] = p.B
			row[i+3] = p.A
		}
	}
	if !report(cb, 1, 1) {
		return ErrCanceled
	}
	return nil
}

// ColorAt implements Sampler.
func (l SolidLayer) ColorAt(Point) Color {
	return l.Color
}

// ImageLayer places an image in world space, stretched over the rectangle
// from TL to BR. Outside that rectangle the layer is transparent.
type ImageLayer struct {
	Image  image.Image
	TL, BR Point
}

// NewImageLayer places img over [tl, br].
func NewImageLayer(img image.Image, tl, br Point) *ImageLayer {
	return &ImageLayer{Image: img, TL: tl, BR: br}
}

// interpolator picks a resampling kernel for a render quality.
func interpolator(q Quality) draw.Interpolator {
	switch {
	case q <= 2:
		return draw.CatmullRom
	case q <= 5:
		return draw.BiLinear
	case q <= 8:
		return draw.ApproxBiLinear
	default:
		return draw.NearestNeighbor
	}
}

// srcToDst returns the affine map from source image pixels to target
// pixels of desc.
func (l *ImageLayer) srcToDst(desc RendDesc) f64.Aff3 {
	sb := l.Image.Bounds()
	pw, ph := desc.PW(), desc.PH()

	// Source pixel -> world.
	wx := (l.BR.X - l.TL.X) / float64(sb.Dx())
	wy := (l.BR.Y - l.TL.Y) / float64(sb.Dy())

	// World -> target pixel.
	a := wx / pw
	e := wy / ph
	c := (l.TL.X-desc.TL.X)/pw - float64(sb.Min.X)*a
	f := (l.TL.Y-desc.TL.Y)/ph - float64(sb.Min.Y)*e
	return f64.Aff3{a, 0, c, 0, e, f}
}

func (l *ImageLayer) resample(dst draw.Image, q Quality, desc RendDesc) {
	if l.Image == nil || l.Image.Bounds().Empty() {
		return
	}
	m := l.srcToDst(desc)
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
	}
	interpolator(q).Transform(dst, m, l.Image, l.Image.Bounds(), draw.Src, nil)
}

// RenderRGBA implements RGBARenderer.
func (l *ImageLayer) RenderRGBA(ctx context.Context, dst *image.RGBA, q Quality, desc RendDesc, cb ProgressCallback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := dst.PixOffset(b.Min.X, y)
		clear(dst.Pix[off : off+4*b.Dx()])
	}
	l.resample(dst, q, desc)
	if !report(cb, 1, 1) {
		return ErrCanceled
	}
	return nil
}

// RenderSurface implements SurfaceRenderer. The image is resampled at
// 16 bits per channel and then converted to straight alpha.
func (l *ImageLayer) RenderSurface(ctx context.Context, dst *Surface, q Quality, desc RendDesc, cb ProgressCallback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp := image.NewRGBA64(image.Rect(0, 0, dst.Width(), dst.Height()))
	l.resample(tmp, q, desc)

	for y := range dst.Height() {
		row := dst.Row(y)
		for x := range row {
			c := tmp.RGBA64At(x, y)
			row[x] = Color{
				R: float32(c.R) / 0xffff,
				G: float32(c.G) / 0xffff,
				B: float32(c.B) / 0xffff,
				A: float32(c.A) / 0xffff,
			}.Demultiply()
		}
	}
	if !report(cb, 1, 1) {
		return ErrCanceled
	}
	return nil
}

// ColorAt implements Sampler with nearest-pixel lookup.
func (l *ImageLayer) ColorAt(p Point) Color {
	if l.Image == nil {
		return Transparent
	}
	sb := l.Image.Bounds()
	u := (p.X - l.TL.X) / (l.BR.X - l.TL.X)
	v := (p.Y - l.TL.Y) / (l.BR.Y - l.TL.Y)
	if !(u >= 0 && u < 1 && v >= 0 && v < 1) {
		return Transparent
	}
	x := sb.Min.X + int(u*float64(sb.Dx()))
	y := sb.Min.Y + int(v*float64(sb.Dy()))
	return FromColor(l.Image.At(x, y))
}
