package halftone

import (
	"context"
	"errors"
	"fmt"
	"image"
	stdcolor "image/color"

	"github.com/gogpu/halftone/internal/filter"
	himage "github.com/gogpu/halftone/internal/image"
)

// Surface is a rectangular buffer of straight-alpha float colors.
// It is the independent-alpha pixel representation used by RenderSurface;
// premultiplied 8-bit buffers use *image.RGBA instead.
type Surface struct {
	width  int
	height int
	data   []Color // row-major, width*height entries
}

// NewSurface creates a new transparent surface with the given dimensions.
func NewSurface(width, height int) *Surface {
	return &Surface{
		width:  width,
		height: height,
		data:   make([]Color, width*height),
	}
}

// Width returns the width of the surface.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the height of the surface.
func (s *Surface) Height() int {
	return s.height
}

// Data returns the raw pixel data in row-major order.
func (s *Surface) Data() []Color {
	return s.data
}

// Row returns the pixels of row y. Returns nil if y is out of bounds.
func (s *Surface) Row(y int) []Color {
	if y < 0 || y >= s.height {
		return nil
	}
	return s.data[y*s.width : (y+1)*s.width]
}

// SetPixel sets the color of a single pixel.
// Out-of-bounds coordinates are ignored.
func (s *Surface) SetPixel(x, y int, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.data[y*s.width+x] = c
}

// GetPixel returns the color of a single pixel.
// Out-of-bounds coordinates return Transparent.
func (s *Surface) GetPixel(x, y int) Color {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Transparent
	}
	return s.data[y*s.width+x]
}

// Clear fills the entire surface with a color.
func (s *Surface) Clear(c Color) {
	for i := range s.data {
		s.data[i] = c
	}
}

// Clone returns a deep copy of the surface.
func (s *Surface) Clone() *Surface {
	c := &Surface{width: s.width, height: s.height, data: make([]Color, len(s.data))}
	copy(c.data, s.data)
	return c
}

// MaxBlurSigma is the largest sigma Surface.Blur accepts.
const MaxBlurSigma = filter.MaxSigma

// Blur applies a Gaussian blur with standard deviation sigma, in pixels,
// in place. Colors are weighted by alpha so transparent pixels do not
// darken their neighbors. A sigma that is not finite or exceeds
// MaxBlurSigma returns ErrBlurSigma and leaves s unchanged.
func (s *Surface) Blur(ctx context.Context, sigma float64) error {
	if err := filter.Blur(ctx, s.data, s.width, s.height, sigma, 0); err != nil {
		if errors.Is(err, filter.ErrSigma) {
			return fmt.Errorf("%w: %v", ErrBlurSigma, sigma)
		}
		return err
	}
	return nil
}

// ToImage converts the surface to an 8-bit straight-alpha image.
// Components are clamped to [0, 1].
func (s *Surface) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	for y := range s.height {
		for x, c := range s.Row(y) {
			img.SetNRGBA(x, y, ToNRGBA(c))
		}
	}
	return img
}

// SurfaceFromImage creates a surface from an image.
func SurfaceFromImage(img image.Image) *Surface {
	bounds := img.Bounds()
	s := NewSurface(bounds.Dx(), bounds.Dy())

	for y := range s.height {
		for x := range s.width {
			s.data[y*s.width+x] = FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return s
}

// Save writes the surface to an image file; the format follows the file
// extension (.png, .jpg, .bmp, .tif).
func (s *Surface) Save(path string) error {
	return himage.Save(path, s.ToImage())
}

// At implements the image.Image interface.
func (s *Surface) At(x, y int) stdcolor.Color {
	return s.GetPixel(x, y)
}

// Bounds implements the image.Image interface.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// ColorModel implements the image.Image interface.
func (s *Surface) ColorModel() stdcolor.Model {
	return stdcolor.RGBA64Model
}
