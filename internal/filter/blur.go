package filter

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/halftone/internal/color"
	"github.com/gogpu/halftone/internal/parallel"
)

// ErrSigma is returned by Blur for a sigma that is NaN, infinite or
// above MaxSigma.
var ErrSigma = errors.New("filter: blur sigma out of range")

// Blur applies a separable Gaussian blur with standard deviation sigma
// (in pixels) to a w x h straight-alpha buffer in place. Pixels beyond the
// edges repeat the nearest edge pixel. A sigma <= 0 leaves buf unchanged.
//
// Blur stops early with ctx.Err() if ctx is canceled between row bands;
// buf is then left partially blurred.
func Blur(ctx context.Context, buf []color.ColorF32, w, h int, sigma float64, workers int) error {
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma > MaxSigma {
		return fmt.Errorf("%w: %v", ErrSigma, sigma)
	}
	if sigma <= 0 || w <= 0 || h <= 0 {
		return ctx.Err()
	}
	kernel := CachedGaussianKernel(sigma)
	kx := foldKernel(kernel, w)
	ky := foldKernel(kernel, h)

	pre := make([]color.ColorF32, len(buf))
	for i, c := range buf {
		pre[i] = c.Premultiply()
	}
	tmp := make([]color.ColorF32, len(buf))

	// Horizontal: pre -> tmp.
	err := parallel.ForEachBand(ctx, h, workers, func(b parallel.Band) {
		for y := b.Y0; y < b.Y1; y++ {
			row := pre[y*w : (y+1)*w]
			out := tmp[y*w : (y+1)*w]
			for x := range out {
				out[x] = convolve(kx, func(i int) color.ColorF32 {
					return row[clampIndex(x+i, w)]
				})
			}
		}
	})
	if err != nil {
		return err
	}

	// Vertical: tmp -> buf, demultiplied.
	return parallel.ForEachBand(ctx, h, workers, func(b parallel.Band) {
		for y := b.Y0; y < b.Y1; y++ {
			out := buf[y*w : (y+1)*w]
			for x := range out {
				c := convolve(ky, func(i int) color.ColorF32 {
					return tmp[clampIndex(y+i, h)*w+x]
				})
				out[x] = c.Demultiply().Clamped()
			}
		}
	})
}

// foldKernel shortens kernel to at most radius taps on each side. Every
// tap at or beyond radius reads the edge pixel of an n <= radius wide
// buffer, so their weights are summed into the outermost kept tap.
func foldKernel(kernel []float32, radius int) []float32 {
	half := len(kernel) / 2
	if half <= radius {
		return kernel
	}
	out := make([]float32, 2*radius+1)
	for k, wgt := range kernel {
		i := min(max(k-half, -radius), radius)
		out[i+radius] += wgt
	}
	return out
}

// convolve sums kernel-weighted samples; at(i) returns the sample at
// offset i from the center.
func convolve(kernel []float32, at func(i int) color.ColorF32) color.ColorF32 {
	half := len(kernel) / 2
	var sum color.ColorF32
	for k, wgt := range kernel {
		c := at(k - half)
		sum.R += c.R * wgt
		sum.G += c.G * wgt
		sum.B += c.B * wgt
		sum.A += c.A * wgt
	}
	return sum
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
