package filter

import (
	"math"

	"github.com/gogpu/halftone/internal/cache"
)

// MaxSigma is the largest standard deviation a kernel is built for.
// Larger values are clamped to it.
const MaxSigma = 1024

// GaussianKernel returns a normalized 1D Gaussian kernel with standard
// deviation sigma. It spans 3 sigma on each side, so its length is
// 2*ceil(3*sigma) + 1. For sigma <= 0 or NaN it returns the identity
// kernel [1]; sigma above MaxSigma is clamped.
func GaussianKernel(sigma float64) []float32 {
	if !(sigma > 0) {
		return []float32{1}
	}
	sigma = min(sigma, MaxSigma)

	half := KernelRadius(sigma)
	kernel := make([]float32, 2*half+1)

	twoSigmaSq := 2 * sigma * sigma
	var sum float64
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}

	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// KernelRadius returns the number of taps on each side of the center of
// GaussianKernel(sigma).
func KernelRadius(sigma float64) int {
	if !(sigma > 0) {
		return 0
	}
	return int(math.Ceil(min(sigma, MaxSigma) * 3))
}

// kernels holds recently used kernels keyed by sigma quantized to 1/100.
var kernels = cache.NewLRU[int, []float32](32)

// CachedGaussianKernel is GaussianKernel with sigma rounded to 0.01 and
// the result shared between callers. The returned slice must not be
// modified.
func CachedGaussianKernel(sigma float64) []float32 {
	if !(sigma > 0) {
		sigma = 0
	}
	key := int(math.Round(min(sigma, MaxSigma) * 100))
	return kernels.GetOrCreate(key, func() []float32 {
		return GaussianKernel(float64(key) / 100)
	})
}
