// Package parallel provides band-based parallel raster passes for
// gogpu/halftone.
//
// A pass is divided into horizontal bands of rows that are processed
// independently. Bands never overlap, so a per-pixel function that depends
// only on its own pixel produces identical output in any execution order.
//
// Thread safety: ForEachBand is safe for concurrent use; the callback must
// only touch the rows of the band it receives.
package parallel

// BandHeight is the default number of rows in a band.
// 64 rows matches the tile height used for cache-friendly tiling.
const BandHeight = 64

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	// Y0 is the first row of the band.
	Y0 int

	// Y1 is one past the last row of the band.
	Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// Bands splits height rows into consecutive bands of at most bandHeight
// rows. The last band may be shorter. Returns nil if height <= 0.
// A bandHeight <= 0 selects BandHeight.
func Bands(height, bandHeight int) []Band {
	if height <= 0 {
		return nil
	}
	if bandHeight <= 0 {
		bandHeight = BandHeight
	}

	bands := make([]Band, 0, (height+bandHeight-1)/bandHeight)
	for y := 0; y < height; y += bandHeight {
		bands = append(bands, Band{Y0: y, Y1: min(y+bandHeight, height)})
	}
	return bands
}
