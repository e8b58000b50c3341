package halftone

// Quality selects the render quality of an upstream pass. Lower values mean
// higher quality; QualityBest is 0 and QualityDraft is 10.
type Quality int

// Render qualities.
const (
	QualityBest    Quality = 0
	QualityDefault Quality = 3
	QualityDraft   Quality = 10
)

// RendDesc describes how a target buffer maps onto world space.
//
// TL and BR are the world-space coordinates of the top-left and
// bottom-right edges of the buffer; W and H are its size in pixels. The
// per-pixel steps PW and PH are signed: a negative PH is the usual
// y-up world seen through a y-down raster.
type RendDesc struct {
	TL, BR Point
	W, H   int
}

// NewRendDesc creates a RendDesc covering the world rectangle [tl, br]
// with a w x h pixel raster.
func NewRendDesc(w, h int, tl, br Point) RendDesc {
	return RendDesc{TL: tl, BR: br, W: w, H: h}
}

// PW returns the world-space width of one pixel.
func (d RendDesc) PW() float64 {
	return (d.BR.X - d.TL.X) / float64(d.W)
}

// PH returns the world-space height of one pixel.
func (d RendDesc) PH() float64 {
	return (d.BR.Y - d.TL.Y) / float64(d.H)
}

// PixelCenter returns the world-space center of pixel (x, y).
// It is computed from the indices alone so any pixel can be located
// without walking the raster.
func (d RendDesc) PixelCenter(x, y int) Point {
	return Point{
		X: d.TL.X + (float64(x)+0.5)*d.PW(),
		Y: d.TL.Y + (float64(y)+0.5)*d.PH(),
	}
}

// PixelAt returns the pixel containing world point p. The result may lie
// outside the raster.
func (d RendDesc) PixelAt(p Point) (x, y int) {
	fx := (p.X - d.TL.X) / d.PW()
	fy := (p.Y - d.TL.Y) / d.PH()
	return floorInt(fx), floorInt(fy)
}

func floorInt(v float64) int {
	i := int(v)
	if float64(i) > v {
		i--
	}
	return i
}
