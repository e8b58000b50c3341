package halftone

import "math"

// Frame is the coordinate system of a Pattern. Pattern space is world
// space moved to Origin, turned by -Angle and divided by Size per axis, so
// the cell grid is axis-aligned with period 1.
//
// A Frame caches the sine and cosine of the angle; building one per pass
// keeps trigonometry out of the pixel loop.
type Frame struct {
	origin   Point
	size     Point
	sin, cos float64
}

// Frame returns the coordinate system of p.
func (p Pattern) Frame() Frame {
	sin, cos := math.Sincos(float64(p.Angle))
	return Frame{origin: p.Origin, size: p.Size, sin: sin, cos: cos}
}

// ToPattern maps a world point into pattern space.
func (f Frame) ToPattern(pt Point) Point {
	dx, dy := pt.X-f.origin.X, pt.Y-f.origin.Y
	return Point{
		X: (dx*f.cos + dy*f.sin) / f.size.X,
		Y: (dy*f.cos - dx*f.sin) / f.size.Y,
	}
}

// ToWorld maps a pattern-space point back into world space.
func (f Frame) ToWorld(q Point) Point {
	u, v := q.X*f.size.X, q.Y*f.size.Y
	return Point{
		X: f.origin.X + u*f.cos - v*f.sin,
		Y: f.origin.Y + u*f.sin + v*f.cos,
	}
}

// CellStep returns the world-space offsets that advance one period along
// the pattern x and y axes.
func (f Frame) CellStep() (x, y Point) {
	return Point{X: f.size.X * f.cos, Y: f.size.X * f.sin},
		Point{X: -f.size.Y * f.sin, Y: f.size.Y * f.cos}
}
