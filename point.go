package halftone

import "math"

// Point represents a 2D point or vector in world space.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the length (magnitude) of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Rotate returns the point rotated by angle around the origin.
func (p Point) Rotate(angle Angle) Point {
	sin, cos := math.Sincos(float64(angle))
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// Angle is a rotation in radians, counter-clockwise positive.
type Angle float64

// Deg creates an Angle from degrees.
func Deg(degrees float64) Angle {
	return Angle(degrees * math.Pi / 180)
}

// Degrees returns a in degrees.
func (a Angle) Degrees() float64 {
	return float64(a) * 180 / math.Pi
}
