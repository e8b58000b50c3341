package halftone

import (
	"fmt"
	"math"
	"strings"
)

// Kind selects the shape of the halftone mask within one pattern cell.
type Kind int

const (
	// KindSymmetric blends two offset dot grids so that dots grow from
	// mid-gray toward both black and white.
	KindSymmetric Kind = iota
	// KindLightOnDark is a single grid of light dots whose radius grows
	// with density.
	KindLightOnDark
	// KindDiamond is a grid of diamond-shaped dots.
	KindDiamond
	// KindStripe is a series of parallel lines along the pattern x axis.
	KindStripe

	kindCount
)

var kindNames = [kindCount]string{
	KindSymmetric:   "symmetric",
	KindLightOnDark: "lightondark",
	KindDiamond:     "diamond",
	KindStripe:      "stripe",
}

// IsValid reports whether k is a known pattern kind.
func (k Kind) IsValid() bool {
	return k >= 0 && k < kindCount
}

// String returns the lowercase name of k.
func (k Kind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind looks up a pattern kind by name, ignoring case.
func ParseKind(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range kindNames {
		if n == key {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: pattern kind %q", ErrInvalidEnum, name)
}

// Pattern is a periodic halftone mask placed in world space.
//
// Size must have a non-zero magnitude; a zero size yields degenerate
// (infinite or NaN) intermediate values rather than an error.
type Pattern struct {
	// Origin is the world-space point the cell grid is anchored at.
	Origin Point
	// Size is the period of the grid along its two axes.
	Size Point
	// Angle rotates the grid counter-clockwise around Origin.
	Angle Angle
	// Kind selects the cell shape.
	Kind Kind
}

// DefaultPattern returns a symmetric pattern with a 0.25 unit period,
// anchored at the world origin.
func DefaultPattern() Pattern {
	return Pattern{
		Origin: Point{X: 0, Y: 0},
		Size:   Point{X: 0.25, Y: 0.25},
		Angle:  0,
		Kind:   KindSymmetric,
	}
}

// ToPatternSpace maps a world point into pattern space.
func (p Pattern) ToPatternSpace(pt Point) Point {
	return p.Frame().ToPattern(pt)
}

// FromPatternSpace maps a pattern-space point back into world space.
func (p Pattern) FromPatternSpace(pt Point) Point {
	return p.Frame().ToWorld(pt)
}

// SupersampleWidth returns the pattern-space size of a pixel that is pw
// world units wide: |pw| / |Size|.
func (p Pattern) SupersampleWidth(pw float64) float64 {
	return math.Abs(pw / p.Size.Length())
}

// Mask returns the raw mask value at world point pt, roughly in [0, 1].
func (p Pattern) Mask(pt Point) float64 {
	return p.compile().mask(pt)
}

// Amount returns the coverage amount at world point pt for a local density
// (usually the luma of the pixel underneath) and supersample width. The
// result is always in [0, 1]: 0 selects the dark color and 1 the light one.
//
// A positive supersample width widens the transition between the two into
// an antialiased edge band; zero gives a hard threshold.
func (p Pattern) Amount(pt Point, density, supersample float64) float64 {
	return p.compile().amount(pt, density, supersample)
}

// evaluator is a Pattern with its frame and cell function resolved, so a
// raster pass does not rebuild them per pixel.
type evaluator struct {
	f    Frame
	cell func(u, v float64) float64
}

var cellFuncs = [kindCount]func(u, v float64) float64{
	KindSymmetric:   cellSymmetric,
	KindLightOnDark: cellLightOnDark,
	KindDiamond:     cellDiamond,
	KindStripe:      cellStripe,
}

func (p Pattern) compile() evaluator {
	cell := cellSymmetric
	if p.Kind.IsValid() {
		cell = cellFuncs[p.Kind]
	}
	return evaluator{f: p.Frame(), cell: cell}
}

func (e evaluator) mask(pt Point) float64 {
	q := e.f.ToPattern(pt)
	return e.cell(q.X, q.Y)
}

func (e evaluator) amount(pt Point, density, supersample float64) float64 {
	mask := e.mask(pt)

	ss := math.Abs(supersample)
	if math.IsNaN(ss) {
		ss = 0
	}
	if ss >= 0.5 {
		ss = 0.4999999999
	}

	// Squeeze the mask so the edge band fits inside [0, 1].
	mask = mask*(1-2*ss) + ss
	diff := mask - density

	if ss == 0 {
		if diff >= 0 {
			return 0
		}
		return 1
	}

	a := diff/(2*ss) + 0.5
	switch {
	case math.IsNaN(a):
		return 0
	case a <= 0.01:
		return 1
	case a >= 0.99:
		return 0
	default:
		return 1 - a
	}
}

// fract returns the fractional part of v in [0, 1).
func fract(v float64) float64 {
	f := v - math.Floor(v)
	if f >= 1 {
		return 0
	}
	return f
}

// dotRadius returns the squared distance of (u, v) from the center of its
// unit cell, normalized so the cell corners are at 1.
func dotRadius(u, v float64) float64 {
	x := 2 * (fract(u) - 0.5)
	y := 2 * (fract(v) - 0.5)
	return (x*x + y*y) / 2
}

// shape stretches a mask value away from 0.5 with a signed square root,
// then widens it slightly so both ends of the density range saturate.
func shape(x float64) float64 {
	x = (x - 0.5) * 2
	if x < 0 {
		x = -math.Sqrt(-x)
	} else {
		x = math.Sqrt(x)
	}
	x *= 1.01
	return x/2 + 0.5
}

func cellLightOnDark(u, v float64) float64 {
	return dotRadius(u, v)
}

func cellSymmetric(u, v float64) float64 {
	r1 := dotRadius(u, v)
	r2 := dotRadius(u+0.5, v+0.5)
	return shape(((r2-r1)*((r1+(1-r2))*0.5) + r1) * 2)
}

func cellDiamond(u, v float64) float64 {
	r1 := dotRadius(u, v)
	r2 := dotRadius(u+0.5, v+0.5)
	return shape((r1 + (1 - r2)) * 0.5)
}

func cellStripe(_, v float64) float64 {
	x := fract(v)
	if x > 0.5 {
		x = 1 - x
	}
	return x * 2
}
