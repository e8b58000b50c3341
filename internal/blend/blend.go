// Package blend provides the generic color blend primitive.
//
// Blend combines a source color with a destination (backdrop) color under a
// named blend method and an amount (opacity) factor. All colors are
// straight-alpha float colors; callers with premultiplied storage demultiply
// before blending.
package blend

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/halftone/internal/color"
)

// Method represents a blend method.
type Method int

const (
	// Composite draws the source over the destination (Porter-Duff over).
	Composite Method = iota
	// Straight replaces the destination with the source, modulated by amount.
	Straight
	// Onto composites the source over the destination, keeping the
	// destination alpha.
	Onto
	// StraightOnto is Straight restricted to where the destination is opaque.
	StraightOnto
	// Behind draws the source underneath the destination.
	Behind
	// Screen brightens the destination by the source.
	Screen
	// Overlay mixes Multiply and Screen depending on the source.
	Overlay
	// HardLight mixes Multiply and Screen depending on the source channel.
	HardLight
	// Multiply darkens the destination by the source.
	Multiply
	// Divide divides the destination by the source.
	Divide
	// Add adds the alpha-weighted source to the destination.
	Add
	// Subtract subtracts the alpha-weighted source from the destination.
	Subtract
	// Difference takes the absolute difference of source and destination.
	Difference
	// Brighten keeps the lighter channel of source and destination.
	Brighten
	// Darken keeps the darker channel of source and destination.
	Darken
	// Color takes the chroma of the source and the luma of the destination.
	Color
	// Hue takes the hue of the source.
	Hue
	// Saturation takes the saturation of the source.
	Saturation
	// Luminance takes the luma of the source.
	Luminance
	// AlphaOver cuts the destination alpha by the source alpha.
	AlphaOver
	// AlphaBrighten keeps the more transparent of source and destination.
	AlphaBrighten
	// AlphaDarken keeps the more opaque of source and destination.
	AlphaDarken

	methodCount
)

var methodNames = [methodCount]string{
	Composite:     "composite",
	Straight:      "straight",
	Onto:          "onto",
	StraightOnto:  "straight-onto",
	Behind:        "behind",
	Screen:        "screen",
	Overlay:       "overlay",
	HardLight:     "hard-light",
	Multiply:      "multiply",
	Divide:        "divide",
	Add:           "add",
	Subtract:      "subtract",
	Difference:    "difference",
	Brighten:      "brighten",
	Darken:        "darken",
	Color:         "color",
	Hue:           "hue",
	Saturation:    "saturation",
	Luminance:     "luminance",
	AlphaOver:     "alpha-over",
	AlphaBrighten: "alpha-brighten",
	AlphaDarken:   "alpha-darken",
}

// Methods returns every blend method in declaration order.
func Methods() []Method {
	ms := make([]Method, methodCount)
	for i := range ms {
		ms[i] = Method(i)
	}
	return ms
}

// IsValid reports whether m names a known blend method.
func (m Method) IsValid() bool {
	return m >= 0 && m < methodCount
}

// String returns the lowercase name of m.
func (m Method) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod looks up a blend method by name. Matching ignores case, and
// underscores may stand in for hyphens.
func ParseMethod(name string) (Method, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, n := range methodNames {
		if n == key {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("blend: unknown method %q", name)
}

// amountEpsilon is the amount below which every method leaves the
// destination untouched.
const amountEpsilon = 1e-6

var funcs = [methodCount]func(src, dst color.ColorF32, amount float32) color.ColorF32{
	Composite:     composite,
	Straight:      straight,
	Onto:          onto,
	StraightOnto:  straightOnto,
	Behind:        behind,
	Screen:        screen,
	Overlay:       overlay,
	HardLight:     hardLight,
	Multiply:      multiply,
	Divide:        divide,
	Add:           add,
	Subtract:      subtract,
	Difference:    difference,
	Brighten:      brighten,
	Darken:        darken,
	Color:         colorMode,
	Hue:           hue,
	Saturation:    saturation,
	Luminance:     luminance,
	AlphaOver:     alphaOver,
	AlphaBrighten: alphaBrighten,
	AlphaDarken:   alphaDarken,
}

// Blend combines src with dst using method m at the given amount.
// An amount of zero returns dst unchanged for every method. Unknown methods
// fall back to Composite.
func Blend(src, dst color.ColorF32, amount float32, m Method) color.ColorF32 {
	if math.Abs(float64(amount)) <= amountEpsilon {
		return dst
	}
	if !m.IsValid() {
		m = Composite
	}
	return funcs[m](src, dst, amount)
}
