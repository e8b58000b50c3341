package halftone

import (
	"fmt"
	"math"

	"github.com/gogpu/halftone/internal/blend"
	"github.com/gogpu/halftone/internal/color"
)

// BlendMethod selects how the halftone color is composited over the
// original pixel.
type BlendMethod = blend.Method

// Blend methods.
const (
	BlendComposite     = blend.Composite
	BlendStraight      = blend.Straight
	BlendOnto          = blend.Onto
	BlendStraightOnto  = blend.StraightOnto
	BlendBehind        = blend.Behind
	BlendScreen        = blend.Screen
	BlendOverlay       = blend.Overlay
	BlendHardLight     = blend.HardLight
	BlendMultiply      = blend.Multiply
	BlendDivide        = blend.Divide
	BlendAdd           = blend.Add
	BlendSubtract      = blend.Subtract
	BlendDifference    = blend.Difference
	BlendBrighten      = blend.Brighten
	BlendDarken        = blend.Darken
	BlendColor         = blend.Color
	BlendHue           = blend.Hue
	BlendSaturation    = blend.Saturation
	BlendLuminance     = blend.Luminance
	BlendAlphaOver     = blend.AlphaOver
	BlendAlphaBrighten = blend.AlphaBrighten
	BlendAlphaDarken   = blend.AlphaDarken
)

// BlendMethods returns every blend method.
func BlendMethods() []BlendMethod {
	return blend.Methods()
}

// ParseBlendMethod looks up a blend method by name, e.g. "straight" or
// "hard-light".
func ParseBlendMethod(name string) (BlendMethod, error) {
	m, err := blend.ParseMethod(name)
	if err != nil {
		return 0, fmt.Errorf("%w: blend method %q", ErrInvalidEnum, name)
	}
	return m, nil
}

// Blend combines src over dst with the given method and amount. It is the
// same primitive the filter composites with.
func Blend(src, dst Color, amount float32, m BlendMethod) Color {
	return blend.Blend(src, dst, amount, m)
}

// Config is a complete, immutable-by-value filter configuration. A pass
// works on its own copy, so changing a Filter's configuration never affects
// a pass in flight.
type Config struct {
	Pattern Pattern

	// ColorDark is used where coverage is 0.
	ColorDark Color
	// ColorLight is used where coverage is 1.
	ColorLight Color

	// Amount is the opacity of the halftone over the original, in [0, 1].
	Amount float32
	// BlendMethod composites the halftone color over the original.
	BlendMethod BlendMethod
}

// DefaultConfig returns the default configuration: the default pattern,
// black and white endpoint colors, full amount and straight blending.
func DefaultConfig() Config {
	return Config{
		Pattern:     DefaultPattern(),
		ColorDark:   Black,
		ColorLight:  White,
		Amount:      1,
		BlendMethod: BlendStraight,
	}
}

// Validate reports configuration errors a pass does not defend against.
func (c Config) Validate() error {
	if l := c.Pattern.Size.Length(); l == 0 || math.IsNaN(l) {
		return ErrZeroSize
	}
	if !(c.Amount >= 0 && c.Amount <= 1) {
		return fmt.Errorf("%w: %v", ErrAmountRange, c.Amount)
	}
	if !c.Pattern.Kind.IsValid() {
		return fmt.Errorf("%w: pattern kind %d", ErrInvalidEnum, int(c.Pattern.Kind))
	}
	if !c.BlendMethod.IsValid() {
		return fmt.Errorf("%w: blend method %d", ErrInvalidEnum, int(c.BlendMethod))
	}
	return nil
}

// IsSolidColor reports whether the composite is a plain replacement:
// full amount with straight blending. The resolved halftone color can
// then be written without blending.
func (c Config) IsSolidColor() bool {
	return c.Amount == 1 && c.BlendMethod == BlendStraight
}

// Resolve returns the halftone color for world point p over base.
// Coverage is evaluated against the luma of base; the result takes the
// alpha of base.
func (c Config) Resolve(p Point, supersample float64, base Color) Color {
	r := c.resolver()
	return r.resolve(p, supersample, base)
}

// Composite resolves the halftone color for p over base and composites it
// according to Amount and BlendMethod, taking the solid-color shortcut
// when it applies.
func (c Config) Composite(p Point, supersample float64, base Color) Color {
	r := c.resolver()
	return r.composite(p, supersample, base)
}

// resolver holds everything a pass needs per pixel, computed once.
type resolver struct {
	ev          evaluator
	dark, light Color
	amount      float32
	method      BlendMethod
	solid       bool
}

func (c Config) resolver() resolver {
	return resolver{
		ev:     c.Pattern.compile(),
		dark:   c.ColorDark,
		light:  c.ColorLight,
		amount: c.Amount,
		method: c.BlendMethod,
		solid:  c.IsSolidColor(),
	}
}

func (r *resolver) resolve(p Point, supersample float64, base Color) Color {
	amount := r.ev.amount(p, float64(base.Y()), supersample)

	var half Color
	switch {
	case amount <= 0:
		half = r.dark
	case amount >= 1:
		half = r.light
	default:
		half = blend.Blend(r.light, r.dark, float32(amount), blend.Straight)
	}
	return half.WithAlpha(base.A)
}

func (r *resolver) composite(p Point, supersample float64, base Color) Color {
	half := r.resolve(p, supersample, base)
	if r.solid {
		// Straight blending drops the color of a fully transparent result.
		if math.Abs(float64(half.A)) <= color.Epsilon {
			return Transparent
		}
		return half
	}
	return blend.Blend(half, base, r.amount, r.method)
}
