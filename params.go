package halftone

import (
	"fmt"
	stdcolor "image/color"
	"math"
)

// SetParam sets a named parameter. Accepted value types:
//
//   - origin, offset, size: Point
//   - angle: Angle, or float64 in degrees
//   - type: Kind, int or a kind name such as "diamond"
//   - color_dark, color_light: Color, any image/color.Color, or a hex
//     string such as "#ff8000" or "#ff800080"
//   - amount: float32 or float64 in [0, 1]
//   - blend_method: BlendMethod, int or a method name such as "multiply"
//
// The change applies to passes started afterwards.
func (f *Filter) SetParam(name string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cfg := f.cfg
	if err := cfg.setParam(name, value); err != nil {
		return err
	}
	f.cfg = cfg
	return nil
}

// Param returns the current value of a named parameter.
func (f *Filter) Param(name string) (any, error) {
	return f.Config().param(name)
}

func (c *Config) setParam(name string, value any) error {
	var err error
	switch name {
	case ParamOrigin, ParamOffset:
		c.Pattern.Origin, err = pointParam(name, value)
	case ParamSize:
		c.Pattern.Size, err = pointParam(name, value)
	case ParamAngle:
		switch v := value.(type) {
		case Angle:
			c.Pattern.Angle = v
		case float64:
			c.Pattern.Angle = Deg(v)
		default:
			err = typeError(name, value)
		}
	case ParamType:
		c.Pattern.Kind, err = kindParam(name, value)
	case ParamColorDark:
		c.ColorDark, err = colorParam(name, value)
	case ParamColorLight:
		c.ColorLight, err = colorParam(name, value)
	case ParamAmount:
		var a float64
		switch v := value.(type) {
		case float32:
			a = float64(v)
		case float64:
			a = v
		default:
			return typeError(name, value)
		}
		if !(a >= 0 && a <= 1) || math.IsNaN(a) {
			return fmt.Errorf("%w: %v", ErrAmountRange, a)
		}
		c.Amount = float32(a)
	case ParamBlendMethod:
		c.BlendMethod, err = blendParam(name, value)
	case ParamName, ParamVersion:
		return fmt.Errorf("%w: %q", ErrReadOnly, name)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return err
}

func (c Config) param(name string) (any, error) {
	switch name {
	case ParamOrigin, ParamOffset:
		return c.Pattern.Origin, nil
	case ParamSize:
		return c.Pattern.Size, nil
	case ParamAngle:
		return c.Pattern.Angle, nil
	case ParamType:
		return c.Pattern.Kind, nil
	case ParamColorDark:
		return c.ColorDark, nil
	case ParamColorLight:
		return c.ColorLight, nil
	case ParamAmount:
		return c.Amount, nil
	case ParamBlendMethod:
		return c.BlendMethod, nil
	case ParamName:
		return LayerName, nil
	case ParamVersion:
		return LayerVersion, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

func typeError(name string, value any) error {
	return fmt.Errorf("%w: %q does not accept %T", ErrParamType, name, value)
}

func pointParam(name string, value any) (Point, error) {
	p, ok := value.(Point)
	if !ok {
		return Point{}, typeError(name, value)
	}
	return p, nil
}

func kindParam(name string, value any) (Kind, error) {
	var k Kind
	switch v := value.(type) {
	case Kind:
		k = v
	case int:
		k = Kind(v)
	case string:
		return ParseKind(v)
	default:
		return 0, typeError(name, value)
	}
	if !k.IsValid() {
		return 0, fmt.Errorf("%w: pattern kind %d", ErrInvalidEnum, int(k))
	}
	return k, nil
}

func blendParam(name string, value any) (BlendMethod, error) {
	var m BlendMethod
	switch v := value.(type) {
	case BlendMethod:
		m = v
	case int:
		m = BlendMethod(v)
	case string:
		return ParseBlendMethod(v)
	default:
		return 0, typeError(name, value)
	}
	if !m.IsValid() {
		return 0, fmt.Errorf("%w: blend method %d", ErrInvalidEnum, int(m))
	}
	return m, nil
}

func colorParam(name string, value any) (Color, error) {
	switch v := value.(type) {
	case Color:
		return v, nil
	case string:
		return ParseColor(v)
	case stdcolor.Color:
		return FromColor(v), nil
	}
	return Color{}, typeError(name, value)
}
