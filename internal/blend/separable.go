package blend

import "github.com/gogpu/halftone/internal/color"

// perChannel applies fn to each RGB channel of a and b, keeping a's alpha.
func perChannel(a, b color.ColorF32, fn func(s, d float32) float32) color.ColorF32 {
	return color.ColorF32{R: fn(a.R, b.R), G: fn(a.G, b.G), B: fn(a.B, b.B), A: a.A}
}

// invertIfNegative lets negative amounts apply the inverse source.
func invertIfNegative(src color.ColorF32, amount float32) (color.ColorF32, float32) {
	if amount < 0 {
		return src.Inverse(), -amount
	}
	return src, amount
}

func screen(src, dst color.ColorF32, amount float32) color.ColorF32 {
	src, amount = invertIfNegative(src, amount)
	mixed := perChannel(src, dst, func(s, d float32) float32 {
		return 1 - (1-s)*(1-d)
	})
	return onto(mixed, dst, amount)
}

func overlay(src, dst color.ColorF32, amount float32) color.ColorF32 {
	src, amount = invertIfNegative(src, amount)
	mixed := perChannel(src, dst, func(s, d float32) float32 {
		mul := s * d
		scr := 1 - (1-s)*(1-d)
		return s*scr + (1-s)*mul
	})
	return onto(mixed, dst, amount)
}

func hardLight(src, dst color.ColorF32, amount float32) color.ColorF32 {
	src, amount = invertIfNegative(src, amount)
	mixed := perChannel(src, dst, func(s, d float32) float32 {
		if s > 0.5 {
			return 1 - (1-(2*s-1))*(1-d)
		}
		return d * (2 * s)
	})
	return onto(mixed, dst, amount)
}

func multiply(src, dst color.ColorF32, amount float32) color.ColorF32 {
	src, amount = invertIfNegative(src, amount)
	k := amount * src.A
	return perChannel(dst, src, func(d, s float32) float32 {
		return (d*s-d)*k + d
	})
}

func divide(src, dst color.ColorF32, amount float32) color.ColorF32 {
	k := amount * src.A
	return perChannel(dst, src, func(d, s float32) float32 {
		// epsilon keeps a black source finite
		return (d/(s+color.Epsilon)-d)*k + d
	})
}

func add(src, dst color.ColorF32, amount float32) color.ColorF32 {
	k := src.A * amount
	return perChannel(dst, src, func(d, s float32) float32 {
		return d + s*k
	})
}

func subtract(src, dst color.ColorF32, amount float32) color.ColorF32 {
	k := src.A * amount
	return perChannel(dst, src, func(d, s float32) float32 {
		return d - s*k
	})
}

func difference(src, dst color.ColorF32, amount float32) color.ColorF32 {
	k := src.A * amount
	return perChannel(dst, src, func(d, s float32) float32 {
		return abs32(d - s*k)
	})
}

func brighten(src, dst color.ColorF32, amount float32) color.ColorF32 {
	k := src.A * amount
	return perChannel(dst, src, func(d, s float32) float32 {
		return max(d, s*k)
	})
}

func darken(src, dst color.ColorF32, amount float32) color.ColorF32 {
	k := src.A * amount
	return perChannel(dst, src, func(d, s float32) float32 {
		return min(d, (s-1)*k+1)
	})
}
