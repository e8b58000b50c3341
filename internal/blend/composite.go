package blend

import "github.com/gogpu/halftone/internal/color"

// composite is Porter-Duff source-over with the source alpha scaled by amount.
func composite(src, dst color.ColorF32, amount float32) color.ColorF32 {
	aSrc := src.A * amount
	aDst := dst.A

	outA := aSrc + aDst*(1-aSrc)
	if abs32(outA) <= color.Epsilon {
		return color.ColorF32{}
	}

	inv := 1 - aSrc
	return color.ColorF32{
		R: (src.R*aSrc + dst.R*aDst*inv) / outA,
		G: (src.G*aSrc + dst.G*aDst*inv) / outA,
		B: (src.B*aSrc + dst.B*aDst*inv) / outA,
		A: outA,
	}
}

// straight interpolates the alpha-weighted colors of dst and src:
//
//	a_out = (a_src - a_dst)*amount + a_dst
//	c_out = ((c_src*a_src - c_dst*a_dst)*amount + c_dst*a_dst) / a_out
func straight(src, dst color.ColorF32, amount float32) color.ColorF32 {
	outA := (src.A-dst.A)*amount + dst.A
	if abs32(outA) <= color.Epsilon {
		return color.ColorF32{}
	}

	mix := func(s, d float32) float32 {
		return ((s*src.A-d*dst.A)*amount + d*dst.A) / outA
	}
	return color.ColorF32{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: outA,
	}
}

func onto(src, dst color.ColorF32, amount float32) color.ColorF32 {
	return composite(src, dst.WithAlpha(1), amount).WithAlpha(dst.A)
}

func straightOnto(src, dst color.ColorF32, amount float32) color.ColorF32 {
	return straight(src.WithAlpha(src.A*dst.A), dst, amount)
}

func behind(src, dst color.ColorF32, amount float32) color.ColorF32 {
	if src.A == 0 {
		// keep a trace of the source so its color survives under dst
		src.A = color.Epsilon * amount
	} else {
		src.A *= amount
	}
	return composite(dst, src, 1)
}

func alphaOver(src, dst color.ColorF32, amount float32) color.ColorF32 {
	cut := dst.WithAlpha((1 - src.A) * dst.A)
	return straight(cut, dst, amount)
}

func alphaBrighten(src, dst color.ColorF32, amount float32) color.ColorF32 {
	if src.A < dst.A*amount {
		return src.WithAlpha(src.A * amount)
	}
	return dst
}

func alphaDarken(src, dst color.ColorF32, amount float32) color.ColorF32 {
	if src.A*amount > dst.A {
		return src.WithAlpha(src.A * amount)
	}
	return dst
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
