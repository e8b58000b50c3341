package blend

import "github.com/gogpu/halftone/internal/color"

// The non-separable methods replace one YUV property of the destination with
// the source's and fade the change in by amount and source alpha.

// fadeIn returns dst moved toward target by amount*src.A, alpha included.
func fadeIn(target, src, dst color.ColorF32, amount float32) color.ColorF32 {
	return target.Sub(dst).Scale(amount * src.A).Add(dst)
}

func colorMode(src, dst color.ColorF32, amount float32) color.ColorF32 {
	return fadeIn(dst.WithUV(src.U(), src.V()), src, dst, amount)
}

func hue(src, dst color.ColorF32, amount float32) color.ColorF32 {
	return fadeIn(dst.WithHue(src.Hue()), src, dst, amount)
}

func saturation(src, dst color.ColorF32, amount float32) color.ColorF32 {
	return fadeIn(dst.WithSaturation(src.Saturation()), src, dst, amount)
}

func luminance(src, dst color.ColorF32, amount float32) color.ColorF32 {
	return fadeIn(dst.WithY(src.Y()), src, dst, amount)
}
