// Package halftone provides a procedural halftone compositing filter.
//
// # Overview
//
// A Filter renders an upstream layer into a buffer and overlays a
// periodic halftone mask on it. The local density of the mask follows the
// luma of each pixel, so dark areas get more dark ink and light areas
// more light ink. The resulting halftone color is composited back over
// the original pixel with a configurable amount and blend method.
//
// # Quick Start
//
//	import "github.com/gogpu/halftone"
//
//	f := halftone.New()
//	f.SetParam(halftone.ParamType, "diamond")
//	f.SetParam(halftone.ParamAngle, 45.0) // degrees
//
//	src := halftone.NewImageLayer(img, halftone.Pt(-2, 1.5), halftone.Pt(2, -1.5))
//	desc := halftone.NewRendDesc(800, 600, src.TL, src.BR)
//	dst := image.NewRGBA(image.Rect(0, 0, desc.W, desc.H))
//	err := f.RenderRGBA(ctx, src, dst, halftone.QualityDefault, desc, nil)
//
// # Pattern
//
// The mask is defined in pattern space: world points are translated by
// -Origin, rotated by -Angle and divided by Size, which gives a unit
// period on both axes. Four cell shapes are available (KindSymmetric,
// KindLightOnDark, KindDiamond, KindStripe). Edges are antialiased over a
// band whose width is one pixel measured in pattern space, so the result
// does not alias when the period nears the pixel size.
//
// # Pixel Formats
//
// RenderSurface works on straight-alpha float pixels (Surface) and
// RenderRGBA on premultiplied 8-bit pixels (*image.RGBA). Both share one
// raster loop; the 8-bit variant demultiplies on read and premultiplies on
// write. Both clamp the written color to [0, 1].
//
// # Cancellation
//
// The upstream render receives the first 95% of the progress range. A
// pass checks for cancellation before the upstream call, after it, before
// each row band and at the final progress report. A pass canceled after
// pixels were written leaves them written and returns ErrCanceled.
//
// # Coordinate System
//
// World coordinates are mapped onto the raster by a RendDesc. Pixel
// widths and heights are signed; a y-up world uses a negative PH.
// Angles are in radians, with Deg converting from degrees.
package halftone

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	VersionMajor = 0
	VersionMinor = 1
	VersionPatch = 0
)
