// Package filter provides raster pre-filters for gogpu/halftone.
//
// The only filter is a separable Gaussian blur over straight-alpha float
// buffers. It softens the density source of a halftone pass so that fine
// texture below the pattern period does not break dots apart.
//
// Blurring happens on premultiplied values, so transparent pixels do not
// bleed their invisible color into their neighbors. Rows are processed in
// parallel bands; the output does not depend on the worker count.
package filter
