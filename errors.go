package halftone

import "errors"

// Errors returned by filter passes and parameter access.
var (
	// ErrCanceled is returned when a progress callback or context asks a
	// pass to stop. Pixels already written are left as they are.
	ErrCanceled = errors.New("halftone: render canceled")

	// ErrUpstream wraps a failure of the upstream layer that renders the
	// base image.
	ErrUpstream = errors.New("halftone: upstream render failed")

	// ErrUnknownParam is returned for a parameter name the filter does not
	// have.
	ErrUnknownParam = errors.New("halftone: unknown parameter")

	// ErrParamType is returned when a parameter value has the wrong type.
	ErrParamType = errors.New("halftone: wrong parameter type")

	// ErrInvalidEnum is returned for an unknown pattern kind or blend method.
	ErrInvalidEnum = errors.New("halftone: invalid enum value")

	// ErrZeroSize is returned by Config.Validate when the pattern size has
	// zero magnitude.
	ErrZeroSize = errors.New("halftone: pattern size must be non-zero")

	// ErrAmountRange is returned by Config.Validate when the amount is
	// outside [0, 1].
	ErrAmountRange = errors.New("halftone: amount must be in [0, 1]")
)

// ErrReadOnly is returned when setting a read-only parameter such as
// "name" or "version".
var ErrReadOnly = errors.New("halftone: parameter is read-only")

// ErrSizeMismatch is returned when a target buffer does not have the pixel
// size its RendDesc describes.
var ErrSizeMismatch = errors.New("halftone: buffer size does not match render description")

// ErrBlurSigma is returned by Surface.Blur for a sigma that is not finite
// or exceeds MaxBlurSigma.
var ErrBlurSigma = errors.New("halftone: blur sigma out of range")
