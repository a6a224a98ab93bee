package spline

import "github.com/pkg/errors"

var (
	// ErrDegenerateGeometry is reported when the boundary states cannot be fit without dividing by
	// zero. The spline falls back to a stationary coordinate instead of producing NaN.
	ErrDegenerateGeometry = errors.New("degenerate spline geometry")

	// ErrInvalidParameter is returned for non-positive sampling intervals or spacings and inverted
	// parameter ranges.
	ErrInvalidParameter = errors.New("invalid spline parameter")
)
