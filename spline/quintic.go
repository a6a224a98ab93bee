// Package spline fits quintic polynomial trajectories between two boundary states and samples them
// into discrete, arc-length annotated paths.
//
// A spline is parameterized by t in [0, 1]. Querying outside that range extrapolates the polynomial.
package spline

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/pursuit/utils"
)

// CoefficientMode selects how the polynomial coefficients are derived from the boundary states.
type CoefficientMode int

const (
	// CoefficientsCompat uses the legacy coefficient formulas and rescales each axis so the
	// coefficient vector sums to the endpoint coordinate. Position matches at both ends; velocity and
	// acceleration at t=0 are scaled by the same factor as the non-constant coefficients.
	CoefficientsCompat CoefficientMode = iota
	// CoefficientsHermite uses the quintic Hermite basis directly. All six boundary conditions hold.
	CoefficientsHermite
)

func (m CoefficientMode) String() string {
	switch m {
	case CoefficientsCompat:
		return "compat"
	case CoefficientsHermite:
		return "hermite"
	}
	return "unknown"
}

// CoefficientModeFromString parses "compat" or "hermite". The empty string is compat.
func CoefficientModeFromString(s string) (CoefficientMode, error) {
	switch s {
	case "", "compat":
		return CoefficientsCompat, nil
	case "hermite":
		return CoefficientsHermite, nil
	}
	return CoefficientsCompat, errors.Wrapf(ErrInvalidParameter, "unknown coefficient mode %q", s)
}

type options struct {
	mode CoefficientMode
}

// Option configures a QuinticSpline.
type Option func(*options)

// WithCoefficientMode overrides the default CoefficientsCompat mode.
func WithCoefficientMode(mode CoefficientMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// QuinticSpline is a degree five polynomial in t for each axis. It is immutable once built.
type QuinticSpline struct {
	start BoundaryState
	end   BoundaryState
	mode  CoefficientMode

	// index i is the coefficient of t^i
	xCoeffs [6]float64
	yCoeffs [6]float64

	degeneracy error
}

// NewQuinticSpline fits a spline from start to end. It never fails: boundary states that would
// require dividing by zero produce a stationary fallback, reported by Degeneracy.
func NewQuinticSpline(start, end BoundaryState, opts ...Option) *QuinticSpline {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	s := &QuinticSpline{start: start, end: end, mode: o.mode}

	if o.mode == CoefficientsHermite {
		s.xCoeffs = hermiteCoefficients(start, end, axisX)
		s.yCoeffs = hermiteCoefficients(start, end, axisY)
		return s
	}

	if start.Position == end.Position {
		s.xCoeffs = stationary(start.Position.X)
		s.yCoeffs = stationary(start.Position.Y)
		s.degeneracy = errors.Wrapf(ErrDegenerateGeometry, "start and end positions coincide at %v", start.Position)
		return s
	}

	var errX, errY error
	s.xCoeffs, errX = rescale(compatCoefficients(start, end, axisX), axisX.of(end.Position), axisX)
	s.yCoeffs, errY = rescale(compatCoefficients(start, end, axisY), axisY.of(end.Position), axisY)
	if errX != nil {
		s.degeneracy = errX
	} else {
		s.degeneracy = errY
	}
	return s
}

func compatCoefficients(start, end BoundaryState, a axis) [6]float64 {
	p0, v0, a0 := a.of(start.Position), a.of(start.Velocity), a.of(start.Acceleration)
	p1, v1, a1 := a.of(end.Position), a.of(end.Velocity), a.of(end.Acceleration)
	dp := p1 - p0
	return [6]float64{
		p0,
		v0,
		0.5 * a0,
		10*dp - (4*v1 + 6*v0) - (1.5*a0 - 0.5*a1),
		15*dp + 7*v1 + 8*v0 + 1.5*a0 - a1,
		6*dp - 3*(v1+v0) + 0.5*(a1-a0),
	}
}

func hermiteCoefficients(start, end BoundaryState, a axis) [6]float64 {
	p0, v0, a0 := a.of(start.Position), a.of(start.Velocity), a.of(start.Acceleration)
	p1, v1, a1 := a.of(end.Position), a.of(end.Velocity), a.of(end.Acceleration)
	dp := p1 - p0
	return [6]float64{
		p0,
		v0,
		0.5 * a0,
		10*dp - 6*v0 - 4*v1 - 1.5*a0 + 0.5*a1,
		-15*dp + 8*v0 + 7*v1 + 1.5*a0 - a1,
		6*dp - 3*v0 - 3*v1 - 0.5*a0 + 0.5*a1,
	}
}

// rescale scales the non-constant coefficients so that the polynomial evaluates to endpoint at t=1
// while the constant term keeps the start coordinate. An axis that does not move keeps its raw
// coefficients, which already return to the start; a sum within rounding of zero is treated as zero.
func rescale(raw [6]float64, endpoint float64, a axis) ([6]float64, error) {
	target := endpoint - raw[0]
	if target == 0 {
		return raw, nil
	}
	var sum, magnitude float64
	for _, c := range raw[1:] {
		sum += c
		magnitude = math.Max(magnitude, math.Abs(c))
	}
	if math.Abs(sum) <= utils.DefaultEpsilon*math.Max(1, magnitude) {
		return stationary(raw[0]), errors.Wrapf(ErrDegenerateGeometry,
			"%s coefficients sum to zero but the endpoint is %v away", a, target)
	}
	scale := target / sum
	scaled := raw
	for i := 1; i < len(scaled); i++ {
		scaled[i] *= scale
	}
	return scaled, nil
}

func stationary(p float64) [6]float64 {
	return [6]float64{p}
}

// Degeneracy returns an error wrapping ErrDegenerateGeometry if the fit fell back to a stationary
// coordinate, nil otherwise.
func (s *QuinticSpline) Degeneracy() error {
	return s.degeneracy
}

// Start returns the boundary state at t=0.
func (s *QuinticSpline) Start() BoundaryState {
	return s.start
}

// End returns the boundary state at t=1.
func (s *QuinticSpline) End() BoundaryState {
	return s.end
}

// Mode returns the coefficient mode the spline was built with.
func (s *QuinticSpline) Mode() CoefficientMode {
	return s.mode
}

// Coefficients returns copies of the x and y coefficients, ascending power.
func (s *QuinticSpline) Coefficients() (x, y [6]float64) {
	return s.xCoeffs, s.yCoeffs
}

// PositionAt returns the point at parameter t.
func (s *QuinticSpline) PositionAt(t float64) r2.Point {
	return r2.Point{X: horner(s.xCoeffs[:], t), Y: horner(s.yCoeffs[:], t)}
}

// VelocityAt returns the first derivative with respect to t.
func (s *QuinticSpline) VelocityAt(t float64) r2.Point {
	dx, dy := derivative(s.xCoeffs), derivative(s.yCoeffs)
	return r2.Point{X: horner(dx[:], t), Y: horner(dy[:], t)}
}

// AccelerationAt returns the second derivative with respect to t.
func (s *QuinticSpline) AccelerationAt(t float64) r2.Point {
	dx, dy := secondDerivative(s.xCoeffs), secondDerivative(s.yCoeffs)
	return r2.Point{X: horner(dx[:], t), Y: horner(dy[:], t)}
}

// SpeedAt returns the magnitude of VelocityAt(t).
func (s *QuinticSpline) SpeedAt(t float64) float64 {
	return s.VelocityAt(t).Norm()
}

func horner(coeffs []float64, t float64) float64 {
	var result float64
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = result*t + coeffs[i]
	}
	return result
}

func derivative(c [6]float64) [5]float64 {
	var d [5]float64
	for i := 1; i < len(c); i++ {
		d[i-1] = float64(i) * c[i]
	}
	return d
}

func secondDerivative(c [6]float64) [4]float64 {
	var d [4]float64
	for i := 2; i < len(c); i++ {
		d[i-2] = float64(i*(i-1)) * c[i]
	}
	return d
}
