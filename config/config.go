// Package config defines the scenario a path following run is built from: the boundary states of
// the spline, how it is sampled, the controller and the simulated base.
package config

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/pursuit/control"
	"go.viam.com/pursuit/services/pathfollow"
	"go.viam.com/pursuit/spatialmath"
	"go.viam.com/pursuit/spline"
	"go.viam.com/pursuit/utils"
)

// Sampling names how a spline is turned into a path.
type Sampling string

const (
	// SamplingResample places points evenly in arc length.
	SamplingResample Sampling = "resample"
	// SamplingInterpolate places points evenly in the spline parameter.
	SamplingInterpolate Sampling = "interpolate"
)

// Defaults describe a diagonal run from the origin to (100, 100).
const (
	DefaultInterval          = 1e-4
	DefaultSpacing           = 6.0
	DefaultLookaheadDistance = 10.0
	DefaultMaxVelocity       = 12.0
	DefaultTrackWidth        = 34.0
	DefaultTimeStep          = 0.02
)

// PoseConfig is a pose in a scenario file, heading in degrees.
type PoseConfig struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

// Scenario is everything needed to generate a path and drive a simulated base along it.
type Scenario struct {
	Start spline.BoundaryState `json:"start"`
	End   spline.BoundaryState `json:"end"`
	// Coefficients is "compat" (default) or "hermite".
	Coefficients string `json:"coefficients,omitempty"`

	Sampling Sampling `json:"sampling,omitempty"`
	// Interval is the trapezoid step in the spline parameter used for arc length.
	Interval float64 `json:"interval,omitempty"`
	// Spacing is the target arc length between path points.
	Spacing float64 `json:"spacing,omitempty"`

	Controller control.PurePursuitConfig `json:"controller"`
	TimeStep   float64                   `json:"time_step,omitempty"`
	// InitialPose defaults to the start position facing along the start velocity.
	InitialPose *PoseConfig       `json:"initial_pose,omitempty"`
	Follow      pathfollow.Config `json:"follow"`

	ConfigFilePath string `json:"-"`
}

// DefaultScenario returns the diagonal scenario with every default applied.
func DefaultScenario() *Scenario {
	s := &Scenario{
		Start: spline.NewBoundaryState(r2.Point{}, r2.Point{X: 1, Y: 1}, r2.Point{}),
		End:   spline.NewBoundaryState(r2.Point{X: 100, Y: 100}, r2.Point{}, r2.Point{}),
	}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults fills every zero valued optional field.
func (s *Scenario) ApplyDefaults() {
	if s.Coefficients == "" {
		s.Coefficients = spline.CoefficientsCompat.String()
	}
	if s.Sampling == "" {
		s.Sampling = SamplingResample
	}
	if s.Interval == 0 {
		s.Interval = DefaultInterval
	}
	if s.Spacing == 0 {
		s.Spacing = DefaultSpacing
	}
	if s.Controller.LookaheadDistance == 0 {
		s.Controller.LookaheadDistance = DefaultLookaheadDistance
	}
	if s.Controller.MaxVelocity == 0 {
		s.Controller.MaxVelocity = DefaultMaxVelocity
	}
	if s.Controller.TrackWidth == 0 {
		s.Controller.TrackWidth = DefaultTrackWidth
	}
	if s.TimeStep == 0 {
		s.TimeStep = DefaultTimeStep
	}
}

// Validate returns every invalid field at once. path prefixes the messages.
func (s *Scenario) Validate(path string) error {
	var errs error
	positive := func(field string, value float64) {
		if !(value > 0) || !utils.IsFinite(value) {
			errs = multierr.Append(errs, utils.NewOutOfRangeError(path, field, value, "positive"))
		}
	}
	nonNegative := func(field string, value float64) {
		if !(value >= 0) || !utils.IsFinite(value) {
			errs = multierr.Append(errs, utils.NewOutOfRangeError(path, field, value, "non-negative"))
		}
	}

	if !utils.IsFinite(s.Start.Position.X, s.Start.Position.Y, s.End.Position.X, s.End.Position.Y) {
		errs = multierr.Append(errs, utils.NewConfigValidationFieldRequiredError(path, "start.position and end.position"))
	}
	if _, err := spline.CoefficientModeFromString(s.Coefficients); err != nil {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path, err))
	}
	switch s.Sampling {
	case SamplingResample, SamplingInterpolate:
	default:
		errs = multierr.Append(errs, utils.NewConfigValidationError(path, errors.Errorf("unknown sampling %q", s.Sampling)))
	}
	positive("interval", s.Interval)
	if s.Interval > 1 {
		errs = multierr.Append(errs, utils.NewOutOfRangeError(path, "interval", s.Interval, "at most 1"))
	}
	positive("spacing", s.Spacing)
	positive("controller.lookahead_distance", s.Controller.LookaheadDistance)
	positive("controller.track_width", s.Controller.TrackWidth)
	positive("controller.max_velocity", s.Controller.MaxVelocity)
	nonNegative("controller.max_acceleration", s.Controller.MaxAcceleration)
	nonNegative("controller.min_velocity", s.Controller.MinVelocity)
	nonNegative("controller.curvature_gain", s.Controller.CurvatureGain)
	if s.Controller.MinVelocity > s.Controller.MaxVelocity {
		errs = multierr.Append(errs, utils.NewOutOfRangeError(path, "controller.min_velocity",
			s.Controller.MinVelocity, "at most controller.max_velocity"))
	}
	positive("time_step", s.TimeStep)
	nonNegative("follow.tolerance", s.Follow.Tolerance)
	if s.Follow.MaxCycles < 0 {
		errs = multierr.Append(errs, utils.NewOutOfRangeError(path, "follow.max_cycles",
			float64(s.Follow.MaxCycles), "non-negative"))
	}
	return errs
}

// CoefficientMode returns the parsed coefficient mode.
func (s *Scenario) CoefficientMode() (spline.CoefficientMode, error) {
	return spline.CoefficientModeFromString(s.Coefficients)
}

// Spline builds the spline between the start and end states.
func (s *Scenario) Spline() (*spline.QuinticSpline, error) {
	mode, err := s.CoefficientMode()
	if err != nil {
		return nil, err
	}
	return spline.NewQuinticSpline(s.Start, s.End, spline.WithCoefficientMode(mode)), nil
}

// Path samples sp according to the scenario's sampling settings.
func (s *Scenario) Path(sp *spline.QuinticSpline) ([]spline.PathPoint, error) {
	if s.Sampling == SamplingInterpolate {
		return sp.Interpolate(s.Interval, s.Spacing)
	}
	return sp.Resample(s.Interval, s.Spacing)
}

// StartPose returns the initial pose of the simulated base.
func (s *Scenario) StartPose() spatialmath.Pose2D {
	if s.InitialPose != nil {
		return spatialmath.NewPose2D(s.InitialPose.X, s.InitialPose.Y, s.InitialPose.Heading)
	}
	return spatialmath.Pose2D{Point: s.Start.Position, Heading: spatialmath.HeadingOf(s.Start.Velocity)}
}
