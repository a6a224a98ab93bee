package wheeled

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/pursuit/logging"
	"go.viam.com/pursuit/spatialmath"
	"go.viam.com/pursuit/utils"
)

// Integrator advances the pose of a simulated differential drive base by driving exact arcs
// for a fixed time step. It is not safe for concurrent use.
type Integrator struct {
	pose       spatialmath.Pose2D
	timeStep   float64
	trackWidth float64
	logger     logging.Logger
}

// NewIntegrator returns an integrator starting at initial that advances timeStep seconds per Step.
func NewIntegrator(initial spatialmath.Pose2D, timeStep, trackWidth float64, logger logging.Logger) (*Integrator, error) {
	if err := validateGeometry(timeStep, trackWidth); err != nil {
		return nil, err
	}
	initial.Heading = utils.ModAngDeg(initial.Heading)
	return &Integrator{pose: initial, timeStep: timeStep, trackWidth: trackWidth, logger: logger}, nil
}

// Pose returns the current pose.
func (in *Integrator) Pose() spatialmath.Pose2D {
	return in.pose
}

// TimeStep returns the seconds covered by each Step.
func (in *Integrator) TimeStep() float64 {
	return in.timeStep
}

// TrackWidth returns the distance between the wheel sides.
func (in *Integrator) TrackWidth() float64 {
	return in.trackWidth
}

// InstantaneousCenter returns the point the base rotates about for the given wheel speeds and
// the signed distance to it, positive to the left. ok is false for equal speeds, which drive a
// straight line.
func (in *Integrator) InstantaneousCenter(left, right float64) (center r2.Point, radius float64, ok bool) {
	if left == right {
		return r2.Point{}, 0, false
	}
	radius = in.trackWidth / 2 * (right + left) / (right - left)
	sin, cos := math.Sincos(utils.DegToRad(in.pose.Heading))
	return in.pose.Point.Add(r2.Point{X: -sin, Y: cos}.Mul(radius)), radius, true
}

// Step drives the wheels at left and right for one time step and returns the new pose.
// The base rotates about its instantaneous center by omega*dt, which moves it along the chord
// of that arc. The chord is computed directly so nearly straight arcs, whose center is far
// away, lose no precision. Equal speeds drive straight and opposite speeds spin in place.
func (in *Integrator) Step(left, right float64) spatialmath.Pose2D {
	v, degsPerSec := BodyVelocity(left, right, in.trackWidth)
	dTheta := utils.DegToRad(degsPerSec) * in.timeStep
	chord := v * in.timeStep * sinc(dTheta/2)
	// the chord points halfway between the old and the new heading
	mid := in.pose.Heading + utils.RadToDeg(dTheta/2)
	in.pose.Point = in.pose.Point.Add(spatialmath.HeadingVector(mid).Mul(chord))
	in.pose.Heading = utils.ModAngDeg(in.pose.Heading + utils.RadToDeg(dTheta))
	in.logger.Debugw("base step", "left", left, "right", right, "pose", in.pose.String())
	return in.pose
}

// sinc is sin(x)/x, continuous at 0.
func sinc(x float64) float64 {
	if math.Abs(x) < 1e-4 {
		return 1 - x*x/6
	}
	return math.Sin(x) / x
}

// ApplyPolarDisplacement turns by angleDeg relative to the current heading, then moves distance
// along the new heading.
func (in *Integrator) ApplyPolarDisplacement(distance, angleDeg float64) spatialmath.Pose2D {
	in.pose.Heading = utils.ModAngDeg(in.pose.Heading + angleDeg)
	in.pose.Point = in.pose.Point.Add(in.pose.Forward().Mul(distance))
	return in.pose
}

// ApplyCartesianDisplacement translates by (dx, dy) and faces the direction of travel. A zero
// displacement leaves the heading alone.
func (in *Integrator) ApplyCartesianDisplacement(dx, dy float64) spatialmath.Pose2D {
	d := r2.Point{X: dx, Y: dy}
	in.pose.Point = in.pose.Point.Add(d)
	if !spatialmath.IsZero(d) {
		in.pose.Heading = spatialmath.HeadingOf(d)
	}
	return in.pose
}
