package control

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/pursuit/logging"
	"go.viam.com/pursuit/spatialmath"
	"go.viam.com/pursuit/spline"
	"go.viam.com/pursuit/utils"
)

// PurePursuitConfig configures a PurePursuit controller.
type PurePursuitConfig struct {
	// LookaheadDistance is the arc length ahead of the closest point at which the target is picked.
	LookaheadDistance float64 `json:"lookahead_distance"`
	// TrackWidth is the distance between the wheels, used when Velocity is given no width.
	TrackWidth float64 `json:"track_width"`
	// MaxVelocity bounds the target speed and each side's wheel speed.
	MaxVelocity float64 `json:"max_velocity"`
	// MaxAcceleration, when positive, limits the speed so the vehicle can brake to rest at the goal.
	MaxAcceleration float64 `json:"max_acceleration,omitempty"`
	// MinVelocity floors the target speed.
	MinVelocity float64 `json:"min_velocity,omitempty"`
	// CurvatureGain slows the vehicle on tight bends: MaxVelocity / (1 + gain*|curvature|).
	CurvatureGain float64 `json:"curvature_gain,omitempty"`
}

// Validate returns an error wrapping ErrInvalidParameter for the first field out of range.
func (cfg PurePursuitConfig) Validate() error {
	check := func(ok bool, field string, value float64, constraint string) error {
		if ok {
			return nil
		}
		return errors.Wrapf(ErrInvalidParameter, "%s must be %s, got %v", field, constraint, value)
	}
	for _, err := range []error{
		check(cfg.LookaheadDistance > 0 && utils.IsFinite(cfg.LookaheadDistance),
			"lookahead distance", cfg.LookaheadDistance, "positive"),
		check(cfg.TrackWidth > 0 && utils.IsFinite(cfg.TrackWidth), "track width", cfg.TrackWidth, "positive"),
		check(cfg.MaxVelocity > 0 && utils.IsFinite(cfg.MaxVelocity), "max velocity", cfg.MaxVelocity, "positive"),
		check(cfg.MaxAcceleration >= 0, "max acceleration", cfg.MaxAcceleration, "non-negative"),
		check(cfg.MinVelocity >= 0, "min velocity", cfg.MinVelocity, "non-negative"),
		check(cfg.MinVelocity <= cfg.MaxVelocity, "min velocity", cfg.MinVelocity, "at most max velocity"),
		check(cfg.CurvatureGain >= 0, "curvature gain", cfg.CurvatureGain, "non-negative"),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// TrackingState is the controller's view of the path after the latest UpdatePose.
type TrackingState struct {
	ClosestIndex   int
	LookaheadIndex int
	// Lookahead is the path point at LookaheadIndex.
	Lookahead r2.Point
	// Aim is the point steered toward. It equals Lookahead until the lookahead runs past the
	// end of the path, after which it continues along the final segment.
	Aim r2.Point
	// Curvature is the path curvature around the lookahead point.
	Curvature float64
	// SteeringCurvature is the curvature of the arc from the pose to Aim.
	SteeringCurvature float64
	TargetSpeed       float64
	DistanceToGoal    float64
}

// PurePursuit tracks a resampled path by steering toward a point a fixed arc length ahead
// of the closest path point. It is not safe for concurrent use.
type PurePursuit struct {
	cfg        PurePursuitConfig
	path       []spline.PathPoint
	arcLengths []float64
	profile    speedProfile
	pose       spatialmath.Pose2D
	state      TrackingState
	logger     logging.Logger
}

// NewPurePursuit returns a controller following path. The path is copied.
func NewPurePursuit(path []spline.PathPoint, cfg PurePursuitConfig, logger logging.Logger) (*PurePursuit, error) {
	if len(path) == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "path is empty")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	owned := append([]spline.PathPoint(nil), path...)
	arcLengths := spline.ArcLengths(owned)
	for i := 1; i < len(arcLengths); i++ {
		if arcLengths[i] < arcLengths[i-1] {
			return nil, errors.Wrapf(ErrInvalidParameter, "arc length decreases at index %d", i)
		}
	}
	pp := &PurePursuit{
		cfg:        cfg,
		path:       owned,
		arcLengths: arcLengths,
		profile:    newSpeedProfile(owned, cfg),
		logger:     logger,
	}
	pp.state.Lookahead = owned[0].Position
	pp.state.Aim = owned[0].Position
	return pp, nil
}

// Config returns the controller's configuration.
func (pp *PurePursuit) Config() PurePursuitConfig {
	return pp.cfg
}

// Path returns the path being tracked. Callers must not modify it.
func (pp *PurePursuit) Path() []spline.PathPoint {
	return pp.path
}

// Goal returns the final path point.
func (pp *PurePursuit) Goal() r2.Point {
	return pp.path[len(pp.path)-1].Position
}

// UpdatePose records the vehicle pose and recomputes the tracking state from it.
func (pp *PurePursuit) UpdatePose(pose spatialmath.Pose2D) {
	pp.pose = pose
	closest := pp.closestIndex(pose.Point)
	lookahead := pp.lookaheadIndex(closest)
	aim := pp.aimPoint(closest, lookahead)
	steering := steeringCurvature(pose, aim)
	distanceToGoal := spatialmath.Distance(pose.Point, pp.Goal())

	pp.state = TrackingState{
		ClosestIndex:      closest,
		LookaheadIndex:    lookahead,
		Lookahead:         pp.path[lookahead].Position,
		Aim:               aim,
		Curvature:         pathCurvature(pp.path, lookahead),
		SteeringCurvature: steering,
		TargetSpeed:       pp.profile.at(closest, distanceToGoal),
		DistanceToGoal:    distanceToGoal,
	}
	pp.logger.Debugw("pursuit update",
		"pose", pose.String(),
		"closest", closest,
		"lookahead", lookahead,
		"steering_curvature", steering,
		"target_speed", pp.state.TargetSpeed,
	)
}

// closestIndex scans forward from the previous closest index over the points within twice
// the lookahead distance of arc length. It never moves backward.
func (pp *PurePursuit) closestIndex(p r2.Point) int {
	start := pp.state.ClosestIndex
	limit := pp.arcLengths[start] + 2*pp.cfg.LookaheadDistance
	best := start
	bestDist := spatialmath.Distance(p, pp.path[start].Position)
	for i := start + 1; i < len(pp.path) && pp.arcLengths[i] <= limit; i++ {
		// ties move forward
		if d := spatialmath.Distance(p, pp.path[i].Position); d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// lookaheadIndex returns the first index whose arc length reaches the closest point's arc
// length plus the lookahead distance, or the final index.
func (pp *PurePursuit) lookaheadIndex(closest int) int {
	target := pp.arcLengths[closest] + pp.cfg.LookaheadDistance
	idx := utils.ClosestIndex(pp.arcLengths, target)
	if pp.arcLengths[idx] < target {
		idx++
	}
	return lo.Clamp(idx, closest, len(pp.path)-1)
}

func (pp *PurePursuit) aimPoint(closest, lookahead int) r2.Point {
	last := len(pp.path) - 1
	end := pp.path[last].Position
	if lookahead < last || last == 0 {
		return pp.path[lookahead].Position
	}
	overshoot := pp.arcLengths[closest] + pp.cfg.LookaheadDistance - pp.arcLengths[last]
	dir := end.Sub(pp.path[last-1].Position)
	if overshoot <= 0 || spatialmath.IsZero(dir) {
		return end
	}
	return end.Add(dir.Normalize().Mul(overshoot))
}

// steeringCurvature is the curvature of the arc tangent to the pose's heading that passes
// through target, positive when target lies to the left.
func steeringCurvature(pose spatialmath.Pose2D, target r2.Point) float64 {
	local := pose.ToLocal(target)
	d2 := utils.Square(local.X) + utils.Square(local.Y)
	if d2 == 0 {
		return 0
	}
	return 2 * local.Y / d2
}

// State returns a snapshot of the tracking state.
func (pp *PurePursuit) State() TrackingState {
	return pp.state
}

// Pose returns the pose given to the latest UpdatePose.
func (pp *PurePursuit) Pose() spatialmath.Pose2D {
	return pp.pose
}

// ClosestPoint returns the path point nearest the latest pose.
func (pp *PurePursuit) ClosestPoint() spline.PathPoint {
	return pp.path[pp.state.ClosestIndex]
}

// LookaheadPoint returns the lookahead target, clamped to the end of the path.
func (pp *PurePursuit) LookaheadPoint() r2.Point {
	return pp.state.Lookahead
}

// LookaheadCurvature returns the path curvature around the lookahead point.
func (pp *PurePursuit) LookaheadCurvature() float64 {
	return pp.state.Curvature
}

// SteeringCurvature returns the curvature of the arc the vehicle is commanded to drive.
func (pp *PurePursuit) SteeringCurvature() float64 {
	return pp.state.SteeringCurvature
}

// TargetSpeed returns the speed the vehicle center should travel at.
func (pp *PurePursuit) TargetSpeed() float64 {
	return pp.state.TargetSpeed
}

// WheelVelocities returns the left and right wheel speeds that drive the steering arc at the
// target speed. When either side would exceed MaxVelocity both are scaled down by the same
// factor. A non-positive trackWidth uses the configured one.
func (pp *PurePursuit) WheelVelocities(trackWidth float64) (left, right float64) {
	if trackWidth <= 0 {
		trackWidth = pp.cfg.TrackWidth
	}
	v := pp.state.TargetSpeed
	turn := pp.state.SteeringCurvature * trackWidth / 2
	left = v * (1 - turn)
	right = v * (1 + turn)
	if fastest := math.Max(math.Abs(left), math.Abs(right)); fastest > pp.cfg.MaxVelocity {
		scale := pp.cfg.MaxVelocity / fastest
		left *= scale
		right *= scale
	}
	return left, right
}

// Velocity returns one side of WheelVelocities.
func (pp *PurePursuit) Velocity(trackWidth float64, isLeftSide bool) float64 {
	left, right := pp.WheelVelocities(trackWidth)
	if isLeftSide {
		return left
	}
	return right
}

// Done reports whether the closest point is the final path point.
func (pp *PurePursuit) Done() bool {
	return pp.state.ClosestIndex == len(pp.path)-1
}
