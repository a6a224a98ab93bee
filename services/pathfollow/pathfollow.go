// Package pathfollow drives a simulated base along a path with a pure pursuit controller until it
// reaches the goal.
package pathfollow

import (
	"context"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.viam.com/pursuit/components/base/wheeled"
	"go.viam.com/pursuit/control"
	"go.viam.com/pursuit/logging"
	"go.viam.com/pursuit/spatialmath"
)

const (
	defaultTolerance = 0.1
	defaultMaxCycles = 10000
)

var (
	// ErrCycleLimit is returned by Run when the goal is not reached within Config.MaxCycles.
	ErrCycleLimit = errors.New("cycle limit reached before the goal")

	// ErrInvalidParameter is returned for a missing controller or base, or a negative config value.
	ErrInvalidParameter = errors.New("invalid follower parameter")
)

// Config bounds a run. Zero values take the defaults.
type Config struct {
	// Tolerance is the distance from the goal at which a run ends.
	Tolerance float64 `json:"tolerance,omitempty"`
	// MaxCycles caps the number of control cycles in a run.
	MaxCycles int `json:"max_cycles,omitempty"`
	// RecordPoses keeps every pose in the Result.
	RecordPoses bool `json:"record_poses,omitempty"`
}

func (cfg *Config) applyDefaults() {
	if cfg.Tolerance == 0 {
		cfg.Tolerance = defaultTolerance
	}
	if cfg.MaxCycles == 0 {
		cfg.MaxCycles = defaultMaxCycles
	}
}

// Result is the outcome of a run.
type Result struct {
	// Poses holds the starting pose followed by the pose after every cycle, when recorded.
	Poses          []spatialmath.Pose2D
	Final          spatialmath.Pose2D
	Cycles         int
	DistanceToGoal float64
}

// Follower runs the control cycle: the controller reads the base pose, commands wheel speeds and
// the base integrates them for one time step. It is not safe for concurrent use.
type Follower struct {
	ctrl   *control.PurePursuit
	base   *wheeled.Integrator
	goal   r2.Point
	cfg    Config
	logger logging.Logger

	cycles int
	poses  []spatialmath.Pose2D
}

// NewFollower returns a follower steering base toward goal with ctrl.
func NewFollower(
	ctrl *control.PurePursuit,
	base *wheeled.Integrator,
	goal r2.Point,
	cfg Config,
	logger logging.Logger,
) (*Follower, error) {
	if ctrl == nil || base == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "follower needs a controller and a base")
	}
	if cfg.Tolerance < 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "tolerance must not be negative, got %v", cfg.Tolerance)
	}
	if cfg.MaxCycles < 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "max cycles must not be negative, got %d", cfg.MaxCycles)
	}
	cfg.applyDefaults()
	f := &Follower{ctrl: ctrl, base: base, goal: goal, cfg: cfg, logger: logger}
	if cfg.RecordPoses {
		f.poses = []spatialmath.Pose2D{base.Pose()}
	}
	return f, nil
}

// Config returns the follower's config with defaults applied.
func (f *Follower) Config() Config {
	return f.cfg
}

// Cycles returns the number of cycles run so far.
func (f *Follower) Cycles() int {
	return f.cycles
}

// DistanceToGoal returns the distance from the base to the goal.
func (f *Follower) DistanceToGoal() float64 {
	return spatialmath.Distance(f.base.Pose().Point, f.goal)
}

// Step runs a single control cycle and returns the new base pose.
func (f *Follower) Step() spatialmath.Pose2D {
	f.ctrl.UpdatePose(f.base.Pose())
	left, right := f.ctrl.WheelVelocities(f.base.TrackWidth())
	pose := f.base.Step(left, right)
	f.cycles++
	if f.cfg.RecordPoses {
		f.poses = append(f.poses, pose)
	}
	return pose
}

// Run steps until the base is within tolerance of the goal. The context is checked between
// cycles. On cancellation or ErrCycleLimit the partial result is returned with the error.
func (f *Follower) Run(ctx context.Context) (*Result, error) {
	f.logger.Infow("following path",
		"start", f.base.Pose().String(),
		"goal", f.goal,
		"tolerance", f.cfg.Tolerance,
		"max_cycles", f.cfg.MaxCycles,
	)
	for f.DistanceToGoal() > f.cfg.Tolerance {
		if err := ctx.Err(); err != nil {
			return f.result(), err
		}
		if f.cycles >= f.cfg.MaxCycles {
			res := f.result()
			f.logger.Warnw("giving up", "cycles", res.Cycles, "distance_to_goal", res.DistanceToGoal)
			return res, errors.Wrapf(ErrCycleLimit, "%.4f from goal after %d cycles", res.DistanceToGoal, res.Cycles)
		}
		f.Step()
	}
	res := f.result()
	f.logger.Infow("reached goal", "cycles", res.Cycles, "pose", res.Final.String(), "distance_to_goal", res.DistanceToGoal)
	return res, nil
}

func (f *Follower) result() *Result {
	return &Result{
		Poses:          append([]spatialmath.Pose2D(nil), f.poses...),
		Final:          f.base.Pose(),
		Cycles:         f.cycles,
		DistanceToGoal: f.DistanceToGoal(),
	}
}
