package control

import (
	"math"

	"github.com/samber/lo"

	"go.viam.com/pursuit/spatialmath"
	"go.viam.com/pursuit/spline"
)

// speedProfile holds the curvature limited speed of every path point. The deceleration limit
// depends on the remaining distance and is applied at lookup time.
type speedProfile struct {
	caps   []float64
	maxAcc float64
	minVel float64
}

func newSpeedProfile(path []spline.PathPoint, cfg PurePursuitConfig) speedProfile {
	caps := lo.Map(path, func(_ spline.PathPoint, i int) float64 {
		return cfg.MaxVelocity / (1 + cfg.CurvatureGain*math.Abs(pathCurvature(path, i)))
	})
	return speedProfile{caps: caps, maxAcc: cfg.MaxAcceleration, minVel: cfg.MinVelocity}
}

// at returns the target speed at index with distanceToGoal left to travel.
func (p speedProfile) at(index int, distanceToGoal float64) float64 {
	vel := p.caps[index]
	if p.maxAcc > 0 {
		vel = math.Min(vel, math.Sqrt(2*p.maxAcc*math.Max(distanceToGoal, 0)))
	}
	return math.Max(vel, p.minVel)
}

// pathCurvature is the curvature of the three consecutive points centered on index, shifted
// inward at either end of the path.
func pathCurvature(path []spline.PathPoint, index int) float64 {
	if len(path) < 3 {
		return 0
	}
	c := lo.Clamp(index, 1, len(path)-2)
	return spatialmath.Curvature(path[c-1].Position, path[c].Position, path[c+1].Position)
}
