package spline

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/pursuit/utils"
)

const (
	// the dense table used by Resample is this many times finer than the requested spacing
	denseFactor = 100
	// upper bound on the dense table so very long or very finely spaced splines stay bounded in memory
	maxDenseSamples = 1 << 20
	// MaxPathPoints bounds the number of points Resample and Interpolate return.
	MaxPathPoints = 1 << 20
)

// PathPoint is a sample of a spline: its position, its parametric velocity and the arc length
// travelled from t=0.
type PathPoint struct {
	Position  r2.Point `json:"position"`
	Velocity  r2.Point `json:"velocity"`
	ArcLength float64  `json:"arc_length"`
}

func (s *QuinticSpline) sample(t, arcLength float64) PathPoint {
	return PathPoint{Position: s.PositionAt(t), Velocity: s.VelocityAt(t), ArcLength: arcLength}
}

func validateSampling(interval, spacing float64) error {
	if !(interval > 0) || interval > 1 {
		return errors.Wrapf(ErrInvalidParameter, "interval must be in (0, 1], got %v", interval)
	}
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return errors.Wrapf(ErrInvalidParameter, "spacing must be positive, got %v", spacing)
	}
	return nil
}

// pointCount returns ⌊length/spacing⌋, at least 1, or ErrInvalidParameter when the path would
// exceed MaxPathPoints.
func pointCount(length, spacing float64) (int, error) {
	steps := math.Floor(length / spacing)
	if !(steps < MaxPathPoints) {
		return 0, errors.Wrapf(ErrInvalidParameter,
			"spacing %v over a length of %v needs more than %d points", spacing, length, MaxPathPoints)
	}
	return int(math.Max(steps, 1)), nil
}

// Resample returns points approximately spacing apart in arc length. The spline is first sampled
// densely, then each target distance takes the dense sample whose arc length is nearest to it.
// Spacing therefore jitters by up to half a dense step; arc length is still non-decreasing and the
// first and last points are exactly the t=0 and t=1 samples. A spline shorter than spacing
// yields just its two endpoints.
func (s *QuinticSpline) Resample(interval, spacing float64) ([]PathPoint, error) {
	if err := validateSampling(interval, spacing); err != nil {
		return nil, err
	}
	estimate := s.trapezoid(interval, 0, 1)
	if estimate == 0 {
		return []PathPoint{s.sample(0, 0), s.sample(1, 0)}, nil
	}
	if _, err := pointCount(estimate, spacing); err != nil {
		return nil, err
	}

	n := int(math.Ceil(estimate / (spacing / denseFactor)))
	n = int(utils.Clamp(float64(n), denseFactor, maxDenseSamples))

	// segments[k] is the arc length between dense samples k-1 and k
	segments := make([]float64, n+1)
	for k := 1; k <= n; k++ {
		segments[k] = s.segmentLength(interval, float64(k-1)/float64(n), float64(k)/float64(n))
	}
	cumulative := floats.CumSum(make([]float64, n+1), segments)
	total := cumulative[n]

	count, err := pointCount(total, spacing)
	if err != nil {
		return nil, err
	}
	result := make([]PathPoint, count+1)
	result[0] = s.sample(0, 0)
	for j := 1; j < count; j++ {
		k := utils.NearestIndex(cumulative, float64(j)*spacing)
		result[j] = s.sample(float64(k)/float64(n), cumulative[k])
	}
	result[count] = s.sample(1, total)
	return result, nil
}

// Interpolate samples the spline at ⌊arcLength/spacing⌋ equal steps of t, annotating each point
// with its cumulative arc length. Points bunch up where the spline is slow; prefer Resample when
// even spacing matters.
func (s *QuinticSpline) Interpolate(interval, spacing float64) ([]PathPoint, error) {
	if err := validateSampling(interval, spacing); err != nil {
		return nil, err
	}
	count, err := pointCount(s.trapezoid(interval, 0, 1), spacing)
	if err != nil {
		return nil, err
	}
	result := make([]PathPoint, count+1)
	result[0] = s.sample(0, 0)
	for i := 1; i <= count; i++ {
		t0 := float64(i-1) / float64(count)
		t1 := float64(i) / float64(count)
		result[i] = s.sample(t1, result[i-1].ArcLength+s.segmentLength(interval, t0, t1))
	}
	return result, nil
}

// ArcLengths returns the cumulative arc length of every point of path.
func ArcLengths(path []PathPoint) []float64 {
	lengths := make([]float64, len(path))
	for i, p := range path {
		lengths[i] = p.ArcLength
	}
	return lengths
}
