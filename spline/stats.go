package spline

import (
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Spacing summarizes the arc-length gaps between consecutive path points.
type Spacing struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// SpacingStats measures how evenly path is spaced. It needs at least two points.
func SpacingStats(path []PathPoint) (Spacing, error) {
	if len(path) < 2 {
		return Spacing{}, errors.Wrapf(ErrInvalidParameter, "need at least two points, got %d", len(path))
	}
	gaps := make(stats.Float64Data, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		gaps = append(gaps, path[i].ArcLength-path[i-1].ArcLength)
	}

	var out Spacing
	var err, e error
	out.Mean, e = gaps.Mean()
	err = multierr.Combine(err, e)
	out.StdDev, e = gaps.StandardDeviation()
	err = multierr.Combine(err, e)
	out.Min, e = gaps.Min()
	err = multierr.Combine(err, e)
	out.Max, e = gaps.Max()
	err = multierr.Combine(err, e)
	return out, err
}
