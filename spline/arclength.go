package spline

import (
	"math"

	"github.com/pkg/errors"
)

// ArcLength integrates speed over [tStart, tEnd] with the trapezoid rule in uniform steps of
// interval. The last step is shortened to land on tEnd. Accuracy improves as interval shrinks.
func (s *QuinticSpline) ArcLength(interval, tStart, tEnd float64) (float64, error) {
	if !(interval > 0) {
		return 0, errors.Wrapf(ErrInvalidParameter, "interval must be positive, got %v", interval)
	}
	if tEnd < tStart {
		return 0, errors.Wrapf(ErrInvalidParameter, "tEnd %v is before tStart %v", tEnd, tStart)
	}
	span := tEnd - tStart
	if span == 0 {
		return 0, nil
	}
	if interval > span {
		return 0, errors.Wrapf(ErrInvalidParameter, "interval %v exceeds the integration span %v", interval, span)
	}
	return s.trapezoid(interval, tStart, tEnd), nil
}

// TotalArcLength is ArcLength over the whole spline.
func (s *QuinticSpline) TotalArcLength(interval float64) (float64, error) {
	return s.ArcLength(interval, 0, 1)
}

// trapezoid assumes a validated, non-empty range.
func (s *QuinticSpline) trapezoid(interval, tStart, tEnd float64) float64 {
	steps := int(math.Floor((tEnd - tStart) / interval))
	var total float64
	prevT := tStart
	prevSpeed := s.SpeedAt(tStart)
	for i := 1; i <= steps; i++ {
		t := math.Min(tStart+float64(i)*interval, tEnd)
		speed := s.SpeedAt(t)
		total += 0.5 * (t - prevT) * (prevSpeed + speed)
		prevT, prevSpeed = t, speed
	}
	if prevT < tEnd {
		total += 0.5 * (tEnd - prevT) * (prevSpeed + s.SpeedAt(tEnd))
	}
	return total
}

// segmentLength integrates [t0, t1] with a step no wider than the segment itself.
func (s *QuinticSpline) segmentLength(interval, t0, t1 float64) float64 {
	if t1 <= t0 {
		return 0
	}
	return s.trapezoid(math.Min(interval, t1-t0), t0, t1)
}
