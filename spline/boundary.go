package spline

import (
	"github.com/golang/geo/r2"

	"go.viam.com/pursuit/spatialmath"
)

// BoundaryState is the position, velocity and acceleration the spline must match at one end.
// Velocity and acceleration are derivatives with respect to the spline parameter t.
type BoundaryState struct {
	Position     r2.Point `json:"position"`
	Velocity     r2.Point `json:"velocity"`
	Acceleration r2.Point `json:"acceleration"`
}

// NewBoundaryState returns a boundary state from its three vectors.
func NewBoundaryState(position, velocity, acceleration r2.Point) BoundaryState {
	return BoundaryState{Position: position, Velocity: velocity, Acceleration: acceleration}
}

// BoundaryFromHeading returns a boundary state whose velocity and acceleration both point along
// headingDeg with the given magnitudes. Use it when the vehicle should leave or arrive at an angle.
func BoundaryFromHeading(position r2.Point, headingDeg, velocity, acceleration float64) BoundaryState {
	dir := spatialmath.HeadingVector(headingDeg)
	return BoundaryState{
		Position:     position,
		Velocity:     dir.Mul(velocity),
		Acceleration: dir.Mul(acceleration),
	}
}

// axis selects one coordinate of a boundary state.
type axis int

const (
	axisX axis = iota
	axisY
)

func (a axis) String() string {
	if a == axisX {
		return "x"
	}
	return "y"
}

func (a axis) of(p r2.Point) float64 {
	if a == axisX {
		return p.X
	}
	return p.Y
}
