package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r2"

	"go.viam.com/pursuit/utils"
)

// Pose2D is a planar vehicle pose: a position and a heading in degrees, counter-clockwise
// from the +X axis, kept in [0, 360).
type Pose2D struct {
	Point   r2.Point
	Heading float64
}

// NewPose2D returns a pose with its heading wrapped into [0, 360).
func NewPose2D(x, y, headingDeg float64) Pose2D {
	return Pose2D{Point: r2.Point{X: x, Y: y}, Heading: utils.ModAngDeg(headingDeg)}
}

// NewZeroPose2D returns the pose at the origin facing +X.
func NewZeroPose2D() Pose2D {
	return Pose2D{}
}

// Forward returns the unit vector the pose faces.
func (p Pose2D) Forward() r2.Point {
	return HeadingVector(p.Heading)
}

// ToLocal expresses the world point q in the pose's frame, +X forward and +Y to the left.
func (p Pose2D) ToLocal(q r2.Point) r2.Point {
	return Rotate(q.Sub(p.Point), -p.Heading)
}

func (p Pose2D) String() string {
	return fmt.Sprintf("(%.4f, %.4f) @ %.4f°", p.Point.X, p.Point.Y, p.Heading)
}

// PoseAlmostEqual compares position within epsilon and heading within epsilon degrees,
// treating 0 and 360 as the same heading.
func PoseAlmostEqual(a, b Pose2D, epsilon float64) bool {
	return PointAlmostEqual(a.Point, b.Point, epsilon) && utils.AngleDiffDeg(a.Heading, b.Heading) <= epsilon
}
