// Package spatialmath defines the planar geometry shared by the spline, controller and base packages:
// points and vectors on r2, headings in degrees, and vehicle poses.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/pursuit/utils"
)

// Rotate rotates v counter-clockwise by angleDeg degrees.
func Rotate(v r2.Point, angleDeg float64) r2.Point {
	return RotateRad(v, utils.DegToRad(angleDeg))
}

// RotateRad rotates v counter-clockwise by theta radians.
func RotateRad(v r2.Point, theta float64) r2.Point {
	sin, cos := math.Sincos(theta)
	return r2.Point{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

// HeadingVector returns the unit vector pointing along headingDeg.
func HeadingVector(headingDeg float64) r2.Point {
	sin, cos := math.Sincos(utils.DegToRad(headingDeg))
	return r2.Point{X: cos, Y: sin}
}

// HeadingOf returns the direction of v in degrees, wrapped to [0, 360).
// The zero vector has heading 0.
func HeadingOf(v r2.Point) float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return utils.ModAngDeg(utils.RadToDeg(math.Atan2(v.Y, v.X)))
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b r2.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// PointAlmostEqual compares two points by component within epsilon.
func PointAlmostEqual(a, b r2.Point, epsilon float64) bool {
	return utils.Float64AlmostEqual(a.X, b.X, epsilon) && utils.Float64AlmostEqual(a.Y, b.Y, epsilon)
}

// IsZero reports whether v is exactly the zero vector.
func IsZero(v r2.Point) bool {
	return v.X == 0 && v.Y == 0
}
