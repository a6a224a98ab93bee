package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"go.viam.com/test"
)

func TestRotate(t *testing.T) {
	unitI := r2.Point{X: 1, Y: 0}

	unitJ := Rotate(unitI, 90)
	test.That(t, unitJ.X, test.ShouldAlmostEqual, 0)
	test.That(t, unitJ.Y, test.ShouldAlmostEqual, 1)

	back := Rotate(unitJ, -90)
	test.That(t, PointAlmostEqual(back, unitI, 1e-12), test.ShouldBeTrue)

	v := r2.Point{X: 3, Y: 4}
	for _, angle := range []float64{-720, -45, 0, 30, 180, 990} {
		rotated := Rotate(v, angle)
		test.That(t, rotated.Norm(), test.ShouldAlmostEqual, 5)
	}

	half := RotateRad(r2.Point{X: 2, Y: 0}, math.Pi)
	test.That(t, PointAlmostEqual(half, r2.Point{X: -2, Y: 0}, 1e-12), test.ShouldBeTrue)
}

func TestHeading(t *testing.T) {
	test.That(t, HeadingOf(r2.Point{X: 0, Y: 1}), test.ShouldAlmostEqual, 90)
	test.That(t, HeadingOf(r2.Point{X: 0, Y: -1}), test.ShouldAlmostEqual, 270)
	test.That(t, HeadingOf(r2.Point{X: -1, Y: 0}), test.ShouldAlmostEqual, 180)
	test.That(t, HeadingOf(r2.Point{}), test.ShouldEqual, 0.0)

	fwd := HeadingVector(45)
	test.That(t, fwd.X, test.ShouldAlmostEqual, math.Sqrt2/2)
	test.That(t, fwd.Y, test.ShouldAlmostEqual, math.Sqrt2/2)

	test.That(t, Distance(r2.Point{X: 1, Y: 1}, r2.Point{X: 4, Y: 5}), test.ShouldAlmostEqual, 5)
}

func TestPose2D(t *testing.T) {
	p := NewPose2D(1, 2, -90)
	test.That(t, p.Heading, test.ShouldAlmostEqual, 270)

	// a point one unit ahead of a pose facing -Y
	local := p.ToLocal(r2.Point{X: 1, Y: 1})
	test.That(t, local.X, test.ShouldAlmostEqual, 1)
	test.That(t, local.Y, test.ShouldAlmostEqual, 0)

	// and one unit to its left
	local = p.ToLocal(r2.Point{X: 2, Y: 2})
	test.That(t, local.X, test.ShouldAlmostEqual, 0)
	test.That(t, local.Y, test.ShouldAlmostEqual, 1)

	test.That(t, PoseAlmostEqual(NewPose2D(0, 0, 359.9999999999), NewZeroPose2D(), 1e-6), test.ShouldBeTrue)
	test.That(t, p.String(), test.ShouldEqual, "(1.0000, 2.0000) @ 270.0000°")
}

func TestCurvature(t *testing.T) {
	t.Run("circle", func(t *testing.T) {
		k := Curvature(r2.Point{X: -5, Y: 0}, r2.Point{X: 0, Y: 5}, r2.Point{X: 5, Y: 0})
		// clockwise around a radius 5 circle
		test.That(t, k, test.ShouldAlmostEqual, -0.2)

		k = Curvature(r2.Point{X: 5, Y: 0}, r2.Point{X: 0, Y: 5}, r2.Point{X: -5, Y: 0})
		test.That(t, k, test.ShouldAlmostEqual, 0.2)
	})

	t.Run("collinear", func(t *testing.T) {
		test.That(t, Curvature(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}, r2.Point{X: 2, Y: 2}), test.ShouldEqual, 0.0)
		test.That(t, Curvature(r2.Point{X: 0, Y: 0}, r2.Point{X: 6, Y: 0}, r2.Point{X: 12, Y: 0}), test.ShouldEqual, 0.0)
	})

	t.Run("coincident", func(t *testing.T) {
		p := r2.Point{X: 3, Y: 3}
		test.That(t, Curvature(p, p, r2.Point{X: 4, Y: 4}), test.ShouldEqual, 0.0)
		test.That(t, Curvature(p, p, p), test.ShouldEqual, 0.0)
	})
}
