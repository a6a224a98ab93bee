package wheeled

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/pursuit/logging"
	"go.viam.com/pursuit/spatialmath"
	"go.viam.com/pursuit/utils"
)

func newTestIntegrator(t *testing.T, initial spatialmath.Pose2D, timeStep, trackWidth float64) *Integrator {
	t.Helper()
	in, err := NewIntegrator(initial, timeStep, trackWidth, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	return in
}

func TestNewIntegrator(t *testing.T) {
	logger := logging.NewTestLogger(t)
	for _, tc := range []struct {
		timeStep, trackWidth float64
	}{
		{0, 2},
		{-0.02, 2},
		{math.NaN(), 2},
		{0.02, 0},
		{0.02, -1},
		{0.02, math.Inf(1)},
	} {
		_, err := NewIntegrator(spatialmath.NewZeroPose2D(), tc.timeStep, tc.trackWidth, logger)
		test.That(t, errors.Is(err, ErrInvalidParameter), test.ShouldBeTrue)
	}

	in, err := NewIntegrator(spatialmath.Pose2D{Heading: -90}, 0.02, 2, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, in.Pose().Heading, test.ShouldEqual, 270.0)
	test.That(t, in.TimeStep(), test.ShouldEqual, 0.02)
	test.That(t, in.TrackWidth(), test.ShouldEqual, 2.0)
}

func TestStraightStep(t *testing.T) {
	in := newTestIntegrator(t, spatialmath.NewZeroPose2D(), 0.02, 2)
	pose := in.Step(10, 10)
	test.That(t, pose.Point.X, test.ShouldAlmostEqual, 0.2)
	test.That(t, pose.Point.Y, test.ShouldEqual, 0.0)
	test.That(t, pose.Heading, test.ShouldEqual, 0.0)

	in = newTestIntegrator(t, spatialmath.NewPose2D(1, 1, 90), 0.5, 2)
	pose = in.Step(-4, -4)
	test.That(t, spatialmath.PointAlmostEqual(pose.Point, r2.Point{X: 1, Y: -1}, 1e-12), test.ShouldBeTrue)
	test.That(t, pose.Heading, test.ShouldEqual, 90.0)
}

func TestSpinInPlace(t *testing.T) {
	in := newTestIntegrator(t, spatialmath.NewPose2D(3, 4, 0), 0.02, 2)
	_, radius, ok := in.InstantaneousCenter(-10, 10)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, radius, test.ShouldEqual, 0.0)

	pose := in.Step(-10, 10)
	test.That(t, pose.Point, test.ShouldResemble, r2.Point{X: 3, Y: 4})
	// omega is 10 rad/s
	test.That(t, pose.Heading, test.ShouldAlmostEqual, utils.RadToDeg(0.2))

	in.Step(10, -10)
	pose = in.Step(10, -10)
	test.That(t, pose.Heading, test.ShouldAlmostEqual, 360-utils.RadToDeg(0.2))
}

func TestInstantaneousCenter(t *testing.T) {
	in := newTestIntegrator(t, spatialmath.NewPose2D(0, 0, 90), 0.1, 2)
	_, _, ok := in.InstantaneousCenter(3, 3)
	test.That(t, ok, test.ShouldBeFalse)

	// faster right wheel turns left, the center is to the left of a base facing +Y
	center, radius, ok := in.InstantaneousCenter(1, 3)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, radius, test.ShouldAlmostEqual, 2)
	test.That(t, spatialmath.PointAlmostEqual(center, r2.Point{X: -2}, 1e-12), test.ShouldBeTrue)
}

// eulerStep integrates the unicycle model with many small forward Euler steps.
func eulerStep(pose spatialmath.Pose2D, left, right, timeStep, trackWidth float64) spatialmath.Pose2D {
	const substeps = 100000
	h := timeStep / substeps
	v := (left + right) / 2
	omega := (right - left) / trackWidth
	x, y := pose.Point.X, pose.Point.Y
	theta := utils.DegToRad(pose.Heading)
	for i := 0; i < substeps; i++ {
		x += v * math.Cos(theta) * h
		y += v * math.Sin(theta) * h
		theta += omega * h
	}
	return spatialmath.NewPose2D(x, y, utils.RadToDeg(theta))
}

func TestArcStepMatchesEuler(t *testing.T) {
	start := spatialmath.NewPose2D(1, 2, 30)
	for _, tc := range []struct {
		name        string
		left, right float64
	}{
		{"forward left turn", 5, 10},
		{"forward right turn", 10, 5},
		{"reverse faster right", -5, -10},
		{"reverse faster left", -10, -5},
		{"spin left moving forward", -5, 10},
		{"spin left moving backward", -10, 5},
		{"spin right moving forward", 10, -5},
		{"spin right moving backward", 5, -10},
	} {
		t.Run(tc.name, func(t *testing.T) {
			in := newTestIntegrator(t, start, 0.1, 2)
			expected := eulerStep(start, tc.left, tc.right, 0.1, 2)
			actual := in.Step(tc.left, tc.right)
			test.That(t, actual.Point.X, test.ShouldAlmostEqual, expected.Point.X, 1e-4)
			test.That(t, actual.Point.Y, test.ShouldAlmostEqual, expected.Point.Y, 1e-4)
			test.That(t, utils.AngleDiffDeg(actual.Heading, expected.Heading), test.ShouldBeLessThan, 1e-4)
		})
	}
}

func TestFullCircle(t *testing.T) {
	// radius 2 and omega 1 rad/s: a full lap every 2*pi seconds
	in := newTestIntegrator(t, spatialmath.NewZeroPose2D(), 2*math.Pi/1000, 2)
	for i := 0; i < 1000; i++ {
		pose := in.Step(1, 3)
		test.That(t, spatialmath.Distance(pose.Point, r2.Point{Y: 2}), test.ShouldAlmostEqual, 2, 1e-9)
		test.That(t, pose.Heading, test.ShouldBeGreaterThanOrEqualTo, 0.0)
		test.That(t, pose.Heading, test.ShouldBeLessThan, 360.0)
	}
	test.That(t, spatialmath.PointAlmostEqual(in.Pose().Point, r2.Point{}, 1e-6), test.ShouldBeTrue)
}

func TestDisplacements(t *testing.T) {
	t.Run("polar", func(t *testing.T) {
		in := newTestIntegrator(t, spatialmath.NewZeroPose2D(), 0.02, 2)
		pose := in.ApplyPolarDisplacement(10, 90)
		test.That(t, spatialmath.PointAlmostEqual(pose.Point, r2.Point{Y: 10}, 1e-12), test.ShouldBeTrue)
		test.That(t, pose.Heading, test.ShouldEqual, 90.0)

		// heading wraps past 360
		in = newTestIntegrator(t, spatialmath.NewPose2D(0, 0, 350), 0.02, 2)
		pose = in.ApplyPolarDisplacement(0, 20)
		test.That(t, pose.Heading, test.ShouldAlmostEqual, 10)
		test.That(t, pose.Point, test.ShouldResemble, r2.Point{})
	})

	t.Run("cartesian", func(t *testing.T) {
		in := newTestIntegrator(t, spatialmath.NewPose2D(1, 1, 45), 0.02, 2)
		pose := in.ApplyCartesianDisplacement(3, 4)
		test.That(t, pose.Point, test.ShouldResemble, r2.Point{X: 4, Y: 5})
		test.That(t, pose.Heading, test.ShouldAlmostEqual, utils.RadToDeg(math.Atan2(4, 3)))

		pose = in.ApplyCartesianDisplacement(0, 0)
		test.That(t, pose.Heading, test.ShouldAlmostEqual, utils.RadToDeg(math.Atan2(4, 3)))

		pose = in.ApplyCartesianDisplacement(0, -2)
		test.That(t, pose.Heading, test.ShouldAlmostEqual, 270)
	})
}

func TestBodyVelocity(t *testing.T) {
	linear, degsPerSec := BodyVelocity(10, 10, 2)
	test.That(t, linear, test.ShouldEqual, 10.0)
	test.That(t, degsPerSec, test.ShouldEqual, 0.0)

	linear, degsPerSec = BodyVelocity(-1, 1, 2)
	test.That(t, linear, test.ShouldEqual, 0.0)
	test.That(t, degsPerSec, test.ShouldAlmostEqual, utils.RadToDeg(1))

	linear, degsPerSec = BodyVelocity(1, 3, 2)
	test.That(t, linear, test.ShouldEqual, 2.0)
	test.That(t, degsPerSec, test.ShouldAlmostEqual, utils.RadToDeg(1))
}
