package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestModAngDeg(t *testing.T) {
	test.That(t, ModAngDeg(0), test.ShouldEqual, 0.0)
	test.That(t, ModAngDeg(360), test.ShouldEqual, 0.0)
	test.That(t, ModAngDeg(725), test.ShouldAlmostEqual, 5)
	test.That(t, ModAngDeg(-90), test.ShouldAlmostEqual, 270)
	test.That(t, ModAngDeg(-720), test.ShouldEqual, 0.0)
	test.That(t, ModAngDeg(-1e-18), test.ShouldBeLessThan, 360)
}

func TestAngleConversions(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
	test.That(t, AngleDiffDeg(350, 10), test.ShouldAlmostEqual, 20)
	test.That(t, AngleDiffDeg(10, 350), test.ShouldAlmostEqual, 20)
}

func TestClampAndFinite(t *testing.T) {
	test.That(t, Clamp(5, -1, 1), test.ShouldEqual, 1.0)
	test.That(t, Clamp(-5, -1, 1), test.ShouldEqual, -1.0)
	test.That(t, Clamp(0.5, -1, 1), test.ShouldEqual, 0.5)
	test.That(t, IsFinite(1, 2, 3), test.ShouldBeTrue)
	test.That(t, IsFinite(1, math.NaN()), test.ShouldBeFalse)
	test.That(t, IsFinite(math.Inf(-1)), test.ShouldBeFalse)
	test.That(t, Float64AlmostEqual(1, 1+1e-12, DefaultEpsilon), test.ShouldBeTrue)
}

func TestSquare(t *testing.T) {
	test.That(t, Square(3), test.ShouldEqual, 9.0)
	test.That(t, Square(-0.5), test.ShouldEqual, 0.25)
	test.That(t, Square(0), test.ShouldEqual, 0.0)
}
