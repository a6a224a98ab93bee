package spatialmath

import (
	"math"

	"github.com/golang/geo/r2"
)

// Curvature returns the signed curvature of the circle passing through a, b and c, that is
// the inverse of the triangle's circumradius, 4·area / (|AB|·|BC|·|CA|).
// The result is positive when a -> b -> c turns counter-clockwise.
// Collinear or coincident points describe no circle and yield 0.
func Curvature(a, b, c r2.Point) float64 {
	ab := b.Sub(a)
	bc := c.Sub(b)
	ca := a.Sub(c)
	lengths := ab.Norm() * bc.Norm() * ca.Norm()
	if lengths == 0 {
		return 0
	}
	// cross product of the two edges is twice the signed area
	twiceArea := ab.Cross(c.Sub(a))
	k := 2 * twiceArea / lengths
	if math.IsNaN(k) || math.IsInf(k, 0) {
		return 0
	}
	return k
}
