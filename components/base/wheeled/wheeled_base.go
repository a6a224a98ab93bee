// Package wheeled models a differential drive base: two wheel sides a fixed track width apart,
// driven at independent linear speeds.
package wheeled

import (
	"github.com/pkg/errors"

	"go.viam.com/pursuit/utils"
)

// ErrInvalidParameter is returned for a non-positive time step or track width.
var ErrInvalidParameter = errors.New("invalid base parameter")

// BodyVelocity returns the linear speed of the base center and its turn rate in degrees per
// second for the given wheel speeds.
func BodyVelocity(left, right, trackWidth float64) (linear, degsPerSec float64) {
	return (left + right) / 2, utils.RadToDeg((right - left) / trackWidth)
}

func validateGeometry(timeStep, trackWidth float64) error {
	if !(timeStep > 0) || !utils.IsFinite(timeStep) {
		return errors.Wrapf(ErrInvalidParameter, "time step must be positive, got %v", timeStep)
	}
	if !(trackWidth > 0) || !utils.IsFinite(trackWidth) {
		return errors.Wrapf(ErrInvalidParameter, "track width must be positive, got %v", trackWidth)
	}
	return nil
}
