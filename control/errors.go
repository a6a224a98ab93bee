package control

import "github.com/pkg/errors"

// ErrInvalidParameter is returned when a controller is built from an empty path, a path whose
// arc length decreases, or a configuration outside its permitted ranges.
var ErrInvalidParameter = errors.New("invalid controller parameter")
