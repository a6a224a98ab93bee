package utils

import (
	"github.com/pkg/errors"
)

// NewConfigValidationError returns a config validation error
// occurring at a given path.
func NewConfigValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// NewConfigValidationFieldRequiredError is used when a field is required but
// is missing or zero valued.
func NewConfigValidationFieldRequiredError(path, field string) error {
	return NewConfigValidationError(path, errors.Errorf("%q is required", field))
}

// NewOutOfRangeError is used when a numeric field lies outside its permitted range.
func NewOutOfRangeError(path, field string, value float64, constraint string) error {
	return NewConfigValidationError(path, errors.Errorf("%q must be %s, got %v", field, constraint, value))
}
