// Package apperr holds the error kinds shared by the billing engine and the
// stay lifecycle. Concrete errors wrap one of the kinds so callers can match
// either the kind or the exact condition with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrTooEarly     = errors.New("too early")
	ErrNotFound     = errors.New("not found")
)

var (
	ErrInvalidPlate = fmt.Errorf("%w: license plate format is not valid", ErrInvalidInput)
	ErrPlateInside  = fmt.Errorf("%w: vehicle is already inside the lot", ErrConflict)
	ErrSpotTaken    = fmt.Errorf("%w: parking spot is already occupied", ErrConflict)
)

// Kind returns the kind an error belongs to, or nil for unclassified errors.
func Kind(err error) error {
	for _, k := range []error{ErrInvalidInput, ErrConflict, ErrInvalidState, ErrTooEarly, ErrNotFound} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

func InvalidInput(format string, args ...interface{}) error {
	return wrap(ErrInvalidInput, format, args...)
}

func InvalidState(format string, args ...interface{}) error {
	return wrap(ErrInvalidState, format, args...)
}

func NotFound(format string, args ...interface{}) error {
	return wrap(ErrNotFound, format, args...)
}

func TooEarly(format string, args ...interface{}) error {
	return wrap(ErrTooEarly, format, args...)
}

func wrap(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}
