package triangulate

import (
	"fmt"

	"github.com/pkg/errors"
)

// Threading errors up and down the sweep and the monotone triangulation would
// add a ton of complexity to the code. Instead, we use panics, and the public
// API recovers to convert to an error.

// InvalidInputError reports input the triangulator refuses before doing any
// geometry, such as an outer ring with fewer than three points.
type InvalidInputError struct {
	msg string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.msg
}

// GeometryError reports topology the triangulator cannot handle: self
// intersecting or zero area rings, holes that cross or escape the outer ring,
// or a sweep that failed its own consistency checks.
type GeometryError struct {
	cause error
}

func (e *GeometryError) Error() string {
	return "geometry: " + e.cause.Error()
}

func (e *GeometryError) Cause() error {
	return e.cause
}

func (e *GeometryError) Unwrap() error {
	return e.cause
}

func invalidInputf(format string, args ...interface{}) error {
	return &InvalidInputError{msg: fmt.Sprintf(format, args...)}
}

func geometryErrorf(format string, args ...interface{}) error {
	return &GeometryError{cause: errors.Errorf(format, args...)}
}

// Panic with a GeometryError.
func fatalf(format string, args ...interface{}) {
	panic(geometryErrorf(format, args...))
}

func handleTriangulatePanicRecover(r interface{}) error {
	if r != nil {
		if geometryError, ok := r.(*GeometryError); ok {
			return geometryError
		}
		panic(r)
	}
	return nil
}
