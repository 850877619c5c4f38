package crs

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter indicates a required transform parameter is absent.
	ErrMissingParameter = errors.New("missing parameter")
	// ErrInvalidParameter indicates a transform parameter has an unusable value.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrMissingComponent indicates a factory was given a nil required object.
	ErrMissingComponent = errors.New("missing component")
)

// ParameterError reports a problem with one parameter of a math transform.
type ParameterError struct {
	Transform string
	Parameter string
	Value     float64
	Err       error
}

func (e *ParameterError) Error() string {
	if errors.Is(e.Err, ErrMissingParameter) {
		return fmt.Sprintf("%s: %s: %v", e.Transform, e.Parameter, e.Err)
	}
	return fmt.Sprintf("%s: %s = %v: %v", e.Transform, e.Parameter, e.Value, e.Err)
}

func (e *ParameterError) Unwrap() error {
	return e.Err
}
