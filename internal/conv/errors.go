package conv

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	ErrConfig = errors.New("invalid convolution config")
	ErrShape  = errors.New("invalid tensor shape")
)

// ConfigError is returned by New when a layer parameter or the kernel weights are malformed.
type ConfigError struct {
	Field    string // Parameter or weight dimension that failed (e.g. "kernel_size", "weights[1]")
	Details  string // Human-readable description
	Expected any    // Expected value, nil when not applicable
	Actual   any    // Actual value
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "conv: " + describe(e.Field, e.Details, e.Expected, e.Actual)
}

// Unwrap returns ErrConfig.
func (e *ConfigError) Unwrap() error { return ErrConfig }

// ShapeError is returned by Forward when the input tensor cannot be convolved.
type ShapeError struct {
	Field    string
	Details  string
	Expected any
	Actual   any
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return "conv: " + describe(e.Field, e.Details, e.Expected, e.Actual)
}

// Unwrap returns ErrShape.
func (e *ShapeError) Unwrap() error { return ErrShape }

func describe(field, details string, expected, actual any) string {
	msg := details
	if field != "" {
		msg = field + ": " + details
	}
	if expected != nil {
		msg += fmt.Sprintf(": expected %v, got %v", expected, actual)
	}
	return msg
}
