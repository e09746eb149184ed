package pitch

import (
	"errors"
	"fmt"
)

// Errors returned by the detector.
var (
	ErrInvalidConfig       = errors.New("pitch: invalid config")
	ErrInsufficientSamples = errors.New("pitch: insufficient samples")
)

// InsufficientSamplesError reports a frame shorter than the analysis window.
// It matches [ErrInsufficientSamples] with errors.Is.
type InsufficientSamplesError struct {
	Expected int
	Actual   int
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf("pitch: insufficient samples: expected at least %d, got %d", e.Expected, e.Actual)
}

func (e *InsufficientSamplesError) Unwrap() error { return ErrInsufficientSamples }
