package workflow

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrBusy rejects a new attempt while one is running or an itinerary is
	// on screen. The rejected request changes nothing.
	ErrBusy = errors.New("generation already in progress")

	// ErrInvalidTransition indicates the operation does not apply to the
	// current phase.
	ErrInvalidTransition = errors.New("operation not allowed in current phase")

	// ErrServiceFailure matches every GenerationError of kind KindServiceFailure.
	ErrServiceFailure = errors.New("itinerary service failed")

	// ErrTimeout matches every GenerationError of kind KindTimeout.
	ErrTimeout = errors.New("itinerary generation timed out")
)

type ErrorKind string

const (
	KindServiceFailure ErrorKind = "service_failure"
	KindTimeout        ErrorKind = "timeout"
)

// GenerationError is the failure surfaced for one attempt.
type GenerationError struct {
	Kind ErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case KindTimeout:
		if e.Err == nil {
			return ErrTimeout.Error()
		}
		return fmt.Sprintf("%s: %v", ErrTimeout, e.Err)
	default:
		if e.Err == nil {
			return ErrServiceFailure.Error()
		}
		return fmt.Sprintf("%s: %v", ErrServiceFailure, e.Err)
	}
}

func (e *GenerationError) Unwrap() []error {
	sentinel := ErrServiceFailure
	if e.Kind == KindTimeout {
		sentinel = ErrTimeout
	}
	if e.Err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Err}
}

// asGenerationError classifies an arbitrary generator error. Deadline errors
// become timeouts; everything else is a service failure.
func asGenerationError(err error) *GenerationError {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &GenerationError{Kind: KindTimeout, Err: err}
	}
	return &GenerationError{Kind: KindServiceFailure, Err: err}
}
