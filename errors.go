package gemini

import (
	"errors"
	"fmt"
)

// Sentinel errors for gemini. Use errors.Is to check.
var (
	ErrToolNotFound     = errors.New("tool not found")
	ErrValidation       = errors.New("validation failed")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// APIError reports a failed exchange with the web endpoint: either the transport
// failed (Err is the cause, StatusCode is 0) or the endpoint answered with a status
// other than 200 (StatusCode is set, Err wraps ErrUnexpectedStatus).
// It is never returned for a response that merely decoded to an empty answer.
type APIError struct {
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: %v", e.Err)
}

// Unwrap supports errors.Is/errors.As on the underlying cause.
func (e *APIError) Unwrap() error { return e.Err }

// ValidationError is returned by Registry.Invoke when the arguments do not satisfy
// the tool's parameters (missing required, unexpected name, wrong type).
// The tool handler is not called in that case.
type ValidationError struct {
	Tool   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid arguments for tool %q: %s", e.Tool, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// PanicError wraps a recovered panic value; produced only by WithRecovery.
type PanicError struct {
	Tool  string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("tool %q panicked: %v", e.Tool, e.Value)
}

// IsAPIError returns true if err is or wraps an APIError.
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// IsValidationError returns true if err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
