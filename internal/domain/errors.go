package domain

import "errors"

// Sentinel errors shared across layers. Callers match them with errors.Is.
var (
	ErrInvalidMineCount    = errors.New("mine count is not a number")
	ErrMineCountOutOfRange = errors.New("mine count out of range")
	ErrInvalidSampleSize   = errors.New("sample size must be within (0, bound]")
	ErrMissingToken        = errors.New("bot token is not configured")
)

// ValidationError is a recoverable input problem. Message is safe to show
// to the user as-is.
type ValidationError struct {
	Err     error
	Message string
}

func newValidationError(err error, message string) *ValidationError {
	return &ValidationError{Err: err, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
