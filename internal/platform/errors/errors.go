package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrTransport          = errors.New("transport failure")
	ErrBackend            = errors.New("backend reported failure")
	ErrCancelled          = errors.New("cancelled by user")
)
