package repository

import "errors"

// ErrInvalidResponse reports an engine reply that arrived but could not be used.
var ErrInvalidResponse = errors.New("invalid response from backend")

// CallError reports a failed call to the engine. Message is the engine's own
// description of the failure and is safe to show to API callers.
type CallError struct {
	Method  string
	Code    string
	Message string
	Err     error
}

func (e *CallError) Error() string {
	return e.Message
}

func (e *CallError) Unwrap() error {
	return e.Err
}
