package directory

import "fmt"

// LookupErrorKind classifies directory failures
type LookupErrorKind string

const (
	// ErrNetworkUnreachable means the catalog host could not be reached
	ErrNetworkUnreachable LookupErrorKind = "network unreachable"

	// ErrTimeout means the request exceeded its deadline
	ErrTimeout LookupErrorKind = "timeout"

	// ErrBadResponse means the catalog answered with an unexpected status or
	// body
	ErrBadResponse LookupErrorKind = "bad response"

	// ErrEmpty means the query matched no stations
	ErrEmpty LookupErrorKind = "no results"
)

// LookupError is the typed failure returned by every gateway call
type LookupError struct {
	Kind    LookupErrorKind
	Message string
	Err     error
}

// Error implements the error interface
func (e *LookupError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

// Unwrap exposes the underlying cause for errors.Is/As
func (e *LookupError) Unwrap() error {
	return e.Err
}

func newLookupError(kind LookupErrorKind, message string, err error) *LookupError {
	return &LookupError{Kind: kind, Message: message, Err: err}
}
