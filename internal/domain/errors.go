package domain

import (
	"errors"
	"fmt"
)

// ErrCacheMiss indicates no cached entry was found.
var ErrCacheMiss = errors.New("cache miss")

// TransportError indicates a connection or timeout failure before any usable
// response was received. Retried by the resilience policy.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProviderError indicates the remote service returned a structured error
// payload. The upstream message is preserved. Retried by the resilience policy.
type ProviderError struct {
	Provider string
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// EmptyResponseError indicates the response parsed successfully but carried no
// usable text. Retried by the resilience policy.
type EmptyResponseError struct {
	Provider string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("%s: empty response", e.Provider)
}

// ParseError indicates structured-data extraction from model output failed.
// Never retried at the provider layer; the caller degrades to a fallback.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse model output: %s", e.Reason)
}

// ExhaustedRetriesError is the terminal form of a transient failure after the
// retry ceiling. The most recent error is preserved for diagnostics.
type ExhaustedRetriesError struct {
	Provider string
	Attempts int
	Last     error
}

func (e *ExhaustedRetriesError) Error() string {
	return fmt.Sprintf("%s: retries exhausted after %d attempts: %v", e.Provider, e.Attempts, e.Last)
}

func (e *ExhaustedRetriesError) Unwrap() error {
	return e.Last
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}
