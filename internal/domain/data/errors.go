package data

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	ErrKindInvalidURL ErrorKind = iota
	ErrKindNetwork
	ErrKindTimeout
	ErrKindHTTP
	ErrKindParse
)

// FetchError is the single failure type crossing component boundaries.
// Kind drives the transport-level mapping (JSON-RPC code, HTTP status).
type FetchError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case ErrKindInvalidURL:
		return fmt.Sprintf("invalid url: %s", e.Message)
	case ErrKindTimeout:
		return e.Message
	case ErrKindHTTP:
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	case ErrKindParse:
		return fmt.Sprintf("parse error: %s", e.Message)
	default:
		return fmt.Sprintf("network error: %s", e.Message)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func NewInvalidURLError(message string) *FetchError {
	return &FetchError{Kind: ErrKindInvalidURL, Message: message}
}

func NewNetworkError(message string, cause error) *FetchError {
	return &FetchError{Kind: ErrKindNetwork, Message: message, Err: cause}
}

func NewTimeoutError(seconds int) *FetchError {
	return &FetchError{Kind: ErrKindTimeout, Message: fmt.Sprintf("request timed out after %d seconds", seconds)}
}

func NewHTTPError(status int, message string) *FetchError {
	return &FetchError{Kind: ErrKindHTTP, StatusCode: status, Message: message}
}

func NewParseError(message string, cause error) *FetchError {
	return &FetchError{Kind: ErrKindParse, Message: message, Err: cause}
}

func AsFetchError(err error) (*FetchError, bool) {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr, true
	}
	return nil, false
}
