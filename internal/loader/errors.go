package loader

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrAlreadyStarted = errors.New("load already started")
	ErrDiscarded      = errors.New("load result discarded after teardown")
)

// HTTPStatusError is a non-2xx response from the API
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

// ParseError is a 2xx response whose body is not valid JSON
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "invalid JSON response: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// NetworkError is a request that never produced a response
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Kind names the taxonomy bucket of a load error, used as a metric label
func Kind(err error) string {
	var statusErr *HTTPStatusError
	var parseErr *ParseError
	var netErr *NetworkError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &statusErr):
		return "http_status"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &netErr):
		return "network"
	default:
		return "other"
	}
}
