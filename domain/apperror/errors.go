package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors shared by the use cases and the HTTP layer.
var (
	ErrPaginationLimitExceeded = errors.New("pagination limit exceeded")
	ErrUnknownChannel          = errors.New("unknown channel")
	ErrMalformedItem           = errors.New("malformed upstream item")
)

// ParameterError reports a missing or invalid request parameter.
type ParameterError struct {
	Message string
}

func (e *ParameterError) Error() string { return e.Message }

// NewParameterError builds a ParameterError with a formatted message.
func NewParameterError(format string, args ...interface{}) error {
	return &ParameterError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError wraps a transport failure or a non-2xx answer from a third-party API.
type UpstreamError struct {
	Service    string // youtube, bunny-storage, bunny-stream
	Op         string
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Service, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// HTTPStatus maps an error to the status code the request boundary answers with.
func HTTPStatus(err error) int {
	var paramErr *ParameterError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &paramErr), errors.Is(err, ErrUnknownChannel):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
