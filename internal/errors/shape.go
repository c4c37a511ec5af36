package errors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Kind classifies a failed catalog call
type Kind string

// Failure kinds
const (
	// KindTransport means no response reached the caller (network failure, timeout, cancel)
	KindTransport Kind = "TRANSPORT_FAILURE"
	// KindClient is any 4xx response
	KindClient Kind = "CLIENT_ERROR"
	// KindServer is any 5xx response
	KindServer Kind = "SERVER_ERROR"
)

// Shape is the normalized record of one failed catalog call.
// Fields are set once by the constructors and never mutated afterwards.
type Shape struct {
	StatusCode int    `json:"status"`
	Message    string `json:"message"`
	StatusText string `json:"error,omitempty"`
	Timestamp  string `json:"timestamp"`

	transport bool
	cause     error
}

// NewShape builds a Shape for a response that reached the caller.
func NewShape(statusCode int, message, statusText string, at time.Time, cause error) *Shape {
	return &Shape{
		StatusCode: statusCode,
		Message:    message,
		StatusText: statusText,
		Timestamp:  at.UTC().Format(time.RFC3339Nano),
		cause:      cause,
	}
}

// NewTransportShape builds a Shape for a call where no response arrived.
// The status code is always 500.
func NewTransportShape(message string, at time.Time, cause error) *Shape {
	s := NewShape(500, message, "", at, cause)
	s.transport = true
	return s
}

// Error implements the error interface
func (s *Shape) Error() string {
	if s.StatusText != "" {
		return fmt.Sprintf("%d %s: %s", s.StatusCode, s.StatusText, s.Message)
	}
	return fmt.Sprintf("%d: %s", s.StatusCode, s.Message)
}

// Unwrap returns the underlying transport or decode error, if any
func (s *Shape) Unwrap() error {
	return s.cause
}

// Code maps the status code onto the project error codes. Transport failures carry no
// real status, so they map from their cause instead.
func (s *Shape) Code() Code {
	if s.transport {
		switch {
		case errors.Is(s.cause, context.Canceled):
			return CodeCanceled
		case errors.Is(s.cause, context.DeadlineExceeded):
			return CodeDeadlineExceeded
		default:
			return CodeUnavailable
		}
	}
	return CodeFromHTTPStatus(s.StatusCode)
}

// Kind reports where the failure happened
func (s *Shape) Kind() Kind {
	switch {
	case s.transport:
		return KindTransport
	case s.StatusCode >= 400 && s.StatusCode < 500:
		return KindClient
	default:
		return KindServer
	}
}

// Time parses the timestamp back into a time.Time
func (s *Shape) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, s.Timestamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AsShape extracts a *Shape from an error chain
func AsShape(err error) (*Shape, bool) {
	var shape *Shape
	if errors.As(err, &shape) {
		return shape, true
	}
	return nil, false
}

// ToShape converts any error into a Shape. Shapes pass through unchanged, coded errors keep
// their HTTP status and everything else becomes a 500.
func ToShape(err error, at time.Time) *Shape {
	if err == nil {
		return nil
	}
	if shape, ok := AsShape(err); ok {
		return shape
	}
	code := GetCode(err)
	return NewShape(code.HTTPStatus(), GetMessage(err), "", at, err)
}
