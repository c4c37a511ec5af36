package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/calamity-catalog/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "weapon not found",
			expected: "NOT_FOUND: weapon not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "invalid rarity",
			expected: "INVALID_ARGUMENT: invalid rarity",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("redis connection refused")
	wrapped := errors.Wrap(baseErr, "failed to load credential")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("failed to load credential", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.NotFound("record not found")
	wrapped := errors.Wrap(baseErr, "weapon not found")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("weapon not found", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesShapeCode() {
	shape := errors.NewShape(http.StatusForbidden, "not authorized for this resource", "Forbidden", testTime, nil)
	wrapped := errors.Wrap(shape, "failed to delete weapon")

	s.Equal(errors.CodePermissionDenied, wrapped.Code)
	s.True(errors.IsPermissionDenied(wrapped))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("connection timeout")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "catalog unavailable")

	s.Equal(errors.CodeUnavailable, wrapped.Code)
	s.Equal("catalog unavailable", wrapped.Message)
	s.Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.NotFound("test")
	err2 := errors.NotFound("test")
	err3 := errors.InvalidArgument("test")

	s.True(err1.Is(err2))
	s.False(err1.Is(err3))
}

func (s *ErrorsTestSuite) TestHelperFunctions() {
	notFoundErr := errors.NotFound("test")
	invalidErr := errors.InvalidArgument("test")
	wrappedErr := errors.Wrap(notFoundErr, "wrapped")

	s.True(errors.IsNotFound(notFoundErr))
	s.True(errors.IsNotFound(wrappedErr))
	s.False(errors.IsNotFound(invalidErr))

	s.True(errors.IsInvalidArgument(invalidErr))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
	s.Equal("test", errors.GetMessage(wrappedErr.Cause))
}

func (s *ErrorsTestSuite) TestCodeFromHTTPStatus() {
	testCases := []struct {
		status int
		code   errors.Code
	}{
		{http.StatusOK, errors.CodeOK},
		{http.StatusBadRequest, errors.CodeInvalidArgument},
		{http.StatusUnauthorized, errors.CodeUnauthenticated},
		{http.StatusForbidden, errors.CodePermissionDenied},
		{http.StatusNotFound, errors.CodeNotFound},
		{http.StatusConflict, errors.CodeAlreadyExists},
		{http.StatusTeapot, errors.CodeInvalidArgument},
		{http.StatusInternalServerError, errors.CodeInternal},
		{http.StatusServiceUnavailable, errors.CodeUnavailable},
		{http.StatusGatewayTimeout, errors.CodeDeadlineExceeded},
	}

	for _, tc := range testCases {
		s.Run(http.StatusText(tc.status), func() {
			s.Equal(tc.code, errors.CodeFromHTTPStatus(tc.status))
		})
	}
}

func (s *ErrorsTestSuite) TestHTTPStatusRoundTrip() {
	for _, code := range []errors.Code{
		errors.CodeInvalidArgument,
		errors.CodeNotFound,
		errors.CodePermissionDenied,
		errors.CodeUnauthenticated,
		errors.CodeUnavailable,
		errors.CodeInternal,
	} {
		s.Equal(code, errors.CodeFromHTTPStatus(code.HTTPStatus()), code.String())
	}
}
