package errors_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/calamity-catalog/internal/errors"
)

var testTime = time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)

func TestShape_KindAndCode(t *testing.T) {
	testCases := []struct {
		name  string
		shape *errors.Shape
		kind  errors.Kind
		code  errors.Code
	}{
		{
			name:  "not found is a client error",
			shape: errors.NewShape(http.StatusNotFound, "resource not found", "Not Found", testTime, nil),
			kind:  errors.KindClient,
			code:  errors.CodeNotFound,
		},
		{
			name:  "server error",
			shape: errors.NewShape(http.StatusInternalServerError, "server error, retry later", "", testTime, nil),
			kind:  errors.KindServer,
			code:  errors.CodeInternal,
		},
		{
			name:  "transport failure is unavailable",
			shape: errors.NewTransportShape("dial tcp: connection refused", testTime, fmt.Errorf("refused")),
			kind:  errors.KindTransport,
			code:  errors.CodeUnavailable,
		},
		{
			name:  "canceled call",
			shape: errors.NewTransportShape("context canceled", testTime, fmt.Errorf("get: %w", context.Canceled)),
			kind:  errors.KindTransport,
			code:  errors.CodeCanceled,
		},
		{
			name:  "timed out call",
			shape: errors.NewTransportShape("deadline exceeded", testTime, context.DeadlineExceeded),
			kind:  errors.KindTransport,
			code:  errors.CodeDeadlineExceeded,
		},
		{
			name:  "unavailable response",
			shape: errors.NewShape(http.StatusServiceUnavailable, "injected failure", "Service Unavailable", testTime, nil),
			kind:  errors.KindServer,
			code:  errors.CodeUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.shape.Kind())
			assert.Equal(t, tc.code, tc.shape.Code())
			assert.Equal(t, testTime, tc.shape.Time())
		})
	}
}

func TestShape_ErrorAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("context deadline exceeded")
	shape := errors.NewTransportShape("timeout", testTime, cause)

	assert.Equal(t, "500: timeout", shape.Error())
	assert.ErrorIs(t, shape, cause)

	withText := errors.NewShape(http.StatusForbidden, "not authorized for this resource", "Forbidden", testTime, nil)
	assert.Equal(t, "403 Forbidden: not authorized for this resource", withText.Error())
	assert.Equal(t, "2024-03-14T15:09:26Z", withText.Timestamp)
}

func TestAsShape_FindsWrappedShape(t *testing.T) {
	shape := errors.NewShape(http.StatusNotFound, "resource not found", "", testTime, nil)
	wrapped := fmt.Errorf("get weapon 7: %w", shape)

	got, ok := errors.AsShape(wrapped)
	require.True(t, ok)
	assert.Same(t, shape, got)
	assert.True(t, errors.IsNotFound(wrapped))
	assert.Equal(t, "resource not found", errors.GetMessage(wrapped))

	_, ok = errors.AsShape(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestToShape(t *testing.T) {
	assert.Nil(t, errors.ToShape(nil, testTime))

	shape := errors.NewShape(http.StatusUnauthorized, "token expired", "", testTime, nil)
	assert.Same(t, shape, errors.ToShape(shape, testTime.Add(time.Hour)))

	coded := errors.ToShape(errors.NotFound("no such weapon"), testTime)
	assert.Equal(t, http.StatusNotFound, coded.StatusCode)
	assert.Equal(t, "no such weapon", coded.Message)

	plain := errors.ToShape(fmt.Errorf("boom"), testTime)
	assert.Equal(t, http.StatusInternalServerError, plain.StatusCode)
	assert.Equal(t, "boom", plain.Message)
}
