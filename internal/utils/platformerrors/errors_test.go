package platformerrors_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxassist/call-api/internal/utils/platformerrors"
)

func TestNewErrorWithContext(t *testing.T) {
	cause := errors.New("connection refused")
	err := platformerrors.NewErrorWithContext(context.Background(),
		platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		"upstream call failed", cause, map[string]any{"status": 502})

	assert.Equal(t, platformerrors.ErrorTypeExternal, err.Type)
	assert.Equal(t, platformerrors.LayerInfrastructure, err.Layer)
	assert.NotEmpty(t, err.UUID)
	assert.Equal(t, 502, err.Context["status"])
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "upstream call failed")
}

func TestIsErrorTypeThroughWrapping(t *testing.T) {
	inner := platformerrors.NewError(context.Background(),
		platformerrors.LayerInfrastructure, platformerrors.ErrorTypeTimeout,
		"synthesis timed out", context.DeadlineExceeded)
	wrapped := fmt.Errorf("synthesize: %w", inner)

	assert.True(t, platformerrors.IsErrorType(wrapped, platformerrors.ErrorTypeTimeout))
	assert.False(t, platformerrors.IsErrorType(wrapped, platformerrors.ErrorTypeExternal))
	assert.False(t, platformerrors.IsErrorType(errors.New("plain"), platformerrors.ErrorTypeTimeout))
	assert.False(t, platformerrors.IsErrorType(nil, platformerrors.ErrorTypeTimeout))
}

func TestGetPlatformError(t *testing.T) {
	typed := platformerrors.NewError(context.Background(),
		platformerrors.LayerHandler, platformerrors.ErrorTypeValidation, "bad input", nil)

	got := platformerrors.GetPlatformError(fmt.Errorf("handler: %w", typed))
	require.NotNil(t, got)
	assert.Equal(t, platformerrors.ErrorTypeValidation, got.Type)

	assert.Nil(t, platformerrors.GetPlatformError(errors.New("plain")))
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	cases := []struct {
		errType platformerrors.ErrorType
		status  int
	}{
		{platformerrors.ErrorTypeNotFound, http.StatusNotFound},
		{platformerrors.ErrorTypeValidation, http.StatusBadRequest},
		{platformerrors.ErrorTypeConflict, http.StatusConflict},
		{platformerrors.ErrorTypeExternal, http.StatusBadGateway},
		{platformerrors.ErrorTypeTimeout, http.StatusGatewayTimeout},
		{platformerrors.ErrorTypeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, platformerrors.ErrorTypeToHTTPStatus(tc.errType), string(tc.errType))
	}
}
