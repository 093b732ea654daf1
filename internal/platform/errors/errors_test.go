package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := ValidationError("malformed request body")

	assert.Equal(t, TypeValidation, err.Type)
	assert.Equal(t, "malformed request body", err.Message)
	assert.Nil(t, err.Cause)
	assert.NotNil(t, err.Context)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
	assert.Contains(t, err.Error(), "validation")
	assert.Contains(t, err.Error(), "malformed request body")
}

func TestUnauthorizedError(t *testing.T) {
	err := UnauthorizedError("You must be logged in to view this page")

	assert.Equal(t, TypeUnauthorized, err.Type)
	assert.Nil(t, err.Cause)
	assert.NotNil(t, err.Context)
	assert.Equal(t, http.StatusUnauthorized, err.HTTPStatus())
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestInternalError(t *testing.T) {
	cause := fmt.Errorf("store unavailable")
	err := InternalError("failed to list records", cause)

	assert.Equal(t, TypeInternal, err.Type)
	assert.Equal(t, cause, err.Cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
	assert.Contains(t, err.Error(), "failed to list records")
	assert.Contains(t, err.Error(), "store unavailable")
}

func TestInternalErrorWithoutCause(t *testing.T) {
	err := InternalError("something went wrong", nil)

	assert.Nil(t, err.Cause)
	assert.NotContains(t, err.Error(), "<nil>")
}

func TestWithCause(t *testing.T) {
	cause := fmt.Errorf("unexpected EOF")
	err := ValidationError("malformed request body").WithCause(cause)

	assert.Equal(t, TypeValidation, err.Type)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "unexpected EOF")
}

func TestWithFieldChaining(t *testing.T) {
	err := ValidationError("malformed request body").
		WithField("content_type", "application/json").
		WithField("path", "/login")

	assert.Len(t, err.Context, 2)
	assert.Equal(t, "application/json", err.Context["content_type"])
	assert.Equal(t, "/login", err.Context["path"])
}

func TestWithContextNilMap(t *testing.T) {
	err := &Error{Type: TypeValidation, Message: "test"}

	err = err.WithContext("key", "value")

	assert.Equal(t, "value", err.Context["key"])
}

func TestToResponse(t *testing.T) {
	resp := UnauthorizedError("You must be logged in to view this page").ToResponse()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "You must be logged in to view this page", resp.Message)
	assert.Equal(t, TypeUnauthorized, resp.Type)
	assert.Empty(t, resp.Context)
}

func TestToResponse_JSONShape(t *testing.T) {
	data, err := json.Marshal(UnauthorizedError("denied").ToResponse())
	require.NoError(t, err)

	assert.JSONEq(t, `{"statusCode":401,"message":"denied","type":"unauthorized"}`, string(data))
}

func TestAsStructuredError(t *testing.T) {
	t.Run("structured error unchanged", func(t *testing.T) {
		original := ValidationError("original")
		assert.Same(t, original, AsStructuredError(original))
	})

	t.Run("wrapped structured error", func(t *testing.T) {
		original := UnauthorizedError("denied")
		result := AsStructuredError(fmt.Errorf("wrapped: %w", original))
		assert.Same(t, original, result)
	})

	t.Run("standard error becomes internal", func(t *testing.T) {
		original := fmt.Errorf("standard error")
		result := AsStructuredError(original)
		require.NotNil(t, result)
		assert.Equal(t, TypeInternal, result.Type)
		assert.Equal(t, "internal server error", result.Message)
		assert.Equal(t, original, result.Cause)
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, AsStructuredError(nil))
	})
}

func TestHTTPStatusAllTypes(t *testing.T) {
	tests := []struct {
		name       string
		errorType  ErrorType
		wantStatus int
	}{
		{"validation", TypeValidation, http.StatusBadRequest},
		{"unauthorized", TypeUnauthorized, http.StatusUnauthorized},
		{"internal", TypeInternal, http.StatusInternalServerError},
		{"unknown", ErrorType("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &Error{Type: tt.errorType}
			assert.Equal(t, tt.wantStatus, err.HTTPStatus())
		})
	}
}
