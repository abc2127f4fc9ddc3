package tutum

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiErrorMessage(t *testing.T) {
	err := &ApiError{StatusCode: 404, Message: "nodecluster not found"}
	assert.Contains(t, err.Error(), "nodecluster not found")
	assert.Contains(t, err.Error(), "404")

	// Client-side validation errors carry no status code.
	verr := newValidationError("name is required")
	assert.Equal(t, "name is required", verr.Error())
}

func TestRequestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := &RequestError{Message: "issuing request", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestErrorKindsAreDistinct(t *testing.T) {
	var wrapped error = fmt.Errorf("call failed: %w", &ApiError{StatusCode: 409, Message: "conflict"})

	var apiErr *ApiError
	require.ErrorAs(t, wrapped, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)

	var reqErr *RequestError
	assert.False(t, errors.As(wrapped, &reqErr))
}
