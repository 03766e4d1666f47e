package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidConfig", ErrInvalidConfig},
		{"ErrStreamClosed", ErrStreamClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{"message wins", &APIError{Status: 429, Code: "x", Message: "slow down"}, "slow down"},
		{"code fallback", &APIError{Status: 400, Code: "bad_request"}, "api error 400: bad_request"},
		{"status only", &APIError{Status: 503}, "api error 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAPIError_Capabilities(t *testing.T) {
	resp := &http.Response{StatusCode: 429, Header: http.Header{}}
	apiErr := &APIError{
		Status:     429,
		Code:       "rate_limit_exceeded",
		Headers:    http.Header{"Retry-After": []string{"3"}},
		Response:   resp,
		RawHeaders: map[string]string{"retry-after": "4"},
	}

	var err error = fmt.Errorf("call failed: %w", apiErr)

	var sc StatusCoder
	require.True(t, errors.As(err, &sc))
	assert.Equal(t, 429, sc.StatusCode())

	var ec ErrorCoder
	require.True(t, errors.As(err, &ec))
	assert.Equal(t, "rate_limit_exceeded", ec.ErrorCode())

	var hp HeaderProvider
	require.True(t, errors.As(err, &hp))
	assert.Equal(t, "3", hp.Header().Get("retry-after"))

	var rp ResponseProvider
	require.True(t, errors.As(err, &rp))
	assert.Same(t, resp, rp.HTTPResponse())

	var mp HeaderMapProvider
	require.True(t, errors.As(err, &mp))
	assert.Equal(t, "4", mp.HeaderMap()["retry-after"])
}

func TestAPIError_WithRetryAfter(t *testing.T) {
	apiErr := NewAPIError(429, "rate limited").WithRetryAfter("7")

	assert.Equal(t, 429, apiErr.StatusCode())
	assert.Equal(t, "7", apiErr.Header().Get("Retry-After"))
}

func TestAPIErrorFromResponse(t *testing.T) {
	t.Run("with response", func(t *testing.T) {
		resp := &http.Response{StatusCode: 503, Header: http.Header{}}
		apiErr := APIErrorFromResponse(resp, "unavailable")

		assert.Equal(t, 503, apiErr.Status)
		assert.Same(t, resp, apiErr.HTTPResponse())
		assert.Nil(t, apiErr.Header())
	})

	t.Run("nil response", func(t *testing.T) {
		apiErr := APIErrorFromResponse(nil, "transport failure")

		assert.Equal(t, 0, apiErr.Status)
		assert.Nil(t, apiErr.HTTPResponse())
		assert.Equal(t, "transport failure", apiErr.Error())
	})
}
