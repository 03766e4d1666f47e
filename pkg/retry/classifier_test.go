package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jzx17/airetry/pkg/types"
	"github.com/stretchr/testify/assert"
)

type statusOnly int

func (s statusOnly) Error() string   { return "upstream failure" }
func (s statusOnly) StatusCode() int { return int(s) }

type codeOnly string

func (c codeOnly) Error() string     { return "provider error" }
func (c codeOnly) ErrorCode() string { return string(c) }

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"status 429", &types.APIError{Status: 429, Message: "slow down"}, true},
		{"status 429 via interface", statusOnly(429), true},
		{"status 500", statusOnly(500), false},
		{"status 503 api error", &types.APIError{Status: 503, Message: "unavailable"}, false},
		{"message rate limit", errors.New("you hit the rate limit"), true},
		{"message is case sensitive", errors.New("Rate Limit reached"), false},
		{"message contains 429", errors.New("upstream returned 429"), true},
		{"code rate_limit_exceeded", codeOnly("rate_limit_exceeded"), true},
		{"other code", codeOnly("invalid_request"), false},
		{"wrapped 429", fmt.Errorf("generate: %w", statusOnly(429)), true},
		{"wrapped code", fmt.Errorf("generate: %w", codeOnly(RateLimitCode)), true},
		{"unrelated", errors.New("boom"), false},
		{"context cancelled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
