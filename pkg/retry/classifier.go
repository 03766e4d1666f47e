package retry

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jzx17/airetry/pkg/types"
)

// RateLimitCode is the provider error code that marks a rate-limit failure
const RateLimitCode = "rate_limit_exceeded"

// RetryCondition is a function that determines retry conditions
type RetryCondition func(error) bool

// IsRetryable is the default retry condition. It reports whether err looks
// like a rate-limit failure: a 429 status, a message mentioning
// "rate limit" or "429", or the rate_limit_exceeded error code.
// Status and code are looked up anywhere in the error chain.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var sc types.StatusCoder
	if errors.As(err, &sc) && sc.StatusCode() == http.StatusTooManyRequests {
		return true
	}

	msg := err.Error()
	if strings.Contains(msg, "rate limit") || strings.Contains(msg, "429") {
		return true
	}

	var ec types.ErrorCoder
	if errors.As(err, &ec) && ec.ErrorCode() == RateLimitCode {
		return true
	}

	return false
}
