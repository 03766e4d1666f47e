// Package retry provides backoff algorithm implementations
package retry

import (
	"math"
	"math/rand"
	"strconv"
	"time"
)

// DefaultJitterFactor bounds the additive jitter to 10% of the delay
const DefaultJitterFactor = 0.1

// DelayFunc computes the wait before the next retry. attempt is the 0-based
// number of retries already performed; retryAfter is the raw server hint,
// or "" when the error carried none.
type DelayFunc func(attempt int, retryAfter string) time.Duration

// JitterFunc jitter function type
type JitterFunc func(time.Duration) time.Duration

// AdditiveJitter returns a jitter function that adds a random amount in
// [0, factor*delay) and never subtracts
func AdditiveJitter(factor float64) JitterFunc {
	return additiveJitter(factor, rand.Float64)
}

func additiveJitter(factor float64, rnd func() float64) JitterFunc {
	return func(delay time.Duration) time.Duration {
		if delay <= 0 {
			return 0
		}
		return delay + time.Duration(rnd()*factor*float64(delay))
	}
}

// ExponentialBackoff implements exponential backoff strategy
type ExponentialBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	jitter       JitterFunc
}

// NewExponentialBackoff creates an exponential backoff strategy
func NewExponentialBackoff(initialDelay time.Duration, opts ...BackoffStrategyOption) *ExponentialBackoff {
	b := &ExponentialBackoff{
		initialDelay: initialDelay,
		maxDelay:     DefaultMaxDelay,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NextDelay returns min(initialDelay * 2^attempt, maxDelay) plus jitter.
// attempt is 0-based.
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := b.maxDelay
	// shifting past 62 bits overflows int64
	if attempt < 62 {
		factor := int64(1) << uint(attempt)
		if b.initialDelay <= 0 || int64(b.initialDelay) <= int64(b.maxDelay)/factor {
			delay = b.initialDelay * time.Duration(factor)
		}
	}

	if delay > b.maxDelay {
		delay = b.maxDelay
	}

	if b.jitter != nil {
		delay = b.jitter(delay)
	}

	return delay
}

// BackoffStrategyOption backoff strategy configuration option
type BackoffStrategyOption func(*ExponentialBackoff)

// WithBackoffMaxDelay sets maximum delay time
func WithBackoffMaxDelay(maxDelay time.Duration) BackoffStrategyOption {
	return func(b *ExponentialBackoff) {
		b.maxDelay = maxDelay
	}
}

// WithBackoffJitter sets jitter function
func WithBackoffJitter(jitter JitterFunc) BackoffStrategyOption {
	return func(b *ExponentialBackoff) {
		b.jitter = jitter
	}
}

// ParseRetryAfter interprets a retry-after hint as whole seconds. Anything
// that is not a non-negative base-10 integer, including HTTP dates, is
// rejected.
func ParseRetryAfter(raw string) (time.Duration, bool) {
	if raw == "" {
		return 0, false
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0, false
	}
	if int64(seconds) > math.MaxInt64/int64(time.Second) {
		return 0, false
	}

	return time.Duration(seconds) * time.Second, true
}

// ComputeDelay is the default delay calculation. A parseable server hint is
// returned as is, without jitter or cap. Otherwise the delay is exponential
// backoff from base, capped at maxDelay, plus up to 10% additive jitter.
func ComputeDelay(attempt int, retryAfter string, base, maxDelay time.Duration) time.Duration {
	return computeDelay(attempt, retryAfter, base, maxDelay, rand.Float64)
}

func computeDelay(attempt int, retryAfter string, base, maxDelay time.Duration, rnd func() float64) time.Duration {
	if d, ok := ParseRetryAfter(retryAfter); ok {
		return d
	}

	backoff := NewExponentialBackoff(base,
		WithBackoffMaxDelay(maxDelay),
		WithBackoffJitter(additiveJitter(DefaultJitterFactor, rnd)))

	return backoff.NextDelay(attempt)
}

// NewDelayFunc binds the default calculation to base and maxDelay
func NewDelayFunc(base, maxDelay time.Duration) DelayFunc {
	return func(attempt int, retryAfter string) time.Duration {
		return ComputeDelay(attempt, retryAfter, base, maxDelay)
	}
}
