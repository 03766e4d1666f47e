// Package retry provides retry mechanism strategies and implementations
package retry

import (
	"fmt"
	"time"

	"github.com/jzx17/airetry/pkg/types"
)

const (
	// DefaultMaxRetries is the retry budget after the initial attempt
	DefaultMaxRetries = 3

	// DefaultBaseDelay is the base unit of exponential backoff
	DefaultBaseDelay = time.Second

	// DefaultMaxDelay caps computed backoff. Server hints are not capped.
	DefaultMaxDelay = 60 * time.Second
)

// Config is the retry policy. It is copied into the executor on
// construction and never mutated afterwards.
type Config struct {
	// MaxRetries is the number of retries after the initial attempt
	MaxRetries int

	// BaseDelay is the first backoff step
	BaseDelay time.Duration

	// MaxDelay caps the computed backoff
	MaxDelay time.Duration

	// UseExponentialBackoff is accepted for compatibility. The default delay
	// calculation is exponential whether or not it is set.
	UseExponentialBackoff bool

	// IsRetryable classifies errors; nil means the package IsRetryable
	IsRetryable RetryCondition

	// ComputeDelay computes the wait before a retry; nil means the default
	// calculation bound to BaseDelay and MaxDelay
	ComputeDelay DelayFunc
}

// DefaultConfig returns the default retry policy
func DefaultConfig() Config {
	return Config{
		MaxRetries:            DefaultMaxRetries,
		BaseDelay:             DefaultBaseDelay,
		MaxDelay:              DefaultMaxDelay,
		UseExponentialBackoff: true,
	}
}

// Validate checks MaxRetries >= 0 and MaxDelay >= BaseDelay > 0
func (c Config) Validate() error {
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries %d is negative", types.ErrInvalidConfig, c.MaxRetries)
	}
	if c.BaseDelay <= 0 {
		return fmt.Errorf("%w: base delay %v must be positive", types.ErrInvalidConfig, c.BaseDelay)
	}
	if c.MaxDelay < c.BaseDelay {
		return fmt.Errorf("%w: max delay %v is below base delay %v", types.ErrInvalidConfig, c.MaxDelay, c.BaseDelay)
	}
	return nil
}

// withDefaults fills the classifier and delay calculation when unset
func (c Config) withDefaults() Config {
	if c.IsRetryable == nil {
		c.IsRetryable = IsRetryable
	}
	if c.ComputeDelay == nil {
		c.ComputeDelay = NewDelayFunc(c.BaseDelay, c.MaxDelay)
	}
	return c
}

// Option configures an Executor
type Option func(*Executor)

// WithConfig replaces the whole policy
func WithConfig(cfg Config) Option {
	return func(e *Executor) {
		e.config = cfg
	}
}

// WithMaxRetries sets the retry budget
func WithMaxRetries(n int) Option {
	return func(e *Executor) {
		e.config.MaxRetries = n
	}
}

// WithBaseDelay sets the first backoff step
func WithBaseDelay(d time.Duration) Option {
	return func(e *Executor) {
		e.config.BaseDelay = d
	}
}

// WithMaxDelay sets the maximum delay time
func WithMaxDelay(d time.Duration) Option {
	return func(e *Executor) {
		e.config.MaxDelay = d
	}
}

// WithExponentialBackoff sets the compatibility flag
func WithExponentialBackoff(enabled bool) Option {
	return func(e *Executor) {
		e.config.UseExponentialBackoff = enabled
	}
}

// WithRetryCondition replaces the default classifier entirely
func WithRetryCondition(condition RetryCondition) Option {
	return func(e *Executor) {
		e.config.IsRetryable = condition
	}
}

// WithDelayFunc replaces the default delay calculation entirely
func WithDelayFunc(fn DelayFunc) Option {
	return func(e *Executor) {
		e.config.ComputeDelay = fn
	}
}
