// Package retry provides retry executor implementation
package retry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jzx17/airetry/pkg/types"
)

// Executor runs calls under a retry policy. It holds only read-only
// configuration; every Execute call keeps its attempt state on its own
// stack, so one Executor can serve concurrent calls.
type Executor struct {
	config   Config
	logger   Logger
	handlers []EventHandler
	clock    types.Clock
}

// ExecuteFunc is the function type to retry
type ExecuteFunc[T any] func(ctx context.Context) (T, error)

// NewExecutor creates a retry executor from DefaultConfig and opts
func NewExecutor(opts ...Option) (*Executor, error) {
	e := &Executor{
		config: DefaultConfig(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.config.Validate(); err != nil {
		return nil, err
	}
	e.config = e.config.withDefaults()

	if e.logger == nil {
		e.logger = defaultLogger()
	}
	e.handlers = append([]EventHandler{newLoggingHandler(e.logger)}, e.handlers...)

	return e, nil
}

// Config returns a copy of the effective policy
func (e *Executor) Config() Config {
	return e.config
}

// Execute executes a function with retry logic
func Execute[T any](e *Executor, ctx context.Context, fn ExecuteFunc[T]) (T, error) {
	return ExecuteWithName(e, ctx, "call", fn)
}

// ExecuteWithName executes a function with retry logic. name tags the
// events of this invocation.
//
// The error returned when giving up is exactly the error fn returned, never
// wrapped. The only exception is a context cancelled during a backoff wait,
// which returns ctx.Err().
func ExecuteWithName[T any](e *Executor, ctx context.Context, name string, fn ExecuteFunc[T]) (T, error) {
	var zero T

	clock := e.clock
	if clock == nil {
		clock = types.ClockFromContext(ctx)
	}

	ev := Event{
		Operation:    name,
		InvocationID: uuid.NewString(),
		MaxRetries:   e.config.MaxRetries,
	}
	start := clock.Now()

	for attempt := 0; ; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				ev.Attempt = attempt + 1
				ev.Err = nil
				ev.Elapsed = clock.Since(start)
				e.emit(func(h EventHandler) { h.OnRetrySuccess(ctx, ev) })
			}
			return result, nil
		}

		retryAfter := RetryAfter(err)
		ev.Err = err
		ev.RetryAfter = retryAfter

		if !e.config.IsRetryable(err) {
			ev.Attempt = attempt + 1
			ev.Elapsed = clock.Since(start)
			e.emit(func(h EventHandler) { h.OnRetryFailure(ctx, ev) })
			return zero, err
		}

		if attempt >= e.config.MaxRetries {
			ev.Attempt = attempt + 1
			ev.Elapsed = clock.Since(start)
			e.emit(func(h EventHandler) { h.OnMaxAttemptsReached(ctx, ev) })
			return zero, err
		}

		delay := e.config.ComputeDelay(attempt, retryAfter)
		if delay < 0 {
			delay = 0
		}

		ev.Attempt = attempt + 1
		ev.Delay = delay
		ev.Elapsed = clock.Since(start)
		e.emit(func(h EventHandler) { h.OnRetryAttempt(ctx, ev) })

		if err := types.Sleep(ctx, clock, delay); err != nil {
			return zero, err
		}
	}
}

// ExecuteAsync executes a function with retry asynchronously
func ExecuteAsync[T any](e *Executor, ctx context.Context, name string, fn ExecuteFunc[T]) <-chan types.Result[T] {
	resultChan := make(chan types.Result[T], 1)

	go func() {
		defer close(resultChan)

		clock := e.clock
		if clock == nil {
			clock = types.ClockFromContext(ctx)
		}

		start := clock.Now()
		value, err := ExecuteWithName(e, ctx, name, fn)

		resultChan <- types.Result[T]{
			Value:    value,
			Error:    err,
			Duration: clock.Since(start),
		}
	}()

	return resultChan
}

// emit calls every handler, recovering handler panics so that observers
// cannot alter the retry outcome
func (e *Executor) emit(call func(EventHandler)) {
	for _, h := range e.handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.logger.Error("Retry event handler panicked", fmt.Errorf("%v", r), nil)
				}
			}()
			call(h)
		}()
	}
}

// WithLogger sets the logger for retry warnings
func WithLogger(l Logger) Option {
	return func(e *Executor) {
		e.logger = l
	}
}

// WithEventHandler adds an event handler. Handlers run after the built-in
// logging, in the order they were added.
func WithEventHandler(handler EventHandler) Option {
	return func(e *Executor) {
		if handler != nil {
			e.handlers = append(e.handlers, handler)
		}
	}
}

// WithClock sets the clock for backoff waits
func WithClock(clock types.Clock) Option {
	return func(e *Executor) {
		e.clock = clock
	}
}
