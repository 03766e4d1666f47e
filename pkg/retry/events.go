package retry

import (
	"context"
	"time"

	"github.com/jzx17/airetry/pkg/logger"
)

// Logger is the structured logger the executor reports to
type Logger = logger.Logger

// Event describes one step of a single retried invocation
type Event struct {
	// Operation names the wrapped call, e.g. "generate" or "stream"
	Operation string

	// InvocationID is unique per Execute call
	InvocationID string

	// Attempt is the upcoming retry number on OnRetryAttempt and the number
	// of attempts made on every other callback
	Attempt int

	// MaxRetries is the configured retry budget
	MaxRetries int

	// Delay is the wait before the upcoming retry
	Delay time.Duration

	// RetryAfter is the raw server hint, if any
	RetryAfter string

	// Err is the error that triggered the event
	Err error

	// Elapsed is the time since the invocation started
	Elapsed time.Duration
}

// EventHandler handles retry events. Handlers run synchronously on the
// invocation's goroutine and must not block.
type EventHandler interface {
	OnRetryAttempt(ctx context.Context, ev Event)
	OnRetrySuccess(ctx context.Context, ev Event)
	OnRetryFailure(ctx context.Context, ev Event)
	OnMaxAttemptsReached(ctx context.Context, ev Event)
}

// loggingHandler writes the warnings every executor emits
type loggingHandler struct {
	logger Logger
}

func newLoggingHandler(l Logger) *loggingHandler {
	return &loggingHandler{logger: l}
}

func (h *loggingHandler) OnRetryAttempt(ctx context.Context, ev Event) {
	fields := map[string]interface{}{
		"operation":     ev.Operation,
		"invocation_id": ev.InvocationID,
		"attempt":       ev.Attempt,
		"max_retries":   ev.MaxRetries,
		"delay_ms":      ev.Delay.Milliseconds(),
	}
	if ev.RetryAfter != "" {
		fields["retry_after"] = ev.RetryAfter
	}
	h.logger.Warn("Retryable error, retrying", fields)
}

func (h *loggingHandler) OnRetrySuccess(ctx context.Context, ev Event) {
	h.logger.Debug("Retry succeeded", map[string]interface{}{
		"operation":     ev.Operation,
		"invocation_id": ev.InvocationID,
		"attempts":      ev.Attempt,
		"elapsed_ms":    ev.Elapsed.Milliseconds(),
	})
}

func (h *loggingHandler) OnRetryFailure(ctx context.Context, ev Event) {
	h.logger.Debug("Non-retryable error", map[string]interface{}{
		"operation":     ev.Operation,
		"invocation_id": ev.InvocationID,
		"attempts":      ev.Attempt,
		"error":         errorMessage(ev.Err),
	})
}

func (h *loggingHandler) OnMaxAttemptsReached(ctx context.Context, ev Event) {
	h.logger.Warn("Max retries reached", map[string]interface{}{
		"operation":     ev.Operation,
		"invocation_id": ev.InvocationID,
		"attempts":      ev.Attempt,
		"max_retries":   ev.MaxRetries,
		"error":         errorMessage(ev.Err),
	})
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// defaultLogger writes warnings to stderr
func defaultLogger() Logger {
	return logger.NewLogger(logger.Config{Level: "warn"}).WithComponent("retry")
}
