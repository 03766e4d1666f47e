// Package retry wraps transient-failure-prone remote calls, chiefly model
// calls, with bounded retry-on-failure.
//
// Key Features:
//
// 1. Classification:
//   - IsRetryable: the default condition, matching rate-limit failures
//     (429 status, "rate limit"/"429" in the message, rate_limit_exceeded code)
//   - WithRetryCondition: replaces the default entirely
//
// 2. Delay calculation:
//   - Server hints: a Retry-After value in whole seconds is honoured exactly
//   - ExponentialBackoff: base * 2^attempt, capped at the max delay
//   - AdditiveJitter: up to 10% added on top, never subtracted
//   - WithDelayFunc: replaces the whole calculation
//
// 3. Retry executor:
//   - Generic Execute for any call shape, ExecuteAsync for a result channel
//   - Context cancellation during backoff waits
//   - Structured warnings on every retry and on exhaustion
//   - Event handlers for metrics and tracing
//
// 4. Model integration:
//   - Middleware retries model.Model single-shot and streaming calls
//   - WrapModel composes it onto an existing model
//
// Basic usage example:
//
//	executor, err := retry.NewExecutor(
//		retry.WithMaxRetries(3),
//		retry.WithBaseDelay(500*time.Millisecond))
//	if err != nil {
//		return err
//	}
//
//	result, err := retry.Execute(executor, ctx, func(ctx context.Context) (string, error) {
//		return callRemote(ctx)
//	})
//
// Model integration example:
//
//	wrapped, err := retry.WrapModel(client, retry.WithMaxRetries(2))
//	if err != nil {
//		return err
//	}
//	resp, err := wrapped.Generate(ctx, &model.Request{Prompt: "hello"})
//
// Error handling:
//
// The executor never wraps or swallows errors. When it gives up, either
// because the error is not retryable or because the budget is spent, it
// returns the very error the call returned, so callers can keep using
// errors.As on provider error types. The two cases are told apart only
// through the log and event side channel.
//
// Thread safety:
//
// Executors and middlewares hold read-only configuration and can be shared
// by concurrent callers. Attempt counters are local to each call.
package retry
