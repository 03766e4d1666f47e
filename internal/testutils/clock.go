package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/jzx17/airetry/pkg/types"
	"github.com/stretchr/testify/require"
)

// NewMockClock creates a mock clock for testing
func NewMockClock(t testing.TB) *quartz.Mock {
	return quartz.NewMock(t)
}

// ClockWrapper wraps quartz.Mock to implement our Clock interface
type ClockWrapper struct {
	*quartz.Mock
}

var _ types.Clock = (*ClockWrapper)(nil)

// NewClockWrapper creates a new ClockWrapper
func NewClockWrapper(mock *quartz.Mock) *ClockWrapper {
	return &ClockWrapper{Mock: mock}
}

// Now returns the current time
func (c *ClockWrapper) Now() time.Time {
	return c.Mock.Now()
}

// Since returns the time elapsed since t
func (c *ClockWrapper) Since(t time.Time) time.Duration {
	return c.Mock.Since(t)
}

// NewTimer creates a new Timer
func (c *ClockWrapper) NewTimer(d time.Duration) types.Timer {
	return &TimerWrapper{timer: c.Mock.NewTimer(d)}
}

// TimerWrapper wraps quartz timer
type TimerWrapper struct {
	timer *quartz.Timer
}

func (t *TimerWrapper) C() <-chan time.Time {
	return t.timer.C
}

func (t *TimerWrapper) Stop() bool {
	return t.timer.Stop()
}

// WithMockClock creates a context with mock clock
func WithMockClock(ctx context.Context, mock *quartz.Mock) context.Context {
	return types.WithClock(ctx, NewClockWrapper(mock))
}

// AwaitTimer blocks until the mock has a pending timer and returns the
// duration until it fires
func AwaitTimer(t testing.TB, mock *quartz.Mock) time.Duration {
	t.Helper()

	var next time.Duration
	require.Eventually(t, func() bool {
		d, ok := mock.Peek()
		next = d
		return ok
	}, DefaultTimeout, time.Millisecond, "no timer was started")
	return next
}

// FireTimer advances the mock to its next pending timer and waits for the
// timer to be delivered. It returns the advanced duration.
func FireTimer(ctx context.Context, t testing.TB, mock *quartz.Mock) time.Duration {
	t.Helper()

	d := AwaitTimer(t, mock)
	mock.Advance(d).MustWait(ctx)
	return d
}
