package retry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/jzx17/airetry/internal/testutils"
	"github.com/jzx17/airetry/pkg/model"
	"github.com/jzx17/airetry/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidConfig(t *testing.T) {
	mw, err := New(WithBaseDelay(0))

	assert.Nil(t, mw)
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestMiddleware_WrapGenerate(t *testing.T) {
	log := testutils.NewRecordingLogger()
	mw, err := New(WithLogger(log), WithMaxRetries(2), WithDelayFunc(noDelay))
	require.NoError(t, err)

	var calls int32
	next := func(ctx context.Context, req *model.Request) (*model.Response, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, &types.APIError{Status: 429}
		}
		return &model.Response{Text: "ok:" + req.Prompt}, nil
	}

	resp, err := mw.WrapGenerate(context.Background(), &model.Request{Prompt: "hi"}, next)
	require.NoError(t, err)
	assert.Equal(t, "ok:hi", resp.Text)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	warnings := log.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, OperationGenerate, warnings[0].Fields["operation"])
}

func TestMiddleware_WrapStream_RetriesEstablishment(t *testing.T) {
	log := testutils.NewRecordingLogger()
	mw, err := New(WithLogger(log), WithDelayFunc(noDelay))
	require.NoError(t, err)

	var calls int32
	next := func(ctx context.Context, req *model.Request) (model.Stream, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return nil, errors.New("rate limit exceeded")
		}
		return model.NewStaticStream(nil, model.Chunk{Text: "str"}, model.Chunk{Text: "eam"}), nil
	}

	stream, err := mw.WrapStream(context.Background(), &model.Request{}, next)
	require.NoError(t, err)

	text, err := model.Collect(stream)
	require.NoError(t, err)
	assert.Equal(t, "stream", text)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	warnings := log.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, OperationStream, warnings[1].Fields["operation"])
}

func TestMiddleware_WrapStream_MidStreamErrorNotRetried(t *testing.T) {
	mw, err := New(WithLogger(testutils.NewRecordingLogger()), WithDelayFunc(noDelay))
	require.NoError(t, err)

	midStream := &types.APIError{Status: 429, Message: "rate limit mid-stream"}
	var calls int32
	next := func(ctx context.Context, req *model.Request) (model.Stream, error) {
		atomic.AddInt32(&calls, 1)
		return model.NewStaticStream(midStream, model.Chunk{Text: "partial"}), nil
	}

	stream, err := mw.WrapStream(context.Background(), &model.Request{}, next)
	require.NoError(t, err)

	text, err := model.Collect(stream)
	assert.Same(t, midStream, err)
	assert.Equal(t, "partial", text)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestWrapModel(t *testing.T) {
	log := testutils.NewRecordingLogger()
	rateLimited := &types.APIError{Status: 429}
	base := testutils.NewScriptedModel("hello", []error{rateLimited}, []error{rateLimited, rateLimited})

	wrapped, err := WrapModel(base, WithLogger(log), WithMaxRetries(2), WithDelayFunc(noDelay))
	require.NoError(t, err)

	resp, err := wrapped.Generate(context.Background(), &model.Request{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Text)
	assert.Equal(t, int32(2), atomic.LoadInt32(base.GenerateCalls))

	stream, err := wrapped.Stream(context.Background(), &model.Request{Prompt: "p"})
	require.NoError(t, err)
	text, err := model.Collect(stream)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, int32(3), atomic.LoadInt32(base.StreamCalls))

	assert.Len(t, log.Warnings(), 3)
}

func TestWrapModel_ExhaustionSurfacesProviderError(t *testing.T) {
	rateLimited := &types.APIError{Status: 429, Code: RateLimitCode}
	base := testutils.NewScriptedModel("never", []error{rateLimited, rateLimited}, nil)

	wrapped, err := WrapModel(base,
		WithLogger(testutils.NewRecordingLogger()), WithMaxRetries(1), WithDelayFunc(noDelay))
	require.NoError(t, err)

	_, err = wrapped.Generate(context.Background(), &model.Request{})

	var apiErr *types.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Same(t, rateLimited, apiErr)
	assert.Equal(t, 429, apiErr.StatusCode())
	assert.Equal(t, int32(2), atomic.LoadInt32(base.GenerateCalls))
}

func TestWrapModel_InvalidConfig(t *testing.T) {
	wrapped, err := WrapModel(testutils.NewScriptedModel("x", nil, nil), WithMaxDelay(1))

	assert.Nil(t, wrapped)
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestNewMiddleware_SharesExecutor(t *testing.T) {
	executor, err := NewExecutor(WithLogger(testutils.NewRecordingLogger()))
	require.NoError(t, err)

	mw := NewMiddleware(executor)
	assert.Same(t, executor, mw.Executor())
}
