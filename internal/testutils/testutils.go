// Package testutils provides simplified testing utilities and helper functions
package testutils

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jzx17/airetry/pkg/model"
)

// DefaultTimeout bounds waits in tests
const DefaultTimeout = 5 * time.Second

// Context returns a context cancelled after DefaultTimeout or at test end
func Context(t testing.TB) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	t.Cleanup(cancel)
	return ctx
}

// FlakyCall returns a call that fails with errs in order and then succeeds
// with value, together with a counter of invocations
func FlakyCall[T any](value T, errs ...error) (func(ctx context.Context) (T, error), *int32) {
	var calls int32
	fn := func(ctx context.Context) (T, error) {
		n := atomic.AddInt32(&calls, 1)
		if int(n) <= len(errs) {
			var zero T
			return zero, errs[n-1]
		}
		return value, nil
	}
	return fn, &calls
}

// ScriptedModel is a model.Model whose calls fail with the scripted errors
// before succeeding
type ScriptedModel struct {
	Generates func(ctx context.Context) (*model.Response, error)
	Streams   func(ctx context.Context) (model.Stream, error)

	GenerateCalls *int32
	StreamCalls   *int32
}

var _ model.Model = (*ScriptedModel)(nil)

// NewScriptedModel builds a model that answers text after failing with
// generateErrs (Generate) and streamErrs (Stream)
func NewScriptedModel(text string, generateErrs, streamErrs []error) *ScriptedModel {
	gen, genCalls := FlakyCall(&model.Response{Text: text}, generateErrs...)
	stream, streamCalls := FlakyCall[model.Stream](nil, streamErrs...)

	return &ScriptedModel{
		Generates: gen,
		Streams: func(ctx context.Context) (model.Stream, error) {
			if _, err := stream(ctx); err != nil {
				return nil, err
			}
			return model.NewStaticStream(nil, model.Chunk{Text: text}), nil
		},
		GenerateCalls: genCalls,
		StreamCalls:   streamCalls,
	}
}

func (m *ScriptedModel) Generate(ctx context.Context, req *model.Request) (*model.Response, error) {
	return m.Generates(ctx)
}

func (m *ScriptedModel) Stream(ctx context.Context, req *model.Request) (model.Stream, error) {
	return m.Streams(ctx)
}
