package retry

import (
	"context"

	"github.com/jzx17/airetry/pkg/model"
)

const (
	// OperationGenerate tags events of single-shot calls
	OperationGenerate = "generate"

	// OperationStream tags events of stream establishment
	OperationStream = "stream"
)

// Middleware retries both call shapes of a model.Model
type Middleware struct {
	executor *Executor
}

var _ model.Middleware = (*Middleware)(nil)

// New creates a retry middleware from DefaultConfig and opts
func New(opts ...Option) (*Middleware, error) {
	executor, err := NewExecutor(opts...)
	if err != nil {
		return nil, err
	}
	return NewMiddleware(executor), nil
}

// NewMiddleware creates a middleware around an existing executor
func NewMiddleware(executor *Executor) *Middleware {
	return &Middleware{executor: executor}
}

// Executor returns the underlying executor
func (m *Middleware) Executor() *Executor {
	return m.executor
}

// WrapGenerate retries a single-shot call
func (m *Middleware) WrapGenerate(ctx context.Context, req *model.Request, next model.GenerateFunc) (*model.Response, error) {
	return ExecuteWithName(m.executor, ctx, OperationGenerate, func(ctx context.Context) (*model.Response, error) {
		return next(ctx, req)
	})
}

// WrapStream retries establishing a stream. Once a stream is returned,
// failures reported through its Err are the caller's to handle.
func (m *Middleware) WrapStream(ctx context.Context, req *model.Request, next model.StreamFunc) (model.Stream, error) {
	return ExecuteWithName(m.executor, ctx, OperationStream, func(ctx context.Context) (model.Stream, error) {
		return next(ctx, req)
	})
}

// WrapModel composes a retry middleware built from opts onto m
func WrapModel(m model.Model, opts ...Option) (model.Model, error) {
	mw, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return model.Wrap(m, mw), nil
}
