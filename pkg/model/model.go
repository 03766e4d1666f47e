// Package model defines the model-call contract that retry and other
// middlewares compose onto
package model

import (
	"context"
	"strings"

	"github.com/jzx17/airetry/pkg/types"
)

// Request is a single text generation request
type Request struct {
	// Model is the provider-specific model identifier
	Model string

	// System is the system prompt
	System string

	// Prompt is the user prompt
	Prompt string

	// MaxTokens limits the generated output
	MaxTokens int64

	// Temperature controls sampling randomness
	Temperature float64
}

// Usage reports token consumption
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// Response is the result of a single-shot generation
type Response struct {
	Text         string
	FinishReason string
	Usage        Usage
}

// Chunk is one streamed piece of output
type Chunk struct {
	Text string
}

// Stream is an iterator over streamed output. Callers loop on Next,
// read Current, and check Err once Next returns false.
type Stream interface {
	Next() bool
	Current() Chunk
	Err() error
	Close() error
}

// Model is anything that can generate text in both call shapes
type Model interface {
	Generate(ctx context.Context, req *Request) (*Response, error)
	Stream(ctx context.Context, req *Request) (Stream, error)
}

// GenerateFunc is the single-shot call shape
type GenerateFunc func(ctx context.Context, req *Request) (*Response, error)

// StreamFunc is the streaming call shape
type StreamFunc func(ctx context.Context, req *Request) (Stream, error)

// Middleware intercepts both call shapes of a model
type Middleware interface {
	WrapGenerate(ctx context.Context, req *Request, next GenerateFunc) (*Response, error)
	WrapStream(ctx context.Context, req *Request, next StreamFunc) (Stream, error)
}

// Wrap composes middlewares onto m. The first middleware is the outermost.
func Wrap(m Model, mws ...Middleware) Model {
	for i := len(mws) - 1; i >= 0; i-- {
		m = &wrappedModel{inner: m, mw: mws[i]}
	}
	return m
}

type wrappedModel struct {
	inner Model
	mw    Middleware
}

func (w *wrappedModel) Generate(ctx context.Context, req *Request) (*Response, error) {
	return w.mw.WrapGenerate(ctx, req, w.inner.Generate)
}

func (w *wrappedModel) Stream(ctx context.Context, req *Request) (Stream, error) {
	return w.mw.WrapStream(ctx, req, w.inner.Stream)
}

// staticStream replays a fixed list of chunks and then an optional error
type staticStream struct {
	chunks []Chunk
	err    error
	pos    int
	done   bool
	closed bool
}

// NewStaticStream creates a Stream that yields chunks in order and then
// reports err (which may be nil) from Err
func NewStaticStream(err error, chunks ...Chunk) Stream {
	return &staticStream{chunks: chunks, err: err, pos: -1}
}

func (s *staticStream) Next() bool {
	if s.closed || s.pos+1 >= len(s.chunks) {
		s.done = true
		return false
	}
	s.pos++
	return true
}

func (s *staticStream) Current() Chunk {
	if s.pos < 0 || s.pos >= len(s.chunks) {
		return Chunk{}
	}
	return s.chunks[s.pos]
}

func (s *staticStream) Err() error {
	if s.closed {
		return types.ErrStreamClosed
	}
	if !s.done {
		return nil
	}
	return s.err
}

func (s *staticStream) Close() error {
	s.closed = true
	return nil
}

// Collect drains a stream into a single string and closes it
func Collect(stream Stream) (string, error) {
	defer stream.Close()

	var sb strings.Builder
	for stream.Next() {
		sb.WriteString(stream.Current().Text)
	}
	if err := stream.Err(); err != nil {
		return sb.String(), err
	}
	return sb.String(), nil
}
