// Package types defines error types
package types

import (
	"errors"
	"fmt"
	"net/http"
)

// Predefined errors
var (
	// ErrInvalidConfig indicates a retry configuration that violates its invariants
	ErrInvalidConfig = errors.New("invalid retry config")

	// ErrStreamClosed indicates the stream is closed
	ErrStreamClosed = errors.New("stream is closed")
)

// StatusCoder is implemented by errors that carry an HTTP-like status code
type StatusCoder interface {
	StatusCode() int
}

// ErrorCoder is implemented by errors that carry a provider error code
// such as "rate_limit_exceeded"
type ErrorCoder interface {
	ErrorCode() string
}

// HeaderProvider is implemented by errors that expose response headers
// through a getter
type HeaderProvider interface {
	Header() http.Header
}

// ResponseProvider is implemented by errors that keep the HTTP response
// that produced them
type ResponseProvider interface {
	HTTPResponse() *http.Response
}

// HeaderMapProvider is implemented by errors that carry headers as a flat,
// case-sensitive map
type HeaderMapProvider interface {
	HeaderMap() map[string]string
}

// APIError is a remote call failure reported by a model provider.
// Any of its fields may be zero; each populated field makes the matching
// capability interface above meaningful.
type APIError struct {
	// Status is the HTTP status code
	Status int

	// Code is the provider error code
	Code string

	// Message is the human-readable error message
	Message string

	// Headers are the response headers
	Headers http.Header

	// Response is the raw HTTP response, if kept
	Response *http.Response

	// RawHeaders are headers as delivered by clients that do not use http.Header
	RawHeaders map[string]string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Code)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// StatusCode returns the HTTP status code
func (e *APIError) StatusCode() int {
	return e.Status
}

// ErrorCode returns the provider error code
func (e *APIError) ErrorCode() string {
	return e.Code
}

// Header returns the response headers
func (e *APIError) Header() http.Header {
	return e.Headers
}

// HTTPResponse returns the raw HTTP response
func (e *APIError) HTTPResponse() *http.Response {
	return e.Response
}

// HeaderMap returns the flat header map
func (e *APIError) HeaderMap() map[string]string {
	return e.RawHeaders
}

// NewAPIError creates an APIError from a status code and message
func NewAPIError(status int, message string) *APIError {
	return &APIError{
		Status:  status,
		Message: message,
	}
}

// WithRetryAfter sets the Retry-After response header
func (e *APIError) WithRetryAfter(value string) *APIError {
	if e.Headers == nil {
		e.Headers = make(http.Header)
	}
	e.Headers.Set("Retry-After", value)
	return e
}

// APIErrorFromResponse builds an APIError from an HTTP response, keeping
// the response and its headers for retry hint extraction
func APIErrorFromResponse(resp *http.Response, message string) *APIError {
	if resp == nil {
		return &APIError{Message: message}
	}
	return &APIError{
		Status:   resp.StatusCode,
		Message:  message,
		Response: resp,
	}
}
