// Package errors defines the sentinel errors produced by the framing engine and its
// collaborators. Errors returned by the transport itself are never wrapped into these,
// so compare using errors.Is against both.
package errors

import (
	"errors"
)

var (
	// ErrIncomplete signals that there isn't enough buffered input to complete the
	// operation yet. It isn't a protocol violation: feed more bytes and retry.
	ErrIncomplete = errors.New("incomplete input")

	ErrMalformedStatusLine = errors.New("malformed status line")
	ErrMalformedHeader     = errors.New("malformed header")
	ErrMalformedChunkSize  = errors.New("malformed chunk size")
	ErrMalformedChunk      = errors.New("malformed chunk-encoded data")
	ErrChunkTooLarge       = errors.New("chunk size exceeds the limit")
	ErrTooManyHeaders      = errors.New("too many headers")

	// ErrUnexpectedEOF is returned when the transport was closed in the middle of a
	// message. It's never interpreted as a valid end of a body.
	ErrUnexpectedEOF = errors.New("connection closed before the message was complete")
	// ErrBufferTooSmall is returned when the response head (or the body, being read
	// into a fixed buffer) doesn't fit into the buffer.
	ErrBufferTooSmall = errors.New("buffer is too small")

	// ErrBodyTooLarge is returned when a response body exceeds config.Body.MaxSize.
	ErrBodyTooLarge = errors.New("response body is too large")

	ErrBodyTooLong  = errors.New("written body exceeds the declared length")
	ErrBodyTooShort = errors.New("written body is shorter than the declared length")
	ErrBodyFinished = errors.New("body has already been finished")

	ErrRequestHeadTooLarge = errors.New("request head exceeds the buffer limit")
	// ErrInvalidHeader is returned for request headers or trailers, that would break the
	// message apart if rendered: names must be tokens, values may not hold control characters.
	ErrInvalidHeader = errors.New("invalid header field")
	ErrInvalidPath   = errors.New("request target holds whitespace or control characters")

	ErrUnsupportedMediaType = errors.New("unsupported media type")

	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
	ErrConnectionClosed  = errors.New("connection is closed")
)
