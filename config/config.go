package config

import (
	"time"
)

type (
	HeadersNumber struct {
		Default, Maximal int
	}

	HeadBufferSize struct {
		Default, Maximal int
	}
)

type (
	Headers struct {
		// Number is responsible for headers storage size.
		// Default value is an initial size of the pre-allocated headers storage.
		// Maximal value is maximum number of headers allowed to be presented in a single
		// response head. Exceeding it results in errors.ErrTooManyHeaders
		Number HeadersNumber
		// UserAgent is sent with every request, unless the request carries its own.
		UserAgent string
	}

	Head struct {
		// BufferSize is the size of a buffer storing the response head. The head must
		// fit into it entirely, as header views are pointing into the buffer. Whatever
		// remains after the head is used for reading the body. The buffer never grows
		// beyond its Default size in the engine itself; Maximal bounds the rendered
		// request head instead.
		BufferSize HeadBufferSize
	}

	Body struct {
		// MaxSize is the maximal size of a response body. Exceeding it results in
		// errors.ErrBodyTooLarge. In order to disable the setting, use math.MaxUint64.
		MaxSize uint64
		// MaxChunkSize limits a single chunk of a chunked response body. Bigger chunks
		// result in errors.ErrChunkTooLarge.
		MaxChunkSize uint64
		// ChunkedBufferSize is the size of the buffer used to coalesce writes of request
		// bodies with unknown length into chunks. Includes the space for chunk framing.
		ChunkedBufferSize int
		// StreamBufferSize is used to copy request bodies of known length from their
		// io.Reader source into the connection.
		StreamBufferSize int
		// BufferPrealloc is the initial capacity of the buffer the whole response body
		// is accumulated in by http.Body.Bytes.
		BufferPrealloc int
	}

	NET struct {
		// DialTimeout bounds establishing a new connection (including the TLS handshake).
		DialTimeout time.Duration
		// ReadTimeout bounds every read from the connection.
		ReadTimeout time.Duration
		// WriteTimeout bounds every write into the connection.
		WriteTimeout time.Duration
		// IdleConnsPerHost is the number of persistent connections kept for reuse per
		// host. Connections above that number are closed after their exchange.
		IdleConnsPerHost int
	}
)

// Config holds settings used across various parts of the client, mainly restrictions,
// limitations and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Headers Headers
	Head    Head
	Body    Body
	NET     NET
}

// Default returns default config. Those are initially well-balanced, yet tight enough
// for constrained environments.
func Default() *Config {
	return &Config{
		Headers: Headers{
			Number: HeadersNumber{
				Default: 10,
				Maximal: 64,
			},
			UserAgent: "embedhttp",
		},
		Head: Head{
			BufferSize: HeadBufferSize{
				Default: 4 * 1024,
				// the request head is rendered in its own buffer, which is allowed to
				// grow up to this value in case of many or long headers.
				Maximal: 16 * 1024,
			},
		},
		Body: Body{
			MaxSize:           64 * 1024 * 1024,
			MaxChunkSize:      16 * 1024 * 1024,
			ChunkedBufferSize: 1024,
			StreamBufferSize:  2 * 1024,
			BufferPrealloc:    1024,
		},
		NET: NET{
			DialTimeout:      10 * time.Second,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     30 * time.Second,
			IdleConnsPerHost: 2,
		},
	}
}
