package http1

import (
	"io"

	"github.com/indigo-web/embedhttp/errors"
	"github.com/indigo-web/embedhttp/http"
	"github.com/indigo-web/embedhttp/internal/stash"
	"github.com/indigo-web/embedhttp/transport"
)

var _ http.BodyReader = new(Reader)

// Reader pulls the body out of the transport client, decoding it according to its
// framing. Bytes following the body are left in the client.
type Reader struct {
	*stash.Reader
	client  *transport.Client
	kind    http.FramingKind
	chunked *ChunkedDecoder
	fixed   FixedDecoder
	closed  bool
	err     error
	// received counts payload bytes of the current body
	received, maxBodySize uint64
}

// NewReader returns a body reader. Bodies longer than maxBodySize are rejected with
// errors.ErrBodyTooLarge.
func NewReader(client *transport.Client, maxChunkSize, maxBodySize uint64) *Reader {
	r := &Reader{
		client:      client,
		chunked:     NewChunkedDecoder(maxChunkSize),
		maxBodySize: maxBodySize,
	}
	r.Reader = stash.New(r.Retrieve)

	return r
}

// Reset prepares the reader for a new body.
func (r *Reader) Reset(framing http.Framing) {
	r.kind = framing.Kind
	r.chunked.Reset()
	r.fixed.Reset(framing.Length)
	r.closed = false
	r.err = nil
	r.received = 0
	r.Reader.Reset()

	if r.kind == http.FixedLength && framing.Length > r.maxBodySize {
		r.err = errors.ErrBodyTooLarge
	}
}

// Retrieve returns the next piece of the body. The piece points into the client's
// buffer and is valid until the next call. errors.ErrIncomplete is returned when the
// transport had nothing to offer, and the call can be safely repeated.
func (r *Reader) Retrieve() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}

	for {
		if r.Done() {
			return nil, io.EOF
		}

		data, err := r.client.Read()
		if len(data) == 0 {
			switch err {
			case nil:
				return nil, errors.ErrIncomplete
			case io.EOF:
				if r.kind == http.UntilClose {
					r.closed = true
					return nil, io.EOF
				}

				err = errors.ErrUnexpectedEOF
			}

			r.err = err
			return nil, err
		}

		var payload, rest []byte
		switch r.kind {
		case http.Chunked:
			payload, rest, err = r.chunked.Parse(data)
		case http.FixedLength:
			payload, rest, err = r.fixed.Parse(data)
		default:
			payload, err = data, nil
		}

		r.client.Unread(rest)

		switch err {
		case nil:
			r.received += uint64(len(payload))
			if r.received > r.maxBodySize {
				r.err = errors.ErrBodyTooLarge
				return nil, r.err
			}

			return payload, nil
		case errors.ErrIncomplete:
		case io.EOF:
			return nil, io.EOF
		default:
			r.err = err
			return nil, err
		}
	}
}

// Done reports whether the body has been consumed entirely.
func (r *Reader) Done() bool {
	switch r.kind {
	case http.Chunked:
		return r.chunked.Done()
	case http.FixedLength:
		return r.fixed.Done()
	case http.UntilClose:
		return r.closed
	default:
		return true
	}
}

// ChunkState exposes the chunked decoder's position. Meaningful for chunked bodies only.
func (r *Reader) ChunkState() ChunkState {
	return r.chunked.State()
}
