package http1

import (
	"io"

	"github.com/indigo-web/embedhttp/config"
	"github.com/indigo-web/embedhttp/errors"
	"github.com/indigo-web/embedhttp/http"
	"github.com/indigo-web/embedhttp/http/headers"
	"github.com/indigo-web/embedhttp/http/method"
	"github.com/indigo-web/embedhttp/http/status"
	"github.com/indigo-web/embedhttp/transport"
)

// ResponseReader reads responses off the transport client. The response, its headers
// and its body are owned by the ResponseReader and are reused, so they're valid only
// until the next Read.
type ResponseReader struct {
	client     *transport.Client
	response   *http.Response
	reader     *Reader
	maxHeaders int
	// inProgress is set while the head is read across multiple calls
	inProgress bool
}

func NewResponseReader(client *transport.Client, cfg *config.Config) *ResponseReader {
	reader := NewReader(client, cfg.Body.MaxChunkSize, cfg.Body.MaxSize)
	response := http.NewResponse(
		headers.NewPrealloc(cfg.Headers.Number.Default),
		http.NewBody(cfg.Body.BufferPrealloc),
	)

	return &ResponseReader{
		client:     client,
		response:   response,
		reader:     reader,
		maxHeaders: cfg.Headers.Number.Maximal,
	}
}

// Read reads the response head. The body is left in the transport and is available
// via Response.Body. Informational responses (except for 101 Switching Protocols)
// are skipped. If errors.ErrIncomplete is returned, the call may be repeated as soon
// as the transport has more data.
//
// The previous response's body must be consumed before the next Read, otherwise its
// remainder will be interpreted as the next response head.
func (r *ResponseReader) Read(m method.Method) (*http.Response, error) {
	if !r.inProgress {
		r.client.Release()
		r.inProgress = true
	}

	seen := -1

	for {
		window, ferr := r.client.Fill()
		n, err := ParseResponse(window, m, r.response, r.maxHeaders)
		if err == errors.ErrIncomplete {
			switch {
			case ferr == io.EOF && len(window) == 0:
				err = errors.ErrConnectionClosed
			case ferr == io.EOF:
				err = errors.ErrUnexpectedEOF
			case ferr != nil:
				err = ferr
			case len(window) != seen:
				seen = len(window)
				continue
			default:
				// the transport has nothing for now
				return nil, err
			}
		}

		if err != nil {
			r.inProgress = false
			return nil, err
		}

		r.client.Pin(n)

		if r.response.Code.IsInformational() && r.response.Code != status.SwitchingProtocols {
			r.client.Release()
			seen = -1
			continue
		}

		break
	}

	r.inProgress = false
	r.reader.Reset(r.response.Framing)
	r.response.Body.Reset(r.reader, r.response.ContentType)

	return r.response, nil
}

// Reader returns the body reader of the current response.
func (r *ResponseReader) Reader() *Reader {
	return r.reader
}
