package http

import (
	"bytes"
	"io"

	"github.com/indigo-web/embedhttp/http/headers"
	"github.com/indigo-web/embedhttp/http/method"
	"github.com/indigo-web/embedhttp/http/mime"
	json "github.com/json-iterator/go"
)

// BasicAuth holds credentials rendered into the Authorization header.
type BasicAuth struct {
	User, Password string
}

// Request represents an outgoing HTTP request. All the fields are meant to be set
// via chained builder methods, however can be safely changed directly as well.
type Request struct {
	// Method is the request method. GET by default.
	Method method.Method
	// Path is the request target, rendered as is. Empty path is rendered as /.
	Path string
	// Headers holds caller-supplied header pairs, rendered in the order they were added.
	// Content-Length and Transfer-Encoding are ignored, as framing is always derived
	// from the body.
	Headers *headers.Headers
	// ContentType is rendered as the Content-Type header if not empty.
	ContentType mime.MIME
	// Auth enables the Basic authorization.
	Auth *BasicAuth
	// Body is an in-memory payload. Takes precedence over the Stream.
	Body []byte
	// Stream is a body source. If ContentLength is negative, the body is sent chunked.
	Stream io.Reader
	// ContentLength is the exact length of the Stream, or -1 if unknown.
	ContentLength int64
	// Trailers are sent after the chunked body. Ignored otherwise.
	Trailers []headers.Header

	// jsonBuff is owned by the request, so encoding never touches a caller's Body.
	jsonBuff []byte
}

func NewRequest(m method.Method, path string) *Request {
	return &Request{
		Method:        m,
		Path:          path,
		Headers:       headers.New(),
		ContentLength: -1,
	}
}

// Header adds headers. Multiple values are added as multiple header lines.
func (r *Request) Header(key string, values ...string) *Request {
	for _, value := range values {
		r.Headers.Add(key, value)
	}

	return r
}

// WithContentType sets the Content-Type.
func (r *Request) WithContentType(value mime.MIME) *Request {
	r.ContentType = value
	return r
}

// BasicAuth sets the credentials.
func (r *Request) BasicAuth(user, password string) *Request {
	r.Auth = &BasicAuth{User: user, Password: password}
	return r
}

// Bytes sets the in-memory payload.
func (r *Request) Bytes(body []byte) *Request {
	r.Body = body
	r.Stream = nil
	r.ContentLength = int64(len(body))
	return r
}

// String sets the in-memory payload.
func (r *Request) String(body string) *Request {
	return r.Bytes([]byte(body))
}

// WithStream sets the body source. Pass a negative length if it isn't known in advance,
// so the body will be transferred chunked.
func (r *Request) WithStream(reader io.Reader, length int64) *Request {
	r.Body = nil
	r.Stream = reader
	r.ContentLength = length
	if length < 0 {
		r.ContentLength = -1
	}

	return r
}

// Trailer adds a trailer header. Trailers are sent only with chunked bodies.
func (r *Request) Trailer(key, value string) *Request {
	r.Trailers = append(r.Trailers, headers.Header{Key: key, Value: value})
	return r
}

// TryJSON marshals the model and sets it as the payload. The encoded payload lives in
// a buffer owned by the request and is overwritten by the next TryJSON call.
func (r *Request) TryJSON(model any) (*Request, error) {
	buff := bytes.NewBuffer(r.jsonBuff[:0])
	stream := json.ConfigDefault.BorrowStream(buff)
	stream.WriteVal(model)
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)
	if err != nil {
		return r, err
	}

	r.jsonBuff = buff.Bytes()
	return r.Bytes(r.jsonBuff).WithContentType(mime.JSON), nil
}

// JSON does the same as TryJSON does, except the error is silently discarded.
func (r *Request) JSON(model any) *Request {
	req, _ := r.TryJSON(model)
	return req
}

// BodyLength returns the number of bytes in the body, 0 if there's no body at all and -1
// if the length is unknown.
func (r *Request) BodyLength() int64 {
	switch {
	case len(r.Body) > 0:
		return int64(len(r.Body))
	case r.Stream != nil:
		return r.ContentLength
	default:
		return 0
	}
}

// Clear resets the request to be used again.
func (r *Request) Clear() *Request {
	r.Method = method.GET
	r.Path = ""
	r.Headers.Clear()
	r.ContentType = ""
	r.Auth = nil
	r.Body = nil
	r.Stream = nil
	r.ContentLength = -1
	r.Trailers = r.Trailers[:0]

	return r
}
