package http

import (
	"github.com/indigo-web/embedhttp/http/headers"
	"github.com/indigo-web/embedhttp/http/mime"
	"github.com/indigo-web/embedhttp/http/proto"
	"github.com/indigo-web/embedhttp/http/status"
)

// Response is a parsed response head together with a handle to its body. All the
// strings are views into the connection's buffer and are valid only until the
// exchange is over. Clone them if they're needed longer.
type Response struct {
	Protocol proto.Proto
	Code     status.Code
	// Status is the reason phrase exactly as it was sent. May be empty.
	Status  status.Status
	Headers *headers.Headers
	// ContentLength is -1 if the header is absent.
	ContentLength int64
	ContentType   mime.MIME
	Framing       Framing
	Persistence   Persistence
	// KeepAlive holds the parameters of the Keep-Alive header, if any.
	KeepAlive headers.KeepAlive
	Body      *Body
}

func NewResponse(hdrs *headers.Headers, body *Body) *Response {
	return &Response{
		Headers:       hdrs,
		ContentLength: -1,
		Body:          body,
	}
}

// Reset clears all the fields except the headers storage and the body handle, which
// are cleared and reset respectively by their owners.
func (r *Response) Reset() {
	*r = Response{
		Headers:       r.Headers,
		ContentLength: -1,
		Body:          r.Body,
	}
}
