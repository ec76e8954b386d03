package client

import (
	"github.com/indigo-web/embedhttp/http"
)

// Response is the received response head together with the connection it was
// received over. The embedded response and its body are valid until Close.
type Response struct {
	*http.Response
	session  *Session
	client   *Client
	stop     func() bool
	reusable bool
	closed   bool
}

// Close returns the connection into the pool if the body was consumed entirely and
// both sides agreed to keep it alive. Otherwise, the connection is closed.
func (r *Response) Close() error {
	if r.closed {
		return nil
	}

	r.closed = true
	r.stop()

	if !r.Body.Done() {
		r.client.logger.Printf(
			"client: closing connection to %s: response body was not consumed entirely\n",
			r.session.key,
		)

		return r.session.Close()
	}

	if !r.reusable {
		return r.session.Close()
	}

	return r.client.release(r.session)
}
