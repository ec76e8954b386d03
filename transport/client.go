package transport

import (
	"io"

	"github.com/indigo-web/embedhttp/errors"
	"github.com/indigo-web/utils/unreader"
)

// Client wraps a Conn with a caller-provided fixed buffer. The buffer is shared between
// two consumers: the response head, accumulated at its beginning via Fill and then
// pinned via Pin, and the body, read into whatever remains after the pinned head.
// Pinned bytes are never overwritten until Release, so views into the head stay valid
// during the whole exchange.
//
// The Client isn't safe for concurrent use. It never retains the buffer beyond its own
// lifetime and owns nothing to clean up.
type Client struct {
	conn     Conn
	buff     []byte
	unreader *unreader.Unreader
	// floor marks the pinned prefix of the buffer
	floor int
	// head is the length of the head window being accumulated
	head int
	err  error
}

func NewClient(conn Conn, buff []byte) *Client {
	return &Client{
		conn:     conn,
		buff:     buff,
		unreader: new(unreader.Unreader),
	}
}

// Read returns pending data if any, otherwise reads from the connection into the
// unpinned part of the buffer. The returned slice is valid until the next call.
// Zero bytes and no error mean the connection has no data yet.
func (c *Client) Read() ([]byte, error) {
	return c.unreader.PendingOr(func() ([]byte, error) {
		if c.err != nil {
			return nil, c.err
		}

		if c.floor >= len(c.buff) {
			return nil, errors.ErrBufferTooSmall
		}

		n, err := c.conn.Read(c.buff[c.floor:])
		if n > 0 && err != nil {
			// deliver the data first, the error will be returned by the next call
			c.err, err = err, nil
		}

		return c.buff[c.floor : c.floor+n], err
	})
}

// Unread returns the data back, so it'll be returned by the next Read or Fill call.
// The data must be a suffix of what was returned by the last Read.
func (c *Client) Unread(b []byte) {
	if len(b) > 0 {
		c.unreader.Unread(b)
	}
}

// Fill accumulates the head window at the beginning of the buffer. On the first call
// pending data, if any, is moved to the beginning and returned without touching the
// connection. Every next call reads from the connection and appends to the window.
// The whole window is returned. errors.ErrBufferTooSmall is returned if the window
// already occupies the whole buffer.
func (c *Client) Fill() ([]byte, error) {
	if c.head == 0 {
		pending, _ := c.unreader.PendingOr(nothing)
		if len(pending) > 0 {
			c.head = copy(c.buff, pending)
			return c.buff[:c.head], nil
		}
	}

	if c.err != nil {
		return c.buff[:c.head], c.err
	}

	if c.head >= len(c.buff) {
		return c.buff[:c.head], errors.ErrBufferTooSmall
	}

	n, err := c.conn.Read(c.buff[c.head:])
	c.head += n
	if n > 0 && err != nil {
		c.err, err = err, nil
	}

	return c.buff[:c.head], err
}

// Pin protects the first n bytes of the head window from being overwritten until
// Release is called. Bytes of the window after n become pending and will be returned
// by the next Read.
func (c *Client) Pin(n int) {
	c.floor = n
	c.Unread(c.buff[n:c.head])
	c.head = 0
}

// Release unpins the head. Views into it must not be used after that.
func (c *Client) Release() {
	c.floor = 0
	c.head = 0
}

// Free returns the number of bytes available for reading the body.
func (c *Client) Free() int {
	return len(c.buff) - c.floor
}

// Write writes the whole b, retrying on short writes. A write accepting zero bytes
// without an error results in io.ErrShortWrite, as nothing can progress anymore.
func (c *Client) Write(b []byte) (int, error) {
	return WriteAll(c.conn, b)
}

// Conn returns the underlying connection.
func (c *Client) Conn() Conn {
	return c.conn
}

// WriteAll writes the whole b into w, retrying short writes.
func WriteAll(w io.Writer, b []byte) (total int, err error) {
	for total < len(b) {
		n, err := w.Write(b[total:])
		total += n
		if err != nil {
			return total, err
		}

		if n == 0 {
			return total, io.ErrShortWrite
		}
	}

	return total, nil
}

func nothing() ([]byte, error) {
	return nil, nil
}
