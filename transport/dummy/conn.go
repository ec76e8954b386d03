// Package dummy provides scripted connections for tests and benchmarks.
package dummy

import (
	"io"

	"github.com/indigo-web/utils/unreader"
)

// Conn returns predefined parts of data on reads, one part per call at most. Empty
// parts simulate a connection having no data yet. Once parts are exhausted, io.EOF is
// returned, unless the conn is circular: then it starts over.
// Everything written is accumulated in Written.
type Conn struct {
	unreader   *unreader.Unreader
	parts      [][]byte
	pointer    int
	circular   bool
	writeLimit int
	writeErr   error
	Written    []byte
}

func NewConn(parts ...[]byte) *Conn {
	return &Conn{
		unreader: new(unreader.Unreader),
		parts:    parts,
	}
}

// NewCircularConn returns a conn returning the same parts over and over again. This is
// used mainly for benchmarking
func NewCircularConn(parts ...[]byte) *Conn {
	conn := NewConn(parts...)
	conn.circular = true
	return conn
}

// NewNopConn returns a conn having nothing to read
func NewNopConn() *Conn {
	return NewConn()
}

// LimitWrites makes every write call accept at most n bytes.
func (c *Conn) LimitWrites(n int) *Conn {
	c.writeLimit = n
	return c
}

// FailWrites makes every write call fail with the error.
func (c *Conn) FailWrites(err error) *Conn {
	c.writeErr = err
	return c
}

func (c *Conn) Read(b []byte) (n int, err error) {
	data, err := c.unreader.PendingOr(c.next)
	if err != nil {
		return 0, err
	}

	n = copy(b, data)
	if n < len(data) {
		c.unreader.Unread(data[n:])
	}

	return n, nil
}

func (c *Conn) next() ([]byte, error) {
	if c.pointer >= len(c.parts) {
		if !c.circular || len(c.parts) == 0 {
			return nil, io.EOF
		}

		c.pointer = 0
	}

	part := c.parts[c.pointer]
	c.pointer++

	return part, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	if c.writeErr != nil {
		return 0, c.writeErr
	}

	if c.writeLimit > 0 && len(b) > c.writeLimit {
		b = b[:c.writeLimit]
	}

	c.Written = append(c.Written, b...)

	return len(b), nil
}

// Close makes every further read return io.EOF
func (c *Conn) Close() error {
	c.parts = c.parts[:c.pointer]
	c.circular = false
	return nil
}

// Split splits data into parts of the given size. The last part might be shorter.
func Split(data []byte, size int) (parts [][]byte) {
	for len(data) > size {
		parts = append(parts, data[:size])
		data = data[size:]
	}

	if len(data) > 0 {
		parts = append(parts, data)
	}

	return parts
}
