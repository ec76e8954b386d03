// Package transport provides the byte stream capability the engine is built on top of,
// and a buffered adaptor over it.
package transport

import "io"

// Conn is a duplex byte stream. Read may return fewer bytes than requested, including
// zero bytes and no error, meaning there's no data yet. Write returns how many bytes
// were accepted. Plain and TLS connections from the standard library satisfy it, as
// well as anything else the caller composes on top of them.
//
// The engine never closes or re-dials the connection, this is up to the owner.
type Conn interface {
	io.Reader
	io.Writer
}
