// Package stash turns piecewise zero-copy sources into an io.Reader.
package stash

import "github.com/indigo-web/embedhttp/errors"

// Retriever returns the next piece of data. The piece is valid until the next call.
type Retriever func() ([]byte, error)

// Reader covers a Retriever in the manner, so it implements the io.Reader. Pieces bigger
// than the destination are stashed and returned by subsequent calls before retrieving
// anything new.
type Reader struct {
	source  Retriever
	pending []byte
	err     error
}

func New(source Retriever) *Reader {
	return &Reader{source: source}
}

func (r *Reader) Read(b []byte) (n int, err error) {
	if len(r.pending) == 0 && r.err == nil {
		r.pending, r.err = r.source()
		if r.err == errors.ErrIncomplete && len(r.pending) == 0 {
			// not a failure, the next call may succeed
			r.err = nil
			return 0, errors.ErrIncomplete
		}
	}

	n = copy(b, r.pending)
	r.pending = r.pending[n:]

	if len(r.pending) > 0 {
		return n, nil
	}

	err = r.err
	if err == errors.ErrIncomplete {
		r.err = nil
	}

	return n, err
}

// Buffered returns the number of stashed bytes.
func (r *Reader) Buffered() int {
	return len(r.pending)
}

func (r *Reader) Reset() {
	r.pending = nil
	r.err = nil
}
