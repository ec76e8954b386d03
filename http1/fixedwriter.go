package http1

import (
	"io"

	"github.com/indigo-web/embedhttp/errors"
	"github.com/indigo-web/embedhttp/transport"
)

// BodyWriter is what the Serializer returns to write the request body with.
type BodyWriter interface {
	io.Writer
	// Finish completes the body. No writes are permitted after it.
	Finish() error
}

var (
	_ BodyWriter = new(FixedWriter)
	_ BodyWriter = new(ChunkedWriter)
)

// FixedWriter passes the body through unbuffered, enforcing its declared length.
type FixedWriter struct {
	w         io.Writer
	remaining int64
	finished  bool
}

func NewFixedWriter(w io.Writer, length int64) *FixedWriter {
	return &FixedWriter{
		w:         w,
		remaining: length,
	}
}

// Write rejects p entirely if it exceeds the declared length.
func (f *FixedWriter) Write(p []byte) (n int, err error) {
	if f.finished {
		return 0, errors.ErrBodyFinished
	}

	if int64(len(p)) > f.remaining {
		return 0, errors.ErrBodyTooLong
	}

	n, err = transport.WriteAll(f.w, p)
	f.remaining -= int64(n)

	return n, err
}

// Finish returns errors.ErrBodyTooShort if less than declared was written.
func (f *FixedWriter) Finish() error {
	if f.finished {
		return errors.ErrBodyFinished
	}

	f.finished = true
	if f.remaining > 0 {
		return errors.ErrBodyTooShort
	}

	return nil
}

// Remaining returns how many bytes are left to write.
func (f *FixedWriter) Remaining() int64 {
	return f.remaining
}

func (f *FixedWriter) Reset(w io.Writer, length int64) {
	f.w = w
	f.remaining = length
	f.finished = false
}
