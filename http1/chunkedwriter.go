package http1

import (
	"io"
	"log"

	"github.com/indigo-web/embedhttp/errors"
	"github.com/indigo-web/embedhttp/http/headers"
	"github.com/indigo-web/embedhttp/internal/hexconv"
	"github.com/indigo-web/embedhttp/internal/httpchars"
	"github.com/indigo-web/embedhttp/transport"
	"github.com/indigo-web/utils/uf"
)

const (
	crlfSize = len("\r\n")
	// footerSize is the space reserved after the data window: the chunk's CRLF and,
	// when finishing, the terminal chunk.
	footerSize = crlfSize + len(httpchars.Terminator)
	// fallbackChunkCapacity is the data window of a buffer replacing one having no
	// room for data at all. Any window of at least a single byte is accepted as is.
	fallbackChunkCapacity = 16
)

var (
	terminator = []byte(httpchars.Terminator)
	lastChunk  = []byte(httpchars.LastChunk)
)

// ChunkedBufferSize returns the buffer length the ChunkedWriter needs in order to
// emit chunks of up to capacity bytes.
func ChunkedBufferSize(capacity int) int {
	return hexconv.Len(uint64(capacity)) + crlfSize + capacity + footerSize
}

// chunkCapacity returns the biggest data window fitting into the buffer of the size.
func chunkCapacity(size int) int {
	capacity := size - footerSize - crlfSize - 1
	for capacity > 0 && ChunkedBufferSize(capacity) > size {
		capacity--
	}

	return capacity
}

// ChunkedWriter buffers the body and emits it in chunks. The buffer is laid out as
// the chunk-size reserve, the data window and the footer reserve, so a chunk frame
// is always rendered in place and sent by a single write.
type ChunkedWriter struct {
	w        io.Writer
	buff     []byte
	reserve  int
	capacity int
	cursor   int
	finished bool
}

func NewChunkedWriter(w io.Writer, buff []byte) *ChunkedWriter {
	capacity := chunkCapacity(len(buff))
	if capacity < 1 {
		log.Printf("misconfiguration: chunked writer buffer is %d bytes long, "+
			"however minimal possible length is %d. Allocating a new one\n",
			len(buff), ChunkedBufferSize(1),
		)

		buff = make([]byte, ChunkedBufferSize(fallbackChunkCapacity))
		capacity = fallbackChunkCapacity
	}

	return &ChunkedWriter{
		w:        w,
		buff:     buff,
		reserve:  hexconv.Len(uint64(capacity)) + crlfSize,
		capacity: capacity,
	}
}

// Write buffers the data, flushing every time the buffer gets full. It returns only
// after the whole p was either buffered or sent.
func (c *ChunkedWriter) Write(p []byte) (n int, err error) {
	for n < len(p) {
		written, err := c.WriteSome(p[n:])
		n += written
		if err != nil {
			return n, err
		}
	}

	return n, nil
}

// WriteSome buffers as much of p as there's free space, returning how many bytes were
// taken. A write filling the free space exactly results in a flush, so a non-empty p
// never makes it return 0 without an error. If the buffer is empty and p is at
// least as big as the whole data window, p is sent as a single chunk directly.
func (c *ChunkedWriter) WriteSome(p []byte) (n int, err error) {
	if c.finished {
		return 0, errors.ErrBodyFinished
	}

	if len(p) == 0 {
		return 0, nil
	}

	if c.cursor == 0 && len(p) >= c.capacity {
		return len(p), c.writeDirect(p)
	}

	n = copy(c.buff[c.reserve+c.cursor:c.reserve+c.capacity], p)
	c.cursor += n
	if c.cursor == c.capacity {
		err = c.Flush()
	}

	return n, err
}

// ReadFrom implements io.ReaderFrom, reading straight into the data window.
func (c *ChunkedWriter) ReadFrom(r io.Reader) (total int64, err error) {
	if c.finished {
		return 0, errors.ErrBodyFinished
	}

	for {
		n, err := r.Read(c.buff[c.reserve+c.cursor : c.reserve+c.capacity])
		c.cursor += n
		total += int64(n)

		if c.cursor == c.capacity {
			if ferr := c.Flush(); ferr != nil {
				return total, ferr
			}
		}

		switch err {
		case nil:
		case io.EOF:
			return total, nil
		default:
			return total, err
		}
	}
}

// Flush sends the buffered data as a single chunk. Empty buffer is never flushed, as
// an empty chunk would terminate the body.
func (c *ChunkedWriter) Flush() error {
	if c.cursor == 0 {
		return nil
	}

	_, err := transport.WriteAll(c.w, c.frame(false))
	return err
}

// Finish flushes the rest of the data and terminates the body.
func (c *ChunkedWriter) Finish() error {
	return c.FinishWithTrailers(nil)
}

// FinishWithTrailers flushes the rest of the data, sends the last chunk followed by
// the trailer fields and terminates the body. Writes after that result in
// errors.ErrBodyFinished.
func (c *ChunkedWriter) FinishWithTrailers(trailers []headers.Header) error {
	if c.finished {
		return errors.ErrBodyFinished
	}

	for _, trailer := range trailers {
		if !validField(trailer.Key, trailer.Value) {
			return errors.ErrInvalidHeader
		}
	}

	c.finished = true

	if len(trailers) == 0 {
		if c.cursor == 0 {
			_, err := transport.WriteAll(c.w, terminator)
			return err
		}

		_, err := transport.WriteAll(c.w, c.frame(true))
		return err
	}

	if err := c.Flush(); err != nil {
		return err
	}

	if _, err := transport.WriteAll(c.w, lastChunk); err != nil {
		return err
	}

	for _, trailer := range trailers {
		if err := c.writeTrailer(trailer); err != nil {
			return err
		}
	}

	_, err := transport.WriteAll(c.w, httpchars.CRLF)
	return err
}

// Buffered returns how many bytes are waiting for the flush.
func (c *ChunkedWriter) Buffered() int {
	return c.cursor
}

// Available returns how many bytes can be buffered before the flush.
func (c *ChunkedWriter) Available() int {
	return c.capacity - c.cursor
}

// Capacity returns the size of the data window, i.e. the maximal chunk length.
func (c *ChunkedWriter) Capacity() int {
	return c.capacity
}

// Reset discards the buffered data and sets the new destination.
func (c *ChunkedWriter) Reset(w io.Writer) {
	c.w = w
	c.cursor = 0
	c.finished = false
}

// frame renders the chunk frame around the buffered data and resets the cursor.
func (c *ChunkedWriter) frame(terminate bool) []byte {
	sizeEnd := c.reserve - crlfSize
	offset := hexconv.Put(c.buff[:sizeEnd], uint64(c.cursor))
	copy(c.buff[sizeEnd:], httpchars.CRLF)

	end := c.reserve + c.cursor
	end += copy(c.buff[end:], httpchars.CRLF)
	if terminate {
		end += copy(c.buff[end:], terminator)
	}

	c.cursor = 0

	return c.buff[offset:end]
}

func (c *ChunkedWriter) writeDirect(p []byte) error {
	var sizeBuff [16 + crlfSize]byte
	offset := hexconv.Put(sizeBuff[:16], uint64(len(p)))
	copy(sizeBuff[16:], httpchars.CRLF)

	if _, err := transport.WriteAll(c.w, sizeBuff[offset:]); err != nil {
		return err
	}

	if _, err := transport.WriteAll(c.w, p); err != nil {
		return err
	}

	_, err := transport.WriteAll(c.w, httpchars.CRLF)
	return err
}

func (c *ChunkedWriter) writeTrailer(trailer headers.Header) error {
	for _, piece := range [...][]byte{
		uf.S2B(trailer.Key), httpchars.COLONSP, uf.S2B(trailer.Value), httpchars.CRLF,
	} {
		if _, err := transport.WriteAll(c.w, piece); err != nil {
			return err
		}
	}

	return nil
}
