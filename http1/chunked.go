package http1

import (
	"io"

	"github.com/indigo-web/embedhttp/errors"
	"github.com/indigo-web/embedhttp/internal/hexconv"
)

// ChunkedDecoder is a single-pass decoder of the chunked transfer coding. It holds
// no buffers: the payload is always a sub-slice of the input. Chunk extensions
// and trailer fields are skipped.
type ChunkedDecoder struct {
	state        chunkedState
	size         uint64
	maxChunkSize uint64
}

func NewChunkedDecoder(maxChunkSize uint64) *ChunkedDecoder {
	return &ChunkedDecoder{
		maxChunkSize: maxChunkSize,
	}
}

// Parse consumes the input and returns a contiguous piece of payload, if any. The
// unconsumed part of the input is returned as rest. Outcomes are:
//
//   - nil error: the payload is non-empty, rest may be fed in the next call;
//   - errors.ErrIncomplete: the input was consumed entirely producing no payload, feed more;
//   - io.EOF: the body is over, rest holds the bytes following it;
//   - any other error means the stream is malformed.
func (c *ChunkedDecoder) Parse(data []byte) (payload, rest []byte, err error) {
	var offset int

	switch c.state {
	case eChunkLength1Char:
		goto chunkLength1Char
	case eChunkLength:
		goto chunkLength
	case eChunkExtension:
		goto chunkExtension
	case eChunkLengthCR:
		goto chunkLengthCR
	case eChunkBody:
		goto chunkBody
	case eChunkBodyEnd:
		goto chunkBodyEnd
	case eChunkBodyCR:
		goto chunkBodyCR
	case eTrailer:
		goto trailer
	case eTrailerLine:
		goto trailerLine
	case eTrailerLineCR:
		goto trailerLineCR
	case eLastCR:
		goto lastCR
	case eDone:
		return nil, data, io.EOF
	default:
		panic("BUG: chunked decoder: unknown state")
	}

chunkLength1Char:
	if offset >= len(data) {
		return nil, nil, errors.ErrIncomplete
	}

	{
		digit := hexconv.Halfbyte[data[offset]]
		if digit == hexconv.Invalid {
			return nil, nil, errors.ErrMalformedChunkSize
		}

		c.size = uint64(digit)
		offset++
		c.state = eChunkLength
	}

chunkLength:
	for ; offset < len(data); offset++ {
		switch data[offset] {
		case '\r':
			offset++
			c.state = eChunkLengthCR
			goto chunkLengthCR
		case ';', ' ', '\t':
			offset++
			c.state = eChunkExtension
			goto chunkExtension
		}

		digit := hexconv.Halfbyte[data[offset]]
		if digit == hexconv.Invalid {
			return nil, nil, errors.ErrMalformedChunkSize
		}

		if c.size > c.maxChunkSize>>4 {
			return nil, nil, errors.ErrChunkTooLarge
		}

		c.size = c.size<<4 | uint64(digit)
		if c.size > c.maxChunkSize {
			return nil, nil, errors.ErrChunkTooLarge
		}
	}

	return nil, nil, errors.ErrIncomplete

chunkExtension:
	for ; offset < len(data); offset++ {
		switch data[offset] {
		case '\r':
			offset++
			c.state = eChunkLengthCR
			goto chunkLengthCR
		case '\n':
			return nil, nil, errors.ErrMalformedChunk
		}
	}

	return nil, nil, errors.ErrIncomplete

chunkLengthCR:
	if offset >= len(data) {
		return nil, nil, errors.ErrIncomplete
	}

	if data[offset] != '\n' {
		return nil, nil, errors.ErrMalformedChunkSize
	}

	offset++
	if c.size == 0 {
		c.state = eTrailer
		goto trailer
	}

	c.state = eChunkBody

chunkBody:
	if offset >= len(data) {
		return nil, nil, errors.ErrIncomplete
	}

	{
		n := min(uint64(len(data)-offset), c.size)
		payload = data[offset : offset+int(n)]
		offset += int(n)
		c.size -= n
		if c.size == 0 {
			c.state = eChunkBodyEnd
		}

		return payload, data[offset:], nil
	}

chunkBodyEnd:
	if offset >= len(data) {
		return nil, nil, errors.ErrIncomplete
	}

	if data[offset] != '\r' {
		return nil, nil, errors.ErrMalformedChunk
	}

	offset++
	c.state = eChunkBodyCR

chunkBodyCR:
	if offset >= len(data) {
		return nil, nil, errors.ErrIncomplete
	}

	if data[offset] != '\n' {
		return nil, nil, errors.ErrMalformedChunk
	}

	offset++
	c.state = eChunkLength1Char
	goto chunkLength1Char

trailer:
	if offset >= len(data) {
		return nil, nil, errors.ErrIncomplete
	}

	if data[offset] == '\r' {
		offset++
		c.state = eLastCR
		goto lastCR
	}

	c.state = eTrailerLine

trailerLine:
	for ; offset < len(data); offset++ {
		switch data[offset] {
		case '\r':
			offset++
			c.state = eTrailerLineCR
			goto trailerLineCR
		case '\n':
			return nil, nil, errors.ErrMalformedChunk
		}
	}

	return nil, nil, errors.ErrIncomplete

trailerLineCR:
	if offset >= len(data) {
		return nil, nil, errors.ErrIncomplete
	}

	if data[offset] != '\n' {
		return nil, nil, errors.ErrMalformedChunk
	}

	offset++
	c.state = eTrailer
	goto trailer

lastCR:
	if offset >= len(data) {
		return nil, nil, errors.ErrIncomplete
	}

	if data[offset] != '\n' {
		return nil, nil, errors.ErrMalformedChunk
	}

	c.state = eDone
	return nil, data[offset+1:], io.EOF
}

// State returns the current position within the body.
func (c *ChunkedDecoder) State() ChunkState {
	return c.state.public()
}

// Remaining returns how many bytes of the current chunk are left to read. It's
// meaningful only in the ReadingData state.
func (c *ChunkedDecoder) Remaining() uint64 {
	if c.state != eChunkBody {
		return 0
	}

	return c.size
}

func (c *ChunkedDecoder) Done() bool {
	return c.state == eDone
}

// Reset prepares the decoder for a new body.
func (c *ChunkedDecoder) Reset() {
	c.state = eChunkLength1Char
	c.size = 0
}
