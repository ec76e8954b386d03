package http1

import (
	"io"

	"github.com/indigo-web/embedhttp/errors"
)

// FixedDecoder passes through exactly the declared number of bytes.
type FixedDecoder struct {
	remaining uint64
}

func NewFixedDecoder(length uint64) *FixedDecoder {
	return &FixedDecoder{remaining: length}
}

// Parse behaves the same way ChunkedDecoder.Parse does.
func (f *FixedDecoder) Parse(data []byte) (payload, rest []byte, err error) {
	if f.remaining == 0 {
		return nil, data, io.EOF
	}

	if len(data) == 0 {
		return nil, nil, errors.ErrIncomplete
	}

	n := min(uint64(len(data)), f.remaining)
	f.remaining -= n

	return data[:n], data[n:], nil
}

func (f *FixedDecoder) Remaining() uint64 {
	return f.remaining
}

func (f *FixedDecoder) Done() bool {
	return f.remaining == 0
}

func (f *FixedDecoder) Reset(length uint64) {
	f.remaining = length
}
