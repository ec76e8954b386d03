package http1

import (
	"io"
	"math"
	"strings"
	"testing"

	"github.com/indigo-web/embedhttp/errors"
	"github.com/indigo-web/embedhttp/transport/dummy"
	"github.com/stretchr/testify/require"
)

// feedDecoder feeds the decoder with parts, returning the decoded body and the bytes
// left after it. Rest of a part is fed again together with the next part, as it'd be
// with a transport client.
func feedDecoder(decoder *ChunkedDecoder, parts [][]byte) (body string, extra []byte, err error) {
	var (
		b       strings.Builder
		pending []byte
	)

	for i := 0; i < len(parts) || len(pending) > 0; {
		data := pending
		if len(data) == 0 {
			data = parts[i]
			i++
		}

		payload, rest, err := decoder.Parse(data)
		b.Write(payload)
		pending = rest

		switch err {
		case nil, errors.ErrIncomplete:
		case io.EOF:
			return b.String(), rest, nil
		default:
			return b.String(), rest, err
		}
	}

	return b.String(), nil, errors.ErrIncomplete
}

func TestChunkedDecoder(t *testing.T) {
	const maxChunk = 1 << 20

	t.Run("single chunk at once", func(t *testing.T) {
		decoder := NewChunkedDecoder(maxChunk)
		payload, rest, err := decoder.Parse([]byte("5\r\nhello\r\n0\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, "hello", string(payload))
		require.Equal(t, AwaitingDataCRLF, decoder.State())

		payload, rest, err = decoder.Parse(rest)
		require.ErrorIs(t, err, io.EOF)
		require.Empty(t, payload)
		require.Empty(t, rest)
		require.True(t, decoder.Done())
		require.Equal(t, Done, decoder.State())

		_, _, err = decoder.Parse(nil)
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("every split size", func(t *testing.T) {
		const sample = "5\r\nhello\r\n1a;ext=val\r\nabcdefghijklmnopqrstuvwxyz\r\n0\r\nX-Trailer: yes\r\n\r\nNEXT"
		const wantBody = "helloabcdefghijklmnopqrstuvwxyz"

		for size := 1; size <= len(sample); size++ {
			decoder := NewChunkedDecoder(maxChunk)
			body, extra, err := feedDecoder(decoder, dummy.Split([]byte(sample), size))
			require.NoError(t, err, "split size: %d", size)
			require.Equal(t, wantBody, body, "split size: %d", size)
			require.True(t, decoder.Done())

			// what follows the body within the last fed part is returned, which might be
			// only a beginning of NEXT
			require.True(t, strings.HasPrefix("NEXT", string(extra)), "split size: %d", size)
		}
	})

	t.Run("truncated stream", func(t *testing.T) {
		const sample = "5\r\nhello\r\n0\r\n\r\n"

		for i := 0; i < len(sample); i++ {
			decoder := NewChunkedDecoder(maxChunk)
			_, _, err := feedDecoder(decoder, [][]byte{[]byte(sample[:i])})
			require.ErrorIs(t, err, errors.ErrIncomplete, "truncated at %d", i)
			require.False(t, decoder.Done())
		}
	})

	t.Run("states", func(t *testing.T) {
		decoder := NewChunkedDecoder(maxChunk)
		require.Equal(t, AwaitingSize, decoder.State())

		_, _, err := decoder.Parse([]byte("a\r"))
		require.ErrorIs(t, err, errors.ErrIncomplete)
		require.Equal(t, AwaitingSize, decoder.State())

		_, _, err = decoder.Parse([]byte("\n"))
		require.ErrorIs(t, err, errors.ErrIncomplete)
		require.Equal(t, ReadingData, decoder.State())
		require.Equal(t, uint64(10), decoder.Remaining())

		payload, _, err := decoder.Parse([]byte("abcd"))
		require.NoError(t, err)
		require.Equal(t, "abcd", string(payload))
		require.Equal(t, uint64(6), decoder.Remaining())

		payload, _, err = decoder.Parse([]byte("efghij"))
		require.NoError(t, err)
		require.Equal(t, "efghij", string(payload))
		require.Equal(t, AwaitingDataCRLF, decoder.State())
		require.Zero(t, decoder.Remaining())

		_, _, err = decoder.Parse([]byte("\r\n0\r\n"))
		require.ErrorIs(t, err, errors.ErrIncomplete)
		require.Equal(t, AwaitingTrailerOrEnd, decoder.State())

		_, rest, err := decoder.Parse([]byte("\r\n"))
		require.ErrorIs(t, err, io.EOF)
		require.Empty(t, rest)
		require.Equal(t, Done, decoder.State())

		decoder.Reset()
		require.Equal(t, AwaitingSize, decoder.State())
	})

	t.Run("uppercase hex", func(t *testing.T) {
		decoder := NewChunkedDecoder(maxChunk)
		body, _, err := feedDecoder(decoder, [][]byte{[]byte("A\r\n0123456789\r\n0\r\n\r\n")})
		require.NoError(t, err)
		require.Equal(t, "0123456789", body)
	})

	t.Run("non-hex size", func(t *testing.T) {
		for _, sample := range []string{"x\r\n", "5x\r\n", "\r\n", "-1\r\n"} {
			decoder := NewChunkedDecoder(maxChunk)
			_, _, err := decoder.Parse([]byte(sample))
			require.ErrorIs(t, err, errors.ErrMalformedChunkSize, sample)
		}
	})

	t.Run("CR not followed by LF after size", func(t *testing.T) {
		decoder := NewChunkedDecoder(maxChunk)
		_, _, err := decoder.Parse([]byte("5\r\rhello"))
		require.ErrorIs(t, err, errors.ErrMalformedChunkSize)
	})

	t.Run("missing CRLF after data", func(t *testing.T) {
		decoder := NewChunkedDecoder(maxChunk)
		_, _, err := feedDecoder(decoder, [][]byte{[]byte("5\r\nhelloX\r\n0\r\n\r\n")})
		require.ErrorIs(t, err, errors.ErrMalformedChunk)
	})

	t.Run("too large chunk", func(t *testing.T) {
		decoder := NewChunkedDecoder(0xff)
		_, _, err := decoder.Parse([]byte("100\r\n"))
		require.ErrorIs(t, err, errors.ErrChunkTooLarge)

		decoder = NewChunkedDecoder(0xff)
		_, _, err = feedDecoder(decoder, [][]byte{[]byte("ff\r\n"), []byte(strings.Repeat("a", 0xff)), []byte("\r\n0\r\n\r\n")})
		require.NoError(t, err)
	})

	t.Run("size overflow", func(t *testing.T) {
		decoder := NewChunkedDecoder(math.MaxUint64)
		_, _, err := decoder.Parse([]byte("1ffffffffffffffff\r\n"))
		require.ErrorIs(t, err, errors.ErrChunkTooLarge)
	})

	t.Run("malformed trailer", func(t *testing.T) {
		decoder := NewChunkedDecoder(maxChunk)
		_, _, err := feedDecoder(decoder, [][]byte{[]byte("0\r\nX-Trailer: yes\n\r\n")})
		require.ErrorIs(t, err, errors.ErrMalformedChunk)
	})
}
