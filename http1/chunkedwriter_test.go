package http1

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/embedhttp/errors"
	"github.com/indigo-web/embedhttp/http/headers"
	"github.com/indigo-web/embedhttp/transport/dummy"
	"github.com/stretchr/testify/require"
)

// recordingWriter remembers every write separately.
type recordingWriter struct {
	writes [][]byte
}

func (r *recordingWriter) Write(b []byte) (int, error) {
	r.writes = append(r.writes, bytes.Clone(b))
	return len(b), nil
}

func (r *recordingWriter) String() string {
	return string(bytes.Join(r.writes, nil))
}

// dechunk decodes the stream with an independent decoder. Termination is checked
// by feeding the stream into ChunkedDecoder as well.
func dechunk(t *testing.T, stream []byte) string {
	own, _, err := feedDecoder(NewChunkedDecoder(1<<20), [][]byte{stream})
	require.NoError(t, err)

	parser := chunkedbody.NewParser(chunkedbody.DefaultSettings())

	var body []byte
	for len(stream) > 0 {
		chunk, extra, err := parser.Parse(stream, false)
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}

		body = append(body, chunk...)
		stream = extra
	}

	require.Equal(t, own, string(body))

	return string(body)
}

func TestChunkedWriter(t *testing.T) {
	payload := strings.Repeat("abcdefgh", 37)

	t.Run("round trip across capacities", func(t *testing.T) {
		for capacity := 1; capacity <= len(payload)+8; capacity++ {
			for _, step := range []int{1, 3, 16, 100, len(payload)} {
				conn := dummy.NewNopConn()
				writer := NewChunkedWriter(conn, make([]byte, ChunkedBufferSize(capacity)))
				require.Equal(t, capacity, writer.Capacity())

				for i := 0; i < len(payload); i += step {
					n, err := writer.Write([]byte(payload[i:min(i+step, len(payload))]))
					require.NoError(t, err)
					require.Equal(t, min(step, len(payload)-i), n)
				}

				require.NoError(t, writer.Finish())
				require.Equal(t, payload, dechunk(t, conn.Written), "capacity %d, step %d", capacity, step)
			}
		}
	})

	t.Run("exact fill flushes a complete chunk", func(t *testing.T) {
		w := new(recordingWriter)
		writer := NewChunkedWriter(w, make([]byte, ChunkedBufferSize(16)))

		n, err := writer.WriteSome([]byte("0123456789"))
		require.NoError(t, err)
		require.Equal(t, 10, n)
		require.Empty(t, w.writes)

		n, err = writer.WriteSome([]byte("abcdef"))
		require.NoError(t, err)
		require.Equal(t, 6, n)
		require.Len(t, w.writes, 1)
		require.Equal(t, "10\r\n0123456789abcdef\r\n", string(w.writes[0]))
		require.Zero(t, writer.Buffered())
		require.Equal(t, 16, writer.Available())
	})

	t.Run("non-empty write never returns zero", func(t *testing.T) {
		w := new(recordingWriter)
		writer := NewChunkedWriter(w, make([]byte, ChunkedBufferSize(16)))
		data := []byte(payload)

		for len(data) > 0 {
			n, err := writer.WriteSome(data[:min(len(data), 7)])
			require.NoError(t, err)
			require.NotZero(t, n)
			data = data[n:]
		}

		require.NoError(t, writer.Finish())
		require.Equal(t, payload, dechunk(t, []byte(w.String())))
	})

	t.Run("partial write", func(t *testing.T) {
		w := new(recordingWriter)
		writer := NewChunkedWriter(w, make([]byte, ChunkedBufferSize(16)))

		n, err := writer.WriteSome([]byte("0123456789"))
		require.NoError(t, err)
		require.Equal(t, 10, n)

		n, err = writer.WriteSome([]byte("abcdefghij"))
		require.NoError(t, err)
		require.Equal(t, 6, n, "must take exactly what fits")
		require.Len(t, w.writes, 1)
	})

	t.Run("large write bypasses the buffer", func(t *testing.T) {
		w := new(recordingWriter)
		writer := NewChunkedWriter(w, make([]byte, ChunkedBufferSize(16)))

		n, err := writer.Write([]byte(payload))
		require.NoError(t, err)
		require.Equal(t, len(payload), n)
		require.Zero(t, writer.Buffered())
		require.Equal(t, "128\r\n"+payload+"\r\n", w.String())
	})

	t.Run("finish emits last chunk and terminator at once", func(t *testing.T) {
		w := new(recordingWriter)
		writer := NewChunkedWriter(w, make([]byte, ChunkedBufferSize(16)))

		_, err := writer.Write([]byte("hello"))
		require.NoError(t, err)
		require.NoError(t, writer.Finish())
		require.Len(t, w.writes, 1)
		require.Equal(t, "5\r\nhello\r\n0\r\n\r\n", string(w.writes[0]))
	})

	t.Run("finish empty body", func(t *testing.T) {
		w := new(recordingWriter)
		writer := NewChunkedWriter(w, make([]byte, ChunkedBufferSize(16)))
		require.NoError(t, writer.Finish())
		require.Equal(t, "0\r\n\r\n", w.String())
	})

	t.Run("invalid trailers", func(t *testing.T) {
		w := new(recordingWriter)
		writer := NewChunkedWriter(w, make([]byte, ChunkedBufferSize(16)))
		_, err := writer.Write([]byte("hello"))
		require.NoError(t, err)

		err = writer.FinishWithTrailers([]headers.Header{{Key: "X-Sum", Value: "abc\r\nInjected: yes"}})
		require.ErrorIs(t, err, errors.ErrInvalidHeader)
		require.Empty(t, w.String())

		require.NoError(t, writer.Finish())
		require.Equal(t, "5\r\nhello\r\n0\r\n\r\n", w.String())
	})

	t.Run("trailers", func(t *testing.T) {
		w := new(recordingWriter)
		writer := NewChunkedWriter(w, make([]byte, ChunkedBufferSize(16)))
		_, err := writer.Write([]byte("hello"))
		require.NoError(t, err)

		err = writer.FinishWithTrailers([]headers.Header{
			{Key: "Expires", Value: "never"},
			{Key: "X-Checksum", Value: "abc"},
		})
		require.NoError(t, err)
		require.Equal(t, "5\r\nhello\r\n0\r\nExpires: never\r\nX-Checksum: abc\r\n\r\n", w.String())

		body, rest, err := feedDecoder(NewChunkedDecoder(1<<20), [][]byte{[]byte(w.String())})
		require.NoError(t, err)
		require.Equal(t, "hello", body)
		require.Empty(t, rest)
	})

	t.Run("write after finish", func(t *testing.T) {
		writer := NewChunkedWriter(dummy.NewNopConn(), make([]byte, ChunkedBufferSize(16)))
		require.NoError(t, writer.Finish())

		_, err := writer.Write([]byte("hello"))
		require.ErrorIs(t, err, errors.ErrBodyFinished)
		require.ErrorIs(t, writer.Finish(), errors.ErrBodyFinished)

		writer.Reset(dummy.NewNopConn())
		_, err = writer.Write([]byte("hello"))
		require.NoError(t, err)
	})

	t.Run("read from", func(t *testing.T) {
		for _, capacity := range []int{16, 31, 64, 1000} {
			conn := dummy.NewNopConn()
			writer := NewChunkedWriter(conn, make([]byte, ChunkedBufferSize(capacity)))
			n, err := writer.ReadFrom(strings.NewReader(payload))
			require.NoError(t, err)
			require.Equal(t, int64(len(payload)), n)
			require.NoError(t, writer.Finish())
			require.Equal(t, payload, dechunk(t, conn.Written))
		}
	})

	t.Run("short writes of the transport", func(t *testing.T) {
		conn := dummy.NewNopConn().LimitWrites(3)
		writer := NewChunkedWriter(conn, make([]byte, ChunkedBufferSize(16)))
		_, err := writer.Write([]byte(payload))
		require.NoError(t, err)
		require.NoError(t, writer.Finish())
		require.Equal(t, payload, dechunk(t, conn.Written))
	})

	t.Run("transport error", func(t *testing.T) {
		conn := dummy.NewNopConn().FailWrites(io.ErrClosedPipe)
		writer := NewChunkedWriter(conn, make([]byte, ChunkedBufferSize(16)))
		_, err := writer.Write([]byte(payload))
		require.ErrorIs(t, err, io.ErrClosedPipe)
	})

	t.Run("too small buffer", func(t *testing.T) {
		writer := NewChunkedWriter(dummy.NewNopConn(), make([]byte, ChunkedBufferSize(1)-1))
		require.Equal(t, fallbackChunkCapacity, writer.Capacity())

		conn := dummy.NewNopConn()
		writer = NewChunkedWriter(conn, make([]byte, ChunkedBufferSize(1)))
		require.Equal(t, 1, writer.Capacity())
		_, err := writer.WriteSome([]byte("ab"))
		require.NoError(t, err)
		require.NoError(t, writer.Finish())
		require.Equal(t, "2\r\nab\r\n0\r\n\r\n", string(conn.Written))
	})
}

func TestChunkedBufferSize(t *testing.T) {
	for _, capacity := range []int{1, 15, 16, 255, 256, 1024, 4096} {
		size := ChunkedBufferSize(capacity)
		require.Equal(t, capacity, chunkCapacity(size), "capacity %d", capacity)
		require.Less(t, chunkCapacity(size-1), capacity)
	}
}
