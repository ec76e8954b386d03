package http1

import (
	"testing"

	"github.com/indigo-web/embedhttp/errors"
	"github.com/indigo-web/embedhttp/transport/dummy"
	"github.com/stretchr/testify/require"
)

func TestFixedWriter(t *testing.T) {
	t.Run("exact length", func(t *testing.T) {
		conn := dummy.NewNopConn()
		writer := NewFixedWriter(conn, 11)
		_, err := writer.Write([]byte("hello "))
		require.NoError(t, err)
		_, err = writer.Write([]byte("world"))
		require.NoError(t, err)
		require.Zero(t, writer.Remaining())
		require.NoError(t, writer.Finish())
		require.Equal(t, "hello world", string(conn.Written))
	})

	t.Run("too long", func(t *testing.T) {
		conn := dummy.NewNopConn()
		writer := NewFixedWriter(conn, 5)
		n, err := writer.Write([]byte("hello world"))
		require.ErrorIs(t, err, errors.ErrBodyTooLong)
		require.Zero(t, n)
		require.Empty(t, conn.Written)
	})

	t.Run("too short", func(t *testing.T) {
		writer := NewFixedWriter(dummy.NewNopConn(), 5)
		_, err := writer.Write([]byte("hel"))
		require.NoError(t, err)
		require.ErrorIs(t, writer.Finish(), errors.ErrBodyTooShort)
	})

	t.Run("write after finish", func(t *testing.T) {
		writer := NewFixedWriter(dummy.NewNopConn(), 0)
		require.NoError(t, writer.Finish())
		_, err := writer.Write([]byte("a"))
		require.ErrorIs(t, err, errors.ErrBodyFinished)
	})
}
