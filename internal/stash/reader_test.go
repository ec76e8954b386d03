package stash

import (
	"io"
	"testing"

	"github.com/indigo-web/embedhttp/errors"
	"github.com/stretchr/testify/require"
)

func TestReader(t *testing.T) {
	t.Run("both data and error simultaneously", func(t *testing.T) {
		r := New(func() ([]byte, error) {
			return []byte("hello, world"), io.EOF
		})

		buff := make([]byte, 64)
		n, err := r.Read(buff)
		require.Equal(t, 12, n)
		require.Equal(t, "hello, world", string(buff[:n]))
		require.EqualError(t, err, io.EOF.Error())
	})

	t.Run("multiple reads", func(t *testing.T) {
		r := New(func() ([]byte, error) {
			return []byte("hello, world"), io.EOF
		})

		buff := make([]byte, 2)
		data, err := readfull(r, buff)
		require.NoError(t, err)
		require.Equal(t, "hello, world", string(data))
	})

	t.Run("stashed data outlives the error", func(t *testing.T) {
		calls := 0
		r := New(func() ([]byte, error) {
			calls++
			if calls == 1 {
				return []byte("hello, "), errors.ErrIncomplete
			}

			return []byte("world"), io.EOF
		})

		buff := make([]byte, 3)
		n, err := r.Read(buff)
		require.NoError(t, err)
		require.Equal(t, "hel", string(buff[:n]))
		require.Equal(t, 4, r.Buffered())

		n, err = r.Read(buff)
		require.NoError(t, err)
		require.Equal(t, "lo,", string(buff[:n]))

		n, err = r.Read(buff)
		require.ErrorIs(t, err, errors.ErrIncomplete)
		require.Equal(t, " ", string(buff[:n]))

		data, err := readfull(r, buff)
		require.NoError(t, err)
		require.Equal(t, "world", string(data))
	})

	t.Run("incomplete is not sticky", func(t *testing.T) {
		calls := 0
		r := New(func() ([]byte, error) {
			calls++
			switch calls {
			case 1:
				return nil, errors.ErrIncomplete
			case 2:
				return []byte("data"), nil
			default:
				return nil, io.EOF
			}
		})

		buff := make([]byte, 8)
		_, err := r.Read(buff)
		require.ErrorIs(t, err, errors.ErrIncomplete)

		data, err := readfull(r, buff)
		require.NoError(t, err)
		require.Equal(t, "data", string(data))
	})
}

func readfull(from io.Reader, buff []byte) ([]byte, error) {
	var full []byte

	for {
		n, err := from.Read(buff)
		full = append(full, buff[:n]...)
		switch err {
		case nil:
		case io.EOF:
			return full, nil
		default:
			return full, err
		}
	}
}
