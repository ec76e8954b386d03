package headers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaders(t *testing.T) {
	t.Run("last wins", func(t *testing.T) {
		h := New().
			Add("Content-Length", "5").
			Add("Accept", "*/*").
			Add("content-length", "7")

		require.Equal(t, "7", h.Value("CONTENT-LENGTH"))
		require.Equal(t, []string{"5", "7"}, h.Values("Content-Length"))
		require.Equal(t, 3, h.Len())
	})

	t.Run("missing", func(t *testing.T) {
		h := New().Add("Hello", "world")
		_, found := h.Get("world")
		require.False(t, found)
		require.False(t, h.Has("world"))
		require.Nil(t, h.Values("world"))
		require.Equal(t, "fallback", h.ValueOr("world", "fallback"))
	})

	t.Run("iteration order", func(t *testing.T) {
		h := New().Add("a", "1").Add("b", "2").Add("a", "3")
		var keys, values []string
		for key, value := range h.Iter() {
			keys = append(keys, key)
			values = append(values, value)
		}

		require.Equal(t, []string{"a", "b", "a"}, keys)
		require.Equal(t, []string{"1", "2", "3"}, values)
	})

	t.Run("clear keeps capacity", func(t *testing.T) {
		h := NewPrealloc(4).Add("a", "1").Add("b", "2")
		h.Clear()
		require.True(t, h.Empty())
		require.Equal(t, 4, cap(h.Expose()))
	})

	t.Run("clone is independent", func(t *testing.T) {
		buff := []byte("value")
		h := New().Add("key", string(buff))
		clone := h.Clone()
		h.Clear()
		require.Equal(t, "value", clone.Value("key"))
	})
}

func TestTokens(t *testing.T) {
	require.True(t, HasToken("keep-alive, Upgrade", "upgrade"))
	require.True(t, HasToken(" close ", "close"))
	require.False(t, HasToken("closed", "close"))
	require.Equal(t, "chunked", LastToken("gzip, chunked"))
	require.Equal(t, "gzip", LastToken("chunked,gzip,,"))
	require.Empty(t, LastToken(" , "))
}

func TestParseKeepAlive(t *testing.T) {
	require.Equal(t, KeepAlive{Timeout: 5, Max: 100}, ParseKeepAlive("timeout=5, max=100"))
	require.Equal(t, KeepAlive{Max: 3}, ParseKeepAlive("Max = 3, timeout=abc"))
	require.Equal(t, KeepAlive{}, ParseKeepAlive("garbage"))
}
