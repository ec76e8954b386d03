package headers

import (
	"iter"
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

// Header is a single name-value pair. Headers produced by the response parser are
// views into the buffer the response head was read into, so they must not be used
// after that buffer is released or reused.
type Header struct {
	Key, Value string
}

// Headers is an insertion-ordered sequence of pairs. Duplicate keys are allowed, as
// well as any order of them. Lookups use linear search, which proves to be more
// efficient on relatively low amount of entries, which is the case for the most of
// responses.
type Headers struct {
	pairs      []Header
	valuesBuff []string
}

func New() *Headers {
	return new(Headers)
}

// NewPrealloc returns an instance with pre-allocated underlying storage, so no
// allocations happen until n pairs are exceeded.
func NewPrealloc(n int) *Headers {
	return &Headers{
		pairs: make([]Header, 0, n),
	}
}

// Add appends a new pair of key and value.
func (h *Headers) Add(key, value string) *Headers {
	h.pairs = append(h.pairs, Header{
		Key:   key,
		Value: value,
	})

	return h
}

// Value returns the last value corresponding to the key. Otherwise, empty string is returned
func (h *Headers) Value(key string) string {
	return h.ValueOr(key, "")
}

// ValueOr returns either the last value corresponding to the key or custom value, defined
// via the second parameter.
func (h *Headers) ValueOr(key, or string) string {
	value, found := h.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool, indicating whether the value was found. When the key
// is presented multiple times, the last value wins.
func (h *Headers) Get(key string) (value string, found bool) {
	for i := len(h.pairs) - 1; i >= 0; i-- {
		if strcomp.EqualFold(key, h.pairs[i].Key) {
			return h.pairs[i].Value, true
		}
	}

	return "", false
}

// Values returns all values by the key in their order of appearance. Returns nil if key
// doesn't exist.
//
// WARNING: calling it twice will override values, returned by the first call. Consider
// copying the returned slice for safe use.
func (h *Headers) Values(key string) []string {
	h.valuesBuff = h.valuesBuff[:0]

	for _, pair := range h.pairs {
		if strcomp.EqualFold(pair.Key, key) {
			h.valuesBuff = append(h.valuesBuff, pair.Value)
		}
	}

	if len(h.valuesBuff) == 0 {
		return nil
	}

	return h.valuesBuff
}

// Iter returns an iterator over the pairs.
func (h *Headers) Iter() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range h.pairs {
			if !yield(pair.Key, pair.Value) {
				break
			}
		}
	}
}

// Has indicates, whether there's an entry of the key.
func (h *Headers) Has(key string) bool {
	_, found := h.Get(key)
	return found
}

// Len returns a number of stored pairs.
func (h *Headers) Len() int {
	return len(h.pairs)
}

func (h *Headers) Empty() bool {
	return h.Len() == 0
}

// Expose exposes the underlying pairs slice.
func (h *Headers) Expose() []Header {
	return h.pairs
}

// Clone creates a deep copy, which outlives the buffer the original pairs might be
// pointing into. However, it comes at cost of multiple allocations.
func (h *Headers) Clone() *Headers {
	pairs := make([]Header, len(h.pairs))
	for i, pair := range h.pairs {
		pairs[i] = Header{
			Key:   strings.Clone(pair.Key),
			Value: strings.Clone(pair.Value),
		}
	}

	return &Headers{pairs: pairs}
}

// Clear all the entries. However, all the allocated space won't be freed.
func (h *Headers) Clear() *Headers {
	h.pairs = h.pairs[:0]
	return h
}
