package hexconv

// Invalid is what Halfbyte holds for bytes not being hex digits.
const Invalid byte = 0xff

// Halfbyte maps ASCII hex digits (both cases) onto their values. Any other byte maps
// onto Invalid
var Halfbyte = func() (table [256]byte) {
	for i := range table {
		table[i] = Invalid
	}

	for c := byte('0'); c <= '9'; c++ {
		table[c] = c - '0'
	}

	for c := byte('a'); c <= 'f'; c++ {
		table[c] = c - 'a' + 10
		table[c-'a'+'A'] = c - 'a' + 10
	}

	return table
}()

// Len returns the number of hex digits required to represent n, e.g. 0x0 => 1,
// 0xf => 1, 0x10 => 2, 0x1234 => 4
func Len(n uint64) int {
	length := 1
	for n >>= 4; n > 0; n >>= 4 {
		length++
	}

	return length
}

// Put writes n in lowercase hex into the ending of dst, so the value is right-aligned.
// Returns the offset the value begins at. dst must be at least Len(n) bytes long
func Put(dst []byte, n uint64) (offset int) {
	const digits = "0123456789abcdef"

	offset = len(dst)
	for {
		offset--
		dst[offset] = digits[n&0xf]
		n >>= 4
		if n == 0 {
			return offset
		}
	}
}
