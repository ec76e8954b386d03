package http1

import "github.com/indigo-web/utils/uf"

// tokenChars marks bytes allowed in header names.
var tokenChars = func() (table [256]bool) {
	for c := 'a'; c <= 'z'; c++ {
		table[c] = true
		table[c-'a'+'A'] = true
	}

	for c := '0'; c <= '9'; c++ {
		table[c] = true
	}

	for _, c := range "!#$%&'*+-.^_`|~" {
		table[c] = true
	}

	return table
}()

func isTokenChar(c byte) bool {
	return tokenChars[c]
}

// isFieldContent reports whether the value holds no control characters except HTAB.
// Bytes above 0x7f are let through as obsolete text.
func isFieldContent(value []byte) bool {
	for _, c := range value {
		if (c < 0x20 && c != '\t') || c == 0x7f {
			return false
		}
	}

	return true
}

// validField reports whether the pair can be rendered as a header line without
// breaking the message apart.
func validField(key, value string) bool {
	if len(key) == 0 {
		return false
	}

	for i := 0; i < len(key); i++ {
		if !isTokenChar(key[i]) {
			return false
		}
	}

	return isFieldContent(uf.S2B(value))
}

// validTarget reports whether the request target holds neither whitespace nor
// control characters.
func validTarget(path string) bool {
	for i := 0; i < len(path); i++ {
		if c := path[i]; c <= ' ' || c == 0x7f {
			return false
		}
	}

	return true
}
