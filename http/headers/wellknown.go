package headers

import (
	"iter"
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

const (
	Host             = "Host"
	ContentType      = "Content-Type"
	ContentLength    = "Content-Length"
	TransferEncoding = "Transfer-Encoding"
	Connection       = "Connection"
	KeepAliveHeader  = "Keep-Alive"
	Authorization    = "Authorization"
	UserAgent        = "User-Agent"
)

// Tokens iterates over comma-separated list elements of the value, trimming optional
// whitespaces. Empty elements are skipped.
func Tokens(value string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for len(value) > 0 {
			var token string
			token, value, _ = strings.Cut(value, ",")
			token = strings.TrimSpace(token)
			if len(token) == 0 {
				continue
			}

			if !yield(token) {
				return
			}
		}
	}
}

// HasToken reports whether the comma-separated list contains the token, case-insensitively.
func HasToken(value, token string) bool {
	for t := range Tokens(value) {
		if strcomp.EqualFold(t, token) {
			return true
		}
	}

	return false
}

// LastToken returns the last element of the comma-separated list. Used primarily to
// check whether chunked is the final transfer coding.
func LastToken(value string) (last string) {
	for t := range Tokens(value) {
		last = t
	}

	return last
}
