package proto

import "github.com/indigo-web/utils/uf"

// Proto is the HTTP-version of a message. Only HTTP/1.x is spoken.
type Proto uint8

const (
	Unknown Proto = iota
	HTTP10
	HTTP11
)

const (
	versionLength = len("HTTP/x.x")
	majorPrefix   = "HTTP/1."
)

func (p Proto) String() string {
	switch p {
	case HTTP10:
		return "HTTP/1.0"
	case HTTP11:
		return "HTTP/1.1"
	default:
		return ""
	}
}

// FromBytes recognizes the HTTP-version token of a status line. Anything but
// HTTP/1.0 and HTTP/1.1 results in Unknown
func FromBytes(raw []byte) Proto {
	if len(raw) != versionLength || uf.B2S(raw[:len(majorPrefix)]) != majorPrefix {
		return Unknown
	}

	switch raw[len(majorPrefix)] {
	case '0':
		return HTTP10
	case '1':
		return HTTP11
	default:
		return Unknown
	}
}
