package http

import "strconv"

type FramingKind uint8

const (
	// Unframed means there's no body at all.
	Unframed FramingKind = iota
	// FixedLength body is exactly Framing.Length bytes long.
	FixedLength
	// Chunked body is transfer-encoded in chunks.
	Chunked
	// UntilClose body lasts until the server closes the connection.
	UntilClose
)

// Framing tells how the body boundaries are determined.
type Framing struct {
	Kind   FramingKind
	Length uint64
}

func (f Framing) String() string {
	switch f.Kind {
	case Unframed:
		return "unframed"
	case FixedLength:
		return "fixed(" + strconv.FormatUint(f.Length, 10) + ")"
	case Chunked:
		return "chunked"
	case UntilClose:
		return "until-close"
	default:
		return "unknown"
	}
}

// Persistence tells whether the connection may be reused after the exchange.
type Persistence uint8

const (
	Close Persistence = iota
	KeepAlive
)

func (p Persistence) String() string {
	if p == KeepAlive {
		return "keep-alive"
	}

	return "close"
}
