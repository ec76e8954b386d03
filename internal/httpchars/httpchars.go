package httpchars

var (
	CRLF    = []byte("\r\n")
	COLONSP = []byte(": ")
)

const (
	LastChunk = "0\r\n"
	// Terminator is the zero-sized chunk followed by an empty trailer section
	Terminator = "0\r\n\r\n"
)
