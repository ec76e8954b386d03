package http1

import (
	"bytes"

	"github.com/indigo-web/embedhttp/errors"
	"github.com/indigo-web/embedhttp/http"
	"github.com/indigo-web/embedhttp/http/headers"
	"github.com/indigo-web/embedhttp/http/method"
	"github.com/indigo-web/embedhttp/http/proto"
	"github.com/indigo-web/embedhttp/http/status"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

const (
	httpScheme       = "HTTP/"
	statusLineMinLen = len("HTTP/1.1 200")
	protoEnd         = len("HTTP/1.1")
)

// ParseResponse parses the response head out of data, filling the response and its
// headers. The parser is stateless: if errors.ErrIncomplete is returned, the call must
// be repeated with the same data extended by more bytes. On success, the length of the
// head is returned, so data[n:] is the beginning of the body.
//
// All the strings set are views into data. The request method is needed, as responses
// to HEAD requests never carry a body.
func ParseResponse(
	data []byte, m method.Method, response *http.Response, maxHeaders int,
) (n int, err error) {
	response.Reset()
	response.Headers.Clear()

	line, offset, found := nextLine(data, 0)
	if !found {
		if !mayBeProto(data) {
			return 0, errors.ErrMalformedStatusLine
		}

		return 0, errors.ErrIncomplete
	}

	if err = parseStatusLine(line, response); err != nil {
		return 0, err
	}

	var (
		chunked    bool
		connection string
	)

	for {
		line, offset, found = nextLine(data, offset)
		if !found {
			return 0, errors.ErrIncomplete
		}

		if len(line) == 0 {
			break
		}

		key, value, ok := parseHeader(line)
		if !ok {
			return 0, errors.ErrMalformedHeader
		}

		if response.Headers.Len() >= maxHeaders {
			return 0, errors.ErrTooManyHeaders
		}

		response.Headers.Add(key, value)

		switch {
		case strcomp.EqualFold(key, headers.ContentLength):
			length, ok := parseContentLength(value)
			if !ok {
				return 0, errors.ErrMalformedHeader
			}

			response.ContentLength = length
		case strcomp.EqualFold(key, headers.TransferEncoding):
			chunked = strcomp.EqualFold(headers.LastToken(value), "chunked")
		case strcomp.EqualFold(key, headers.Connection):
			connection = value
		case strcomp.EqualFold(key, headers.KeepAliveHeader):
			response.KeepAlive = headers.ParseKeepAlive(value)
		case strcomp.EqualFold(key, headers.ContentType):
			response.ContentType = value
		}
	}

	response.Persistence = Persist(response.Protocol, connection)
	response.Framing = frame(response, m, chunked)
	if response.Framing.Kind == http.UntilClose {
		// the end of the body is the end of the connection
		response.Persistence = http.Close
	}

	return offset, nil
}

// frame determines the body framing. Bodyless statuses and responses to HEAD win over
// any framing headers, then chunked transfer coding wins over Content-Length. Without
// any of them, the body lasts until the server closes the connection.
func frame(response *http.Response, m method.Method, chunked bool) http.Framing {
	switch {
	case m == method.HEAD || status.IsBodyless(response.Code):
		return http.Framing{Kind: http.Unframed}
	case m == method.CONNECT && response.Code.IsSuccess():
		// the connection becomes a tunnel
		return http.Framing{Kind: http.Unframed}
	case chunked:
		return http.Framing{Kind: http.Chunked}
	case response.ContentLength > 0:
		return http.Framing{Kind: http.FixedLength, Length: uint64(response.ContentLength)}
	case response.ContentLength == 0:
		return http.Framing{Kind: http.Unframed}
	default:
		return http.Framing{Kind: http.UntilClose}
	}
}

func parseStatusLine(line []byte, response *http.Response) error {
	if len(line) < statusLineMinLen || line[protoEnd] != ' ' {
		return errors.ErrMalformedStatusLine
	}

	response.Protocol = proto.FromBytes(line[:protoEnd])
	if response.Protocol == proto.Unknown {
		return errors.ErrMalformedStatusLine
	}

	var code status.Code
	for _, c := range line[protoEnd+1 : statusLineMinLen] {
		if c < '0' || c > '9' {
			return errors.ErrMalformedStatusLine
		}

		code = code*10 + status.Code(c-'0')
	}

	if !code.Valid() {
		return errors.ErrMalformedStatusLine
	}

	response.Code = code

	if len(line) == statusLineMinLen {
		return nil
	}

	if line[statusLineMinLen] != ' ' {
		return errors.ErrMalformedStatusLine
	}

	reason := line[statusLineMinLen+1:]
	if !isFieldContent(reason) {
		return errors.ErrMalformedStatusLine
	}

	response.Status = status.Status(uf.B2S(reason))

	return nil
}

func parseHeader(line []byte) (key, value string, ok bool) {
	colon := bytes.IndexByte(line, ':')
	if colon <= 0 {
		return "", "", false
	}

	for _, c := range line[:colon] {
		if !isTokenChar(c) {
			return "", "", false
		}
	}

	rawValue := trimOWS(line[colon+1:])
	if !isFieldContent(rawValue) {
		return "", "", false
	}

	return uf.B2S(line[:colon]), uf.B2S(rawValue), true
}

func parseContentLength(value string) (length int64, ok bool) {
	const maxLength = 1<<63 - 1

	if len(value) == 0 {
		return 0, false
	}

	for i := 0; i < len(value); i++ {
		c := value[i]
		if c < '0' || c > '9' {
			return 0, false
		}

		digit := int64(c - '0')
		if length > (maxLength-digit)/10 {
			return 0, false
		}

		length = length*10 + digit
	}

	return length, true
}

// nextLine returns the line beginning at the offset without its line terminator,
// which is either CRLF or a bare LF.
func nextLine(data []byte, offset int) (line []byte, next int, found bool) {
	lf := bytes.IndexByte(data[offset:], '\n')
	if lf == -1 {
		return nil, offset, false
	}

	line = data[offset : offset+lf]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	return line, offset + lf + 1, true
}

// mayBeProto reports whether the data may be a beginning of a status line.
func mayBeProto(data []byte) bool {
	n := min(len(data), len(httpScheme))
	return uf.B2S(data[:n]) == httpScheme[:n]
}

func trimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}

	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}

	return b
}
