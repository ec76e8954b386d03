// Package httptest parses rendered requests back, so tests can inspect them
// field by field instead of comparing raw bytes.
package httptest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/embedhttp/http/headers"
	"github.com/indigo-web/embedhttp/http/method"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

type Request struct {
	Method  method.Method
	Path    string
	Proto   string
	Headers *headers.Headers
	Body    string
}

func NewRequest() Request {
	return Request{
		Headers: headers.New(),
	}
}

// Parse parses a single request. Chunked bodies are decoded.
func Parse(data []byte) (request Request, err error) {
	var found bool
	request = NewRequest()
	raw := string(data)

	var m string
	m, raw, found = strings.Cut(raw, " ")
	if request.Method = method.Parse(m); request.Method == method.Unknown || !found {
		return request, fmt.Errorf("bad request line: bad method %q", m)
	}

	request.Path, raw, found = strings.Cut(raw, " ")
	if !found {
		return request, fmt.Errorf("bad request line: lacking protocol")
	}

	request.Proto, raw, found = strings.Cut(raw, "\r\n")
	if !found {
		return request, fmt.Errorf("bad request: only request line is presented")
	}

	for {
		var headerLine string
		headerLine, raw, found = strings.Cut(raw, "\r\n")
		if !found {
			return request, fmt.Errorf("bad header line %q: no breaking CRLF", headerLine)
		}

		if len(headerLine) == 0 {
			break
		}

		key, value, found := strings.Cut(headerLine, ": ")
		if !found {
			return request, fmt.Errorf("bad header %q: no value", headerLine)
		}

		request.Headers.Add(key, value)
	}

	request.Body, err = processBody(request, raw)

	return request, err
}

func processBody(request Request, data string) (string, error) {
	te := request.Headers.Values(headers.TransferEncoding)
	if len(te) > 0 {
		if len(te) != 1 || !strcomp.EqualFold(te[0], "chunked") {
			return "", fmt.Errorf("httptest: cannot process encodings: %s", strings.Join(te, ","))
		}

		if request.Headers.Has(headers.ContentLength) {
			return "", fmt.Errorf("bad request: both Transfer-Encoding and Content-Length are presented")
		}

		return processChunkedBody(data, request.Headers.Has("Trailer"))
	}

	contentLengths := request.Headers.Values(headers.ContentLength)
	switch len(contentLengths) {
	case 0:
		if len(data) == 0 {
			return "", nil
		}

		return "", fmt.Errorf("bad request: neither Transfer-Encoding or Content-Length are presented")
	case 1:
		length, err := strconv.Atoi(contentLengths[0])
		if err != nil {
			return "", err
		}

		if len(data) != length {
			return "", fmt.Errorf("bad request: declared %d bytes of body, got %d", length, len(data))
		}

		return data, nil
	default:
		return "", fmt.Errorf(
			"bad request: too many content-lengths: %s", strings.Join(contentLengths, ", "),
		)
	}
}

func processChunkedBody(data string, trailer bool) (string, error) {
	var buff []byte
	parser := chunkedbody.NewParser(chunkedbody.DefaultSettings())

	for len(data) > 0 {
		chunk, extra, err := parser.Parse(uf.S2B(data), trailer)
		switch err {
		case nil:
		case io.EOF:
			return string(append(buff, chunk...)), nil
		default:
			return "", fmt.Errorf("bad request: bad chunked body: %s", err)
		}

		buff = append(buff, chunk...)
		data = string(extra)
	}

	return string(buff), nil
}
