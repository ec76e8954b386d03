// Package responsegen generates responses for tests and benchmarks.
package responsegen

import (
	"strconv"
	"strings"

	"github.com/indigo-web/embedhttp/http/headers"
)

func Headers(n int) *headers.Headers {
	hdrs := headers.NewPrealloc(n)

	for i := 0; i < n-1; i++ {
		hdrs.Add("some-random-header-name-nobody-cares-about"+strconv.Itoa(i), strings.Repeat("b", 100))
	}

	return hdrs.Add("Server", "indigo")
}

func HeadersBlock(hdrs *headers.Headers) (buff []byte) {
	for _, pair := range hdrs.Expose() {
		buff = append(buff, pair.Key+": "+pair.Value+"\r\n"...)
	}

	return buff
}

// Generate returns a response head with the headers, followed by the body framed
// with Content-Length.
func Generate(body string, hdrs *headers.Headers) (response []byte) {
	response = append(response, "HTTP/1.1 200 OK\r\n"...)
	response = append(response, HeadersBlock(hdrs)...)
	response = append(response, "Content-Length: "+strconv.Itoa(len(body))+"\r\n\r\n"...)

	return append(response, body...)
}

// Chunked encodes the body into chunks of up to chunkSize bytes.
func Chunked(body string, chunkSize int) (encoded []byte) {
	for len(body) > 0 {
		chunk := body[:min(chunkSize, len(body))]
		body = body[len(chunk):]
		encoded = strconv.AppendInt(encoded, int64(len(chunk)), 16)
		encoded = append(encoded, "\r\n"+chunk+"\r\n"...)
	}

	return append(encoded, "0\r\n\r\n"...)
}
